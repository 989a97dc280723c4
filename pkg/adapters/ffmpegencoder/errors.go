package ffmpegencoder

import "errors"

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("ffmpegencoder: encoder not initialized")

	// ErrFFmpegNotFound is returned when no ffmpeg binary can be located.
	ErrFFmpegNotFound = errors.New("ffmpegencoder: ffmpeg not found")

	// ErrUnsupportedElement is returned when a GStreamer element has no ffmpeg equivalent.
	ErrUnsupportedElement = errors.New("ffmpegencoder: no ffmpeg equivalent for element")

	// ErrEncodingFailed is returned when the ffmpeg process exits with an error.
	ErrEncodingFailed = errors.New("ffmpegencoder: encoding failed")

	// ErrAborted is returned by End when Abort killed ffmpeg before it finished.
	ErrAborted = errors.New("ffmpegencoder: process aborted during finalize")
)

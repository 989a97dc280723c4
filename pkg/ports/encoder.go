package ports

import (
	"image"
	"time"
)

// VideoEncoder abstracts a backend that turns frames into a video file.
// A VideoEncoder owns one pipeline instance between Begin and End/Abort and
// is driven from a single goroutine; only Abort may be called concurrently.
type VideoEncoder interface {
	// Begin builds the pipeline for the settings and starts it, writing to outputPath.
	Begin(outputPath string, settings VideoSettings) error

	// EncodeFrame pushes a single frame with its presentation timestamp.
	EncodeFrame(img image.Image, pts time.Duration) error

	// End signals end-of-stream, waits for the pipeline to flush and finalizes the file.
	End() error

	// Abort tears the pipeline down without finalizing the output.
	Abort() error
}

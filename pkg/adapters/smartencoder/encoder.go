// Package smartencoder selects a video encoder backend with fallback support.
package smartencoder

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/user/streamenc/pkg/adapters/ffmpegencoder"
	"github.com/user/streamenc/pkg/adapters/gstencoder"
	"github.com/user/streamenc/pkg/ports"
)

// Backend represents the encoding backend.
type Backend string

const (
	// BackendAuto tries GStreamer first, then ffmpeg.
	BackendAuto Backend = "auto"
	// BackendGStreamer encodes through a GStreamer pipeline.
	BackendGStreamer Backend = "gstreamer"
	// BackendFFmpeg encodes through an ffmpeg child process.
	BackendFFmpeg Backend = "ffmpeg"
)

// ParseBackend parses a backend name. The empty string means auto.
func ParseBackend(s string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return BackendAuto, nil
	case "gstreamer", "gst":
		return BackendGStreamer, nil
	case "ffmpeg":
		return BackendFFmpeg, nil
	}
	return "", fmt.Errorf("smartencoder: unknown backend %q", s)
}

// Info contains information about the selected encoder.
type Info struct {
	// Backend is the encoding backend being used.
	Backend Backend
	// RequestedBackend is the backend that was originally requested.
	RequestedBackend Backend
	// FallbackUsed indicates whether a fallback occurred.
	FallbackUsed bool
}

// Options configures the smart encoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// AllowFallback lets an explicitly requested backend fall back to the
	// other one when it is unavailable. Auto always falls back.
	AllowFallback bool
	// BufferFrames bounds the GStreamer appsrc queue, in frames.
	BufferFrames int
	// FinalizeTimeout bounds the wait for end-of-stream.
	FinalizeTimeout time.Duration
	// Logger is used to log fallback warnings.
	Logger ports.Logger
}

var (
	// ErrNoEncoderAvailable is returned when no backend can encode the settings.
	ErrNoEncoderAvailable = errors.New("smartencoder: no encoder available")
)

// Availability probes, replaced in tests.
var (
	checkGStreamer = gstencoder.CheckAvailable
	checkFFmpeg    = func(path string, s ports.VideoSettings) error {
		if _, err := ffmpegencoder.FindFFmpeg(path); err != nil {
			return err
		}
		if _, err := ffmpegencoder.Codec(s.Encoder); err != nil {
			return err
		}
		_, err := ffmpegencoder.Container(s.Muxer)
		return err
	}
)

// New creates a video encoder for the settings.
//
// The selection flow:
//  1. auto: GStreamer, then ffmpeg
//  2. gstreamer / ffmpeg: the requested backend; the other one only when
//     AllowFallback is set
func New(preferred Backend, settings ports.VideoSettings, opts Options) (ports.VideoEncoder, Info, error) {
	if preferred == "" {
		preferred = BackendAuto
	}

	var order []Backend
	switch preferred {
	case BackendAuto:
		order = []Backend{BackendGStreamer, BackendFFmpeg}
	case BackendGStreamer:
		order = []Backend{BackendGStreamer}
		if opts.AllowFallback {
			order = append(order, BackendFFmpeg)
		}
	case BackendFFmpeg:
		order = []Backend{BackendFFmpeg}
		if opts.AllowFallback {
			order = append(order, BackendGStreamer)
		}
	default:
		return nil, Info{}, fmt.Errorf("smartencoder: unknown backend %q", preferred)
	}

	var errs []string
	for i, b := range order {
		err := check(b, settings, opts)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", b, err))
			continue
		}
		info := Info{
			Backend:          b,
			RequestedBackend: preferred,
			FallbackUsed:     i > 0,
		}
		if info.FallbackUsed && opts.Logger != nil {
			opts.Logger.Warn("%s encoder not available, falling back to %s", order[0], b)
		}
		return build(b, opts), info, nil
	}

	return nil, Info{RequestedBackend: preferred}, fmt.Errorf("%w (%s)", ErrNoEncoderAvailable, strings.Join(errs, "; "))
}

func check(b Backend, settings ports.VideoSettings, opts Options) error {
	switch b {
	case BackendGStreamer:
		return checkGStreamer(settings)
	case BackendFFmpeg:
		return checkFFmpeg(opts.FFmpegPath, settings)
	}
	return fmt.Errorf("smartencoder: unknown backend %q", b)
}

func build(b Backend, opts Options) ports.VideoEncoder {
	if b == BackendFFmpeg {
		return ffmpegencoder.New(ffmpegencoder.Options{
			FFmpegPath: opts.FFmpegPath,
			Logger:     opts.Logger,
		})
	}
	return gstencoder.New(gstencoder.Options{
		BufferFrames:    opts.BufferFrames,
		FinalizeTimeout: opts.FinalizeTimeout,
		Logger:          opts.Logger,
	})
}

// IsGStreamerAvailable checks if the GStreamer backend can encode the settings.
func IsGStreamerAvailable(settings ports.VideoSettings) bool {
	return checkGStreamer(settings) == nil
}

// IsFFmpegAvailable checks if the ffmpeg backend can encode the settings.
func IsFFmpegAvailable(ffmpegPath string, settings ports.VideoSettings) bool {
	return checkFFmpeg(ffmpegPath, settings) == nil
}

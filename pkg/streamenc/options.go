package streamenc

import (
	"time"

	"github.com/user/streamenc/pkg/adapters/logger"
	"github.com/user/streamenc/pkg/adapters/nullsink"
	"github.com/user/streamenc/pkg/adapters/osfilesystem"
	"github.com/user/streamenc/pkg/adapters/smartencoder"
	"github.com/user/streamenc/pkg/ports"
)

// DefaultBufferSize is the number of frames the channel returned by
// StartEncoding holds before sends block.
const DefaultBufferSize = 3

// Option configures an encoding run.
type Option func(*options)

type options struct {
	bufferSize      int
	logger          ports.Logger
	encoder         ports.VideoEncoder
	backend         smartencoder.Backend
	allowFallback   bool
	ffmpegPath      string
	finalizeTimeout time.Duration
	fs              ports.FileSystem
	sink            ports.DebugSink
}

func defaultOptions() options {
	return options{
		bufferSize: DefaultBufferSize,
		logger:     logger.NewNoop(),
		backend:    smartencoder.BackendAuto,
		fs:         osfilesystem.New(),
		sink:       nullsink.New(),
	}
}

func resolve(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// WithBufferSize sets the channel capacity, which is also the number of
// frames the pipeline queues before pushes block. Values below 1 are ignored.
func WithBufferSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.bufferSize = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l ports.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithEncoder injects the backend instead of selecting one.
func WithEncoder(enc ports.VideoEncoder) Option {
	return func(o *options) { o.encoder = enc }
}

// WithBackend selects the backend (auto, gstreamer, ffmpeg).
func WithBackend(b smartencoder.Backend) Option {
	return func(o *options) { o.backend = b }
}

// WithFallback lets an explicitly chosen backend fall back to the other one.
func WithFallback(allow bool) Option {
	return func(o *options) { o.allowFallback = allow }
}

// WithFFmpegPath sets a custom path to the ffmpeg binary.
func WithFFmpegPath(path string) Option {
	return func(o *options) { o.ffmpegPath = path }
}

// WithFinalizeTimeout bounds the wait for end-of-stream when finalizing.
func WithFinalizeTimeout(d time.Duration) Option {
	return func(o *options) { o.finalizeTimeout = d }
}

// WithFileSystem sets the file system used to prepare the output directory.
func WithFileSystem(fs ports.FileSystem) Option {
	return func(o *options) {
		if fs != nil {
			o.fs = fs
		}
	}
}

// WithDebugSink sets where settings, the pipeline description and frames are dumped.
func WithDebugSink(s ports.DebugSink) Option {
	return func(o *options) {
		if s != nil {
			o.sink = s
		}
	}
}

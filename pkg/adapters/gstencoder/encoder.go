// Package gstencoder encodes frames through a GStreamer pipeline.
//
// Frames are packed into raw buffers and pushed into an appsrc element; the
// rest of the work (colour conversion, encoding, muxing, writing) happens in
// GStreamer. Building without cgo, or with the nogst tag, yields an encoder
// whose Begin reports ErrUnavailable.
package gstencoder

import (
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"github.com/user/streamenc/pkg/adapters/logger"
	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/gstpipeline"
	"github.com/user/streamenc/pkg/ports"
)

var (
	// ErrNotInitialized is returned when encoder methods are called before Begin.
	ErrNotInitialized = errors.New("gstencoder: encoder not initialized")

	// ErrUnavailable is returned when GStreamer support is not compiled in.
	ErrUnavailable = errors.New("gstencoder: GStreamer support not available")

	// ErrFinalizeTimeout is returned when end-of-stream does not reach the sink in time.
	ErrFinalizeTimeout = errors.New("gstencoder: timed out waiting for end of stream")

	// ErrAborted is returned by End when Abort tore the pipeline down while it finalized.
	ErrAborted = errors.New("gstencoder: pipeline aborted during finalize")
)

// DefaultBufferFrames is the number of frames appsrc queues before pushes block.
const DefaultBufferFrames = 3

// Options configures the encoder.
type Options struct {
	// BufferFrames bounds the appsrc queue, in frames. Pushing blocks while it is full.
	BufferFrames int
	// FinalizeTimeout bounds the wait for end-of-stream in End. Zero waits forever.
	FinalizeTimeout time.Duration
	// Logger receives pipeline messages. Nil discards them.
	Logger ports.Logger
}

// pipeline is implemented by the cgo GStreamer binding and by the stub.
type pipeline interface {
	start(description, outputPath string, settings ports.VideoSettings, maxBytes uint64) error
	push(data []byte, pts, duration time.Duration) error
	finish(timeout time.Duration) error
	abort() error
}

// Encoder implements ports.VideoEncoder on top of a GStreamer pipeline.
// EncodeFrame and End must be called from one goroutine; Abort may be called
// from any goroutine and unblocks a push waiting on a full queue.
type Encoder struct {
	pushMu sync.Mutex
	mu     sync.Mutex

	opts     Options
	log      ports.Logger
	settings ports.VideoSettings
	scratch  []byte
	frames   uint64

	pipe    pipeline
	ending  pipeline // set while End waits for end-of-stream
	aborted bool
	newPipe func(ports.Logger) pipeline
}

// New creates an encoder. The pipeline is built by Begin.
func New(opts Options) *Encoder {
	if opts.BufferFrames <= 0 {
		opts.BufferFrames = DefaultBufferFrames
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoop()
	}
	return &Encoder{
		opts:    opts,
		log:     log.WithComponent("gstreamer"),
		newPipe: newPipeline,
	}
}

// Begin builds the pipeline and sets it to PLAYING.
func (e *Encoder) Begin(outputPath string, settings ports.VideoSettings) error {
	e.pushMu.Lock()
	defer e.pushMu.Unlock()
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := settings.Validate(); err != nil {
		return err
	}
	if e.pipe != nil {
		return fmt.Errorf("gstencoder: pipeline already running")
	}

	e.settings = settings.Clone()
	e.scratch = make([]byte, settings.FrameSize())
	e.frames = 0

	description := gstpipeline.Description(e.settings)
	e.log.Debug("Pipeline: %s", description)

	pipe := e.newPipe(e.log)
	maxBytes := uint64(e.opts.BufferFrames) * uint64(len(e.scratch))
	if err := pipe.start(description, outputPath, e.settings, maxBytes); err != nil {
		return err
	}
	e.pipe = pipe
	return nil
}

// EncodeFrame packs the frame and pushes it into appsrc. It blocks while the
// appsrc queue is full.
func (e *Encoder) EncodeFrame(img image.Image, pts time.Duration) error {
	e.pushMu.Lock()
	defer e.pushMu.Unlock()

	e.mu.Lock()
	pipe := e.pipe
	settings := e.settings
	e.mu.Unlock()

	if pipe == nil {
		return ErrNotInitialized
	}
	if err := frame.Pack(e.scratch, img, settings.Format, settings.Width, settings.Height); err != nil {
		return err
	}
	if err := pipe.push(e.scratch, pts, frame.Duration(settings.Framerate)); err != nil {
		return fmt.Errorf("push frame %d: %w", e.Frames(), err)
	}

	e.mu.Lock()
	e.frames++
	e.mu.Unlock()
	return nil
}

// End sends end-of-stream and waits until the muxer has finalized the file.
func (e *Encoder) End() error {
	e.pushMu.Lock()
	defer e.pushMu.Unlock()

	e.mu.Lock()
	pipe := e.pipe
	e.pipe = nil
	e.ending = pipe
	e.aborted = false
	frames := e.frames
	e.mu.Unlock()

	if pipe == nil {
		return ErrNotInitialized
	}
	err := pipe.finish(e.opts.FinalizeTimeout)

	e.mu.Lock()
	e.ending = nil
	aborted := e.aborted
	e.mu.Unlock()

	if aborted && err == nil {
		err = ErrAborted
	}
	e.log.Debug("Pipeline finished after %d frames", frames)
	return err
}

// Abort stops the pipeline without waiting for end-of-stream. Called while End
// is finalizing, it tears down the finishing pipeline and End returns.
func (e *Encoder) Abort() error {
	e.mu.Lock()
	pipe := e.pipe
	e.pipe = nil
	if pipe == nil && e.ending != nil {
		pipe = e.ending
		e.aborted = true
	}
	e.mu.Unlock()

	if pipe == nil {
		return nil
	}
	return pipe.abort()
}

// Frames returns the number of frames pushed since Begin.
func (e *Encoder) Frames() uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.frames
}

// Ensure Encoder implements ports.VideoEncoder
var _ ports.VideoEncoder = (*Encoder)(nil)

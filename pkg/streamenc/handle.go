package streamenc

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/user/streamenc/pkg/adapters/smartencoder"
	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/ports"
)

// Handle refers to the worker goroutine of one encoding run.
type Handle struct {
	id         string
	outputPath string
	settings   ports.VideoSettings
	backend    smartencoder.Backend
	started    time.Time

	cancel context.CancelFunc
	done   chan struct{}

	// Set by the worker before done is closed.
	err      error
	finished time.Time

	received atomic.Uint64
	encoded  atomic.Uint64
	dropped  atomic.Uint64
}

// Stats is a snapshot of a run's counters.
type Stats struct {
	FramesReceived uint64        // Frames taken off the channel
	FramesEncoded  uint64        // Frames accepted by the pipeline
	FramesDropped  uint64        // Nil frames and frames discarded after a failure
	Elapsed        time.Duration // Wall time since StartEncoding
}

// Result describes a finished run.
type Result struct {
	ID         string
	OutputPath string
	Backend    smartencoder.Backend
	Settings   ports.VideoSettings
	Frames     uint64
	Duration   time.Duration // Media duration of the encoded frames
	Elapsed    time.Duration // Wall time of the run
	Err        error
}

// ID returns the run's unique identifier.
func (h *Handle) ID() string {
	return h.id
}

// Backend returns the backend encoding this run.
func (h *Handle) Backend() smartencoder.Backend {
	return h.backend
}

// Done is closed when the worker has finished or failed.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Wait blocks until the worker has finished and returns its error.
//
// The worker finalizes the file only after the frame channel is closed, so
// calling Wait before closing the channel blocks until the run fails or is
// cancelled.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// Cancel aborts the run without finalizing the output. Wait then returns
// context.Canceled.
func (h *Handle) Cancel() {
	h.cancel()
}

// Stats returns the current counters.
func (h *Handle) Stats() Stats {
	elapsed := time.Since(h.started)
	select {
	case <-h.done:
		elapsed = h.finished.Sub(h.started)
	default:
	}
	return Stats{
		FramesReceived: h.received.Load(),
		FramesEncoded:  h.encoded.Load(),
		FramesDropped:  h.dropped.Load(),
		Elapsed:        elapsed,
	}
}

// Result returns the outcome of the run. It blocks like Wait.
func (h *Handle) Result() Result {
	<-h.done
	frames := h.encoded.Load()
	return Result{
		ID:         h.id,
		OutputPath: h.outputPath,
		Backend:    h.backend,
		Settings:   h.settings,
		Frames:     frames,
		Duration:   frame.PTS(frames, h.settings.Framerate),
		Elapsed:    h.finished.Sub(h.started),
		Err:        h.err,
	}
}

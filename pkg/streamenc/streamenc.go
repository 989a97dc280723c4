// Package streamenc streams image frames into a video file.
//
// StartEncoding starts a worker goroutine that owns one encoding pipeline and
// returns the sending side of a buffered channel. Frames sent on the channel
// are timestamped in arrival order and pushed into the pipeline. Closing the
// channel ends the stream: the worker flushes the pipeline, finalizes the file
// and exits.
//
//	h, frames, err := streamenc.StartEncoding(ctx, "out.mp4", ports.NewVideoSettings(30, 640, 480))
//	if err != nil {
//		return err
//	}
//	for _, img := range images {
//		frames <- img
//	}
//	close(frames)
//	return h.Wait()
package streamenc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/user/streamenc/pkg/adapters/ffmpegencoder"
	"github.com/user/streamenc/pkg/adapters/smartencoder"
	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/gstpipeline"
	"github.com/user/streamenc/pkg/ports"
)

// ErrNoOutput is returned when the output path is empty.
var ErrNoOutput = errors.New("streamenc: output path is required")

// StartEncoding validates the settings, selects a backend and starts the
// worker. The returned channel has a capacity of the buffer size (default 3).
//
// Errors building the pipeline, pushing frames or finalizing the file are
// reported by Handle.Wait. After a failure the worker keeps receiving and
// discarding frames until the channel is closed, so senders never block on a
// dead run. Cancelling ctx, or calling Handle.Cancel, aborts the pipeline
// without finalizing the file.
func StartEncoding(ctx context.Context, outputPath string, settings ports.VideoSettings, opts ...Option) (*Handle, chan<- image.Image, error) {
	if outputPath == "" {
		return nil, nil, ErrNoOutput
	}
	if err := settings.Validate(); err != nil {
		return nil, nil, err
	}
	o := resolve(opts)
	settings = settings.Clone()

	enc := o.encoder
	backend := smartencoder.Backend("custom")
	if enc == nil {
		selected, info, err := smartencoder.New(o.backend, settings, smartencoder.Options{
			FFmpegPath:      o.ffmpegPath,
			AllowFallback:   o.allowFallback,
			BufferFrames:    o.bufferSize,
			FinalizeTimeout: o.finalizeTimeout,
			Logger:          o.logger,
		})
		if err != nil {
			return nil, nil, err
		}
		enc = selected
		backend = info.Backend
	}

	if dir := filepath.Dir(outputPath); dir != "." && dir != "" {
		if err := o.fs.MkdirAll(dir); err != nil {
			return nil, nil, fmt.Errorf("create output directory: %w", err)
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	h := &Handle{
		id:         uuid.NewString(),
		outputPath: outputPath,
		settings:   settings,
		backend:    backend,
		started:    time.Now(),
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	frames := make(chan image.Image, o.bufferSize)
	w := &worker{
		handle: h,
		enc:    enc,
		log:    o.logger.WithComponent("streamenc"),
		sink:   o.sink,
	}
	w.dumpDebug()
	go w.run(runCtx, frames)

	return h, frames, nil
}

type worker struct {
	handle *Handle
	enc    ports.VideoEncoder
	log    ports.Logger
	sink   ports.DebugSink
}

func (w *worker) run(ctx context.Context, frames <-chan image.Image) {
	h := w.handle
	w.log.Info("Encoding %s with %s backend (%s)", h.outputPath, string(h.backend), h.id)

	err := w.encode(ctx, frames)
	h.cancel()

	h.err = err
	h.finished = time.Now()
	if err != nil {
		w.log.Error("Encoding failed: %s", err.Error())
	} else {
		w.log.Info("Encoded %d frames to %s in %d ms", h.encoded.Load(), h.outputPath, h.finished.Sub(h.started).Milliseconds())
	}
	close(h.done)

	if err != nil {
		for range frames {
			h.received.Add(1)
			h.dropped.Add(1)
		}
	}
}

// encode drives the pipeline until the channel is closed or ctx is done.
func (w *worker) encode(ctx context.Context, frames <-chan image.Image) error {
	h := w.handle

	if err := w.enc.Begin(h.outputPath, h.settings); err != nil {
		return fmt.Errorf("start pipeline: %w", err)
	}

	// A push blocked on a full pipeline is released by Abort.
	stop := context.AfterFunc(ctx, func() {
		if err := w.enc.Abort(); err != nil {
			w.log.Warn("Abort failed: %s", err.Error())
		}
	})
	defer stop()

	var n uint64
	for {
		select {
		case <-ctx.Done():
			return w.aborted(ctx)

		case img, ok := <-frames:
			if !ok {
				return w.finalize(ctx, n)
			}
			h.received.Add(1)
			if img == nil {
				h.dropped.Add(1)
				w.log.Warn("Skipping nil frame")
				continue
			}

			if w.sink.Enabled() {
				if err := w.sink.SaveFrame(int(n), img); err != nil {
					w.log.Warn("Failed to save debug frame %d: %s", n, err.Error())
				}
			}

			if err := w.enc.EncodeFrame(img, frame.PTS(n, h.settings.Framerate)); err != nil {
				if ctx.Err() != nil {
					return w.aborted(ctx)
				}
				return multierr.Append(
					fmt.Errorf("encode frame %d: %w", n, err),
					w.enc.Abort(),
				)
			}
			n++
			h.encoded.Add(1)
		}
	}
}

func (w *worker) finalize(ctx context.Context, n uint64) error {
	if ctx.Err() != nil {
		return w.aborted(ctx)
	}
	w.log.Debug("Channel closed after %d frames, finalizing", n)
	err := w.enc.End()
	// A cancel that lands while End runs aborts the finishing pipeline.
	if ctx.Err() != nil {
		return w.aborted(ctx)
	}
	if err != nil {
		return multierr.Append(
			fmt.Errorf("finalize: %w", err),
			w.enc.Abort(),
		)
	}
	return nil
}

func (w *worker) aborted(ctx context.Context) error {
	w.log.Warn("Encoding cancelled, output not finalized")
	return multierr.Append(ctx.Err(), w.enc.Abort())
}

// dumpDebug writes the effective settings and backend command to the debug sink.
func (w *worker) dumpDebug() {
	if !w.sink.Enabled() {
		return
	}
	h := w.handle

	if data, err := yaml.Marshal(h.settings); err == nil {
		if err := w.sink.SaveSettings(data); err != nil {
			w.log.Warn("Failed to save debug settings: %s", err.Error())
		}
	}

	var description string
	switch h.backend {
	case smartencoder.BackendGStreamer:
		description = gstpipeline.Description(h.settings)
	case smartencoder.BackendFFmpeg:
		if args, err := ffmpegencoder.Args(h.outputPath, h.settings); err == nil {
			description = "ffmpeg " + strings.Join(args, " ")
		}
	}
	if description != "" {
		if err := w.sink.SavePipeline(description); err != nil {
			w.log.Warn("Failed to save debug pipeline: %s", err.Error())
		}
	}
}

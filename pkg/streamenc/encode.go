package streamenc

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/user/streamenc/pkg/ports"
)

// EncodeVideo pulls frames from source until io.EOF and encodes them into
// outputPath, blocking until the file is finalized.
func EncodeVideo(ctx context.Context, outputPath string, settings ports.VideoSettings, source ports.FrameSource, opts ...Option) (Result, error) {
	h, frames, err := StartEncoding(ctx, outputPath, settings, opts...)
	if err != nil {
		return Result{OutputPath: outputPath, Settings: settings, Err: err}, err
	}

	srcErr := feed(ctx, h, frames, source)
	close(frames)

	res := h.Result()
	if srcErr != nil {
		res.Err = srcErr
		return res, srcErr
	}
	return res, res.Err
}

// feed copies frames from source into the channel until the source is
// exhausted, the source fails, or the worker stops.
func feed(ctx context.Context, h *Handle, frames chan<- image.Image, source ports.FrameSource) error {
	for {
		img, err := source.Next(ctx)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				// The worker reports the cancellation.
				return nil
			}
			h.Cancel()
			return fmt.Errorf("read frame: %w", err)
		}

		select {
		case frames <- img:
		case <-h.Done():
			return nil
		}
	}
}

// EncodeFrames encodes a slice of frames into outputPath, blocking until the
// file is finalized.
func EncodeFrames(ctx context.Context, outputPath string, settings ports.VideoSettings, frames []image.Image, opts ...Option) (Result, error) {
	return EncodeVideo(ctx, outputPath, settings, NewSliceSource(frames), opts...)
}

package ports

import (
	"context"
	"image"
)

// FrameSource supplies frames to an encoding run.
type FrameSource interface {
	// Next blocks until the next frame is available. It returns io.EOF once
	// the stream is exhausted.
	Next(ctx context.Context) (image.Image, error)
}

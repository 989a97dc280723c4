package streamenc

import (
	"context"
	"image"
	"io"

	"github.com/user/streamenc/pkg/ports"
)

// ChannelSource reads frames from a channel until it is closed.
type ChannelSource struct {
	frames <-chan image.Image
}

// NewChannelSource creates a source over frames.
func NewChannelSource(frames <-chan image.Image) *ChannelSource {
	return &ChannelSource{frames: frames}
}

// Next returns the next frame, or io.EOF once the channel is closed.
func (s *ChannelSource) Next(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case img, ok := <-s.frames:
		if !ok {
			return nil, io.EOF
		}
		return img, nil
	}
}

// SliceSource yields the frames of a slice in order.
type SliceSource struct {
	frames []image.Image
	next   int
}

// NewSliceSource creates a source over frames.
func NewSliceSource(frames []image.Image) *SliceSource {
	return &SliceSource{frames: frames}
}

// Next returns the next frame, or io.EOF after the last one.
func (s *SliceSource) Next(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.next >= len(s.frames) {
		return nil, io.EOF
	}
	img := s.frames[s.next]
	s.next++
	return img, nil
}

// Len returns the number of frames not yet returned.
func (s *SliceSource) Len() int {
	return len(s.frames) - s.next
}

var (
	_ ports.FrameSource = (*ChannelSource)(nil)
	_ ports.FrameSource = (*SliceSource)(nil)
)

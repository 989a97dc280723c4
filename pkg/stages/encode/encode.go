// Package encode implements the video encoding stage.
package encode

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/streamenc/pkg/pipeline"
	"github.com/user/streamenc/pkg/ports"
	"github.com/user/streamenc/pkg/streamenc"
)

// Stage streams frames from a source into a video file.
type Stage struct {
	opts   []streamenc.Option
	logger ports.Logger
}

// NewStage creates a new encode stage. opts are passed to every run.
func NewStage(logger ports.Logger, opts ...streamenc.Option) *Stage {
	return &Stage{
		opts:   append([]streamenc.Option{streamenc.WithLogger(logger)}, opts...),
		logger: logger.WithComponent("encode"),
	}
}

// Execute encodes every frame of input.Source and waits for the file to be finalized.
func (s *Stage) Execute(ctx context.Context, input pipeline.EncodeInput) (pipeline.EncodeResult, error) {
	if input.Source == nil {
		return pipeline.EncodeResult{}, errors.New("no frame source")
	}

	res, err := streamenc.EncodeVideo(ctx, input.OutputPath, input.Settings, input.Source, s.opts...)
	result := pipeline.EncodeResult{
		ID:       res.ID,
		Backend:  string(res.Backend),
		Frames:   res.Frames,
		Duration: res.Duration,
		Elapsed:  res.Elapsed,
	}
	if err != nil {
		return result, fmt.Errorf("encode %s: %w", input.OutputPath, err)
	}
	if res.Frames == 0 {
		s.logger.Warn("No frames were encoded")
	}
	return result, nil
}

var _ pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult] = (*Stage)(nil)

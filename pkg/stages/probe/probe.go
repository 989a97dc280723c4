// Package probe implements the output inspection stage.
package probe

import (
	"context"
	"fmt"

	"github.com/user/streamenc/pkg/adapters/probe"
	"github.com/user/streamenc/pkg/pipeline"
	"github.com/user/streamenc/pkg/ports"
)

// Stage reads back the encoded file.
type Stage struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// NewStage creates a new probe stage.
func NewStage(fs ports.FileSystem, logger ports.Logger) *Stage {
	return &Stage{
		fs:     fs,
		logger: logger.WithComponent("probe"),
	}
}

// Execute reports the file size, plus track details for MP4 containers.
// A container that cannot be parsed is logged, not returned as an error.
func (s *Stage) Execute(ctx context.Context, input pipeline.ProbeInput) (pipeline.ProbeResult, error) {
	data, err := s.fs.ReadFile(input.Path)
	if err != nil {
		return pipeline.ProbeResult{}, fmt.Errorf("read output: %w", err)
	}
	result := pipeline.ProbeResult{FileSize: int64(len(data))}

	if !IsMP4(input.Muxer) {
		s.logger.Debug("Skipping track inspection for %s", input.Muxer)
		return result, nil
	}

	info, err := probe.ProbeBytes(data)
	if err != nil {
		s.logger.Warn("Failed to inspect %s: %s", input.Path, err.Error())
		return result, nil
	}
	s.logger.Info("Probed %s: %s %dx%d, %d samples, %d ms", input.Path, string(info.Codec), info.Width, info.Height, info.Samples, info.Duration.Milliseconds())
	result.Info = &info
	return result, nil
}

// IsMP4 reports whether the muxer element writes an ISO BMFF file.
func IsMP4(muxer string) bool {
	switch muxer {
	case "mp4mux", "qtmux", "isofmp4mux":
		return true
	}
	return false
}

var _ pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult] = (*Stage)(nil)

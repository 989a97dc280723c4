// Package orchestrator coordinates all pipeline stages.
package orchestrator

import (
	"context"
	"fmt"
	"time"

	"github.com/user/streamenc/pkg/adapters/probe"
	"github.com/user/streamenc/pkg/pipeline"
	"github.com/user/streamenc/pkg/ports"
)

// Config contains all configuration for the orchestrator.
type Config struct {
	// Input
	InputDir string
	Pattern  int // Test-pattern frame count, used when InputDir is empty
	Reverse  bool
	Repeat   int

	// Output
	OutputPath string
	Settings   ports.VideoSettings // Zero Width/Height take the size of the first frame

	// Inspection
	Probe bool
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		Repeat:   1,
		Settings: ports.NewVideoSettings(30, 640, 480),
		Probe:    true,
	}
}

// Orchestrator coordinates the execution of all pipeline stages.
type Orchestrator struct {
	sourceStage pipeline.Stage[pipeline.SourceInput, pipeline.SourceResult]
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult]
	probeStage  pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult]
	logger      ports.Logger
}

// New creates a new Orchestrator.
func New(
	sourceStage pipeline.Stage[pipeline.SourceInput, pipeline.SourceResult],
	encodeStage pipeline.Stage[pipeline.EncodeInput, pipeline.EncodeResult],
	probeStage pipeline.Stage[pipeline.ProbeInput, pipeline.ProbeResult],
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		sourceStage: sourceStage,
		encodeStage: encodeStage,
		probeStage:  probeStage,
		logger:      logger,
	}
}

// Run executes the complete pipeline.
func (o *Orchestrator) Run(ctx context.Context, config Config) (RunResult, error) {
	o.logger.Info("Starting pipeline")

	// 1. Resolve frames
	source, err := o.sourceStage.Execute(ctx, o.buildSourceInput(config))
	if err != nil {
		o.logger.Error("Failed to load frames: %s", err.Error())
		return RunResult{}, fmt.Errorf("source stage: %w", err)
	}

	settings := config.Settings.Clone()
	if settings.Width == 0 || settings.Height == 0 {
		settings.Width, settings.Height = source.Width, source.Height
	}

	// 2. Encode
	o.logger.Info("Encoding %d frames at %dx%d, %g fps with %s", source.Count, settings.Width, settings.Height, settings.Framerate, settings.Encoder)
	encoded, err := o.encodeStage.Execute(ctx, pipeline.EncodeInput{
		Source:     source.Source,
		OutputPath: config.OutputPath,
		Settings:   settings,
	})
	if err != nil {
		o.logger.Error("Failed to encode video: %s", err.Error())
		return RunResult{}, fmt.Errorf("encode stage: %w", err)
	}
	o.logger.Info("Video encoded: %d frames, %d ms", encoded.Frames, encoded.Duration.Milliseconds())

	result := RunResult{
		ID:           encoded.ID,
		Backend:      encoded.Backend,
		OutputPath:   config.OutputPath,
		Settings:     settings,
		SourceFrames: source.Count,
		Frames:       encoded.Frames,
		Duration:     encoded.Duration,
		Elapsed:      encoded.Elapsed,
	}

	// 3. Inspect the output (optional)
	if config.Probe {
		probed, err := o.probeStage.Execute(ctx, pipeline.ProbeInput{
			Path:  config.OutputPath,
			Muxer: settings.Muxer,
		})
		if err != nil {
			o.logger.Error("Failed to inspect output: %s", err.Error())
			return result, fmt.Errorf("probe stage: %w", err)
		}
		result.FileSize = probed.FileSize
		result.Probe = probed.Info
	}

	o.logger.Info("Pipeline completed successfully")
	return result, nil
}

func (o *Orchestrator) buildSourceInput(config Config) pipeline.SourceInput {
	input := pipeline.DefaultSourceInput()
	input.Dir = config.InputDir
	input.Pattern = config.Pattern
	input.Reverse = config.Reverse
	if config.Repeat > 0 {
		input.Repeat = config.Repeat
	}
	if config.Settings.Width > 0 && config.Settings.Height > 0 {
		input.Width, input.Height = config.Settings.Width, config.Settings.Height
	}
	return input
}

// RunResult contains the results of a pipeline run for summary generation.
type RunResult struct {
	ID         string
	Backend    string
	OutputPath string
	Settings   ports.VideoSettings

	// Frames
	SourceFrames int    // Frames the source yielded
	Frames       uint64 // Frames accepted by the encoder

	// Timing
	Duration time.Duration // Media duration
	Elapsed  time.Duration // Wall time of the encode stage

	// Output file
	FileSize int64
	Probe    *probe.Info // Nil unless probed as MP4
}

// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/user/streamenc/pkg/adapters/smartencoder"
	"github.com/user/streamenc/pkg/orchestrator"
	"github.com/user/streamenc/pkg/ports"
	"github.com/user/streamenc/pkg/streamenc"
	"gopkg.in/yaml.v3"
)

// Config represents the full configuration for streamenc.
type Config struct {
	// Input/Output
	Input      string `yaml:"input"`   // Image directory
	Pattern    int    `yaml:"pattern"` // Test-pattern frames, used when Input is empty
	Reverse    bool   `yaml:"reverse"`
	Repeat     int    `yaml:"repeat"`
	OutputPath string `yaml:"output"`

	// Video
	Video ports.VideoSettings `yaml:"video"`

	// Backend
	Backend         string        `yaml:"backend"`
	Fallback        bool          `yaml:"fallback"`
	FFmpegPath      string        `yaml:"ffmpeg_path"`
	BufferSize      int           `yaml:"buffer_size"`
	FinalizeTimeout time.Duration `yaml:"finalize_timeout"`

	// Reporting
	Probe    bool   `yaml:"probe"`
	Summary  string `yaml:"summary"`
	LogLevel string `yaml:"log_level"`

	// Debug
	Debug      bool   `yaml:"debug"`
	DebugDir   string `yaml:"debug_dir"`
	DebugEvery int    `yaml:"debug_every"` // Keep every n-th frame
}

// Defaults returns a Config with default values.
func Defaults() Config {
	return Config{
		Repeat:     1,
		OutputPath: "output.mp4",

		// Zero size takes the size of the first frame.
		Video: ports.NewVideoSettings(30, 0, 0),

		Backend:    string(smartencoder.BackendAuto),
		BufferSize: streamenc.DefaultBufferSize,

		Probe:    true,
		LogLevel: "info",

		DebugDir:   "./debug",
		DebugEvery: 1,
	}
}

// LoadFromFile loads configuration from a YAML file over the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks the fields that are not checked later by the stages.
func (c Config) Validate() error {
	if c.Input == "" && c.Pattern <= 0 {
		return fmt.Errorf("either an input directory or a pattern frame count is required")
	}
	if c.OutputPath == "" {
		return fmt.Errorf("output path is required")
	}
	if _, err := smartencoder.ParseBackend(c.Backend); err != nil {
		return err
	}
	if _, err := ports.ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ToOrchestratorConfig converts Config to orchestrator.Config.
func (c Config) ToOrchestratorConfig() orchestrator.Config {
	return orchestrator.Config{
		InputDir: c.Input,
		Pattern:  c.Pattern,
		Reverse:  c.Reverse,
		Repeat:   c.Repeat,

		OutputPath: c.OutputPath,
		Settings:   c.Video.Clone(),

		Probe: c.Probe,
	}
}

// EncodeOptions returns the streamenc options for the backend section.
func (c Config) EncodeOptions() ([]streamenc.Option, error) {
	backend, err := smartencoder.ParseBackend(c.Backend)
	if err != nil {
		return nil, err
	}
	return []streamenc.Option{
		streamenc.WithBackend(backend),
		streamenc.WithFallback(c.Fallback),
		streamenc.WithFFmpegPath(c.FFmpegPath),
		streamenc.WithBufferSize(c.BufferSize),
		streamenc.WithFinalizeTimeout(c.FinalizeTimeout),
	}, nil
}

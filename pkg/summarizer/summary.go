// Package summarizer provides summary generation for encoding runs.
package summarizer

import (
	"time"

	"github.com/user/streamenc/pkg/adapters/probe"
	"github.com/user/streamenc/pkg/ports"
)

// Summary contains all data collected during an encoding run.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// Run identity
	Run RunInfo

	// Encoding settings
	Settings Settings

	// Video output details
	Video VideoInfo

	// Read back from the output file (nil when not inspected)
	Probe *ProbeInfo
}

// RunInfo identifies the run.
type RunInfo struct {
	ID         string
	Backend    string
	Input      string // Image directory or "test pattern"
	OutputPath string
}

// Settings contains the encoding configuration.
type Settings struct {
	Framerate float64
	Width     int
	Height    int
	Encoder   string
	Muxer     string
	Format    string
	Caps      string
	Quality   int // CRF, 0 = backend default
	Bitrate   int // kbps, 0 = unset
}

// VideoInfo contains information about the output video.
type VideoInfo struct {
	SourceFrames int
	Frames       uint64
	DurationMs   int64
	ElapsedMs    int64
	FileSize     int64
}

// ProbeInfo contains what was read back from the container.
type ProbeInfo struct {
	Codec      string
	Width      int
	Height     int
	Samples    int
	DurationMs int64
	FrameRate  float64
	Fragmented bool
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithRun sets the run identity.
func (b *Builder) WithRun(id, backend, input, outputPath string) *Builder {
	b.summary.Run = RunInfo{
		ID:         id,
		Backend:    backend,
		Input:      input,
		OutputPath: outputPath,
	}
	return b
}

// WithSettings copies the effective video settings.
func (b *Builder) WithSettings(s ports.VideoSettings) *Builder {
	b.summary.Settings = Settings{
		Framerate: s.Framerate,
		Width:     s.Width,
		Height:    s.Height,
		Encoder:   s.Encoder,
		Muxer:     s.Muxer,
		Format:    s.Format.String(),
		Caps:      s.Caps,
		Quality:   s.Quality,
		Bitrate:   s.Bitrate,
	}
	return b
}

// WithVideo sets video output information.
func (b *Builder) WithVideo(video VideoInfo) *Builder {
	b.summary.Video = video
	return b
}

// WithProbe sets the inspection results. A nil info clears them.
func (b *Builder) WithProbe(info *probe.Info) *Builder {
	if info == nil {
		b.summary.Probe = nil
		return b
	}
	b.summary.Probe = &ProbeInfo{
		Codec:      string(info.Codec),
		Width:      info.Width,
		Height:     info.Height,
		Samples:    info.Samples,
		DurationMs: info.Duration.Milliseconds(),
		FrameRate:  info.FrameRate(),
		Fragmented: info.Fragmented,
	}
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}

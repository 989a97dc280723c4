package pipeline

import (
	"time"

	"github.com/user/streamenc/pkg/adapters/probe"
	"github.com/user/streamenc/pkg/ports"
)

// =============================================================================
// Source Stage Types
// =============================================================================

// SourceInput selects where frames come from. Dir wins over Pattern.
type SourceInput struct {
	Dir     string // Directory of still images
	Pattern int    // Number of generated test-pattern frames
	Width   int    // Test-pattern size
	Height  int
	Reverse bool // Play the image sequence backwards
	Repeat  int  // Number of passes over the image sequence (default: 1)
}

// DefaultSourceInput returns SourceInput with default values.
func DefaultSourceInput() SourceInput {
	return SourceInput{
		Width:  640,
		Height: 480,
		Repeat: 1,
	}
}

// SourceResult is a lazily decoded frame stream.
type SourceResult struct {
	Source ports.FrameSource
	Count  int // Frames the source will yield
	Width  int // Size of the first frame
	Height int
}

// =============================================================================
// Encode Stage Types
// =============================================================================

// EncodeInput contains parameters for video encoding.
type EncodeInput struct {
	Source     ports.FrameSource
	OutputPath string
	Settings   ports.VideoSettings
}

// EncodeResult describes the encoded file.
type EncodeResult struct {
	ID       string
	Backend  string
	Frames   uint64
	Duration time.Duration // Media duration
	Elapsed  time.Duration // Wall time
}

// =============================================================================
// Probe Stage Types
// =============================================================================

// ProbeInput names the file to inspect.
type ProbeInput struct {
	Path  string
	Muxer string // Muxer element that wrote the file
}

// ProbeResult contains what could be read back from the file.
type ProbeResult struct {
	FileSize int64
	Info     *probe.Info // Nil when the container is not MP4
}

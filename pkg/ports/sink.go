package ports

import (
	"image"
)

// DebugSink receives intermediate artifacts of a run for inspection.
type DebugSink interface {
	// Enabled reports whether the sink keeps anything.
	Enabled() bool

	// SaveSettings saves the effective settings of the run (YAML).
	SaveSettings(data []byte) error

	// SavePipeline saves the pipeline description handed to the backend.
	SavePipeline(description string) error

	// SaveFrame saves a frame as it was handed to the encoder.
	SaveFrame(index int, img image.Image) error
}

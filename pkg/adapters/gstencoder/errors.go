package gstencoder

import (
	"fmt"

	"github.com/user/streamenc/pkg/gstpipeline"
	"github.com/user/streamenc/pkg/ports"
)

// PipelineError is an error reported by GStreamer, tagged with its category.
type PipelineError struct {
	Source   string
	Message  string
	Debug    string
	Category gstpipeline.ErrorCategory
}

func (e *PipelineError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("gstreamer [%s]: %s", e.Category, e.Message)
	}
	return fmt.Sprintf("gstreamer [%s] %s: %s", e.Category, e.Source, e.Message)
}

// Unwrap lets errors.Is match the category sentinel.
func (e *PipelineError) Unwrap() error {
	return e.Category.Err()
}

func pipelineError(source, message, debug string) error {
	return &PipelineError{
		Source:   source,
		Message:  message,
		Debug:    debug,
		Category: gstpipeline.Classify(message, debug),
	}
}

// IsAvailable reports whether the GStreamer backend can encode with these settings.
func IsAvailable(settings ports.VideoSettings) bool {
	return CheckAvailable(settings) == nil
}

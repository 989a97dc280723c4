package gstpipeline

import (
	"errors"
	"strings"
)

// ErrorCategory is the classification of a pipeline error.
type ErrorCategory int

const (
	// ErrCategoryMissingPlugin means an element factory could not be found.
	ErrCategoryMissingPlugin ErrorCategory = iota
	// ErrCategoryNegotiation means caps could not be agreed between elements.
	ErrCategoryNegotiation
	// ErrCategoryResource means the sink could not open or write the output.
	ErrCategoryResource
	// ErrCategoryStream means data flow failed inside an element (encoder or muxer).
	ErrCategoryStream
	// ErrCategoryUnknown means no heuristic matched.
	ErrCategoryUnknown
)

// Sentinel errors matching each category, for errors.Is.
var (
	ErrMissingPlugin = errors.New("gstreamer: missing element")
	ErrNegotiation   = errors.New("gstreamer: caps negotiation failed")
	ErrResource      = errors.New("gstreamer: resource error")
	ErrStream        = errors.New("gstreamer: stream error")
	ErrPipeline      = errors.New("gstreamer: pipeline error")
)

// String returns the category name.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryMissingPlugin:
		return "missing-plugin"
	case ErrCategoryNegotiation:
		return "negotiation"
	case ErrCategoryResource:
		return "resource"
	case ErrCategoryStream:
		return "stream"
	default:
		return "unknown"
	}
}

// Err returns the sentinel error of the category.
func (c ErrorCategory) Err() error {
	switch c {
	case ErrCategoryMissingPlugin:
		return ErrMissingPlugin
	case ErrCategoryNegotiation:
		return ErrNegotiation
	case ErrCategoryResource:
		return ErrResource
	case ErrCategoryStream:
		return ErrStream
	default:
		return ErrPipeline
	}
}

var categoryKeywords = []struct {
	category ErrorCategory
	keywords []string
}{
	// Most specific first.
	{ErrCategoryMissingPlugin, []string{"no element", "no such element", "missing plugin", "could not find", "erroneous pipeline"}},
	{ErrCategoryNegotiation, []string{"not-negotiated", "not negotiated", "negotiation", "caps", "could not link"}},
	{ErrCategoryResource, []string{"could not open", "could not write", "no space left", "permission denied", "resource", "file"}},
	{ErrCategoryStream, []string{"internal data stream error", "streaming stopped", "encode", "mux", "stream"}},
}

// Classify categorises a pipeline error from its message and debug string.
// go-gst does not expose the GError domain, so matching is keyword based.
func Classify(message, debug string) ErrorCategory {
	text := strings.ToLower(message + " " + debug)
	for _, c := range categoryKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(text, kw) {
				return c.category
			}
		}
	}
	return ErrCategoryUnknown
}

package ports

import (
	"errors"
	"fmt"

	"github.com/user/streamenc/pkg/frame"
)

// Defaults applied by NewVideoSettings.
const (
	DefaultEncoder = "x264enc"
	DefaultMuxer   = "mp4mux"
	DefaultCaps    = "video/x-h264,profile=baseline"
	DefaultFormat  = frame.FormatBGRx
)

// ErrInvalidSettings is returned by VideoSettings.Validate.
var ErrInvalidSettings = errors.New("invalid video settings")

// VideoSettings configures one encoding run.
type VideoSettings struct {
	Framerate float64 `yaml:"framerate"` // Frames per second
	Width     int     `yaml:"width"`     // Width of the video in pixels
	Height    int     `yaml:"height"`    // Height of the video in pixels

	Encoder string       `yaml:"encoder"` // Encoder element, e.g. x264enc
	Muxer   string       `yaml:"muxer"`   // Muxer element, e.g. mp4mux
	Format  frame.Format `yaml:"format"`  // Pixel format of frames fed into the pipeline
	Caps    string       `yaml:"caps"`    // Restriction caps placed after the encoder ("" = none)

	EncoderSettings map[string]string `yaml:"encoder_settings,omitempty"` // Properties set on the encoder element
	MuxerSettings   map[string]string `yaml:"muxer_settings,omitempty"`   // Properties set on the muxer element

	// Rate control for backends that take flags rather than element properties.
	Quality int `yaml:"quality,omitempty"` // CRF 0-51, 0 = backend default
	Bitrate int `yaml:"bitrate,omitempty"` // Target bitrate in kbps, 0 = unset
}

// NewVideoSettings returns settings for an H.264 MP4 with the given geometry.
func NewVideoSettings(framerate float64, width, height int) VideoSettings {
	return VideoSettings{
		Framerate:       framerate,
		Width:           width,
		Height:          height,
		Encoder:         DefaultEncoder,
		Muxer:           DefaultMuxer,
		Format:          DefaultFormat,
		Caps:            DefaultCaps,
		EncoderSettings: map[string]string{},
		MuxerSettings:   map[string]string{},
	}
}

// Validate checks that the settings can describe a pipeline.
func (s VideoSettings) Validate() error {
	switch {
	case s.Framerate <= 0:
		return fmt.Errorf("%w: framerate must be positive, got %g", ErrInvalidSettings, s.Framerate)
	case s.Width <= 0 || s.Height <= 0:
		return fmt.Errorf("%w: size must be positive, got %dx%d", ErrInvalidSettings, s.Width, s.Height)
	case s.Encoder == "":
		return fmt.Errorf("%w: encoder is required", ErrInvalidSettings)
	case s.Muxer == "":
		return fmt.Errorf("%w: muxer is required", ErrInvalidSettings)
	case !s.Format.Valid():
		return fmt.Errorf("%w: unknown pixel format %d", ErrInvalidSettings, int(s.Format))
	case s.Quality < 0 || s.Quality > 51:
		return fmt.Errorf("%w: quality must be 0-51, got %d", ErrInvalidSettings, s.Quality)
	case s.Bitrate < 0:
		return fmt.Errorf("%w: bitrate must not be negative, got %d", ErrInvalidSettings, s.Bitrate)
	}
	return nil
}

// FrameSize returns the size in bytes of one packed input frame.
func (s VideoSettings) FrameSize() int {
	return frame.Size(s.Format, s.Width, s.Height)
}

// Clone returns a copy that does not share the property maps.
func (s VideoSettings) Clone() VideoSettings {
	c := s
	c.EncoderSettings = cloneMap(s.EncoderSettings)
	c.MuxerSettings = cloneMap(s.MuxerSettings)
	return c
}

func cloneMap(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

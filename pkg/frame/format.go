// Package frame converts images into the packed raw layouts fed to encoding pipelines.
package frame

import (
	"fmt"
	"strings"
)

// Format is a packed pixel layout understood by the encoding backends.
type Format int

const (
	// FormatBGRx is 32-bit BGR with an unused padding byte.
	FormatBGRx Format = iota
	// FormatBGRA is 32-bit BGR with alpha.
	FormatBGRA
	// FormatRGBx is 32-bit RGB with an unused padding byte.
	FormatRGBx
	// FormatRGBA is 32-bit RGB with alpha.
	FormatRGBA
	// FormatRGB is 24-bit RGB.
	FormatRGB
	// FormatBGR is 24-bit BGR.
	FormatBGR
)

type formatInfo struct {
	gst    string
	ffmpeg string
	bpp    int
	// byte offsets of R, G, B, A within a pixel; -1 when absent
	r, g, b, a int
	pad        bool
}

var formats = map[Format]formatInfo{
	FormatBGRx: {gst: "BGRx", ffmpeg: "bgr0", bpp: 4, r: 2, g: 1, b: 0, a: 3, pad: true},
	FormatBGRA: {gst: "BGRA", ffmpeg: "bgra", bpp: 4, r: 2, g: 1, b: 0, a: 3},
	FormatRGBx: {gst: "RGBx", ffmpeg: "rgb0", bpp: 4, r: 0, g: 1, b: 2, a: 3, pad: true},
	FormatRGBA: {gst: "RGBA", ffmpeg: "rgba", bpp: 4, r: 0, g: 1, b: 2, a: 3},
	FormatRGB:  {gst: "RGB", ffmpeg: "rgb24", bpp: 3, r: 0, g: 1, b: 2, a: -1},
	FormatBGR:  {gst: "BGR", ffmpeg: "bgr24", bpp: 3, r: 2, g: 1, b: 0, a: -1},
}

// ParseFormat parses a format name. Both GStreamer ("BGRx") and ffmpeg
// ("bgr0") spellings are accepted, case-insensitively.
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for f, info := range formats {
		if name == strings.ToLower(info.gst) || name == info.ffmpeg {
			return f, nil
		}
	}
	return 0, fmt.Errorf("frame: unknown pixel format %q", s)
}

// Valid reports whether f is a known format.
func (f Format) Valid() bool {
	_, ok := formats[f]
	return ok
}

// String returns the GStreamer name of the format.
func (f Format) String() string {
	if info, ok := formats[f]; ok {
		return info.gst
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// FFmpegName returns the ffmpeg pix_fmt name of the format.
func (f Format) FFmpegName() string {
	return formats[f].ffmpeg
}

// BytesPerPixel returns the size of one packed pixel.
func (f Format) BytesPerPixel() int {
	return formats[f].bpp
}

// MarshalText implements encoding.TextMarshaler.
func (f Format) MarshalText() ([]byte, error) {
	if !f.Valid() {
		return nil, fmt.Errorf("frame: invalid pixel format %d", int(f))
	}
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Format) UnmarshalText(text []byte) error {
	parsed, err := ParseFormat(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Size returns the number of bytes of one packed frame.
func Size(f Format, width, height int) int {
	return f.BytesPerPixel() * width * height
}

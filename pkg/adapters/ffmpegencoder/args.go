package ffmpegencoder

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/ports"
)

// GStreamer encoder element -> ffmpeg codec.
var codecs = map[string]string{
	"x264enc":     "libx264",
	"x265enc":     "libx265",
	"vp8enc":      "libvpx",
	"vp9enc":      "libvpx-vp9",
	"av1enc":      "libaom-av1",
	"aomenc":      "libaom-av1",
	"openh264enc": "libopenh264",
}

// GStreamer muxer element -> ffmpeg output format.
var containers = map[string]string{
	"mp4mux":      "mp4",
	"qtmux":       "mov",
	"matroskamux": "matroska",
	"webmmux":     "webm",
	"avimux":      "avi",
}

// Codec returns the ffmpeg codec for a GStreamer encoder element.
func Codec(element string) (string, error) {
	c, ok := codecs[element]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedElement, element)
	}
	return c, nil
}

// Container returns the ffmpeg output format for a GStreamer muxer element.
func Container(element string) (string, error) {
	c, ok := containers[element]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedElement, element)
	}
	return c, nil
}

// Supports reports whether both elements of the settings can be mapped.
func Supports(s ports.VideoSettings) bool {
	_, cerr := Codec(s.Encoder)
	_, merr := Container(s.Muxer)
	return cerr == nil && merr == nil
}

// Args builds the ffmpeg command line reading raw frames from stdin and
// writing the container to outputPath.
func Args(outputPath string, s ports.VideoSettings) ([]string, error) {
	codec, err := Codec(s.Encoder)
	if err != nil {
		return nil, err
	}
	format, err := Container(s.Muxer)
	if err != nil {
		return nil, err
	}

	num, den := frame.Fraction(s.Framerate)
	args := []string{
		"-y",
		"-hide_banner",
		"-loglevel", "error",
		"-f", "rawvideo",
		"-pix_fmt", s.Format.FFmpegName(),
		"-s", fmt.Sprintf("%dx%d", s.Width, s.Height),
		"-r", fmt.Sprintf("%d/%d", num, den),
		"-i", "pipe:0",
		"-c:v", codec,
		"-pix_fmt", "yuv420p",
	}

	if s.Quality > 0 {
		q := s.Quality
		if q > 51 {
			q = 51
		}
		args = append(args, "-crf", strconv.Itoa(q))
	}
	if s.Bitrate > 0 {
		args = append(args, "-b:v", fmt.Sprintf("%dk", s.Bitrate))
	}
	if profile := capsField(s.Caps, "profile"); profile != "" && (codec == "libx264" || codec == "libx265") {
		args = append(args, "-profile:v", profile)
	}
	if format == "mp4" || format == "mov" {
		args = append(args, "-movflags", "+faststart")
	}

	return append(args, "-f", format, outputPath), nil
}

// capsField returns the value of key in a caps string such as
// "video/x-h264,profile=baseline", or "" when absent.
func capsField(caps, key string) string {
	fields := strings.Split(caps, ",")
	for _, f := range fields[1:] {
		k, v, ok := strings.Cut(strings.TrimSpace(f), "=")
		if !ok || strings.TrimSpace(k) != key {
			continue
		}
		v = strings.TrimSpace(v)
		// Strip an optional (type) prefix such as (string)baseline.
		if strings.HasPrefix(v, "(") {
			if i := strings.Index(v, ")"); i >= 0 {
				v = v[i+1:]
			}
		}
		return strings.Trim(v, `"`)
	}
	return ""
}

// SupportedEncoders lists the encoder elements the ffmpeg backend understands.
func SupportedEncoders() []string {
	names := make([]string, 0, len(codecs))
	for k := range codecs {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Package gstpipeline builds the GStreamer pipeline description for an
// encoding run and classifies the errors the pipeline reports.
//
// Pipeline structure:
//
//	appsrc name=source format=time → videoconvert → <encoder> → <caps> → <muxer> → filesink name=sink
//
// The package has no cgo dependency so the description can be built and
// inspected without GStreamer installed.
package gstpipeline

import (
	"fmt"
	"sort"
	"strings"

	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/ports"
)

// Element names looked up after parsing the description.
const (
	SourceName  = "source"
	EncoderName = "encoder"
	MuxerName   = "muxer"
	SinkName    = "sink"
)

// Description returns the gst-launch description for the settings.
// The output location is not part of the description; it is set on the
// sink element after parsing so arbitrary paths need no escaping.
func Description(s ports.VideoSettings) string {
	parts := []string{
		"appsrc name=" + SourceName + " format=time",
		"videoconvert",
		element(s.Encoder, EncoderName, s.EncoderSettings),
	}
	if caps := strings.TrimSpace(s.Caps); caps != "" {
		parts = append(parts, caps)
	}
	parts = append(parts,
		element(s.Muxer, MuxerName, s.MuxerSettings),
		"filesink name="+SinkName,
	)
	return strings.Join(parts, " ! ")
}

func element(factory, name string, props map[string]string) string {
	var b strings.Builder
	b.WriteString(factory)
	b.WriteString(" name=")
	b.WriteString(name)

	keys := make([]string, 0, len(props))
	for k := range props {
		if k == "name" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		b.WriteByte(' ')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(quote(props[k]))
	}
	return b.String()
}

// quote wraps values that gst-launch would otherwise split or misparse.
func quote(v string) string {
	if v != "" && !strings.ContainsAny(v, " \t\n\"'!") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}

// RawCaps returns the caps of the raw frames pushed into appsrc.
func RawCaps(s ports.VideoSettings) string {
	num, den := frame.Fraction(s.Framerate)
	return fmt.Sprintf("video/x-raw,format=%s,width=%d,height=%d,framerate=%d/%d",
		s.Format, s.Width, s.Height, num, den)
}

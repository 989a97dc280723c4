package gstpipeline

import (
	"errors"
	"testing"

	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/ports"
)

func TestDescription_Defaults(t *testing.T) {
	s := ports.NewVideoSettings(30, 300, 300)

	got := Description(s)
	want := "appsrc name=source format=time ! videoconvert ! x264enc name=encoder ! " +
		"video/x-h264,profile=baseline ! mp4mux name=muxer ! filesink name=sink"
	if got != want {
		t.Errorf("unexpected description:\n got: %s\nwant: %s", got, want)
	}
}

func TestDescription_PropertiesSortedAndQuoted(t *testing.T) {
	s := ports.NewVideoSettings(30, 300, 300)
	s.EncoderSettings = map[string]string{
		"tune":          "zerolatency",
		"speed-preset":  "ultrafast",
		"option-string": "keyint=60 bframes=0",
		"name":          "ignored",
	}
	s.MuxerSettings = map[string]string{"faststart": "true"}

	got := Description(s)
	want := "appsrc name=source format=time ! videoconvert ! " +
		`x264enc name=encoder option-string="keyint=60 bframes=0" speed-preset=ultrafast tune=zerolatency ! ` +
		"video/x-h264,profile=baseline ! mp4mux name=muxer faststart=true ! filesink name=sink"
	if got != want {
		t.Errorf("unexpected description:\n got: %s\nwant: %s", got, want)
	}
}

func TestDescription_NoCaps(t *testing.T) {
	s := ports.NewVideoSettings(25, 64, 64)
	s.Encoder = "vp8enc"
	s.Muxer = "webmmux"
	s.Caps = "  "

	got := Description(s)
	want := "appsrc name=source format=time ! videoconvert ! vp8enc name=encoder ! webmmux name=muxer ! filesink name=sink"
	if got != want {
		t.Errorf("unexpected description:\n got: %s\nwant: %s", got, want)
	}
}

func TestQuote(t *testing.T) {
	cases := map[string]string{
		"plain":    "plain",
		"":         `""`,
		"a b":      `"a b"`,
		`say "hi"`: `"say \"hi\""`,
		"x!y":      `"x!y"`,
	}
	for in, want := range cases {
		if got := quote(in); got != want {
			t.Errorf("quote(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestRawCaps(t *testing.T) {
	s := ports.NewVideoSettings(30, 320, 240)
	s.Format = frame.FormatRGBA

	got := RawCaps(s)
	want := "video/x-raw,format=RGBA,width=320,height=240,framerate=30/1"
	if got != want {
		t.Errorf("got %s, want %s", got, want)
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		message, debug string
		want           ErrorCategory
	}{
		{"no element \"x265enc\"", "", ErrCategoryMissingPlugin},
		{"Internal data stream error.", "streaming stopped, reason not-negotiated (-4)", ErrCategoryNegotiation},
		{"Could not open file \"/nope/out.mp4\" for writing.", "system error: Permission denied", ErrCategoryResource},
		{"Internal data stream error.", "streaming stopped, reason error (-5)", ErrCategoryStream},
		{"something odd", "", ErrCategoryUnknown},
	}
	for _, tc := range cases {
		if got := Classify(tc.message, tc.debug); got != tc.want {
			t.Errorf("Classify(%q, %q) = %v, want %v", tc.message, tc.debug, got, tc.want)
		}
	}
}

func TestErrorCategory_Err(t *testing.T) {
	if !errors.Is(ErrCategoryNegotiation.Err(), ErrNegotiation) {
		t.Error("negotiation category should map to ErrNegotiation")
	}
	if !errors.Is(ErrCategoryUnknown.Err(), ErrPipeline) {
		t.Error("unknown category should map to ErrPipeline")
	}
	if ErrCategoryResource.String() != "resource" {
		t.Errorf("unexpected name %s", ErrCategoryResource)
	}
}

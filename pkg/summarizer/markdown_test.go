package summarizer

import (
	"strings"
	"testing"
	"time"

	"github.com/user/streamenc/pkg/mocks"
)

func fullSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Run: RunInfo{
			ID:         "0b8e",
			Backend:    "gstreamer",
			Input:      "./frames",
			OutputPath: "out/video.mp4",
		},
		Settings: Settings{
			Framerate: 30,
			Width:     640,
			Height:    480,
			Encoder:   "x264enc",
			Muxer:     "mp4mux",
			Format:    "BGRx",
			Caps:      "video/x-h264,profile=baseline",
		},
		Video: VideoInfo{
			SourceFrames: 90,
			Frames:       90,
			DurationMs:   3000,
			ElapsedMs:    812,
			FileSize:     1024 * 1024,
		},
		Probe: &ProbeInfo{
			Codec:      "h264",
			Width:      640,
			Height:     480,
			Samples:    90,
			DurationMs: 3000,
			FrameRate:  30,
		},
	}
}

func TestMarkdownFormatter_Format_Basic(t *testing.T) {
	result := NewMarkdownFormatter().Format(fullSummary())

	checks := []string{
		"# Encoding Summary",
		"out/video.mp4",
		"gstreamer",
		"30 fps",
		"640x480",
		"x264enc",
		"mp4mux",
		"BGRx",
		"video/x-h264,profile=baseline",
		"3000 ms",
		"1.00 MB",
		"## Container",
		"h264",
		"30.00 fps",
		"2024-01-15 10:30:00 UTC",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q", check)
		}
	}

	if strings.Contains(result, "CRF") || strings.Contains(result, "kbps") {
		t.Error("rate control rows should be omitted when unset")
	}
}

func TestMarkdownFormatter_RateControl(t *testing.T) {
	s := fullSummary()
	s.Settings.Quality = 28
	s.Settings.Bitrate = 2500

	result := NewMarkdownFormatter().Format(s)
	if !strings.Contains(result, "CRF 28") {
		t.Error("expected CRF row")
	}
	if !strings.Contains(result, "2500 kbps") {
		t.Error("expected bitrate row")
	}
}

func TestMarkdownFormatter_NoProbe(t *testing.T) {
	s := fullSummary()
	s.Probe = nil
	s.Settings.Caps = ""

	result := NewMarkdownFormatter().Format(s)
	if strings.Contains(result, "## Container") {
		t.Error("container section should be omitted without probe info")
	}
	if !strings.Contains(result, "| Caps | - |") {
		t.Error("expected empty caps to render as a dash")
	}
}

func TestMarkdownFormatter_WithTranslator(t *testing.T) {
	dict := map[string]string{
		"Encoding Summary": "エンコードサマリー",
		"Settings":         "設定",
		"Encoder":          "エンコーダー",
	}
	translator := func(s string) string {
		if v, ok := dict[s]; ok {
			return v
		}
		return s
	}

	result := NewMarkdownFormatter(WithTranslator(translator)).Format(fullSummary())

	for _, want := range []string{"# エンコードサマリー", "## 設定", "| エンコーダー | x264enc |"} {
		if !strings.Contains(result, want) {
			t.Errorf("expected translated %q", want)
		}
	}
}

func TestMarkdownFormatter_WithVersion(t *testing.T) {
	result := NewMarkdownFormatter(WithVersion("v1.2.0")).Format(fullSummary())

	if !strings.Contains(result, "v1.2.0") {
		t.Error("expected output to contain version 'v1.2.0'")
	}
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	s := fullSummary()
	s.Settings.Caps = "a|b"

	result := NewMarkdownFormatter().Format(s)
	if !strings.Contains(result, `a\|b`) {
		t.Error("expected pipe to be escaped")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{100, "100 B"},
		{1024, "1.00 KB"},
		{1536, "1.50 KB"},
		{1024 * 1024, "1.00 MB"},
		{1024 * 1024 * 1024, "1.00 GB"},
		{1536 * 1024 * 1024, "1.50 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := formatBytes(tt.bytes)
			if got != tt.want {
				t.Errorf("formatBytes(%d) = %q, want %q", tt.bytes, got, tt.want)
			}
		})
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "summary of " + s.Run.ID }), fs)

	if err := w.Write("reports/run.md", &Summary{Run: RunInfo{ID: "abc"}}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	if ok, _ := fs.Exists("reports"); !ok {
		t.Error("expected parent directory to be created")
	}
	data, ok := fs.GetFile("reports/run.md")
	if !ok {
		t.Fatal("expected summary file")
	}
	if string(data) != "summary of abc" {
		t.Errorf("unexpected content %q", data)
	}
}

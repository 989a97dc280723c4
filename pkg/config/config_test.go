package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/user/streamenc/pkg/frame"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.Video.Framerate != 30 || cfg.Video.Encoder != "x264enc" || cfg.Video.Muxer != "mp4mux" {
		t.Errorf("unexpected video defaults: %+v", cfg.Video)
	}
	if cfg.BufferSize != 3 {
		t.Errorf("expected buffer size 3, got %d", cfg.BufferSize)
	}
	if cfg.Backend != "auto" {
		t.Errorf("expected auto backend, got %s", cfg.Backend)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "streamenc.yaml")
	yamlData := `
input: ./frames
reverse: true
repeat: 2
output: out/video.webm
backend: ffmpeg
finalize_timeout: 45s
video:
  framerate: 25
  width: 1280
  height: 720
  encoder: vp9enc
  muxer: webmmux
  format: RGBA
  caps: ""
  encoder_settings:
    deadline: "1"
`
	if err := os.WriteFile(path, []byte(yamlData), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile failed: %v", err)
	}

	if cfg.Input != "./frames" || !cfg.Reverse || cfg.Repeat != 2 {
		t.Errorf("unexpected input section: %+v", cfg)
	}
	if cfg.Video.Framerate != 25 || cfg.Video.Width != 1280 || cfg.Video.Height != 720 {
		t.Errorf("unexpected geometry: %+v", cfg.Video)
	}
	if cfg.Video.Encoder != "vp9enc" || cfg.Video.Muxer != "webmmux" || cfg.Video.Caps != "" {
		t.Errorf("unexpected elements: %+v", cfg.Video)
	}
	if cfg.Video.Format != frame.FormatRGBA {
		t.Errorf("expected RGBA, got %s", cfg.Video.Format)
	}
	if cfg.Video.EncoderSettings["deadline"] != "1" {
		t.Errorf("expected encoder setting deadline=1, got %v", cfg.Video.EncoderSettings)
	}
	if cfg.FinalizeTimeout != 45*time.Second {
		t.Errorf("expected 45s timeout, got %v", cfg.FinalizeTimeout)
	}
	// Untouched fields keep defaults.
	if cfg.BufferSize != 3 || !cfg.Probe {
		t.Errorf("expected defaults to survive, got buffer=%d probe=%v", cfg.BufferSize, cfg.Probe)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected valid config, got %v", err)
	}
}

func TestLoadFromFile_Errors(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	os.WriteFile(path, []byte("video: [unclosed"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected parse error")
	}

	path = filepath.Join(t.TempDir(), "format.yaml")
	os.WriteFile(path, []byte("video:\n  format: YUV9\n"), 0644)
	if _, err := LoadFromFile(path); err == nil {
		t.Error("expected error for unknown pixel format")
	}
}

func TestValidate(t *testing.T) {
	cfg := Defaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error without input or pattern")
	}

	cfg.Pattern = 10
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	cfg.Backend = "quicktime"
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

func TestToOrchestratorConfig(t *testing.T) {
	cfg := Defaults()
	cfg.Input = "frames"
	cfg.Repeat = 3
	cfg.Video.EncoderSettings["speed-preset"] = "fast"

	oc := cfg.ToOrchestratorConfig()
	if oc.InputDir != "frames" || oc.Repeat != 3 || oc.OutputPath != "output.mp4" || !oc.Probe {
		t.Errorf("unexpected orchestrator config: %+v", oc)
	}

	oc.Settings.EncoderSettings["speed-preset"] = "slow"
	if cfg.Video.EncoderSettings["speed-preset"] != "fast" {
		t.Error("orchestrator settings should not share maps with the config")
	}
}

func TestEncodeOptions(t *testing.T) {
	cfg := Defaults()
	opts, err := cfg.EncodeOptions()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(opts) != 5 {
		t.Errorf("expected 5 options, got %d", len(opts))
	}

	cfg.Backend = "nope"
	if _, err := cfg.EncodeOptions(); err == nil {
		t.Error("expected error for unknown backend")
	}
}

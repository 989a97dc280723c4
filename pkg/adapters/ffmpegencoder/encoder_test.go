package ffmpegencoder

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/user/streamenc/pkg/frame"
	"github.com/user/streamenc/pkg/ports"
)

// createTestImage creates a simple test image with gradient
func createTestImage(width, height int, frameNum int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r := uint8((x*255/width + frameNum*10) % 256)
			g := uint8((y*255/height + frameNum*5) % 256)
			b := uint8((x + y + frameNum*3) % 256)
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}
	return img
}

func TestEncoder_NotInitialized(t *testing.T) {
	enc := New(Options{})
	if err := enc.EncodeFrame(createTestImage(4, 4, 0), 0); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("EncodeFrame: expected ErrNotInitialized, got %v", err)
	}
	if err := enc.End(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("End: expected ErrNotInitialized, got %v", err)
	}
	if err := enc.Abort(); err != nil {
		t.Errorf("Abort before Begin should be a no-op, got %v", err)
	}
}

func TestEncoder_MP4(t *testing.T) {
	if !IsAvailable("") {
		t.Skip("ffmpeg not available")
	}

	out := filepath.Join(t.TempDir(), "out.mp4")
	settings := ports.NewVideoSettings(30, 320, 240)
	enc := New(Options{})

	if err := enc.Begin(out, settings); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	for i := 0; i < 30; i++ {
		if err := enc.EncodeFrame(createTestImage(320, 240, i), frame.PTS(uint64(i), 30)); err != nil {
			t.Fatalf("EncodeFrame failed at frame %d: %v", i, err)
		}
	}
	if err := enc.End(); err != nil {
		t.Fatalf("End failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) < 8 {
		t.Fatal("Output too small")
	}
	if string(data[4:8]) != "ftyp" {
		t.Errorf("Expected ftyp box, got: %s", string(data[4:8]))
	}
}

func TestEncoder_Abort(t *testing.T) {
	if !IsAvailable("") {
		t.Skip("ffmpeg not available")
	}

	enc := New(Options{})
	if err := enc.Begin(filepath.Join(t.TempDir(), "out.mp4"), ports.NewVideoSettings(30, 64, 64)); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	if err := enc.EncodeFrame(createTestImage(64, 64, 0), 0); err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	if err := enc.Abort(); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}
	if err := enc.End(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("End after Abort: expected ErrNotInitialized, got %v", err)
	}
}

func TestEncoder_AbortDuringEnd(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a shell script standing in for ffmpeg")
	}

	// A stand-in that ignores EOF on stdin keeps End waiting.
	dir := t.TempDir()
	stub := filepath.Join(dir, "ffmpeg")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexec sleep 30\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	enc := New(Options{FFmpegPath: stub})
	if err := enc.Begin(filepath.Join(dir, "out.mp4"), ports.NewVideoSettings(30, 16, 16)); err != nil {
		t.Fatalf("Begin failed: %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- enc.End() }()

	deadline := time.Now().Add(2 * time.Second)
	for !isEnding(enc) {
		if time.Now().After(deadline) {
			t.Fatal("End never started waiting")
		}
		time.Sleep(time.Millisecond)
	}

	if err := enc.Abort(); err != nil {
		t.Fatalf("Abort failed: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, ErrAborted) {
			t.Errorf("End: expected ErrAborted, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("End still blocked after Abort")
	}
}

func isEnding(enc *Encoder) bool {
	enc.mu.Lock()
	defer enc.mu.Unlock()
	return enc.endCancel != nil
}

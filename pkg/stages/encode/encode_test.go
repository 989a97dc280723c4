package encode

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/user/streamenc/pkg/adapters/logger"
	"github.com/user/streamenc/pkg/mocks"
	"github.com/user/streamenc/pkg/pipeline"
	"github.com/user/streamenc/pkg/ports"
	"github.com/user/streamenc/pkg/streamenc"
)

func testFrames(n int) []image.Image {
	frames := make([]image.Image, n)
	for i := range frames {
		img := image.NewRGBA(image.Rect(0, 0, 16, 16))
		img.Set(0, 0, color.RGBA{R: uint8(i), A: 255})
		frames[i] = img
	}
	return frames
}

func TestStage_Execute(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{}
	stage := NewStage(logger.NewNoop(),
		streamenc.WithEncoder(mockEncoder),
		streamenc.WithFileSystem(mocks.NewFileSystem()),
	)

	input := pipeline.EncodeInput{
		Source:     streamenc.NewSliceSource(testFrames(3)),
		OutputPath: "out/video.mp4",
		Settings:   ports.NewVideoSettings(30, 16, 16),
	}

	result, err := stage.Execute(context.Background(), input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !mockEncoder.Ended() {
		t.Error("expected End to be called")
	}
	if mockEncoder.OutputPath != "out/video.mp4" {
		t.Errorf("expected output path out/video.mp4, got %s", mockEncoder.OutputPath)
	}
	if result.Frames != 3 {
		t.Errorf("expected 3 frames, got %d", result.Frames)
	}
	if result.Duration != 100*time.Millisecond {
		t.Errorf("expected duration 100ms, got %v", result.Duration)
	}
	if result.Backend != "custom" {
		t.Errorf("expected backend custom, got %s", result.Backend)
	}
	if result.ID == "" {
		t.Error("expected a run ID")
	}
}

func TestStage_Execute_EncoderError(t *testing.T) {
	boom := errors.New("boom")
	mockEncoder := &mocks.VideoEncoder{
		EndFunc: func() error { return boom },
	}
	stage := NewStage(logger.NewNoop(),
		streamenc.WithEncoder(mockEncoder),
		streamenc.WithFileSystem(mocks.NewFileSystem()),
	)

	_, err := stage.Execute(context.Background(), pipeline.EncodeInput{
		Source:     streamenc.NewSliceSource(testFrames(2)),
		OutputPath: "video.mp4",
		Settings:   ports.NewVideoSettings(30, 16, 16),
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected wrapped encoder error, got %v", err)
	}
}

func TestStage_Execute_NoSource(t *testing.T) {
	stage := NewStage(logger.NewNoop())
	if _, err := stage.Execute(context.Background(), pipeline.EncodeInput{OutputPath: "x.mp4"}); err == nil {
		t.Error("expected error without a source")
	}
}

func TestStage_Execute_InvalidSettings(t *testing.T) {
	mockEncoder := &mocks.VideoEncoder{}
	stage := NewStage(logger.NewNoop(), streamenc.WithEncoder(mockEncoder))

	_, err := stage.Execute(context.Background(), pipeline.EncodeInput{
		Source:     streamenc.NewSliceSource(testFrames(1)),
		OutputPath: "video.mp4",
		Settings:   ports.NewVideoSettings(0, 16, 16),
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if mockEncoder.BeginCalled {
		t.Error("Begin should not be called for invalid settings")
	}
}

package mocks

import (
	"image"
	"sync"
	"time"

	"github.com/user/streamenc/pkg/ports"
)

// VideoEncoder is a mock implementation of ports.VideoEncoder.
type VideoEncoder struct {
	BeginFunc       func(outputPath string, settings ports.VideoSettings) error
	EncodeFrameFunc func(img image.Image, pts time.Duration) error
	EndFunc         func() error
	AbortFunc       func() error

	mu sync.Mutex

	// Recorded calls for verification
	BeginCalled      bool
	OutputPath       string
	Settings         ports.VideoSettings
	EncodeFrameCalls []EncodeFrameCall
	EndCalled        bool
	AbortCalled      bool
}

// EncodeFrameCall records a call to EncodeFrame.
type EncodeFrameCall struct {
	Image image.Image
	PTS   time.Duration
}

func (m *VideoEncoder) Begin(outputPath string, settings ports.VideoSettings) error {
	m.mu.Lock()
	m.BeginCalled = true
	m.OutputPath = outputPath
	m.Settings = settings
	m.mu.Unlock()
	if m.BeginFunc != nil {
		return m.BeginFunc(outputPath, settings)
	}
	return nil
}

func (m *VideoEncoder) EncodeFrame(img image.Image, pts time.Duration) error {
	if m.EncodeFrameFunc != nil {
		if err := m.EncodeFrameFunc(img, pts); err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.EncodeFrameCalls = append(m.EncodeFrameCalls, EncodeFrameCall{Image: img, PTS: pts})
	m.mu.Unlock()
	return nil
}

func (m *VideoEncoder) End() error {
	m.mu.Lock()
	m.EndCalled = true
	m.mu.Unlock()
	if m.EndFunc != nil {
		return m.EndFunc()
	}
	return nil
}

func (m *VideoEncoder) Abort() error {
	m.mu.Lock()
	m.AbortCalled = true
	m.mu.Unlock()
	if m.AbortFunc != nil {
		return m.AbortFunc()
	}
	return nil
}

// Frames returns the recorded EncodeFrame calls.
func (m *VideoEncoder) Frames() []EncodeFrameCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]EncodeFrameCall(nil), m.EncodeFrameCalls...)
}

// Ended reports whether End was called.
func (m *VideoEncoder) Ended() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.EndCalled
}

// Aborted reports whether Abort was called.
func (m *VideoEncoder) Aborted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.AbortCalled
}

var _ ports.VideoEncoder = (*VideoEncoder)(nil)

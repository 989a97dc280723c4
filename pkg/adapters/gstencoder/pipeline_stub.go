//go:build !cgo || nogst

package gstencoder

import (
	"time"

	"github.com/user/streamenc/pkg/ports"
)

type stubPipeline struct{}

func newPipeline(ports.Logger) pipeline {
	return stubPipeline{}
}

func (stubPipeline) start(string, string, ports.VideoSettings, uint64) error {
	return ErrUnavailable
}

func (stubPipeline) push([]byte, time.Duration, time.Duration) error { return ErrUnavailable }
func (stubPipeline) finish(time.Duration) error                     { return ErrUnavailable }
func (stubPipeline) abort() error                                   { return nil }

// CheckAvailable always fails in builds without GStreamer.
func CheckAvailable(ports.VideoSettings) error {
	return ErrUnavailable
}

package logger

import "github.com/user/streamenc/pkg/ports"

// NoopLogger drops every message. Encoders and the streaming API fall back to
// it when no logger is configured, and the CLI uses it for --quiet.
type NoopLogger struct{}

// NewNoop returns a logger that drops every message.
func NewNoop() *NoopLogger { return &NoopLogger{} }

func (*NoopLogger) Debug(string, ...interface{}) {}
func (*NoopLogger) Info(string, ...interface{})  {}
func (*NoopLogger) Warn(string, ...interface{})  {}
func (*NoopLogger) Error(string, ...interface{}) {}

// WithComponent returns the receiver; there is no prefix to carry.
func (l *NoopLogger) WithComponent(string) ports.Logger { return l }

var _ ports.Logger = (*NoopLogger)(nil)

// Package ports defines the interfaces between the encoding core and the
// pipeline backends, frame sources, logging and the file system.
package ports

import (
	"fmt"
	"strings"
)

// LogLevel is the severity of a log message.
type LogLevel int

const (
	// LevelDebug covers pipeline internals: bus messages, flow signals, per-frame events.
	LevelDebug LogLevel = iota
	// LevelInfo covers run-level progress.
	LevelInfo
	// LevelWarn covers recoverable problems such as backend fallback.
	LevelWarn
	// LevelError covers failures that stop a run.
	LevelError
	// LevelQuiet suppresses all output.
	LevelQuiet
)

var levelNames = []string{"debug", "info", "warn", "error", "quiet"}

// String returns the lower-case name of the level.
func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelQuiet {
		return "unknown"
	}
	return levelNames[l]
}

// ParseLogLevel parses a level name. Unknown names yield LevelInfo and an error.
func ParseLogLevel(s string) (LogLevel, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range levelNames {
		if n == name {
			return LogLevel(i), nil
		}
	}
	return LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// Logger abstracts logging. Messages are format strings that may be
// translated before formatting.
type Logger interface {
	Debug(msg string, args ...interface{})
	Info(msg string, args ...interface{})
	Warn(msg string, args ...interface{})
	Error(msg string, args ...interface{})

	// WithComponent returns a Logger that prefixes messages with the component name.
	WithComponent(component string) Logger
}

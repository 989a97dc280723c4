package mocks

import (
	"fmt"
	"sync"

	"github.com/user/streamenc/pkg/ports"
)

// Logger is a mock ports.Logger that records formatted messages.
type Logger struct {
	mu sync.Mutex

	Debugs   []string
	Infos    []string
	Warnings []string
	Errors   []string
}

func (l *Logger) Debug(msg string, args ...interface{}) { l.record(&l.Debugs, msg, args) }
func (l *Logger) Info(msg string, args ...interface{})  { l.record(&l.Infos, msg, args) }
func (l *Logger) Warn(msg string, args ...interface{})  { l.record(&l.Warnings, msg, args) }
func (l *Logger) Error(msg string, args ...interface{}) { l.record(&l.Errors, msg, args) }

// WithComponent returns the same logger so all messages are recorded in one place.
func (l *Logger) WithComponent(component string) ports.Logger {
	return l
}

func (l *Logger) record(dst *[]string, msg string, args []interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	*dst = append(*dst, fmt.Sprintf(msg, args...))
}

var _ ports.Logger = (*Logger)(nil)

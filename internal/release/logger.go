package release

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/indaco/relfiles/internal/printer"
	"github.com/rs/zerolog"
)

// Logger is the logging sink provided by the orchestrator.
type Logger interface {
	Log(format string, args ...any)
	Error(format string, args ...any)
}

// ConsoleLogger writes informational messages to Out and errors, styled, to Err.
// Every message is mirrored to the diagnostic logger at debug level.
type ConsoleLogger struct {
	Out   io.Writer
	Err   io.Writer
	Trace zerolog.Logger
}

// NewConsoleLogger returns a ConsoleLogger on stdout and stderr.
func NewConsoleLogger(trace zerolog.Logger) *ConsoleLogger {
	return &ConsoleLogger{Out: os.Stdout, Err: os.Stderr, Trace: trace}
}

func (l *ConsoleLogger) Log(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.Trace.Debug().Str("level_hint", "log").Msg(msg)
	fmt.Fprintln(l.Out, msg)
}

func (l *ConsoleLogger) Error(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	l.Trace.Debug().Str("level_hint", "error").Msg(msg)
	fmt.Fprintln(l.Err, printer.Error(msg))
}

// NopLogger discards everything.
type NopLogger struct{}

func (NopLogger) Log(string, ...any)   {}
func (NopLogger) Error(string, ...any) {}

// RecordingLogger keeps formatted messages in memory.
type RecordingLogger struct {
	mu     sync.Mutex
	logs   []string
	errors []string
}

func (l *RecordingLogger) Log(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logs = append(l.logs, fmt.Sprintf(format, args...))
}

func (l *RecordingLogger) Error(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

// Logs returns a copy of the informational messages.
func (l *RecordingLogger) Logs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.logs...)
}

// Errors returns a copy of the error messages.
func (l *RecordingLogger) Errors() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.errors...)
}

package logging

import (
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
)

// Logger writes leveled lines to a file. The TUI owns the terminal, so
// nothing is ever written to stdout or stderr.
type Logger struct {
	closer io.Closer
	std    *log.Logger
}

// Open appends to the log file at path.
func Open(path string) (*Logger, error) {
	std := log.New(io.Discard, "", log.LstdFlags)
	f, err := tea.LogToFileWith(path, "todolists ", std)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &Logger{closer: f, std: std}, nil
}

// New logs to w; used by tests.
func New(w io.Writer) *Logger {
	return &Logger{std: log.New(w, "", 0)}
}

// Nop discards everything.
func Nop() *Logger {
	return New(io.Discard)
}

func (l *Logger) Infof(format string, args ...any)  { l.printf("INFO", format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.printf("WARN", format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.printf("ERROR", format, args...) }

func (l *Logger) printf(level, format string, args ...any) {
	if l == nil || l.std == nil {
		return
	}
	l.std.Printf(level+": "+format, args...)
}

// Close closes the log file, if any.
func (l *Logger) Close() error {
	if l == nil || l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

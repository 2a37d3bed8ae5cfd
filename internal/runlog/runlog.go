// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runlog writes the per-attempt run log. Every line goes to an
// append-only log file in the output directory and is mirrored to a console
// writer with the level rendered through lipgloss. The log is observability
// only; nothing reads it back for control decisions.
package runlog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level tags a log line.
type Level string

const (
	LevelInfo    Level = "INFO"
	LevelWarning Level = "WARNING"
	LevelError   Level = "ERROR"
)

// FileName is the log file created under the output directory.
const FileName = "scraper.log"

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// now is stubbed in tests for stable timestamps.
var now = time.Now

// Logger appends timestamped lines to a file sink and mirrors them to a
// console writer.
type Logger struct {
	mu      sync.Mutex
	file    io.Writer
	console io.Writer
	closer  io.Closer
}

// Open creates (or appends to) dir/scraper.log and mirrors to console.
func Open(dir string, console io.Writer) (*Logger, error) {
	path := filepath.Join(dir, FileName)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return &Logger{file: f, console: console, closer: f}, nil
}

// New builds a Logger over arbitrary writers. Tests use this to capture
// both sinks in buffers.
func New(file, console io.Writer) *Logger {
	return &Logger{file: file, console: console}
}

// Infof logs at INFO.
func (l *Logger) Infof(format string, args ...any) {
	l.log(LevelInfo, fmt.Sprintf(format, args...))
}

// Warningf logs at WARNING.
func (l *Logger) Warningf(format string, args ...any) {
	l.log(LevelWarning, fmt.Sprintf(format, args...))
}

// Errorf logs at ERROR.
func (l *Logger) Errorf(format string, args ...any) {
	l.log(LevelError, fmt.Sprintf(format, args...))
}

func (l *Logger) log(level Level, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamp := now().Format("2006-01-02 15:04:05")
	fmt.Fprintf(l.file, "%s - %s - %s\n", stamp, level, msg)

	var styled string
	switch level {
	case LevelError:
		styled = errorStyle.Render(string(level))
	case LevelWarning:
		styled = warnStyle.Render(string(level))
	default:
		styled = infoStyle.Render(string(level))
	}
	fmt.Fprintf(l.console, "%s %s\n", styled, msg)
}

// Close releases the file sink if Open created one.
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	return l.closer.Close()
}

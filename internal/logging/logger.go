// Package logging wires phuslu/log to a file. The TUI owns the terminal, so
// diagnostics never go to stdout.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/phuslu/log"
)

// New returns a file-backed logger. An empty path disables logging entirely.
func New(path string, debug bool) *log.Logger {
	if path == "" {
		return Discard()
	}

	level := log.InfoLevel
	if debug {
		level = log.DebugLevel
	}

	os.MkdirAll(filepath.Dir(path), 0o755)

	return &log.Logger{
		Level:      level,
		TimeFormat: "2006-01-02 15:04:05",
		Writer: &log.FileWriter{
			Filename:     path,
			MaxSize:      10 << 20,
			MaxBackups:   2,
			EnsureFolder: true,
		},
	}
}

// Discard returns a logger that drops everything. Used in tests and when
// logging is disabled.
func Discard() *log.Logger {
	return &log.Logger{Writer: log.IOWriter{Writer: io.Discard}}
}

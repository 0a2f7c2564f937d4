package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// DebugEnabled returns true if debug mode is enabled via P2P_DEBUG environment variable
func DebugEnabled() bool {
	return os.Getenv("P2P_DEBUG") != ""
}

// Debugf prints a formatted debug message only if debug mode is enabled
func Debugf(format string, args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintf(os.Stderr, format, args...)
	}
}

// Debugln prints a debug message followed by a newline only if debug mode is enabled
func Debugln(args ...interface{}) {
	if DebugEnabled() {
		fmt.Fprintln(os.Stderr, args...)
	}
}

// New builds the structured logger used by the server and services.
// Debug level is selected by verbose or P2P_DEBUG.
func New(verbose bool) *slog.Logger {
	return NewWithWriter(os.Stderr, verbose)
}

// NewWithWriter is New with an explicit destination.
func NewWithWriter(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose || DebugEnabled() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything; used by tests and
// in-process CLI commands that should stay quiet.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

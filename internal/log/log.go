// Package log provides structured logging for the wallet.
//
// Output goes to stderr: stdout belongs to the interactive menu.
package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the global logger instance.
var Logger zerolog.Logger

// Component loggers for different parts of the wallet.
var (
	Wallet   zerolog.Logger
	RPC      zerolog.Logger
	Explorer zerolog.Logger
	Shell    zerolog.Logger
	Storage  zerolog.Logger
)

// DefaultLevel keeps the interactive UI free of routine log lines.
const DefaultLevel = "warn"

func init() {
	Logger = NewConsoleLogger(os.Stderr, DefaultLevel)
	initComponentLoggers()
}

// Init replaces the global logger. The console sink is colored text, or
// JSON when jsonOutput is set. A non-empty file adds a JSON sink appended to
// that path; the returned Closer releases it and must be closed on exit.
func Init(level string, jsonOutput bool, file string) (io.Closer, error) {
	var closer io.Closer = nopCloser{}
	switch {
	case file != "":
		f, err := os.OpenFile(file, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		var console io.Writer = os.Stderr
		if !jsonOutput {
			console = consoleWriter(os.Stderr)
		}
		// Events are JSON; the console writer reformats its copy.
		Logger = NewJSONLogger(zerolog.MultiLevelWriter(console, f), level)
		closer = f
	case jsonOutput:
		Logger = NewJSONLogger(os.Stderr, level)
	default:
		Logger = NewConsoleLogger(os.Stderr, level)
	}
	initComponentLoggers()
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func consoleWriter(w io.Writer) zerolog.ConsoleWriter {
	return zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}
}

// NewConsoleLogger creates a colored console logger.
func NewConsoleLogger(w io.Writer, level string) zerolog.Logger {
	return NewJSONLogger(consoleWriter(w), level)
}

// NewJSONLogger creates a structured JSON logger.
func NewJSONLogger(w io.Writer, level string) zerolog.Logger {
	return zerolog.New(w).
		Level(parseLevel(level)).
		With().
		Timestamp().
		Logger()
}

// Disable silences every logger. Package tests that drive the shell use it
// to keep output clean.
func Disable() {
	Logger = zerolog.Nop()
	initComponentLoggers()
}

func parseLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.WarnLevel
	}
}

// ValidLevel reports whether level is one Init understands.
func ValidLevel(level string) bool {
	switch level {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

func initComponentLoggers() {
	Wallet = WithComponent("wallet")
	RPC = WithComponent("rpc")
	Explorer = WithComponent("explorer")
	Shell = WithComponent("shell")
	Storage = WithComponent("storage")
}

// WithComponent returns a logger with a component field.
func WithComponent(name string) zerolog.Logger {
	return Logger.With().Str("component", name).Logger()
}

// Benchmark helper for timing operations.
func Benchmark(name string) func() {
	start := time.Now()
	return func() {
		Logger.Debug().
			Str("operation", name).
			Dur("duration", time.Since(start)).
			Msg("benchmark")
	}
}

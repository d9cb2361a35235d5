// Package cli implements the wordcloud command-line interface.
//
// This package provides commands for laying out word lists, rendering them
// to files, previewing them in the terminal, serving the HTTP API and
// managing the layout history and cache. The CLI is built using cobra and
// logs through charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - layout: Place words and write the placements as JSON
//   - render: Place words and write SVG, PNG, PDF or JSON files
//   - preview: Interactive terminal preview
//   - serve: Run the HTTP API
//   - history: List and show stored layouts
//   - cache: Manage the layout cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging,
// --log-format json for machine-readable output and --log-file for a
// rotated copy on disk. Loggers are passed through context.Context.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logOptions are the configurable parts of the CLI logger.
type logOptions struct {
	Level  string // empty keeps the current level
	Format string // text or json
	File   string // rotated copy; empty disables
}

// Rotation limits for --log-file.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// configureLogger applies opts to l, which writes to stderr. The returned
// closer releases the log file and is nil when no file is configured.
func configureLogger(l *log.Logger, stderr io.Writer, opts logOptions) (io.Closer, error) {
	if opts.Level != "" {
		lvl, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		l.SetLevel(lvl)
	}

	switch strings.ToLower(opts.Format) {
	case "", "text", "console":
		l.SetFormatter(log.TextFormatter)
	case "json":
		l.SetFormatter(log.JSONFormatter)
	case "logfmt":
		l.SetFormatter(log.LogfmtFormatter)
	default:
		return nil, fmt.Errorf("invalid log format %q (want text, json or logfmt)", opts.Format)
	}

	if opts.File == "" {
		l.SetOutput(stderr)
		return nil, nil
	}
	file := &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    logMaxSizeMB,
		MaxBackups: logMaxBackups,
		MaxAge:     logMaxAgeDays,
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(stderr, file))
	return file, nil
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Placed 42 words (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if ctx == nil {
		return log.Default()
	}
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

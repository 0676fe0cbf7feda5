// Package cli implements the topicnet command-line interface.
//
// The commands follow the pipeline stages: build reads a CSV into a graph
// file, layout positions it, visualize renders a layout, and render runs
// all three at once. explore and serve keep the network in memory and let
// selections change what is shown; legend prints the topic colors.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The CLI owns
// a single charmbracelet/log logger which is passed to the pipeline runner
// and, through context.Context, to helpers that report progress.
//
// # Configuration
//
// Defaults for columns, frame, node sizes, cache backend and server address
// are read from $XDG_CONFIG_HOME/topicnet/config.toml, or the file given by
// --config. Flags override the file.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger with "HH:MM:SS.ms" timestamps that filters
// messages below level.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of a single stage. It is meant for one
// goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time and any key/value pairs, e.g.
// "built network nodes=42 edges=57 elapsed=12ms".
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(msg, keyvals...)
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context carrying l.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

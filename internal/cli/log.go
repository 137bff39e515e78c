package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger that writes to w at the given level. Timestamps
// are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of a command step with its wall-clock
// duration. It is meant for sequential use by a single goroutine.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress starts timing a step at the current wall-clock time.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed wall time rounded to the millisecond, plus
// any key/value pairs, e.g. "Dealt 7 cards (3ms) redraws=4".
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(fmt.Sprintf("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond)), keyvals...)
}

// doneSimulated is done for runs on a virtual clock. The simulated time is
// logged next to the wall time, since a settled fan usually covers seconds
// of animation in a few milliseconds of real time.
func (p *progress) doneSimulated(msg string, simulated time.Duration, keyvals ...any) {
	p.done(msg, append([]any{"simulated", simulated.Round(time.Millisecond)}, keyvals...)...)
}

// ctxKey keys values this package stores in a context.
type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a copy of ctx carrying l. Commands read it back with
// loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default() so
// commands run outside Execute (as in tests) still have one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

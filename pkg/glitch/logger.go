package glitch

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// discardHandler drops every record. Enabled reports false so callers skip
// attribute formatting entirely.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (discardHandler) WithAttrs([]slog.Attr) slog.Handler        { return discardHandler{} }
func (discardHandler) WithGroup(string) slog.Handler             { return discardHandler{} }

var discardLogger = slog.New(discardHandler{})

// loggerPtr stays empty until SetLogger is called, so that package-level
// initialization can log before any init function has run.
var loggerPtr atomic.Pointer[slog.Logger]

// SetLogger configures the logger used by the glitch package. By default the
// package is silent. Passing nil restores the silent logger.
//
// Levels used:
//   - [slog.LevelDebug]: registry construction, per-call transform timing
//   - [slog.LevelWarn]: parameters coalesced to their default
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = discardLogger
	}
	loggerPtr.Store(l)
}

// Logger returns the logger currently used by the package.
func Logger() *slog.Logger {
	if l := loggerPtr.Load(); l != nil {
		return l
	}
	return discardLogger
}

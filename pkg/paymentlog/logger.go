// Package paymentlog emits the structured records used to trace payment
// operations. Every record carries service="payment", the operation name and
// an ISO-8601 timestamp, merged with caller data, and is written through a
// *slog.Logger so it lands in the process's configured sink.
package paymentlog

import (
	"context"
	"log/slog"
	"sort"
	"time"
)

// Service is the value of the "service" attribute on every record.
const Service = "payment"

const timestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Recorder receives the outcome of every tracked operation.
type Recorder interface {
	ObserveOperation(operation, outcome string, duration time.Duration)
}

// Logger writes payment records. The zero value is not usable; use New.
type Logger struct {
	base     *slog.Logger
	recorder Recorder
	now      func() time.Time
}

// Option configures a Logger.
type Option func(*Logger)

// WithRecorder reports tracked operation outcomes to r.
func WithRecorder(r Recorder) Option {
	return func(l *Logger) { l.recorder = r }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) { l.now = now }
}

// New returns a Logger writing to base, or to slog.Default() when base is nil.
func New(base *slog.Logger, opts ...Option) *Logger {
	if base == nil {
		base = slog.Default()
	}
	l := &Logger{base: base, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Info logs operation at info level.
func (l *Logger) Info(ctx context.Context, operation string, data map[string]any) {
	l.log(ctx, slog.LevelInfo, operation, data)
}

// Warn logs operation at warn level.
func (l *Logger) Warn(ctx context.Context, operation string, data map[string]any) {
	l.log(ctx, slog.LevelWarn, operation, data)
}

// Error logs operation at error level.
func (l *Logger) Error(ctx context.Context, operation string, data map[string]any) {
	l.log(ctx, slog.LevelError, operation, data)
}

func (l *Logger) log(ctx context.Context, level slog.Level, operation string, data map[string]any) {
	if !l.base.Enabled(ctx, level) {
		return
	}

	fixed := [...]slog.Attr{
		slog.String("service", Service),
		slog.String("operation", operation),
		slog.String("timestamp", l.now().UTC().Format(timestampFormat)),
	}
	attrs := make([]slog.Attr, 0, len(fixed)+len(data))
	// caller data takes precedence over the fixed attributes
	for _, a := range fixed {
		if _, overridden := data[a.Key]; !overridden {
			attrs = append(attrs, a)
		}
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		attrs = append(attrs, slog.Any(k, data[k]))
	}

	l.base.LogAttrs(ctx, level, operation, attrs...)
}

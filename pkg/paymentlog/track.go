package paymentlog

import (
	"context"
	"fmt"
	"maps"
	"time"

	"github.com/google/uuid"
)

// Outcomes reported to a Recorder.
const (
	OutcomeCompleted = "completed"
	OutcomeFailed    = "failed"
)

type correlationKey struct{}

// CorrelationID returns the id TrackOperation attached to ctx, if any.
func CorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

// TrackOperation runs fn once and logs "<operation>_started", then either
// "<operation>_completed" or "<operation>_failed" with the elapsed time.
// The records share a correlation id, which fn can read from its context
// with CorrelationID.
//
// The error returned by fn is passed back unchanged: it is neither wrapped
// nor swallowed. A panic in fn is recorded as a failure and then re-raised.
// There is no timeout or retry; fn owns both.
func TrackOperation[T any](
	ctx context.Context,
	l *Logger,
	operation string,
	metadata map[string]any,
	fn func(context.Context) (T, error),
) (T, error) {
	correlationID := "op_" + uuid.NewString()
	ctx = context.WithValue(ctx, correlationKey{}, correlationID)

	record := func(extra map[string]any) map[string]any {
		data := make(map[string]any, len(metadata)+len(extra)+1)
		maps.Copy(data, metadata)
		data["correlationId"] = correlationID
		maps.Copy(data, extra)
		return data
	}

	fail := func(elapsed time.Duration, extra map[string]any) {
		extra["durationMs"] = elapsed.Milliseconds()
		l.Error(ctx, operation+"_failed", record(extra))
		if l.recorder != nil {
			l.recorder.ObserveOperation(operation, OutcomeFailed, elapsed)
		}
	}

	start := l.now()
	l.Info(ctx, operation+"_started", record(nil))

	defer func() {
		if r := recover(); r != nil {
			fail(l.now().Sub(start), map[string]any{
				"error": fmt.Sprint(r),
				"panic": true,
			})
			panic(r)
		}
	}()

	result, err := fn(ctx)
	elapsed := l.now().Sub(start)

	if err != nil {
		fail(elapsed, map[string]any{"error": err.Error()})
		return result, err
	}

	l.Info(ctx, operation+"_completed", record(map[string]any{
		"durationMs": elapsed.Milliseconds(),
	}))
	if l.recorder != nil {
		l.recorder.ObserveOperation(operation, OutcomeCompleted, elapsed)
	}
	return result, nil
}

package log

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type correlationIDType int

const attemptIDKey correlationIDType = iota

// WithAttemptID returns a context which knows its connection attempt id.
// An attempt id tracks one connection attempt across the goroutines handling it.
func WithAttemptID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, attemptIDKey, id)
}

// WithNewAttemptID does the same thing as WithAttemptID but generates a new, random id.
func WithNewAttemptID(ctx context.Context) (context.Context, string) {
	id := uuid.NewString()
	return WithAttemptID(ctx, id), id
}

// ExtractAttemptID extracts the attempt id from a context object.
func ExtractAttemptID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(attemptIDKey).(string)
	return id, ok
}

// ZContext returns a field with the attempt id stored in ctx, or a skip field.
func ZContext(ctx context.Context) zap.Field {
	if id, ok := ExtractAttemptID(ctx); ok {
		return zap.String("attempt_id", id)
	}
	return zap.Skip()
}

package action

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// OptionKey keys the values Chain.Call stores on context.Context.
type OptionKey string

const (
	InvocationKey OptionKey = "invocation"
	LoggerKey     OptionKey = "logger"
	GuardKey      OptionKey = "guard"
)

// Invocation describes one call of a compiled Chain.
type Invocation struct {
	ID        uuid.UUID
	ChainID   uuid.UUID
	StartedAt time.Time
}

// WithInvocation returns a copy of ctx carrying inv.
func WithInvocation(ctx context.Context, inv Invocation) context.Context {
	return context.WithValue(ctx, InvocationKey, inv)
}

// InvocationFrom returns the invocation stored by Chain.Call.
func InvocationFrom(ctx context.Context) (Invocation, bool) {
	inv, ok := ctx.Value(InvocationKey).(Invocation)
	return inv, ok
}

// WithContextLogger returns a copy of ctx carrying logger.
func WithContextLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, LoggerKey, logger)
}

// LoggerFrom returns the logger carried by ctx, or a no-op logger.
func LoggerFrom(ctx context.Context) *zap.Logger {
	if logger, ok := ctx.Value(LoggerKey).(*zap.Logger); ok && logger != nil {
		return logger
	}
	return zap.NewNop()
}

// WithContextGuard returns a copy of ctx carrying the fault-containment
// factory of the running chain.
func WithContextGuard[E any](ctx context.Context, guard Factory[E]) context.Context {
	return context.WithValue(ctx, GuardKey, guard)
}

// GuardFrom returns the guard of the running chain, or nil. Sub-chains pass
// it to WithGuard so they follow the same policy.
func GuardFrom[E any](ctx context.Context) Factory[E] {
	guard, _ := ctx.Value(GuardKey).(Factory[E])
	return guard
}

package action

import (
	"context"
	"runtime/debug"

	"go.uber.org/zap"
)

// Halter is implemented by environments that can be marked as failed.
type Halter interface {
	Halt(err error)
	Halted() bool
}

// Interrupter is implemented by environments that track cancellation
// separately from failure.
type Interrupter interface {
	Interrupt(err error)
}

type errorHalt[E any] struct {
	next Action[E]
}

// ErrorHalt is the default fault-containment unit.
//
// An environment that is already halted skips the rest of the chain. Errors
// and panics raised by later units are caught: cancellation errors interrupt
// an Interrupter, and a Halter is halted with the error, which is then
// swallowed. Environments that are not Halters get the error back.
func ErrorHalt[E any](next Action[E], _ E, _ []any, _ Block[E]) (Action[E], error) {
	return &errorHalt[E]{next: next}, nil
}

func (h *errorHalt[E]) Call(ctx context.Context, env E) error {
	halter, canHalt := any(env).(Halter)
	if canHalt && halter.Halted() {
		return nil
	}

	err := callGuarded(ctx, h.next, env)
	if err == nil {
		return nil
	}

	if IsCancellationError(err) {
		if in, ok := any(env).(Interrupter); ok {
			in.Interrupt(err)
		}
	}

	if !canHalt {
		return err
	}

	fields := []zap.Field{zap.Error(err)}
	if inv, ok := InvocationFrom(ctx); ok {
		fields = append(fields, zap.String("invocation_id", inv.ID.String()))
	}
	LoggerFrom(ctx).Warn("chain halted", fields...)
	halter.Halt(err)
	return nil
}

func callGuarded[E any](ctx context.Context, next Action[E], env E) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	return next.Call(ctx, env)
}

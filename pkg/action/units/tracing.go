package units

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ib-77/actionchain/pkg/action"
)

const (
	AttrInvocationID = "action.invocation_id"
	AttrChainID      = "action.chain_id"
)

type tracing[E any] struct {
	next   action.Action[E]
	tracer trace.Tracer
	name   string
}

// Tracing wraps the rest of the chain in a span. The first entry arg, when it
// is a string, names the span. With a nil tracer the unit passes straight
// through to next.
func Tracing[E any](tracer trace.Tracer) *action.Unit[E] {
	return action.Define("tracing", func(next action.Action[E], _ E, args []any, _ action.Block[E]) (action.Action[E], error) {
		if tracer == nil {
			return next, nil
		}
		return &tracing[E]{next: next, tracer: tracer, name: stringArg(args, 0, "action.chain")}, nil
	})
}

func (t *tracing[E]) Call(ctx context.Context, env E) error {
	ctx, span := t.tracer.Start(ctx, t.name, trace.WithSpanKind(trace.SpanKindInternal))
	defer span.End()
	defer func() {
		if r := recover(); r != nil {
			err := &action.PanicError{Value: r}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			panic(r)
		}
	}()

	if inv, ok := action.InvocationFrom(ctx); ok {
		span.SetAttributes(
			attribute.String(AttrInvocationID, inv.ID.String()),
			attribute.String(AttrChainID, inv.ChainID.String()),
		)
	}

	err := t.next.Call(ctx, env)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if h, ok := any(env).(action.Halter); ok && h.Halted() {
		span.SetStatus(codes.Error, "environment halted")
		return nil
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

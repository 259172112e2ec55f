package units

import (
	"context"

	"github.com/ib-77/actionchain/pkg/action"
)

type step[E any] struct {
	next action.Action[E]
	fn   func(ctx context.Context, env E) error
}

func (s *step[E]) Call(ctx context.Context, env E) error {
	if err := s.fn(ctx, env); err != nil {
		return err
	}
	return s.next.Call(ctx, env)
}

// Func runs fn and then the rest of the chain. An error from fn stops the
// chain and propagates to the fault-containment unit.
func Func[E any](name string, fn func(ctx context.Context, env E) error) *action.Unit[E] {
	return action.Define(name, func(next action.Action[E], _ E, _ []any, _ action.Block[E]) (action.Action[E], error) {
		return &step[E]{next: next, fn: fn}, nil
	})
}

// Guard continues the chain only while pred holds; otherwise it returns
// without calling next.
func Guard[E any](name string, pred func(ctx context.Context, env E) bool) *action.Unit[E] {
	return action.Define(name, func(next action.Action[E], _ E, _ []any, _ action.Block[E]) (action.Action[E], error) {
		return &guarded[E]{next: next, pred: pred}, nil
	})
}

type guarded[E any] struct {
	next action.Action[E]
	pred func(ctx context.Context, env E) bool
}

func (g *guarded[E]) Call(ctx context.Context, env E) error {
	if !g.pred(ctx, env) {
		return nil
	}
	return g.next.Call(ctx, env)
}

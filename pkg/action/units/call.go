package units

import (
	"context"

	"github.com/ib-77/actionchain/pkg/action"
)

type call[E any] struct {
	next  action.Action[E]
	probe func(ctx context.Context, env E) error
	block action.Block[E]
}

// Call runs probe, then hands the environment and an empty Builder to the
// entry's block. Whatever the block registers runs as a sub-chain, guarded by
// the same fault-containment unit as the outer chain, before the rest of the
// outer chain. A halted environment stops the outer chain after
// the sub-chain returns.
//
//	b.UseBlock(units.Call("is_running", checkState), func(e *env.Environment, sub *action.Builder[*env.Environment]) {
//		if running, _ := env.Lookup[bool](e, "running"); running {
//			sub.Use(stop)
//		}
//	})
func Call[E any](name string, probe func(ctx context.Context, env E) error) *action.Unit[E] {
	return action.Define(name, func(next action.Action[E], _ E, _ []any, block action.Block[E]) (action.Action[E], error) {
		return &call[E]{next: next, probe: probe, block: block}, nil
	})
}

func (c *call[E]) Call(ctx context.Context, env E) error {
	if c.probe != nil {
		if err := c.probe(ctx, env); err != nil {
			return err
		}
	}

	sub := action.New[E]()
	if c.block != nil {
		c.block(env, sub)
	}
	if err := sub.Run(ctx, env,
		action.WithLogger[E](action.LoggerFrom(ctx)),
		action.WithGuard(action.GuardFrom[E](ctx)),
	); err != nil {
		return err
	}

	if h, ok := any(env).(action.Halter); ok && h.Halted() {
		return nil
	}
	return c.next.Call(ctx, env)
}

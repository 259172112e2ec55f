package action

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrorHaltName is the entry name of the fault-containment unit.
const ErrorHaltName = "error_halt"

type compiler[E any] struct {
	guard  Factory[E]
	logger *zap.Logger
}

// Option configures Compile.
type Option[E any] func(c *compiler[E])

// WithGuard replaces the fault-containment policy. The guard is still placed
// first in the chain; a nil factory keeps ErrorHalt.
func WithGuard[E any](guard Factory[E]) Option[E] {
	return func(c *compiler[E]) {
		if guard != nil {
			c.guard = guard
		}
	}
}

// WithLogger sets the logger used at compile time and handed to units
// through the invocation context.
func WithLogger[E any](logger *zap.Logger) Option[E] {
	return func(c *compiler[E]) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Chain is a compiled, re-invokable action chain.
type Chain[E any] struct {
	id     uuid.UUID
	head   Action[E]
	size   int
	logger *zap.Logger
	guard  Factory[E]
}

// Id identifies the compilation that produced c.
func (c *Chain[E]) Id() uuid.UUID {
	return c.id
}

// Len returns the number of units in c, counting the fault-containment unit
// but not the terminal no-op.
func (c *Chain[E]) Len() int {
	return c.size
}

// Call runs the chain against env.
func (c *Chain[E]) Call(ctx context.Context, env E) error {
	if _, ok := ctx.Value(LoggerKey).(*zap.Logger); !ok {
		ctx = WithContextLogger(ctx, c.logger)
	}
	ctx = WithContextGuard(ctx, c.guard)
	ctx = WithInvocation(ctx, Invocation{
		ID:        uuid.New(),
		ChainID:   c.id,
		StartedAt: time.Now().UTC(),
	})
	return c.head.Call(ctx, env)
}

// Compile turns entries into a Chain. The fault-containment unit is placed in
// front of the entries and a no-op after them; units are constructed from the
// last entry to the first so each one receives the already built remainder as
// its next.
//
// Factory errors are returned as *BuildError. Panics raised by factories are
// not recovered.
func Compile[E any](entries []Entry[E], env E, opts ...Option[E]) (*Chain[E], error) {
	c := &compiler[E]{guard: ErrorHalt[E], logger: zap.NewNop()}
	for _, opt := range opts {
		opt(c)
	}

	items := make([]Entry[E], 0, len(entries)+1)
	items = append(items, Entry[E]{Name: ErrorHaltName, New: c.guard})
	items = append(items, entries...)

	next := Noop[E]()
	for i := len(items) - 1; i >= 0; i-- {
		item := items[i]
		if item.New == nil {
			return nil, &BuildError{Index: i - 1, Name: item.Name, Err: ErrNilFactory}
		}
		a, err := item.New(next, env, item.Args, item.Block)
		if err != nil {
			return nil, &BuildError{Index: i - 1, Name: item.Name, Err: err}
		}
		if IsNil(a) {
			return nil, &BuildError{Index: i - 1, Name: item.Name, Err: ErrNilAction}
		}
		next = a
	}

	chain := &Chain[E]{id: uuid.New(), head: next, size: len(items), logger: c.logger, guard: c.guard}
	c.logger.Debug("chain compiled",
		zap.String("chain_id", chain.id.String()),
		zap.Int("units", chain.size))
	return chain, nil
}

// Run compiles entries and invokes the resulting chain with env, returning
// whatever the outermost unit returns.
func Run[E any](ctx context.Context, entries []Entry[E], env E, opts ...Option[E]) error {
	chain, err := Compile(entries, env, opts...)
	if err != nil {
		return fmt.Errorf("compile: %w", err)
	}
	return chain.Call(ctx, env)
}

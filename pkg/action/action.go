package action

import "context"

// Action is one invocable step of a compiled chain.
type Action[E any] interface {
	Call(ctx context.Context, env E) error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc[E any] func(ctx context.Context, env E) error

// Call invokes f.
func (f ActionFunc[E]) Call(ctx context.Context, env E) error {
	return f(ctx, env)
}

// Noop returns the terminal action appended to every chain.
func Noop[E any]() Action[E] {
	return ActionFunc[E](func(context.Context, E) error { return nil })
}

// Block is the optional configuration callback stored with an entry. Units
// that accept one receive the environment and a fresh Builder to register a
// sub-pipeline against.
type Block[E any] func(env E, b *Builder[E])

// Factory constructs a unit. next is the remainder of the chain; the unit
// decides whether and when to call it.
type Factory[E any] func(next Action[E], env E, args []any, block Block[E]) (Action[E], error)

// Unit is a named Factory. Names make entries addressable by
// Index/InsertBefore/InsertAfter/Replace/Delete.
type Unit[E any] struct {
	Name string
	New  Factory[E]
}

// Define returns a named unit descriptor.
func Define[E any](name string, f Factory[E]) *Unit[E] {
	return &Unit[E]{Name: name, New: f}
}

// Entry is one registered unit awaiting compilation.
type Entry[E any] struct {
	Name  string
	New   Factory[E]
	Args  []any
	Block Block[E]
}

// Descriptor is anything that can be registered with Builder.Use: a Factory,
// a *Unit or a *Builder.
type Descriptor[E any] interface {
	expand(args []any, block Block[E]) []Entry[E]
}

func (f Factory[E]) expand(args []any, block Block[E]) []Entry[E] {
	return []Entry[E]{{New: f, Args: args, Block: block}}
}

func (u *Unit[E]) expand(args []any, block Block[E]) []Entry[E] {
	if u == nil {
		return []Entry[E]{{Args: args, Block: block}}
	}
	return []Entry[E]{{Name: u.Name, New: u.New, Args: args, Block: block}}
}

// expand on a Builder ignores args and block: the nested entries already carry
// their own. A nil Builder splices nothing.
func (b *Builder[E]) expand([]any, Block[E]) []Entry[E] {
	if b == nil {
		return nil
	}
	out := make([]Entry[E], len(b.stack))
	copy(out, b.stack)
	return out
}

// expand resolves d into entries. A nil descriptor becomes an entry without a
// factory, reported as ErrNilFactory at compile time.
func expand[E any](d Descriptor[E], args []any, block Block[E]) []Entry[E] {
	if d == nil {
		return []Entry[E]{{Args: args, Block: block}}
	}
	return d.expand(args, block)
}

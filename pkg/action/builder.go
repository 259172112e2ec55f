package action

import (
	"context"
	"fmt"
)

// Builder accumulates an ordered list of entries. Insertion order is
// execution order.
type Builder[E any] struct {
	stack []Entry[E]
}

// New creates a Builder and runs each configure callback against it.
func New[E any](configure ...func(b *Builder[E])) *Builder[E] {
	b := &Builder[E]{}
	for _, fn := range configure {
		if fn != nil {
			fn(b)
		}
	}
	return b
}

// Use appends d with its construction args. A *Builder is spliced in place.
func (b *Builder[E]) Use(d Descriptor[E], args ...any) *Builder[E] {
	return b.UseBlock(d, nil, args...)
}

// UseBlock is Use with a configuration block handed to the unit's Factory.
func (b *Builder[E]) UseBlock(d Descriptor[E], block Block[E], args ...any) *Builder[E] {
	b.stack = append(b.stack, expand(d, args, block)...)
	return b
}

// Entries returns a copy of the current entry list.
func (b *Builder[E]) Entries() []Entry[E] {
	out := make([]Entry[E], len(b.stack))
	copy(out, b.stack)
	return out
}

// Len returns the number of registered entries.
func (b *Builder[E]) Len() int {
	return len(b.stack)
}

// Clone returns an independent copy of b.
func (b *Builder[E]) Clone() *Builder[E] {
	return &Builder[E]{stack: b.Entries()}
}

// Index returns the position of the first entry named name, or -1.
func (b *Builder[E]) Index(name string) int {
	for i, e := range b.stack {
		if e.Name == name {
			return i
		}
	}
	return -1
}

// Insert places d at position i, shifting later entries back.
func (b *Builder[E]) Insert(i int, d Descriptor[E], args ...any) error {
	if i < 0 || i > len(b.stack) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(b.stack), ErrIndexOutOfRange)
	}
	add := expand(d, args, nil)
	stack := make([]Entry[E], 0, len(b.stack)+len(add))
	stack = append(stack, b.stack[:i]...)
	stack = append(stack, add...)
	stack = append(stack, b.stack[i:]...)
	b.stack = stack
	return nil
}

// InsertBefore places d in front of the first entry named name.
func (b *Builder[E]) InsertBefore(name string, d Descriptor[E], args ...any) error {
	i, err := b.lookup(name)
	if err != nil {
		return err
	}
	return b.Insert(i, d, args...)
}

// InsertAfter places d right after the first entry named name.
func (b *Builder[E]) InsertAfter(name string, d Descriptor[E], args ...any) error {
	i, err := b.lookup(name)
	if err != nil {
		return err
	}
	return b.Insert(i+1, d, args...)
}

// Replace swaps the first entry named name for d.
func (b *Builder[E]) Replace(name string, d Descriptor[E], args ...any) error {
	i, err := b.lookup(name)
	if err != nil {
		return err
	}
	b.remove(i)
	return b.Insert(i, d, args...)
}

// Delete removes the first entry named name.
func (b *Builder[E]) Delete(name string) error {
	i, err := b.lookup(name)
	if err != nil {
		return err
	}
	b.remove(i)
	return nil
}

// Compile builds a Chain from the current entries.
func (b *Builder[E]) Compile(env E, opts ...Option[E]) (*Chain[E], error) {
	return Compile(b.stack, env, opts...)
}

// Run compiles the current entries and invokes the chain with env.
func (b *Builder[E]) Run(ctx context.Context, env E, opts ...Option[E]) error {
	return Run(ctx, b.stack, env, opts...)
}

func (b *Builder[E]) lookup(name string) (int, error) {
	i := b.Index(name)
	if i < 0 {
		return -1, fmt.Errorf("%q: %w", name, ErrUnitNotFound)
	}
	return i, nil
}

func (b *Builder[E]) remove(i int) {
	stack := make([]Entry[E], 0, len(b.stack)-1)
	stack = append(stack, b.stack[:i]...)
	b.stack = append(stack, b.stack[i+1:]...)
}

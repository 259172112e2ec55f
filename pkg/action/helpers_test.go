package action

import (
	"context"
	"errors"
)

var errBoom = errors.New("boom")

// recordingEnv collects unit names in execution order and implements Halter.
type recordingEnv struct {
	log    []string
	halted bool
	err    error
}

func (e *recordingEnv) Halt(err error) {
	e.halted = true
	e.err = err
}

func (e *recordingEnv) Halted() bool {
	return e.halted
}

type recordAction struct {
	name string
	next Action[*recordingEnv]
}

func (a *recordAction) Call(ctx context.Context, env *recordingEnv) error {
	env.log = append(env.log, a.name)
	return a.next.Call(ctx, env)
}

// record registers name into the env log before continuing.
func record(name string) *Unit[*recordingEnv] {
	return Define(name, func(next Action[*recordingEnv], _ *recordingEnv, _ []any, _ Block[*recordingEnv]) (Action[*recordingEnv], error) {
		return &recordAction{name: name, next: next}, nil
	})
}

// stop records name and does not call next.
func stop(name string) *Unit[*recordingEnv] {
	return Define(name, func(_ Action[*recordingEnv], _ *recordingEnv, _ []any, _ Block[*recordingEnv]) (Action[*recordingEnv], error) {
		return ActionFunc[*recordingEnv](func(_ context.Context, env *recordingEnv) error {
			env.log = append(env.log, name)
			return nil
		}), nil
	})
}

// fail records name+":start" and returns err without calling next.
func fail(name string, err error) *Unit[*recordingEnv] {
	return Define(name, func(_ Action[*recordingEnv], _ *recordingEnv, _ []any, _ Block[*recordingEnv]) (Action[*recordingEnv], error) {
		return ActionFunc[*recordingEnv](func(_ context.Context, env *recordingEnv) error {
			env.log = append(env.log, name+":start")
			return err
		}), nil
	})
}

func names[E any](entries []Entry[E]) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name)
	}
	return out
}

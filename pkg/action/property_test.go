package action

import (
	"context"
	"fmt"
	"testing"

	"pgregory.net/rapid"
)

// Property: for any list of units, execution order equals registration order
// and a unit that stops cuts off exactly the units after it.
func TestProperty_ExecutionFollowsRegistration(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(0, 20).Draw(rt, "n")
		stopAt := rapid.IntRange(-1, n-1).Draw(rt, "stopAt")

		b := New[*recordingEnv]()
		want := make([]string, 0, n)
		for i := 0; i < n; i++ {
			name := fmt.Sprintf("u%d", i)
			if i == stopAt {
				b.Use(stop(name))
			} else {
				b.Use(record(name))
			}
			if stopAt < 0 || i <= stopAt {
				want = append(want, name)
			}
		}

		env := &recordingEnv{}
		if err := b.Run(context.Background(), env); err != nil {
			rt.Fatalf("run: %v", err)
		}
		if len(env.log) != len(want) {
			rt.Fatalf("expected %v, got %v", want, env.log)
		}
		for i := range want {
			if env.log[i] != want[i] {
				rt.Fatalf("expected %v, got %v", want, env.log)
			}
		}
	})
}

// Property: splicing keeps every entry exactly once and in order.
func TestProperty_SplicePreservesOrder(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		parts := rapid.SliceOfN(rapid.IntRange(0, 5), 0, 6).Draw(rt, "parts")

		outer := New[*recordingEnv]()
		var want []string
		for p, size := range parts {
			if rapid.Bool().Draw(rt, fmt.Sprintf("direct%d", p)) {
				name := fmt.Sprintf("d%d", p)
				outer.Use(record(name))
				want = append(want, name)
			}
			nested := New[*recordingEnv]()
			for i := 0; i < size; i++ {
				name := fmt.Sprintf("p%d.%d", p, i)
				nested.Use(record(name))
				want = append(want, name)
			}
			outer.Use(nested)
		}

		got := names(outer.Entries())
		if len(got) != len(want) {
			rt.Fatalf("expected %v, got %v", want, got)
		}
		for i := range want {
			if got[i] != want[i] {
				rt.Fatalf("expected %v, got %v", want, got)
			}
		}
	})
}

package env_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ib-77/actionchain/pkg/action"
	"github.com/ib-77/actionchain/pkg/action/env"
	"github.com/ib-77/actionchain/pkg/action/units"
)

func TestEnvironment_HaltedByErrorHalt(t *testing.T) {
	t.Parallel()

	errDisk := errors.New("disk full")
	var order []string
	step := func(name string, err error) *action.Unit[*env.Environment] {
		return units.Func(name, func(_ context.Context, e *env.Environment) error {
			order = append(order, name)
			e.Set(name, true)
			return err
		})
	}

	e := env.New()
	err := action.New[*env.Environment]().
		Use(step("a", nil)).
		Use(step("b", errDisk)).
		Use(step("c", nil)).
		Run(context.Background(), e)

	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
	assert.True(t, e.Halted())
	assert.ErrorIs(t, e.Err(), errDisk)

	_, ran := e.Get("c")
	assert.False(t, ran)
}

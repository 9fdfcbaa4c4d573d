package statemachine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type counter struct {
	steps int
}

func counting(c *counter) StateFn[counter] {
	c.steps++
	if c.steps >= 3 {
		return nil
	}
	return counting
}

func TestStepRunsUntilTerminal(t *testing.T) {
	c := &counter{}
	sm := NewStateMachine(c, counting)

	for i := 0; i < 5; i++ {
		sm.Step()
	}

	// The third step returned nil; later steps are no-ops.
	require.Equal(t, 3, c.steps)
	require.True(t, sm.Done())
}

func TestDispatchExecutesImmediately(t *testing.T) {
	c := &counter{}
	sm := NewStateMachine(c, nil)
	require.True(t, sm.Done())

	sm.Dispatch(counting)
	require.Equal(t, 1, c.steps)
	require.False(t, sm.Done())
}

func TestSetStateDoesNotExecute(t *testing.T) {
	c := &counter{}
	sm := NewStateMachine(c, nil)

	sm.SetState(counting)
	require.Equal(t, 0, c.steps)
	require.True(t, Same(sm.GetCurrentState(), StateFn[counter](counting)))
	require.False(t, Same(sm.GetCurrentState(), nil))
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlowWalksForwardOnly(t *testing.T) {
	f := &Flow{State: StateNamingPending}

	require.NoError(t, f.Transition(StateAwaitingInputMethod))
	require.NoError(t, f.Transition(StateAwaitingInput))
	require.NoError(t, f.Transition(StateActive))
	require.NoError(t, f.Transition(StateEnded))
	assert.Equal(t, StateEnded, f.State)
}

func TestFlowRejectsSkippedSteps(t *testing.T) {
	f := &Flow{State: StateNamingPending}

	err := f.Transition(StateActive)
	require.Error(t, err)
	assert.Equal(t, StateNamingPending, f.State)
}

func TestFlowEndedIsTerminal(t *testing.T) {
	f := &Flow{State: StateEnded}

	for _, next := range []string{StateNamingPending, StateAwaitingInputMethod, StateAwaitingInput, StateActive} {
		assert.Error(t, f.Transition(next))
	}
}

func TestFlowRejectsBackwardEdges(t *testing.T) {
	f := &Flow{State: StateActive}

	err := f.Transition(StateAwaitingInput)
	require.Error(t, err)
	assert.Equal(t, StateActive, f.State)
}

package store

import (
	"fmt"

	"ai-homework-helper-be/internal/constant"
)

// Flow represents the active conversational state for one identity in memory.
// It tracks where the user is in the session setup dialogue before and after
// a persistent session exists.
type Flow struct {
	Identity    string               `json:"identity"` // user id or guest id
	SessionID   string               `json:"session_id"`
	State       string               `json:"state"`
	Title       string               `json:"title"`
	Subject     constant.Subject     `json:"subject"`
	Mode        constant.Mode        `json:"mode"`
	InputMethod constant.InputMethod `json:"input_method"`
	IsGuest     bool                 `json:"is_guest"`
}

const (
	StateNamingPending       = "NAMING_PENDING"
	StateAwaitingInputMethod = "AWAITING_INPUT_METHOD"
	StateAwaitingInput       = "AWAITING_INPUT"
	StateActive              = "ACTIVE"
	StateEnded               = "ENDED"
)

// validTransitions holds the allowed forward edges of the session dialogue.
// Absence of a Flow is the implicit initial state; any state may be abandoned
// by deleting the Flow.
var validTransitions = map[string][]string{
	StateNamingPending:       {StateAwaitingInputMethod},
	StateAwaitingInputMethod: {StateAwaitingInput},
	StateAwaitingInput:       {StateActive},
	StateActive:              {StateEnded},
}

// Transition moves the flow to the next state, rejecting edges that are not
// part of the dialogue.
func (f *Flow) Transition(next string) error {
	for _, allowed := range validTransitions[f.State] {
		if allowed == next {
			f.State = next
			return nil
		}
	}
	return fmt.Errorf("invalid flow transition from %s to %s", f.State, next)
}

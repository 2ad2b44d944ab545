package events

import "time"

// Event is one occurrence on the tutoring lifecycle bus.
type Event interface {
	// EventType returns the type code (e.g. "SESSION_STARTED"); it also
	// names the NATS subject the event travels on.
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the concrete shape every lifecycle event shares; the
// constructors in this package produce it.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

package events

import "time"

// Event type codes emitted by the tutoring lifecycle.
const (
	TypeSessionStarted   = "SESSION_STARTED"
	TypeSessionEnded     = "SESSION_ENDED"
	TypeSessionRenamed   = "SESSION_RENAMED"
	TypeProgressRecorded = "PROGRESS_RECORDED"
)

// NewSessionStarted is emitted when a session leaves the setup dialogue and
// becomes active.
func NewSessionStarted(sessionID, userID, subject, inputMethod string) Event {
	return BaseEvent{
		Type: TypeSessionStarted,
		Data: map[string]interface{}{
			"session_id":   sessionID,
			"user_id":      userID,
			"subject":      subject,
			"input_method": inputMethod,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionEnded is emitted when a session is closed by the user.
func NewSessionEnded(sessionID, userID string) Event {
	return BaseEvent{
		Type: TypeSessionEnded,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
		},
		OccurredAt: time.Now(),
	}
}

// NewSessionRenamed is emitted when the user changes a session's title.
func NewSessionRenamed(sessionID, userID, title string) Event {
	return BaseEvent{
		Type: TypeSessionRenamed,
		Data: map[string]interface{}{
			"session_id": sessionID,
			"user_id":    userID,
			"title":      title,
		},
		OccurredAt: time.Now(),
	}
}

// NewProgressRecorded is emitted after an assistant turn completes so the
// progress tracker can bump the matching counter.
func NewProgressRecorded(userID, subject, action string) Event {
	return BaseEvent{
		Type: TypeProgressRecorded,
		Data: map[string]interface{}{
			"user_id": userID,
			"subject": subject,
			"action":  action,
		},
		OccurredAt: time.Now(),
	}
}

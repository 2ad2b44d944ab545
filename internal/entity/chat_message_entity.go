package entity

import (
	"time"

	"ai-homework-helper-be/internal/constant"

	"github.com/google/uuid"
)

// ChatMessage is one turn of a session transcript. Messages are append-only
// and live exactly as long as their session.
type ChatMessage struct {
	Id        uuid.UUID
	SessionId uuid.UUID
	Type      constant.MessageType
	Content   string
	Mode      *constant.Mode
	Metadata  map[string]interface{}
	CreatedAt time.Time
}

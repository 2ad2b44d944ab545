package entity

import (
	"time"

	"ai-homework-helper-be/internal/constant"

	"github.com/google/uuid"
)

// ChatSession is one homework-help engagement. Subject is assigned exactly
// once, when the session is created, and Title is never empty.
type ChatSession struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Title         string
	Subject       constant.Subject
	InputMethod   constant.InputMethod
	OriginalInput string
	ExtractedText *string
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

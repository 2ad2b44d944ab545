package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatSession struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        uuid.UUID `gorm:"type:uuid;not null;index"` // Opaque identity from the auth provider
	Title         string    `gorm:"type:varchar(255);not null"`
	Subject       string    `gorm:"type:varchar(20);not null"`
	InputMethod   string    `gorm:"type:varchar(10);not null"`
	OriginalInput string    `gorm:"type:text;not null"`
	ExtractedText *string   `gorm:"type:text"`
	IsActive      bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	Messages []ChatMessage `gorm:"foreignKey:SessionId;constraint:OnDelete:CASCADE"`
}

func (ChatSession) TableName() string {
	return "chat_sessions"
}

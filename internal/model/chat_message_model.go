package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type ChatMessage struct {
	Id        uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SessionId uuid.UUID         `gorm:"type:uuid;not null;index"`
	Type      string            `gorm:"type:varchar(20);not null"`
	Content   string            `gorm:"type:text;not null"`
	Mode      *string           `gorm:"type:varchar(20)"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb"` // Reserved for annotations (processing time, confidence, ...)
	CreatedAt time.Time         `gorm:"autoCreateTime"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

package model

import (
	"time"

	"github.com/google/uuid"
)

type UserProgress struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_user_progress_user_subject"`
	Subject           string    `gorm:"type:varchar(20);not null;uniqueIndex:idx_user_progress_user_subject"`
	TasksAttempted    int       `gorm:"not null;default:0"`
	HintsUsed         int       `gorm:"not null;default:0"`
	ConceptsLearned   int       `gorm:"not null;default:0"`
	PracticeCompleted int       `gorm:"not null;default:0"`
	QuizzesTaken      int       `gorm:"not null;default:0"`
	LastActivity      time.Time `gorm:"not null"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (UserProgress) TableName() string {
	return "user_progress"
}

package entity

import (
	"time"

	"ai-homework-helper-be/internal/constant"

	"github.com/google/uuid"
)

// UserProgress aggregates tutoring activity per (user, subject). Counters
// only ever grow.
type UserProgress struct {
	Id                uuid.UUID
	UserId            uuid.UUID
	Subject           constant.Subject
	TasksAttempted    int
	HintsUsed         int
	ConceptsLearned   int
	PracticeCompleted int
	QuizzesTaken      int
	LastActivity      time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Bump increments the counter matching action and refreshes LastActivity.
func (p *UserProgress) Bump(action constant.ProgressAction, at time.Time) {
	switch action {
	case constant.ProgressActionTask:
		p.TasksAttempted++
	case constant.ProgressActionHint:
		p.HintsUsed++
	case constant.ProgressActionConcept:
		p.ConceptsLearned++
	case constant.ProgressActionPractice:
		p.PracticeCompleted++
	case constant.ProgressActionQuiz:
		p.QuizzesTaken++
	}
	p.LastActivity = at
}

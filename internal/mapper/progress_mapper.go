package mapper

import (
	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/model"
)

type ProgressMapper struct{}

func NewProgressMapper() *ProgressMapper {
	return &ProgressMapper{}
}

func (m *ProgressMapper) ToEntity(p *model.UserProgress) *entity.UserProgress {
	if p == nil {
		return nil
	}
	return &entity.UserProgress{
		Id:                p.Id,
		UserId:            p.UserId,
		Subject:           constant.Subject(p.Subject),
		TasksAttempted:    p.TasksAttempted,
		HintsUsed:         p.HintsUsed,
		ConceptsLearned:   p.ConceptsLearned,
		PracticeCompleted: p.PracticeCompleted,
		QuizzesTaken:      p.QuizzesTaken,
		LastActivity:      p.LastActivity,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func (m *ProgressMapper) ToModel(p *entity.UserProgress) *model.UserProgress {
	if p == nil {
		return nil
	}
	return &model.UserProgress{
		Id:                p.Id,
		UserId:            p.UserId,
		Subject:           string(p.Subject),
		TasksAttempted:    p.TasksAttempted,
		HintsUsed:         p.HintsUsed,
		ConceptsLearned:   p.ConceptsLearned,
		PracticeCompleted: p.PracticeCompleted,
		QuizzesTaken:      p.QuizzesTaken,
		LastActivity:      p.LastActivity,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

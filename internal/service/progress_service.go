package service

import (
	"context"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/dto"
	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/repository/specification"
	"ai-homework-helper-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IProgressService interface {
	GetSummary(ctx context.Context, userId uuid.UUID) (*dto.ProgressSummaryResponse, error)
	Record(ctx context.Context, userId uuid.UUID, subject constant.Subject, action constant.ProgressAction) error
}

type progressService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewProgressService(uowFactory unitofwork.RepositoryFactory) IProgressService {
	return &progressService{
		uowFactory: uowFactory,
	}
}

func (s *progressService) GetSummary(ctx context.Context, userId uuid.UUID) (*dto.ProgressSummaryResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	rows, err := uow.UserProgressRepository().FindAll(ctx,
		specification.OwnedByUser{UserID: userId},
		specification.OrderBy{Field: "subject"},
	)
	if err != nil {
		return nil, err
	}
	return progressSummary(rows), nil
}

func (s *progressService) Record(ctx context.Context, userId uuid.UUID, subject constant.Subject, action constant.ProgressAction) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.UserProgressRepository().Increment(ctx, userId, subject, action)
}

func progressSummary(rows []*entity.UserProgress) *dto.ProgressSummaryResponse {
	res := &dto.ProgressSummaryResponse{
		Entries: make([]dto.ProgressEntryResponse, 0, len(rows)),
	}
	for _, p := range rows {
		res.Entries = append(res.Entries, dto.ProgressEntryResponse{
			Subject:           string(p.Subject),
			TasksAttempted:    p.TasksAttempted,
			HintsUsed:         p.HintsUsed,
			ConceptsLearned:   p.ConceptsLearned,
			PracticeCompleted: p.PracticeCompleted,
			QuizzesTaken:      p.QuizzesTaken,
			LastActivity:      p.LastActivity,
		})
		res.TotalAttempted += p.TasksAttempted
	}
	return res
}

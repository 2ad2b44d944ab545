package implementation

import (
	"context"
	"errors"
	"time"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/mapper"
	"ai-homework-helper-be/internal/model"
	"ai-homework-helper-be/internal/repository/contract"
	"ai-homework-helper-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserProgressRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProgressMapper
}

func NewUserProgressRepository(db *gorm.DB) contract.UserProgressRepository {
	return &UserProgressRepositoryImpl{
		db:     db,
		mapper: mapper.NewProgressMapper(),
	}
}

func counterColumn(action constant.ProgressAction) string {
	switch action {
	case constant.ProgressActionHint:
		return "hints_used"
	case constant.ProgressActionConcept:
		return "concepts_learned"
	case constant.ProgressActionPractice:
		return "practice_completed"
	case constant.ProgressActionQuiz:
		return "quizzes_taken"
	default:
		return "tasks_attempted"
	}
}

// Increment is a single upsert: INSERT ... ON CONFLICT (user_id, subject)
// DO UPDATE SET <counter> = <counter> + 1, so concurrent bumps never lose
// an increment.
func (r *UserProgressRepositoryImpl) Increment(ctx context.Context, userId uuid.UUID, subject constant.Subject, action constant.ProgressAction) error {
	now := time.Now()
	row := model.UserProgress{
		Id:           uuid.New(),
		UserId:       userId,
		Subject:      string(subject),
		LastActivity: now,
	}

	switch action {
	case constant.ProgressActionHint:
		row.HintsUsed = 1
	case constant.ProgressActionConcept:
		row.ConceptsLearned = 1
	case constant.ProgressActionPractice:
		row.PracticeCompleted = 1
	case constant.ProgressActionQuiz:
		row.QuizzesTaken = 1
	default:
		row.TasksAttempted = 1
	}

	column := counterColumn(action)
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "subject"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column:          gorm.Expr("user_progress." + column + " + 1"),
			"last_activity": now,
			"updated_at":    now,
		}),
	}).Create(&row).Error
}

func (r *UserProgressRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *UserProgressRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProgress, error) {
	var m model.UserProgress
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *UserProgressRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserProgress, error) {
	var models []*model.UserProgress
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.UserProgress, len(models))
	for i, m := range models {
		entities[i] = r.mapper.ToEntity(m)
	}
	return entities, nil
}

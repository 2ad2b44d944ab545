package contract

import (
	"context"

	"ai-homework-helper-be/internal/constant"
	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/repository/specification"

	"github.com/google/uuid"
)

type UserProgressRepository interface {
	// Increment bumps the counter for action under the (user, subject) key,
	// creating the row if it does not exist yet.
	Increment(ctx context.Context, userId uuid.UUID, subject constant.Subject, action constant.ProgressAction) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.UserProgress, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.UserProgress, error)
}

package contract

import (
	"context"

	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/repository/specification"

	"github.com/google/uuid"
)

type ChatSessionRepository interface {
	Create(ctx context.Context, session *entity.ChatSession) error
	Update(ctx context.Context, session *entity.ChatSession) error
	// Touch bumps updated_at so list ordering follows activity.
	Touch(ctx context.Context, id uuid.UUID) error
	// Delete removes the session; messages cascade at the database level.
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatSession, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatSession, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

package contract

import (
	"context"

	"ai-homework-helper-be/internal/entity"
	"ai-homework-helper-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatMessageRepository is append-only on the write side: messages are
// never updated, and single deletes exist only for the cascade path.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteBySessionId(ctx context.Context, sessionId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

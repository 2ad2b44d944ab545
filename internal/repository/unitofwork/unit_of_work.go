package unitofwork

import (
	"context"

	"ai-homework-helper-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	ChatSessionRepository() contract.ChatSessionRepository
	ChatMessageRepository() contract.ChatMessageRepository
	UserProgressRepository() contract.UserProgressRepository
}

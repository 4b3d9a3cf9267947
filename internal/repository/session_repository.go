package repository

import (
	"context"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByToken(ctx context.Context, refreshToken string) (*domain.Session, error)
	Delete(ctx context.Context, refreshToken string) error
	DeleteByUser(ctx context.Context, userID int64) error
}

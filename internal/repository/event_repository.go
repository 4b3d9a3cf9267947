package repository

import (
	"context"
	"time"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

type EventRepository interface {
	Create(ctx context.Context, event *domain.ActivityEvent) error
	// ListBetween returns events with created_at in the half-open
	// interval [from, to).
	ListBetween(ctx context.Context, from, to time.Time) ([]domain.ActivityEvent, error)
}

package repository

import (
	"context"
	"time"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	SetEmergency(ctx context.Context, userID int64, active bool, activatedAt *time.Time) error
	// ListCandidates returns the raw candidate pool for a viewer with the
	// cheap exclusions pushed down to SQL: the viewer themselves, identical
	// phone hashes, the optional region disjunction, and the mutual
	// contact-exclusion switches. The filter chain re-checks the contact
	// rule; the push-down only trims the transfer.
	ListCandidates(ctx context.Context, viewer *domain.User, regions []domain.Region) ([]domain.User, error)
	ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error)
	ListActiveIDs(ctx context.Context) ([]int64, error)
}

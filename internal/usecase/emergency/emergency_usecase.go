package emergency

import (
	"context"
	"time"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

type EmergencyUseCase struct {
	userRepo repository.UserRepository
	window   time.Duration
}

func NewEmergencyUseCase(userRepo repository.UserRepository, window time.Duration) *EmergencyUseCase {
	return &EmergencyUseCase{userRepo: userRepo, window: window}
}

// Activate turns emergency mode on and restarts the window.
func (uc *EmergencyUseCase) Activate(ctx context.Context, userID int64) (*domain.Emergency, error) {
	now := time.Now()
	if err := uc.userRepo.SetEmergency(ctx, userID, true, &now); err != nil {
		return nil, err
	}
	return uc.status(&domain.Emergency{IsActive: true, ActivatedAt: &now}, now), nil
}

// Deactivate turns emergency mode off regardless of remaining time.
func (uc *EmergencyUseCase) Deactivate(ctx context.Context, userID int64) error {
	return uc.userRepo.SetEmergency(ctx, userID, false, nil)
}

// Status reports whether the user's emergency window is still live and how
// long remains. An elapsed window reads as inactive even while the stored
// flag is still set.
func (uc *EmergencyUseCase) Status(ctx context.Context, userID int64) (*domain.Emergency, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return uc.status(&user.Emergency, time.Now()), nil
}

func (uc *EmergencyUseCase) status(e *domain.Emergency, now time.Time) *domain.Emergency {
	out := &domain.Emergency{IsActive: false, ActivatedAt: e.ActivatedAt}
	if !e.IsActive || e.ActivatedAt == nil {
		return out
	}
	remaining := uc.window - now.Sub(*e.ActivatedAt)
	if remaining <= 0 {
		return out
	}
	secs := int64(remaining / time.Second)
	out.IsActive = true
	out.RemainingSeconds = &secs
	return out
}

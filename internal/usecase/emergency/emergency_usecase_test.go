package emergency

import (
	"context"
	"testing"
	"time"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

type fakeUserRepo struct {
	repository.UserRepository
	user        *domain.User
	setActive   bool
	setAt       *time.Time
	setReceived bool
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, domain.ErrUserNotFound
	}
	u := *f.user
	return &u, nil
}

func (f *fakeUserRepo) SetEmergency(ctx context.Context, userID int64, active bool, activatedAt *time.Time) error {
	f.setReceived = true
	f.setActive = active
	f.setAt = activatedAt
	return nil
}

func TestActivate(t *testing.T) {
	repo := &fakeUserRepo{user: &domain.User{ID: 1}}
	uc := NewEmergencyUseCase(repo, time.Hour)

	state, err := uc.Activate(context.Background(), 1)
	if err != nil {
		t.Fatalf("Activate: %v", err)
	}
	if !repo.setReceived || !repo.setActive || repo.setAt == nil {
		t.Error("activation was not persisted with a timestamp")
	}
	if !state.IsActive || state.RemainingSeconds == nil {
		t.Fatalf("state = %+v", state)
	}
	if *state.RemainingSeconds <= 0 || *state.RemainingSeconds > 3600 {
		t.Errorf("remaining = %d, want within (0, 3600]", *state.RemainingSeconds)
	}
}

func TestDeactivate(t *testing.T) {
	repo := &fakeUserRepo{user: &domain.User{ID: 1}}
	uc := NewEmergencyUseCase(repo, time.Hour)

	if err := uc.Deactivate(context.Background(), 1); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if repo.setActive || repo.setAt != nil {
		t.Error("deactivation should clear the flag and timestamp")
	}
}

func TestStatus(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		em         domain.Emergency
		wantActive bool
	}{
		{"never activated", domain.Emergency{}, false},
		{
			"live window",
			domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-10 * time.Minute))},
			true,
		},
		{
			"elapsed window reads inactive despite the stored flag",
			domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-2 * time.Hour))},
			false,
		},
		{
			"flag without timestamp",
			domain.Emergency{IsActive: true},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeUserRepo{user: &domain.User{ID: 1, Emergency: tt.em}}
			uc := NewEmergencyUseCase(repo, time.Hour)

			state, err := uc.Status(context.Background(), 1)
			if err != nil {
				t.Fatalf("Status: %v", err)
			}
			if state.IsActive != tt.wantActive {
				t.Errorf("IsActive = %v, want %v", state.IsActive, tt.wantActive)
			}
			if tt.wantActive && (state.RemainingSeconds == nil || *state.RemainingSeconds <= 0) {
				t.Errorf("live state should carry remaining seconds, got %+v", state)
			}
			if !tt.wantActive && state.RemainingSeconds != nil {
				t.Errorf("inactive state should not carry remaining seconds, got %d", *state.RemainingSeconds)
			}
		})
	}
}

func timePtr(t time.Time) *time.Time { return &t }

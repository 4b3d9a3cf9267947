package match

import (
	"testing"
	"time"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

func int64Ptr(v int64) *int64 { return &v }

func timePtr(t time.Time) *time.Time { return &t }

func TestEmergencyOn(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		em   domain.Emergency
		want bool
	}{
		{"inactive", domain.Emergency{}, false},
		{
			"active inside window",
			domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-30 * time.Minute))},
			true,
		},
		{
			"active but window elapsed",
			domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-2 * time.Hour))},
			false,
		},
		{
			"active without timestamp",
			domain.Emergency{IsActive: true},
			false,
		},
		{
			"remaining seconds wins over elapsed window",
			domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-2 * time.Hour)), RemainingSeconds: int64Ptr(120)},
			true,
		},
		{
			"zero remaining seconds",
			domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-5 * time.Minute)), RemainingSeconds: int64Ptr(0)},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &domain.User{Emergency: tt.em}
			if got := EmergencyOn(u, now, time.Hour); got != tt.want {
				t.Errorf("EmergencyOn = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterEmergencyGate(t *testing.T) {
	now := time.Now()
	live := domain.User{ID: 2, Emergency: domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-time.Minute))}}
	stale := domain.User{ID: 3, Emergency: domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-2 * time.Hour))}}
	idle := domain.User{ID: 4}
	cands := []domain.User{live, stale, idle}

	// Inactive viewer empties the whole list, candidates notwithstanding.
	off := &domain.User{ID: 1}
	if got := FilterEmergency(cands, off, now, time.Hour); len(got) != 0 {
		t.Errorf("inactive viewer should see nobody, got %d", len(got))
	}

	on := &domain.User{ID: 1, Emergency: domain.Emergency{IsActive: true, ActivatedAt: timePtr(now.Add(-time.Minute))}}
	got := FilterEmergency(cands, on, now, time.Hour)
	if len(got) != 1 || got[0].ID != live.ID {
		t.Errorf("live viewer should see only live candidates, got %v", got)
	}
}

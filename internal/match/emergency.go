package match

import (
	"time"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

// DefaultEmergencyWindow is how long an activation stays live when no
// explicit window is configured.
const DefaultEmergencyWindow = time.Hour

// EmergencyOn reports whether a user's emergency mode is live at now.
// A server-computed remaining-seconds value wins when present; otherwise the
// activation timestamp must fall inside the window.
func EmergencyOn(u *domain.User, now time.Time, window time.Duration) bool {
	em := u.Emergency
	if !em.IsActive {
		return false
	}
	if em.RemainingSeconds != nil {
		return *em.RemainingSeconds > 0
	}
	if em.ActivatedAt == nil {
		return false
	}
	if window <= 0 {
		window = DefaultEmergencyWindow
	}
	return now.Sub(*em.ActivatedAt) < window
}

// FilterEmergency is the mutual exclusivity gate for emergency matching:
// a viewer who is not live sees nobody, and a live viewer sees only other
// live users.
func FilterEmergency(cands []domain.User, viewer *domain.User, now time.Time, window time.Duration) []domain.User {
	if !EmergencyOn(viewer, now, window) {
		return nil
	}
	out := make([]domain.User, 0, len(cands))
	for _, c := range cands {
		if EmergencyOn(&c, now, window) {
			out = append(out, c)
		}
	}
	return out
}

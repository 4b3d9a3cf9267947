package match

import "github.com/tzchat/tzchat-backend/internal/domain"

// FilterPremiumOnly is the premium-only exposure gate. A viewer with the
// switch ON is hidden system-wide and therefore also searches into nothing;
// for everyone else, candidates with the switch ON are dropped from normal
// results.
func FilterPremiumOnly(cands []domain.User, viewer *domain.User) []domain.User {
	if viewer.MatchPremiumOnly.Bool() {
		return nil
	}
	out := make([]domain.User, 0, len(cands))
	for _, c := range cands {
		if !c.MatchPremiumOnly.Bool() {
			out = append(out, c)
		}
	}
	return out
}

// FilterReceiveOff is the "not accepting friend requests" gate. ON means
// blocking: a blocking viewer sees nobody and is seen by nobody, and
// blocking candidates are dropped from everyone's results.
func FilterReceiveOff(cands []domain.User, viewer *domain.User) []domain.User {
	if viewer.ReceiveOff.Bool() {
		return nil
	}
	out := make([]domain.User, 0, len(cands))
	for _, c := range cands {
		if !c.ReceiveOff.Bool() {
			out = append(out, c)
		}
	}
	return out
}

// ReceiveLimitReached reports whether the pending-request count has hit the
// limit. Negative or zero limits never trip the gate.
func ReceiveLimitReached(pendingCount, receiveLimit int) bool {
	if receiveLimit <= 0 {
		return false
	}
	return pendingCount >= receiveLimit
}

// ApplyReceiveLimit empties the list and flags blocked exposure once the
// limit is reached; below the limit the list passes through untouched.
func ApplyReceiveLimit(cands []domain.User, pendingCount, receiveLimit int) ([]domain.User, bool) {
	if ReceiveLimitReached(pendingCount, receiveLimit) {
		return nil, true
	}
	return cands, false
}

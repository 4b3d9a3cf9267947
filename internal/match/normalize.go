// Package match implements the mutual-visibility filter chain that decides
// which candidates a viewer may see. All predicates are pure functions over
// in-memory profiles; the package performs no I/O and holds no mutable state.
package match

import (
	"strings"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

// normStr trims a raw stored string. Nil-ish inputs arrive as "".
func normStr(v string) string {
	return strings.TrimSpace(v)
}

// isAll reports whether a stored search value means "no constraint".
// "전체", "" and a missing value are interchangeable spellings of the same
// thing and must be treated identically by every predicate.
func isAll(v string) bool {
	s := normStr(v)
	return s == "" || s == domain.Wildcard
}

// normGender maps stored gender tokens (including legacy male/female) onto
// the canonical pair; anything else is unknown.
func normGender(g domain.Gender) domain.Gender {
	switch strings.ToLower(normStr(string(g))) {
	case "man", "male":
		return domain.GenderMan
	case "woman", "female":
		return domain.GenderWoman
	default:
		return domain.GenderUnknown
	}
}

// inYearRange reports whether year is inside [from, to], with nil bounds
// treated as open ends.
func inYearRange(year int, from, to *int) bool {
	if from != nil && year < *from {
		return false
	}
	if to != nil && year > *to {
		return false
	}
	return true
}

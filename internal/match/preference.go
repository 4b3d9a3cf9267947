package match

import (
	"regexp"
	"strings"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

// PreferenceClass is the classification of a search_preference label.
type PreferenceClass string

const (
	// PrefFOAll is "이성친구 - 전체": any opposite-gender user whose own
	// preference starts with 이성친구.
	PrefFOAll PreferenceClass = "FO_ALL"
	// PrefFOOwn is "이성친구 - 내 성향": opposite gender and an exact own-
	// preference match.
	PrefFOOwn PreferenceClass = "FO_OWN"
	// PrefSOAll is "동성친구 - 전체": same gender, 동성친구 head label.
	PrefSOAll PreferenceClass = "SO_ALL"
	// PrefSOOwn is "동성친구 - 내 성향": same gender, exact own preference.
	PrefSOOwn PreferenceClass = "SO_OWN"
	// PrefLegacy is every other label; matching falls back to exact
	// search_preference string equality.
	PrefLegacy PreferenceClass = "LEGACY"
)

const (
	headFriendOpposite = "이성친구"
	headFriendSame     = "동성친구"
)

var (
	hyphenRe = regexp.MustCompile(`\s*-\s*`)
	spaceRe  = regexp.MustCompile(`\s+`)
)

// NormalizeLabel canonicalizes hyphen/whitespace variants of the same
// preference label: "이성친구-전체" and "이성친구  -  전체" both become
// "이성친구 - 전체".
func NormalizeLabel(s string) string {
	t := hyphenRe.ReplaceAllString(normStr(s), " - ")
	return strings.TrimSpace(spaceRe.ReplaceAllString(t, " "))
}

// headOf extracts the leading head label, or "" when the label starts with
// neither head.
func headOf(label string) string {
	t := NormalizeLabel(label)
	switch {
	case strings.HasPrefix(t, headFriendOpposite):
		return headFriendOpposite
	case strings.HasPrefix(t, headFriendSame):
		return headFriendSame
	default:
		return ""
	}
}

// ClassifyPreference maps a search_preference label to exactly one class.
// The mapping is total and deterministic regardless of formatting variants.
func ClassifyPreference(s string) PreferenceClass {
	switch NormalizeLabel(s) {
	case headFriendOpposite + " - 전체":
		return PrefFOAll
	case headFriendOpposite + " - 내 성향":
		return PrefFOOwn
	case headFriendSame + " - 전체":
		return PrefSOAll
	case headFriendSame + " - 내 성향":
		return PrefSOOwn
	default:
		return PrefLegacy
	}
}

// ownPreferenceOf is the candidate's "own tendency" value, falling back to
// the search label when the primary field is empty (legacy records).
func ownPreferenceOf(u *domain.User) string {
	if p := normStr(u.Preference); p != "" {
		return p
	}
	return normStr(u.SearchPreference)
}

// passPreferenceOneWay applies owner's search_preference rule to other.
func passPreferenceOneWay(owner, other *domain.User) bool {
	ownerGender := normGender(owner.Gender)
	otherGender := normGender(other.Gender)
	ownerOwn := NormalizeLabel(owner.Preference)
	otherOwn := NormalizeLabel(ownPreferenceOf(other))

	genderKnown := ownerGender != domain.GenderUnknown && otherGender != domain.GenderUnknown

	switch ClassifyPreference(owner.SearchPreference) {
	case PrefFOAll:
		return genderKnown && ownerGender != otherGender && headOf(otherOwn) == headFriendOpposite
	case PrefFOOwn:
		return genderKnown && ownerGender != otherGender && ownerOwn != "" && otherOwn == ownerOwn
	case PrefSOAll:
		return genderKnown && ownerGender == otherGender && headOf(otherOwn) == headFriendSame
	case PrefSOOwn:
		return genderKnown && ownerGender == otherGender && ownerOwn != "" && otherOwn == ownerOwn
	default:
		// Legacy policy: identical search labels only.
		mine := NormalizeLabel(owner.SearchPreference)
		return mine != "" && mine == NormalizeLabel(other.SearchPreference)
	}
}

// PassPreference is the default, viewer-sided preference predicate.
func PassPreference(viewer, cand *domain.User) bool {
	return passPreferenceOneWay(viewer, cand)
}

// PassPreferenceReciprocal additionally requires the candidate's rule to
// admit the viewer.
func PassPreferenceReciprocal(viewer, cand *domain.User) bool {
	return passPreferenceOneWay(viewer, cand) && passPreferenceOneWay(cand, viewer)
}

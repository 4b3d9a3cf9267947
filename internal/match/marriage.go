package match

import "github.com/tzchat/tzchat-backend/internal/domain"

// passMarriageOneWay applies owner's search_marriage rule to other's
// marriage value. Wildcard admits everyone; otherwise the values must be
// identical, and a candidate with no marriage value cannot satisfy a
// constrained rule.
func passMarriageOneWay(owner, other *domain.User) bool {
	want := normStr(owner.SearchMarriage)
	if isAll(want) {
		return true
	}
	have := normStr(other.Marriage)
	return have != "" && have == want
}

// PassMarriage is the mutual marital-status predicate.
func PassMarriage(viewer, cand *domain.User) bool {
	return passMarriageOneWay(viewer, cand) && passMarriageOneWay(cand, viewer)
}

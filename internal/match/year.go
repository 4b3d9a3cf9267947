package match

import "github.com/tzchat/tzchat-backend/internal/domain"

// passYearOneWay reports whether other's birthyear satisfies owner's search
// range. Both bounds nil is a full wildcard and passes anyone, including
// records with no birthyear; once either bound is set, a missing or
// non-numeric birthyear excludes the record from the year-bounded query.
func passYearOneWay(owner, other *domain.User) bool {
	if owner.SearchBirthyearFrom == nil && owner.SearchBirthyearTo == nil {
		return true
	}
	if other.Birthyear == nil {
		return false
	}
	return inYearRange(*other.Birthyear, owner.SearchBirthyearFrom, owner.SearchBirthyearTo)
}

// PassYear is the mutual birthyear predicate: the candidate must fit the
// viewer's range and the viewer must fit the candidate's.
func PassYear(viewer, cand *domain.User) bool {
	return passYearOneWay(viewer, cand) && passYearOneWay(cand, viewer)
}

package match

import "github.com/tzchat/tzchat-backend/internal/domain"

func hashInSet(hash string, set []string) bool {
	if hash == "" {
		return false
	}
	for _, h := range set {
		if h == hash {
			return true
		}
	}
	return false
}

// PassContacts is the mutual contact-exclusion predicate. With the viewer's
// switch ON, anyone whose phone hash appears in the viewer's uploaded
// contact hashes is hidden; independently, a candidate whose own switch is
// ON hides themselves from anyone in their contact list, viewer's switch
// state notwithstanding.
func PassContacts(viewer, cand *domain.User) bool {
	if viewer.DisconnectLocalContacts.Bool() && hashInSet(cand.PhoneHash, viewer.LocalContactHashes) {
		return false
	}
	if cand.DisconnectLocalContacts.Bool() && hashInSet(viewer.PhoneHash, cand.LocalContactHashes) {
		return false
	}
	return true
}

package match

import (
	"regexp"
	"strings"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

var imageExtRe = regexp.MustCompile(`(?i)\.(png|jpe?g|webp|gif)$`)

// defaultAvatar reports whether a URL points at one of the stock avatars
// assigned at signup.
func defaultAvatar(url string) bool {
	u := strings.ToLower(url)
	return strings.Contains(u, "man.jpg") || strings.Contains(u, "woman.jpg")
}

func looksLikeURL(v string) bool {
	return strings.HasPrefix(v, "http://") || strings.HasPrefix(v, "https://") ||
		strings.HasPrefix(v, "//") || strings.Contains(v, "/") || imageExtRe.MatchString(v)
}

// HasRepresentativePhoto reports whether a record carries a real primary
// photo. When the primary field was part of the projection, an empty value
// means "no photo" and a stock avatar does not count; an opaque image id
// counts by existing. When the field is absent from the record entirely
// (narrow projection), the gallery count is a fail-open fallback so
// incomplete projections do not over-filter.
func HasRepresentativePhoto(u *domain.User) bool {
	if u.ProfileMain != nil {
		main := normStr(*u.ProfileMain)
		if main == "" {
			return false
		}
		if looksLikeURL(main) {
			return !defaultAvatar(main)
		}
		return true
	}
	return u.PhotoCount > 0
}

// PassPhoto is the viewer-sided photo predicate: with the switch OFF
// everything passes; with it ON only candidates with a representative photo
// remain.
func PassPhoto(viewer, cand *domain.User) bool {
	if !viewer.OnlyWithPhoto.Bool() {
		return true
	}
	return HasRepresentativePhoto(cand)
}

package match

import (
	"testing"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

func TestPassContacts(t *testing.T) {
	tests := []struct {
		name   string
		viewer *domain.User
		cand   *domain.User
		want   bool
	}{
		{
			"both off",
			&domain.User{PhoneHash: "v", LocalContactHashes: []string{"c"}},
			&domain.User{PhoneHash: "c", LocalContactHashes: []string{"v"}},
			true,
		},
		{
			"viewer hides a contact",
			&domain.User{DisconnectLocalContacts: domain.SwitchOn, LocalContactHashes: []string{"c"}},
			&domain.User{PhoneHash: "c"},
			false,
		},
		{
			"candidate hides from their contact",
			&domain.User{PhoneHash: "v"},
			&domain.User{DisconnectLocalContacts: domain.SwitchOn, LocalContactHashes: []string{"v"}},
			false,
		},
		{
			"viewer on but candidate not in contacts",
			&domain.User{DisconnectLocalContacts: domain.SwitchOn, LocalContactHashes: []string{"x"}},
			&domain.User{PhoneHash: "c"},
			true,
		},
		{
			"empty hashes never match",
			&domain.User{DisconnectLocalContacts: domain.SwitchOn, LocalContactHashes: []string{""}},
			&domain.User{PhoneHash: ""},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PassContacts(tt.viewer, tt.cand); got != tt.want {
				t.Errorf("PassContacts = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPassContactsIndependentDirections(t *testing.T) {
	// The candidate's switch applies even when the viewer's is off.
	viewer := &domain.User{PhoneHash: "v"}
	cand := &domain.User{
		PhoneHash:               "c",
		DisconnectLocalContacts: domain.SwitchOn,
		LocalContactHashes:      []string{"v"},
	}
	if PassContacts(viewer, cand) {
		t.Error("candidate's exclusion should hold regardless of the viewer's switch")
	}
}

package domain

import (
	"strings"
	"time"
)

// Wildcard is the stored token for "no constraint". A missing value (null)
// and an empty string mean the same thing everywhere a search field is read.
const Wildcard = "전체"

// DefaultReceiveLimit is the pending friend-request threshold applied when a
// user has no explicit limit set.
const DefaultReceiveLimit = 19

// Gender is the stored gender token.
type Gender string

const (
	GenderMan     Gender = "man"
	GenderWoman   Gender = "woman"
	GenderUnknown Gender = ""
)

// Switch is an ON/OFF token as persisted on the user document. Legacy records
// carry arbitrary strings here; anything other than the literal "ON" is OFF.
type Switch string

const (
	SwitchOn  Switch = "ON"
	SwitchOff Switch = "OFF"
)

// Bool reports whether the switch is ON.
func (s Switch) Bool() bool {
	return strings.ToUpper(strings.TrimSpace(string(s))) == string(SwitchOn)
}

// Normalize collapses any stored value to the canonical "ON"/"OFF" pair.
func (s Switch) Normalize() Switch {
	if s.Bool() {
		return SwitchOn
	}
	return SwitchOff
}

// Region is one (region1, region2) pair. region2 == Wildcard means "any
// district of region1"; region1 == Wildcard means "anywhere".
type Region struct {
	Region1 string `json:"region1" db:"region1"`
	Region2 string `json:"region2" db:"region2"`
}

// Emergency is the time-boxed emergency-matching state of a user.
type Emergency struct {
	IsActive    bool       `json:"is_active" db:"emergency_is_active"`
	ActivatedAt *time.Time `json:"activated_at" db:"emergency_activated_at"`
	// RemainingSeconds is an optional server-computed value; when present it
	// wins over the ActivatedAt window.
	RemainingSeconds *int64 `json:"remaining_seconds,omitempty" db:"-"`
}

// User is the search profile the matching engine consumes. Search fields are
// owned by the user and mutated through the profile use case; the engine
// treats them as read-only inputs.
type User struct {
	ID           int64  `json:"id" db:"id"`
	Username     string `json:"username" db:"username"`
	Nickname     string `json:"nickname" db:"nickname"`
	PasswordHash string `json:"-" db:"password_hash"`

	Birthyear *int   `json:"birthyear" db:"birthyear"`
	Gender    Gender `json:"gender" db:"gender"`
	Region1   string `json:"region1" db:"region1"`
	Region2   string `json:"region2" db:"region2"`
	Marriage  string `json:"marriage" db:"marriage"`

	// Preference is the user's own preference label ("이성친구 - 일반" etc).
	Preference string `json:"preference" db:"preference"`

	// Search constraints. Nil year bounds are open ends; an empty
	// SearchRegions list is a full wildcard; the regions are an
	// OR-disjunction.
	SearchBirthyearFrom *int     `json:"search_birthyear_from" db:"search_birthyear_from"`
	SearchBirthyearTo   *int     `json:"search_birthyear_to" db:"search_birthyear_to"`
	SearchRegions       []Region `json:"search_regions" db:"-"`
	SearchPreference    string   `json:"search_preference" db:"search_preference"`
	SearchMarriage      string   `json:"search_marriage" db:"search_marriage"`

	// ON/OFF switches. ReceiveOff ON means the user is not accepting friend
	// requests at all; they neither see nor appear in search results.
	DisconnectLocalContacts Switch `json:"search_disconnect_local_contacts" db:"search_disconnect_local_contacts"`
	ReceiveOff              Switch `json:"search_receive_off" db:"search_receive_off"`
	OnlyWithPhoto           Switch `json:"search_only_with_photo" db:"search_only_with_photo"`
	MatchPremiumOnly        Switch `json:"search_match_premium_only" db:"search_match_premium_only"`

	Emergency Emergency `json:"emergency" db:"-"`

	PhoneHash          string   `json:"-" db:"phone_hash"`
	LocalContactHashes []string `json:"-" db:"-"`

	PendingRequestCount int `json:"pending_request_count" db:"-"`
	ReceiveLimit        int `json:"receive_limit" db:"receive_limit"`

	// ProfileMain is nil when the column was not part of the projection, as
	// opposed to present-but-empty; the photo filter fails open on nil.
	ProfileMain *string `json:"profile_main" db:"profile_main"`
	PhotoCount  int     `json:"photo_count" db:"photo_count"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EffectiveReceiveLimit returns the configured limit or the default.
func (u *User) EffectiveReceiveLimit() int {
	if u.ReceiveLimit > 0 {
		return u.ReceiveLimit
	}
	return DefaultReceiveLimit
}

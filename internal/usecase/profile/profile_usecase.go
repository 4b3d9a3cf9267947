package profile

import (
	"context"
	"fmt"
	"strings"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

type ProfileUseCase struct {
	userRepo repository.UserRepository
}

func NewProfileUseCase(userRepo repository.UserRepository) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo}
}

// UpdateSearchSettingsRequest represents a search-settings update. Pointer
// fields distinguish "not sent" from "set to empty"; the wildcard token and
// the empty string both clear a constraint.
type UpdateSearchSettingsRequest struct {
	SearchBirthyearFrom *string          `json:"search_birthyear_from" binding:"omitempty,max=8"`
	SearchBirthyearTo   *string          `json:"search_birthyear_to" binding:"omitempty,max=8"`
	SearchRegions       *[]domain.Region `json:"search_regions" binding:"omitempty,max=20,dive"`
	SearchPreference    *string          `json:"search_preference" binding:"omitempty,max=64"`
	SearchMarriage      *string          `json:"search_marriage" binding:"omitempty,max=32"`

	DisconnectLocalContacts *string `json:"search_disconnect_local_contacts" binding:"omitempty,switchtoken"`
	ReceiveOff              *string `json:"search_receive_off" binding:"omitempty,switchtoken"`
	OnlyWithPhoto           *string `json:"search_only_with_photo" binding:"omitempty,switchtoken"`
	MatchPremiumOnly        *string `json:"search_match_premium_only" binding:"omitempty,switchtoken"`

	ReceiveLimit *int `json:"receive_limit" binding:"omitempty,min=0,max=1000"`
}

// GetSearchSettings returns the user's current search profile.
func (uc *ProfileUseCase) GetSearchSettings(ctx context.Context, userID int64) (*domain.User, error) {
	return uc.userRepo.GetByID(ctx, userID)
}

// UpdateSearchSettings applies a partial update, normalizing every value to
// its stored form before persisting.
func (uc *ProfileUseCase) UpdateSearchSettings(ctx context.Context, userID int64, req *UpdateSearchSettingsRequest) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.SearchBirthyearFrom != nil {
		year, err := parseYearBound(*req.SearchBirthyearFrom)
		if err != nil {
			return nil, err
		}
		user.SearchBirthyearFrom = year
	}
	if req.SearchBirthyearTo != nil {
		year, err := parseYearBound(*req.SearchBirthyearTo)
		if err != nil {
			return nil, err
		}
		user.SearchBirthyearTo = year
	}
	if user.SearchBirthyearFrom != nil && user.SearchBirthyearTo != nil &&
		*user.SearchBirthyearFrom > *user.SearchBirthyearTo {
		return nil, fmt.Errorf("%w: birthyear range is inverted", domain.ErrInvalidInput)
	}

	if req.SearchRegions != nil {
		user.SearchRegions = normalizeRegions(*req.SearchRegions)
	}
	if req.SearchPreference != nil {
		user.SearchPreference = strings.TrimSpace(*req.SearchPreference)
	}
	if req.SearchMarriage != nil {
		user.SearchMarriage = strings.TrimSpace(*req.SearchMarriage)
	}

	if req.DisconnectLocalContacts != nil {
		user.DisconnectLocalContacts = domain.Switch(*req.DisconnectLocalContacts).Normalize()
	}
	if req.ReceiveOff != nil {
		user.ReceiveOff = domain.Switch(*req.ReceiveOff).Normalize()
	}
	if req.OnlyWithPhoto != nil {
		user.OnlyWithPhoto = domain.Switch(*req.OnlyWithPhoto).Normalize()
	}
	if req.MatchPremiumOnly != nil {
		user.MatchPremiumOnly = domain.Switch(*req.MatchPremiumOnly).Normalize()
	}

	if req.ReceiveLimit != nil {
		user.ReceiveLimit = *req.ReceiveLimit
	}

	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update search settings: %w", err)
	}
	return user, nil
}

// parseYearBound turns a year field into an optional bound. The wildcard
// token and the empty string both mean "no bound".
func parseYearBound(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == domain.Wildcard {
		return nil, nil
	}
	var year int
	if _, err := fmt.Sscanf(s, "%d", &year); err != nil {
		return nil, fmt.Errorf("%w: invalid birthyear %q", domain.ErrInvalidInput, s)
	}
	if year < 1900 || year > 2100 {
		return nil, fmt.Errorf("%w: birthyear %d out of range", domain.ErrInvalidInput, year)
	}
	return &year, nil
}

// normalizeRegions trims entries and drops fully empty pairs. A pair whose
// region1 is the wildcard swallows the rest of the list: it already admits
// everything.
func normalizeRegions(regions []domain.Region) []domain.Region {
	out := make([]domain.Region, 0, len(regions))
	for _, r := range regions {
		r.Region1 = strings.TrimSpace(r.Region1)
		r.Region2 = strings.TrimSpace(r.Region2)
		if r.Region1 == "" && r.Region2 == "" {
			continue
		}
		if r.Region1 == domain.Wildcard {
			return []domain.Region{r}
		}
		out = append(out, r)
	}
	return out
}

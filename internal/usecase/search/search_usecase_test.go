package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

type fakeUserRepo struct {
	repository.UserRepository
	viewer *domain.User
	cands  []domain.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.viewer == nil || f.viewer.ID != id {
		return nil, domain.ErrUserNotFound
	}
	v := *f.viewer
	return &v, nil
}

func (f *fakeUserRepo) ListCandidates(ctx context.Context, viewer *domain.User, regions []domain.Region) ([]domain.User, error) {
	return f.cands, nil
}

type fakeFriendReqRepo struct {
	pending int
}

func (f *fakeFriendReqRepo) CountPending(ctx context.Context, userID int64) (int, error) {
	return f.pending, nil
}

func wideOpenUser(id int64) domain.User {
	return domain.User{
		ID:               id,
		Birthyear:        intPtr(1990),
		Gender:           domain.GenderWoman,
		Region1:          "서울",
		Region2:          "강남구",
		SearchPreference: domain.Wildcard,
	}
}

func intPtr(v int) *int { return &v }

func newUC(users *fakeUserRepo, friends *fakeFriendReqRepo) *SearchUseCase {
	return NewSearchUseCase(users, friends, Options{EmergencyWindow: time.Hour}, zap.NewNop())
}

func TestSearchHappyPath(t *testing.T) {
	viewer := wideOpenUser(1)
	users := &fakeUserRepo{viewer: &viewer, cands: []domain.User{wideOpenUser(2), wideOpenUser(3)}}
	uc := newUC(users, &fakeFriendReqRepo{})

	res, err := uc.Search(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Users) != 2 || res.ExposureBlocked {
		t.Errorf("got %d users, blocked=%v", len(res.Users), res.ExposureBlocked)
	}
}

func TestSearchMissingViewerIsError(t *testing.T) {
	uc := newUC(&fakeUserRepo{}, &fakeFriendReqRepo{})
	_, err := uc.Search(context.Background(), 1, nil)
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("missing viewer should surface ErrUserNotFound, got %v", err)
	}
}

func TestSearchAppliesPendingCount(t *testing.T) {
	viewer := wideOpenUser(1)
	users := &fakeUserRepo{viewer: &viewer, cands: []domain.User{wideOpenUser(2)}}
	uc := newUC(users, &fakeFriendReqRepo{pending: domain.DefaultReceiveLimit})

	res, err := uc.Search(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Users) != 0 || !res.ExposureBlocked {
		t.Errorf("full inbox should block exposure, got %d users, blocked=%v", len(res.Users), res.ExposureBlocked)
	}
}

func TestSearchExclusions(t *testing.T) {
	viewer := wideOpenUser(1)
	users := &fakeUserRepo{viewer: &viewer, cands: []domain.User{wideOpenUser(2), wideOpenUser(3)}}
	uc := newUC(users, &fakeFriendReqRepo{})

	res, err := uc.Search(context.Background(), 1, []int64{2})
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(res.Users) != 1 || res.Users[0].ID != 3 {
		t.Errorf("want only user 3, got %v", res.Users)
	}
}

func TestSearchEmergencyTier(t *testing.T) {
	now := time.Now()
	viewer := wideOpenUser(1)
	viewer.Emergency = domain.Emergency{IsActive: true, ActivatedAt: &now}

	live := wideOpenUser(2)
	live.Emergency = domain.Emergency{IsActive: true, ActivatedAt: &now}
	idle := wideOpenUser(3)

	users := &fakeUserRepo{viewer: &viewer, cands: []domain.User{live, idle}}
	uc := newUC(users, &fakeFriendReqRepo{})

	res, err := uc.SearchEmergency(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("SearchEmergency: %v", err)
	}
	if len(res.Users) != 1 || res.Users[0].ID != live.ID {
		t.Errorf("want only the live candidate, got %v", res.Users)
	}
}

func TestSearchReturnsEmptySliceNotNil(t *testing.T) {
	viewer := wideOpenUser(1)
	viewer.MatchPremiumOnly = domain.SwitchOn
	users := &fakeUserRepo{viewer: &viewer, cands: []domain.User{wideOpenUser(2)}}
	uc := newUC(users, &fakeFriendReqRepo{})

	res, err := uc.Search(context.Background(), 1, nil)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Users == nil {
		t.Error("empty result should serialize as [], not null")
	}
}

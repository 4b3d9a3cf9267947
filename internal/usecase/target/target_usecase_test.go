package target

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

type fakeScoreRepo struct {
	repository.ScoreRepository
	scores []domain.DailyScore
	ymd    string
	limit  int
}

func (f *fakeScoreRepo) ListTopScores(ctx context.Context, ymd string, limit int) ([]domain.DailyScore, error) {
	f.ymd, f.limit = ymd, limit
	if limit > len(f.scores) {
		limit = len(f.scores)
	}
	return f.scores[:limit], nil
}

type fakeUserRepo struct {
	repository.UserRepository
	users map[int64]domain.User
}

func (f *fakeUserRepo) ListByIDs(ctx context.Context, ids []int64) ([]domain.User, error) {
	out := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := f.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func fixture() (*fakeScoreRepo, *fakeUserRepo) {
	scores := &fakeScoreRepo{scores: []domain.DailyScore{
		{UserID: 3, YMD: "2026-08-27", ExposureScore: 0.9},
		{UserID: 1, YMD: "2026-08-27", ExposureScore: 0.5},
		{UserID: 2, YMD: "2026-08-27", ExposureScore: 0.2},
	}}
	users := &fakeUserRepo{users: map[int64]domain.User{
		1: {ID: 1, Nickname: "a"},
		2: {ID: 2, Nickname: "b"},
		3: {ID: 3, Nickname: "c"},
	}}
	return scores, users
}

func TestListTargetsRanked(t *testing.T) {
	scores, users := fixture()
	uc := NewTargetUseCase(scores, users, nil, zap.NewNop())

	got, err := uc.ListTargets(context.Background(), 99, "2026-08-27", 10, nil)
	if err != nil {
		t.Fatalf("ListTargets: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 targets, got %d", len(got))
	}
	wantOrder := []int64{3, 1, 2}
	for i, target := range got {
		if target.UserID != wantOrder[i] {
			t.Errorf("rank %d: got user %d, want %d", i+1, target.UserID, wantOrder[i])
		}
		if target.Rank != i+1 {
			t.Errorf("rank field = %d, want %d", target.Rank, i+1)
		}
	}
	if scores.ymd != "2026-08-27" {
		t.Errorf("queried ymd %q", scores.ymd)
	}
}

func TestListTargetsExcludesViewerAndGivenIDs(t *testing.T) {
	scores, users := fixture()
	uc := NewTargetUseCase(scores, users, nil, zap.NewNop())

	got, err := uc.ListTargets(context.Background(), 3, "2026-08-27", 10, []int64{2})
	if err != nil {
		t.Fatalf("ListTargets: %v", err)
	}
	if len(got) != 1 || got[0].UserID != 1 {
		t.Fatalf("want only user 1, got %v", got)
	}
	// Ranks are reassigned after exclusion.
	if got[0].Rank != 1 {
		t.Errorf("rank = %d, want 1", got[0].Rank)
	}
}

func TestListTargetsLimit(t *testing.T) {
	scores, users := fixture()
	uc := NewTargetUseCase(scores, users, nil, zap.NewNop())

	got, err := uc.ListTargets(context.Background(), 99, "2026-08-27", 2, nil)
	if err != nil {
		t.Fatalf("ListTargets: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("limit not applied: got %d", len(got))
	}
	// The board is oversampled so exclusions still fill a page.
	if scores.limit != 2*poolMultiplier {
		t.Errorf("board size = %d, want %d", scores.limit, 2*poolMultiplier)
	}
}

func TestListTargetsSkipsDeletedUsers(t *testing.T) {
	scores, users := fixture()
	delete(users.users, 1)
	uc := NewTargetUseCase(scores, users, nil, zap.NewNop())

	got, err := uc.ListTargets(context.Background(), 99, "2026-08-27", 10, nil)
	if err != nil {
		t.Fatalf("ListTargets: %v", err)
	}
	for _, target := range got {
		if target.UserID == 1 {
			t.Error("deleted user leaked into the board")
		}
	}
	if len(got) != 2 {
		t.Errorf("expected 2 targets, got %d", len(got))
	}
}

func TestListTargetsEmptyDay(t *testing.T) {
	uc := NewTargetUseCase(&fakeScoreRepo{}, &fakeUserRepo{}, nil, zap.NewNop())
	got, err := uc.ListTargets(context.Background(), 99, "2026-08-27", 10, nil)
	if err != nil {
		t.Fatalf("ListTargets: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("unscored day should yield an empty board, got %d", len(got))
	}
}

package dailyscore

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
	"github.com/tzchat/tzchat-backend/internal/scoring"
)

type fakeUserRepo struct {
	repository.UserRepository
	ids []int64
}

func (f *fakeUserRepo) ListActiveIDs(ctx context.Context) ([]int64, error) {
	return f.ids, nil
}

type fakeEventRepo struct {
	repository.EventRepository
	events []domain.ActivityEvent
	from   time.Time
	to     time.Time
}

func (f *fakeEventRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.ActivityEvent, error) {
	f.from, f.to = from, to
	return f.events, nil
}

type fakeScoreRepo struct {
	repository.ScoreRepository
	aggs   map[int64]domain.DailyAggregate
	scores map[int64]domain.DailyScore
}

func newFakeScoreRepo() *fakeScoreRepo {
	return &fakeScoreRepo{
		aggs:   make(map[int64]domain.DailyAggregate),
		scores: make(map[int64]domain.DailyScore),
	}
}

func (f *fakeScoreRepo) UpsertAggregate(ctx context.Context, agg *domain.DailyAggregate) error {
	f.aggs[agg.UserID] = *agg
	return nil
}

func (f *fakeScoreRepo) UpsertScore(ctx context.Context, score *domain.DailyScore) error {
	f.scores[score.UserID] = *score
	return nil
}

func TestJobRun(t *testing.T) {
	day := time.Date(2026, 8, 27, 10, 0, 0, 0, scoring.Seoul)
	users := &fakeUserRepo{ids: []int64{1, 2}}
	events := &fakeEventRepo{events: []domain.ActivityEvent{
		{ActorUserID: 1, Type: domain.EventMessage, CreatedAt: day},
		{ActorUserID: 1, Type: domain.EventFriendReqAccepted, CreatedAt: day},
	}}
	scores := newFakeScoreRepo()

	job := NewJob(users, events, scores, scoring.HalfLife, zap.NewNop())
	if err := job.Run(context.Background(), "2026-08-27"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	// Events were requested for the Seoul day interval.
	wantFrom, wantTo, _ := scoring.DayBounds("2026-08-27")
	if !events.from.Equal(wantFrom) || !events.to.Equal(wantTo) {
		t.Errorf("event interval [%v, %v), want [%v, %v)", events.from, events.to, wantFrom, wantTo)
	}

	// Every active user got an aggregate and a score row.
	if len(scores.aggs) != 2 || len(scores.scores) != 2 {
		t.Fatalf("got %d aggregates, %d scores; want 2 each", len(scores.aggs), len(scores.scores))
	}
	if agg := scores.aggs[1]; agg.MessagesSent != 1 || agg.FriendReqAccepted != 1 {
		t.Errorf("user 1 aggregate wrong: %+v", agg)
	}
	if agg := scores.aggs[2]; agg != (domain.DailyAggregate{UserID: 2, YMD: "2026-08-27"}) {
		t.Errorf("inactive user should get a zero row, got %+v", agg)
	}

	active := scores.scores[1]
	idle := scores.scores[2]
	if active.ExposureScore <= idle.ExposureScore {
		t.Errorf("active user should outscore the idle one: %v vs %v", active.ExposureScore, idle.ExposureScore)
	}
	if idle.ActivityScore != 0 {
		t.Errorf("idle activity should be zero, got %v", idle.ActivityScore)
	}
	if active.Weights != scoring.DefaultWeights() {
		t.Errorf("score should snapshot the weights used, got %+v", active.Weights)
	}
}

func TestJobRunInvalidDay(t *testing.T) {
	job := NewJob(&fakeUserRepo{}, &fakeEventRepo{}, newFakeScoreRepo(), scoring.HalfLife, zap.NewNop())
	if err := job.Run(context.Background(), "garbage"); err == nil {
		t.Error("invalid ymd should error")
	}
}

func TestJobRunRerunOverwrites(t *testing.T) {
	users := &fakeUserRepo{ids: []int64{1}}
	events := &fakeEventRepo{}
	scores := newFakeScoreRepo()
	job := NewJob(users, events, scores, scoring.HalfLife, zap.NewNop())

	if err := job.Run(context.Background(), "2026-08-27"); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := scores.aggs[1]

	day := time.Date(2026, 8, 27, 9, 0, 0, 0, scoring.Seoul)
	events.events = []domain.ActivityEvent{{ActorUserID: 1, Type: domain.EventBlock, CreatedAt: day}}
	if err := job.Run(context.Background(), "2026-08-27"); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := scores.aggs[1]

	if first.BlocksDone != 0 || second.BlocksDone != 1 {
		t.Errorf("rerun should replace the aggregate: first %+v, second %+v", first, second)
	}
}

func TestNextRunAt(t *testing.T) {
	before := time.Date(2026, 8, 28, 9, 0, 0, 0, scoring.Seoul)
	if got := nextRunAt(before, 11); !got.Equal(time.Date(2026, 8, 28, 11, 0, 0, 0, scoring.Seoul)) {
		t.Errorf("before the hour: got %v", got)
	}

	after := time.Date(2026, 8, 28, 11, 0, 0, 0, scoring.Seoul)
	if got := nextRunAt(after, 11); !got.Equal(time.Date(2026, 8, 29, 11, 0, 0, 0, scoring.Seoul)) {
		t.Errorf("at the hour: got %v", got)
	}
}

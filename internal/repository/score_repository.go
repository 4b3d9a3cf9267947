package repository

import (
	"context"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

// ScoreRepository persists the batch outputs. Both upserts are full-replace
// writes keyed by (user_id, ymd): reruns overwrite, never accumulate, so
// concurrent backfills of the same day are safe without locking.
type ScoreRepository interface {
	UpsertAggregate(ctx context.Context, agg *domain.DailyAggregate) error
	ListAggregates(ctx context.Context, ymd string) ([]domain.DailyAggregate, error)
	UpsertScore(ctx context.Context, score *domain.DailyScore) error
	// ListTopScores returns the day's rows ordered by exposure score
	// descending, ties broken by most recent update first.
	ListTopScores(ctx context.Context, ymd string, limit int) ([]domain.DailyScore, error)
}

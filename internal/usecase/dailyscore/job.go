package dailyscore

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/repository"
	"github.com/tzchat/tzchat-backend/internal/scoring"
)

// Job is the daily aggregation-and-scoring batch. Running it twice for the
// same day is safe: both writes are full-replace upserts keyed by
// (user_id, ymd).
type Job struct {
	userRepo  repository.UserRepository
	eventRepo repository.EventRepository
	scoreRepo repository.ScoreRepository
	halfLife  time.Duration
	logger    *zap.Logger
}

func NewJob(
	userRepo repository.UserRepository,
	eventRepo repository.EventRepository,
	scoreRepo repository.ScoreRepository,
	halfLife time.Duration,
	logger *zap.Logger,
) *Job {
	return &Job{
		userRepo:  userRepo,
		eventRepo: eventRepo,
		scoreRepo: scoreRepo,
		halfLife:  halfLife,
		logger:    logger,
	}
}

// Run aggregates one Asia/Seoul day and recomputes its scores. An empty ymd
// scores yesterday, the usual case for a morning batch.
func (j *Job) Run(ctx context.Context, ymd string) error {
	if ymd == "" {
		ymd = scoring.YMD(time.Now().AddDate(0, 0, -1))
	}
	from, to, err := scoring.DayBounds(ymd)
	if err != nil {
		return err
	}
	started := time.Now()

	userIDs, err := j.userRepo.ListActiveIDs(ctx)
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}
	events, err := j.eventRepo.ListBetween(ctx, from, to)
	if err != nil {
		return fmt.Errorf("failed to list events: %w", err)
	}

	aggs := scoring.Aggregate(ymd, userIDs, events)
	weights := scoring.DefaultWeights()
	caps := scoring.DefaultCaps()
	now := time.Now()

	for i := range aggs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := j.scoreRepo.UpsertAggregate(ctx, &aggs[i]); err != nil {
			return fmt.Errorf("failed to upsert aggregate for user %d: %w", aggs[i].UserID, err)
		}
		score, err := scoring.Compose(aggs[i], now, weights, caps, j.halfLife)
		if err != nil {
			return err
		}
		if err := j.scoreRepo.UpsertScore(ctx, &score); err != nil {
			return fmt.Errorf("failed to upsert score for user %d: %w", score.UserID, err)
		}
	}

	j.logger.Info("daily score batch finished",
		zap.String("ymd", ymd),
		zap.Int("users", len(userIDs)),
		zap.Int("events", len(events)),
		zap.Duration("took", time.Since(started)))
	return nil
}

// RunLoop fires Run once per day at batchHour in Asia/Seoul until the
// context is cancelled. A failed run logs and waits for the next day.
func (j *Job) RunLoop(ctx context.Context, batchHour int) {
	for {
		next := nextRunAt(time.Now(), batchHour)
		j.logger.Info("daily score batch scheduled", zap.Time("next_run", next))

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if err := j.Run(ctx, ""); err != nil {
			j.logger.Error("daily score batch failed", zap.Error(err))
		}
	}
}

// nextRunAt returns the next batchHour o'clock in Asia/Seoul strictly after
// now.
func nextRunAt(now time.Time, batchHour int) time.Time {
	local := now.In(scoring.Seoul)
	run := time.Date(local.Year(), local.Month(), local.Day(), batchHour, 0, 0, 0, scoring.Seoul)
	if !run.After(local) {
		run = run.AddDate(0, 0, 1)
	}
	return run
}

package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

type scoreRepository struct {
	db *sqlx.DB
}

func NewScoreRepository(db *sqlx.DB) repository.ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) UpsertAggregate(ctx context.Context, agg *domain.DailyAggregate) error {
	// Full replace keyed by (user_id, ymd): reruns overwrite, never add.
	query := `
		INSERT INTO daily_aggregates (
			user_id, ymd, messages_sent, messages_recv,
			friend_req_sent, friend_req_recv, friend_req_accepted, blocks_done
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, ymd) DO UPDATE SET
			messages_sent = EXCLUDED.messages_sent,
			messages_recv = EXCLUDED.messages_recv,
			friend_req_sent = EXCLUDED.friend_req_sent,
			friend_req_recv = EXCLUDED.friend_req_recv,
			friend_req_accepted = EXCLUDED.friend_req_accepted,
			blocks_done = EXCLUDED.blocks_done
	`
	_, err := r.db.ExecContext(
		ctx, query,
		agg.UserID, agg.YMD, agg.MessagesSent, agg.MessagesRecv,
		agg.FriendReqSent, agg.FriendReqRecv, agg.FriendReqAccepted, agg.BlocksDone,
	)
	return err
}

func (r *scoreRepository) ListAggregates(ctx context.Context, ymd string) ([]domain.DailyAggregate, error) {
	var aggs []domain.DailyAggregate
	query := `
		SELECT user_id, ymd, messages_sent, messages_recv,
		       friend_req_sent, friend_req_recv, friend_req_accepted, blocks_done
		FROM daily_aggregates
		WHERE ymd = $1
		ORDER BY user_id
	`
	err := r.db.SelectContext(ctx, &aggs, query, ymd)
	return aggs, err
}

func (r *scoreRepository) UpsertScore(ctx context.Context, score *domain.DailyScore) error {
	query := `
		INSERT INTO daily_scores (
			user_id, ymd, activity_score, recency_score, exposure_score, weights, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, ymd) DO UPDATE SET
			activity_score = EXCLUDED.activity_score,
			recency_score = EXCLUDED.recency_score,
			exposure_score = EXCLUDED.exposure_score,
			weights = EXCLUDED.weights,
			updated_at = CURRENT_TIMESTAMP
		RETURNING updated_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		score.UserID, score.YMD, score.ActivityScore, score.RecencyScore,
		score.ExposureScore, score.Weights,
	).Scan(&score.UpdatedAt)
}

func (r *scoreRepository) ListTopScores(ctx context.Context, ymd string, limit int) ([]domain.DailyScore, error) {
	var scores []domain.DailyScore
	query := `
		SELECT user_id, ymd, activity_score, recency_score, exposure_score, weights, updated_at
		FROM daily_scores
		WHERE ymd = $1
		ORDER BY exposure_score DESC, updated_at DESC
		LIMIT $2
	`
	err := r.db.SelectContext(ctx, &scores, query, ymd, limit)
	return scores, err
}

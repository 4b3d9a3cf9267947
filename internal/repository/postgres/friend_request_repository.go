package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tzchat/tzchat-backend/internal/repository"
)

type friendRequestRepository struct {
	db *sqlx.DB
}

func NewFriendRequestRepository(db *sqlx.DB) repository.FriendRequestRepository {
	return &friendRequestRepository{db: db}
}

func (r *friendRequestRepository) CountPending(ctx context.Context, userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM friend_requests WHERE to_user_id = $1 AND status = 'pending'`
	err := r.db.GetContext(ctx, &count, query, userID)
	return count, err
}

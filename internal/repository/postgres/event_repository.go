package postgres

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

type eventRepository struct {
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.ActivityEvent) error {
	query := `
		INSERT INTO activity_events (actor_user_id, type, created_at)
		VALUES ($1, $2, COALESCE($3, CURRENT_TIMESTAMP))
		RETURNING id, created_at
	`
	var createdAt *time.Time
	if !event.CreatedAt.IsZero() {
		createdAt = &event.CreatedAt
	}
	return r.db.QueryRowContext(ctx, query, event.ActorUserID, event.Type, createdAt).
		Scan(&event.ID, &event.CreatedAt)
}

func (r *eventRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.ActivityEvent, error) {
	var events []domain.ActivityEvent
	query := `
		SELECT id, actor_user_id, type, created_at
		FROM activity_events
		WHERE created_at >= $1 AND created_at < $2
		ORDER BY id
	`
	err := r.db.SelectContext(ctx, &events, query, from, to)
	return events, err
}

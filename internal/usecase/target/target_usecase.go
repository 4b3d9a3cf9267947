package target

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/repository"
	"github.com/tzchat/tzchat-backend/internal/scoring"
)

const (
	// cacheTTL bounds staleness between batch runs; the key is also
	// day-scoped so a new day never reads yesterday's board.
	cacheTTL = 10 * time.Minute

	// poolMultiplier oversamples the score board so per-viewer exclusions
	// still leave a full page.
	poolMultiplier = 3
)

type TargetUseCase struct {
	scoreRepo repository.ScoreRepository
	userRepo  repository.UserRepository
	redis     *redis.Client
	logger    *zap.Logger
}

func NewTargetUseCase(
	scoreRepo repository.ScoreRepository,
	userRepo repository.UserRepository,
	redisClient *redis.Client,
	logger *zap.Logger,
) *TargetUseCase {
	return &TargetUseCase{
		scoreRepo: scoreRepo,
		userRepo:  userRepo,
		redis:     redisClient,
		logger:    logger,
	}
}

// ListTargets returns up to limit ranked candidates for a viewer, ordered by
// exposure score of the given day (today in Asia/Seoul when ymd is empty).
// The viewer and the excluded ids never appear; ranks are reassigned after
// exclusion so the page is always 1..n.
func (uc *TargetUseCase) ListTargets(ctx context.Context, viewerID int64, ymd string, limit int, exclude []int64) ([]domain.RankedTarget, error) {
	if limit <= 0 {
		limit = 20
	}
	if ymd == "" {
		ymd = scoring.YMD(time.Now())
	}

	board, err := uc.board(ctx, ymd, limit*poolMultiplier)
	if err != nil {
		return nil, err
	}

	excludeSet := make(map[int64]struct{}, len(exclude)+1)
	excludeSet[viewerID] = struct{}{}
	for _, id := range exclude {
		excludeSet[id] = struct{}{}
	}

	out := make([]domain.RankedTarget, 0, limit)
	for _, t := range board {
		if _, skip := excludeSet[t.UserID]; skip {
			continue
		}
		t.Rank = len(out) + 1
		out = append(out, t)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

// board loads the day's ranked board, serving from cache when possible. The
// board is viewer-independent; exclusions happen after.
func (uc *TargetUseCase) board(ctx context.Context, ymd string, size int) ([]domain.RankedTarget, error) {
	key := fmt.Sprintf("targets:%s:%d", ymd, size)

	if uc.redis != nil {
		cached, err := uc.redis.Get(ctx, key).Bytes()
		if err == nil {
			var board []domain.RankedTarget
			if err := json.Unmarshal(cached, &board); err == nil {
				return board, nil
			}
		} else if err != redis.Nil {
			uc.logger.Warn("target cache read failed", zap.Error(err))
		}
	}

	board, err := uc.buildBoard(ctx, ymd, size)
	if err != nil {
		return nil, err
	}

	if uc.redis != nil {
		if payload, err := json.Marshal(board); err == nil {
			if err := uc.redis.Set(ctx, key, payload, cacheTTL).Err(); err != nil {
				uc.logger.Warn("target cache write failed", zap.Error(err))
			}
		}
	}
	return board, nil
}

func (uc *TargetUseCase) buildBoard(ctx context.Context, ymd string, size int) ([]domain.RankedTarget, error) {
	scores, err := uc.scoreRepo.ListTopScores(ctx, ymd, size)
	if err != nil {
		return nil, fmt.Errorf("failed to list top scores: %w", err)
	}
	if len(scores) == 0 {
		return []domain.RankedTarget{}, nil
	}

	ids := make([]int64, 0, len(scores))
	for _, s := range scores {
		ids = append(ids, s.UserID)
	}
	users, err := uc.userRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load target profiles: %w", err)
	}
	byID := make(map[int64]*domain.User, len(users))
	for i := range users {
		byID[users[i].ID] = &users[i]
	}

	board := make([]domain.RankedTarget, 0, len(scores))
	for _, s := range scores {
		u, ok := byID[s.UserID]
		if !ok {
			// Scored user has since been deleted.
			continue
		}
		board = append(board, domain.RankedTarget{
			UserID:        u.ID,
			Nickname:      u.Nickname,
			Birthyear:     u.Birthyear,
			Gender:        u.Gender,
			Region1:       u.Region1,
			Region2:       u.Region2,
			ProfileMain:   u.ProfileMain,
			ExposureScore: s.ExposureScore,
			Rank:          len(board) + 1,
		})
	}
	return board, nil
}

package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/domain"
	"github.com/tzchat/tzchat-backend/internal/match"
	"github.com/tzchat/tzchat-backend/internal/repository"
)

// Options are the per-deployment knobs handed to every chain evaluation.
type Options struct {
	EmergencyWindow      time.Duration
	ReciprocalPreference bool
}

type SearchUseCase struct {
	userRepo      repository.UserRepository
	friendReqRepo repository.FriendRequestRepository
	opts          Options
	logger        *zap.Logger
}

func NewSearchUseCase(
	userRepo repository.UserRepository,
	friendReqRepo repository.FriendRequestRepository,
	opts Options,
	logger *zap.Logger,
) *SearchUseCase {
	return &SearchUseCase{
		userRepo:      userRepo,
		friendReqRepo: friendReqRepo,
		opts:          opts,
		logger:        logger,
	}
}

// SearchResponse is a filtered candidate list. ExposureBlocked is raised when
// the viewer's own inbox is full, which also hides them from others.
type SearchResponse struct {
	Users           []domain.User `json:"users"`
	ExposureBlocked bool          `json:"exposure_blocked"`
}

// Search runs the normal-tier composition for a viewer. The viewer must
// exist; a missing viewer is an error, not an empty result.
func (uc *SearchUseCase) Search(ctx context.Context, viewerID int64, exclude []int64) (*SearchResponse, error) {
	return uc.run(ctx, viewerID, exclude, false)
}

// SearchEmergency runs the premium-tier composition, which matches through
// emergency mode instead of the premium-only gate.
func (uc *SearchUseCase) SearchEmergency(ctx context.Context, viewerID int64, exclude []int64) (*SearchResponse, error) {
	return uc.run(ctx, viewerID, exclude, true)
}

func (uc *SearchUseCase) run(ctx context.Context, viewerID int64, exclude []int64, premium bool) (*SearchResponse, error) {
	viewer, err := uc.userRepo.GetByID(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	pending, err := uc.friendReqRepo.CountPending(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to count pending requests: %w", err)
	}
	viewer.PendingRequestCount = pending

	cands, err := uc.userRepo.ListCandidates(ctx, viewer, viewer.SearchRegions)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}

	excludeSet := make(map[int64]struct{}, len(exclude))
	for _, id := range exclude {
		excludeSet[id] = struct{}{}
	}

	chain := match.NewChain(match.Config{
		Now:                  time.Now(),
		EmergencyWindow:      uc.opts.EmergencyWindow,
		ReciprocalPreference: uc.opts.ReciprocalPreference,
		Logger:               uc.logger,
	})

	var result match.Result
	if premium {
		result = chain.Premium(viewer, cands, excludeSet)
	} else {
		result = chain.Normal(viewer, cands, excludeSet)
	}

	uc.logger.Debug("search evaluated",
		zap.Int64("viewer_id", viewerID),
		zap.Bool("premium", premium),
		zap.Int("pool", len(cands)),
		zap.Int("matched", len(result.Users)),
		zap.Bool("exposure_blocked", result.ExposureBlocked))

	users := result.Users
	if users == nil {
		users = []domain.User{}
	}
	return &SearchResponse{Users: users, ExposureBlocked: result.ExposureBlocked}, nil
}

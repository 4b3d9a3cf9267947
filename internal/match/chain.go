package match

import (
	"time"

	"go.uber.org/zap"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

// Config carries everything a chain evaluation depends on. The evaluation
// instant is passed in explicitly so results are reproducible in tests.
type Config struct {
	Now                  time.Time
	EmergencyWindow      time.Duration
	ReciprocalPreference bool
	Logger               *zap.Logger
}

// Result is a filtered candidate list plus the exposure flag raised by the
// receive-limit gate.
type Result struct {
	Users           []domain.User
	ExposureBlocked bool
}

// Chain applies the filter compositions. Per-element filters are an AND over
// predicates; the exclusivity gates (emergency, premium-only, receive-off,
// receive-limit) discard the whole list when triggered, so their position
// only affects short-circuiting, never the final set.
type Chain struct {
	now        time.Time
	window     time.Duration
	reciprocal bool
	log        *zap.Logger
}

// NewChain builds a chain with defaults filled in.
func NewChain(cfg Config) *Chain {
	now := cfg.Now
	if now.IsZero() {
		now = time.Now()
	}
	window := cfg.EmergencyWindow
	if window <= 0 {
		window = DefaultEmergencyWindow
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Chain{now: now, window: window, reciprocal: cfg.ReciprocalPreference, log: log}
}

// Predicate is one viewer-vs-candidate rule.
type Predicate func(viewer, cand *domain.User) bool

// applyPredicate keeps the candidates the predicate admits, logging the drop
// count per stage for diagnostics.
func (ch *Chain) applyPredicate(name string, viewer *domain.User, cands []domain.User, p Predicate) []domain.User {
	out := cands[:0:0]
	for i := range cands {
		if p(viewer, &cands[i]) {
			out = append(out, cands[i])
		}
	}
	if dropped := len(cands) - len(out); dropped > 0 {
		ch.log.Debug("filter dropped candidates",
			zap.String("filter", name),
			zap.Int("dropped", dropped),
			zap.Int("remaining", len(out)))
	}
	return out
}

func (ch *Chain) preferencePredicate() Predicate {
	if ch.reciprocal {
		return PassPreferenceReciprocal
	}
	return PassPreference
}

// excludeIDs drops the viewer and any externally supplied ids (already-seen
// users, friends, blocks, chat partners).
func excludeIDs(cands []domain.User, viewer *domain.User, exclude map[int64]struct{}) []domain.User {
	out := cands[:0:0]
	for _, c := range cands {
		if c.ID == viewer.ID {
			continue
		}
		if _, skip := exclude[c.ID]; skip {
			continue
		}
		out = append(out, c)
	}
	return out
}

// perElement runs the shared per-element portion of both compositions:
// Year → Region → Preference → Marriage → Photo → Contacts. Order among
// these is commutative for the final set; it is fixed for stable diagnostics.
func (ch *Chain) perElement(viewer *domain.User, cands []domain.User) []domain.User {
	cands = ch.applyPredicate("year", viewer, cands, PassYear)
	cands = ch.applyPredicate("region", viewer, cands, PassRegion)
	cands = ch.applyPredicate("preference", viewer, cands, ch.preferencePredicate())
	cands = ch.applyPredicate("marriage", viewer, cands, PassMarriage)
	cands = ch.applyPredicate("photo", viewer, cands, PassPhoto)
	cands = ch.applyPredicate("contacts", viewer, cands, PassContacts)
	return cands
}

// Normal evaluates the normal-tier composition:
// Year → Region → Preference → Marriage → Photo → Contacts → Receive-off →
// Premium-only → Receive-limit. A missing viewer short-circuits to empty;
// surfacing that as an error is the caller's job.
func (ch *Chain) Normal(viewer *domain.User, cands []domain.User, exclude map[int64]struct{}) Result {
	if viewer == nil {
		return Result{}
	}
	list := excludeIDs(cands, viewer, exclude)
	list = ch.perElement(viewer, list)
	list = FilterReceiveOff(list, viewer)
	list = FilterPremiumOnly(list, viewer)
	users, blocked := ApplyReceiveLimit(list, viewer.PendingRequestCount, viewer.EffectiveReceiveLimit())
	return Result{Users: users, ExposureBlocked: blocked}
}

// Premium evaluates the premium-tier composition, where the emergency gate
// replaces the premium-only gate: premium viewers match through emergency
// mode instead of hiding behind it.
func (ch *Chain) Premium(viewer *domain.User, cands []domain.User, exclude map[int64]struct{}) Result {
	if viewer == nil {
		return Result{}
	}
	list := excludeIDs(cands, viewer, exclude)
	list = ch.perElement(viewer, list)
	list = FilterReceiveOff(list, viewer)
	list = FilterEmergency(list, viewer, ch.now, ch.window)
	users, blocked := ApplyReceiveLimit(list, viewer.PendingRequestCount, viewer.EffectiveReceiveLimit())
	return Result{Users: users, ExposureBlocked: blocked}
}

package scoring

import (
	"time"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

// DefaultWeights is the weighted-sum configuration used when no override is
// configured. Blocks are a penalty.
func DefaultWeights() domain.ScoreWeights {
	return domain.ScoreWeights{
		MessagesSent:      0.25,
		FriendReqSent:     0.20,
		FriendReqRecv:     0.20,
		FriendReqAccepted: 0.30,
		BlocksDone:        -0.20,
	}
}

// DefaultCaps is the daily expectation ceiling per raw count.
func DefaultCaps() domain.ScoreCaps {
	return domain.ScoreCaps{
		MessagesSent:      40,
		FriendReqSent:     20,
		FriendReqRecv:     20,
		FriendReqAccepted: 10,
		BlocksDone:        10,
	}
}

// normalizeCount maps a raw count onto [0,1] against its cap. A non-positive
// cap contributes nothing.
func normalizeCount(count int, cap float64) float64 {
	if cap <= 0 {
		return 0
	}
	return Clamp01(float64(count) / cap)
}

// ActivityScore is the clamped weighted sum of the normalized counts of one
// aggregate row.
func ActivityScore(agg domain.DailyAggregate, w domain.ScoreWeights, caps domain.ScoreCaps) float64 {
	raw := normalizeCount(agg.MessagesSent, caps.MessagesSent)*w.MessagesSent +
		normalizeCount(agg.FriendReqSent, caps.FriendReqSent)*w.FriendReqSent +
		normalizeCount(agg.FriendReqRecv, caps.FriendReqRecv)*w.FriendReqRecv +
		normalizeCount(agg.FriendReqAccepted, caps.FriendReqAccepted)*w.FriendReqAccepted +
		normalizeCount(agg.BlocksDone, caps.BlocksDone)*w.BlocksDone
	return Clamp01(raw)
}

// Compose derives the full score row for an aggregate at an evaluation
// instant. Recency is anchored at the end of the aggregated day, so older
// days decay away on the half-life curve. The function has no hidden state:
// identical inputs produce bit-identical output.
func Compose(agg domain.DailyAggregate, now time.Time, w domain.ScoreWeights, caps domain.ScoreCaps, halfLife time.Duration) (domain.DailyScore, error) {
	anchor, err := DayEnd(agg.YMD)
	if err != nil {
		return domain.DailyScore{}, err
	}
	activity := ActivityScore(agg, w, caps)
	recency := RecencyWeight(anchor, now, halfLife)
	return domain.DailyScore{
		UserID:        agg.UserID,
		YMD:           agg.YMD,
		ActivityScore: activity,
		RecencyScore:  recency,
		ExposureScore: Clamp01(activity * recency),
		Weights:       w,
	}, nil
}

package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// EventType tags one raw interaction event.
type EventType string

const (
	EventMessage           EventType = "message"
	EventFriendReqSent     EventType = "friend_req_sent"
	EventFriendReqRecv     EventType = "friend_req_recv"
	EventFriendReqAccepted EventType = "friend_req_accepted"
	EventBlock             EventType = "block"
)

// ActivityEvent is one row of the raw event feed consumed by the daily
// aggregation. ActorUserID is the user the event is attributed to, which for
// accepted friend requests is the recipient of the original request.
type ActivityEvent struct {
	ID          int64     `json:"id" db:"id"`
	ActorUserID int64     `json:"actor_user_id" db:"actor_user_id"`
	Type        EventType `json:"type" db:"type"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// DailyAggregate is the per-(user, Asia/Seoul day) rollup of raw counts.
// Rows are produced by full-replace upsert; reruns overwrite, never add.
type DailyAggregate struct {
	UserID            int64  `json:"user_id" db:"user_id"`
	YMD               string `json:"ymd" db:"ymd"`
	MessagesSent      int    `json:"messages_sent" db:"messages_sent"`
	MessagesRecv      int    `json:"messages_recv" db:"messages_recv"`
	FriendReqSent     int    `json:"friend_req_sent" db:"friend_req_sent"`
	FriendReqRecv     int    `json:"friend_req_recv" db:"friend_req_recv"`
	FriendReqAccepted int    `json:"friend_req_accepted" db:"friend_req_accepted"`
	BlocksDone        int    `json:"blocks_done" db:"blocks_done"`
}

// ScoreWeights is the weighted-sum configuration for the activity score.
// BlocksDone is a penalty and is normally negative. The struct is persisted
// next to each score row so historical scores stay auditable.
type ScoreWeights struct {
	MessagesSent      float64 `json:"messages_sent"`
	FriendReqSent     float64 `json:"friend_req_sent"`
	FriendReqRecv     float64 `json:"friend_req_recv"`
	FriendReqAccepted float64 `json:"friend_req_accepted"`
	BlocksDone        float64 `json:"blocks_done"`
}

// Value implements driver.Valuer so the snapshot persists as jsonb.
func (w ScoreWeights) Value() (driver.Value, error) {
	return json.Marshal(w)
}

// Scan implements sql.Scanner.
func (w *ScoreWeights) Scan(src interface{}) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, w)
	case string:
		return json.Unmarshal([]byte(v), w)
	case nil:
		*w = ScoreWeights{}
		return nil
	default:
		return fmt.Errorf("unsupported scan type %T for ScoreWeights", src)
	}
}

// ScoreCaps is the per-field normalization ceiling: count/cap clamped to
// [0,1]. Caps are daily expectation ceilings, not hard limits.
type ScoreCaps struct {
	MessagesSent      float64 `json:"messages_sent"`
	FriendReqSent     float64 `json:"friend_req_sent"`
	FriendReqRecv     float64 `json:"friend_req_recv"`
	FriendReqAccepted float64 `json:"friend_req_accepted"`
	BlocksDone        float64 `json:"blocks_done"`
}

// DailyScore is the derived exposure score for a (user, day). It is never
// user-editable and is recomputed wholly from the aggregate plus the
// evaluation instant.
type DailyScore struct {
	UserID        int64        `json:"user_id" db:"user_id"`
	YMD           string       `json:"ymd" db:"ymd"`
	ActivityScore float64      `json:"activity_score" db:"activity_score"`
	RecencyScore  float64      `json:"recency_score" db:"recency_score"`
	ExposureScore float64      `json:"exposure_score" db:"exposure_score"`
	Weights       ScoreWeights `json:"weights" db:"weights"`
	UpdatedAt     time.Time    `json:"updated_at" db:"updated_at"`
}

// RankedTarget is one entry of the ranked candidate feed.
type RankedTarget struct {
	UserID        int64   `json:"user_id"`
	Nickname      string  `json:"nickname"`
	Birthyear     *int    `json:"birthyear"`
	Gender        Gender  `json:"gender"`
	Region1       string  `json:"region1"`
	Region2       string  `json:"region2"`
	ProfileMain   *string `json:"profile_main"`
	ExposureScore float64 `json:"exposure_score"`
	Rank          int     `json:"rank"`
}

package scoring

import (
	"sort"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

// Aggregate groups a raw event feed into one DailyAggregate per known user
// for the target day. Users without events get a zero row, events outside
// the day or from unknown actors are ignored, and the output is ordered by
// user id so reruns are byte-for-byte reproducible. MessagesRecv stays zero:
// the event feed carries no message-received type.
//
// Accepted friend requests arrive already keyed by the recipient of the
// original request; the grouping is preserved as-is (see DESIGN.md).
func Aggregate(ymd string, userIDs []int64, events []domain.ActivityEvent) []domain.DailyAggregate {
	byUser := make(map[int64]*domain.DailyAggregate, len(userIDs))
	for _, id := range userIDs {
		byUser[id] = &domain.DailyAggregate{UserID: id, YMD: ymd}
	}

	for _, ev := range events {
		if YMD(ev.CreatedAt) != ymd {
			continue
		}
		agg, known := byUser[ev.ActorUserID]
		if !known {
			continue
		}
		switch ev.Type {
		case domain.EventMessage:
			agg.MessagesSent++
		case domain.EventFriendReqSent:
			agg.FriendReqSent++
		case domain.EventFriendReqRecv:
			agg.FriendReqRecv++
		case domain.EventFriendReqAccepted:
			agg.FriendReqAccepted++
		case domain.EventBlock:
			agg.BlocksDone++
		}
	}

	out := make([]domain.DailyAggregate, 0, len(byUser))
	for _, agg := range byUser {
		out = append(out, *agg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out
}

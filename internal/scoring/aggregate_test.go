package scoring

import (
	"testing"
	"time"

	"github.com/tzchat/tzchat-backend/internal/domain"
)

func eventAt(actor int64, typ domain.EventType, t time.Time) domain.ActivityEvent {
	return domain.ActivityEvent{ActorUserID: actor, Type: typ, CreatedAt: t}
}

func TestAggregateCounts(t *testing.T) {
	day := time.Date(2026, 8, 27, 10, 0, 0, 0, Seoul)
	events := []domain.ActivityEvent{
		eventAt(1, domain.EventMessage, day),
		eventAt(1, domain.EventMessage, day.Add(time.Hour)),
		eventAt(1, domain.EventFriendReqSent, day),
		eventAt(2, domain.EventFriendReqRecv, day),
		eventAt(2, domain.EventFriendReqAccepted, day),
		eventAt(2, domain.EventBlock, day),
	}

	aggs := Aggregate("2026-08-27", []int64{1, 2}, events)
	if len(aggs) != 2 {
		t.Fatalf("expected 2 aggregates, got %d", len(aggs))
	}

	if a := aggs[0]; a.UserID != 1 || a.MessagesSent != 2 || a.FriendReqSent != 1 {
		t.Errorf("user 1 aggregate wrong: %+v", a)
	}
	if a := aggs[1]; a.UserID != 2 || a.FriendReqRecv != 1 || a.FriendReqAccepted != 1 || a.BlocksDone != 1 {
		t.Errorf("user 2 aggregate wrong: %+v", a)
	}
}

func TestAggregateZeroFillsInactiveUsers(t *testing.T) {
	aggs := Aggregate("2026-08-27", []int64{1, 2, 3}, nil)
	if len(aggs) != 3 {
		t.Fatalf("expected a row per user, got %d", len(aggs))
	}
	for _, a := range aggs {
		if a != (domain.DailyAggregate{UserID: a.UserID, YMD: "2026-08-27"}) {
			t.Errorf("inactive user %d should have a zero row, got %+v", a.UserID, a)
		}
	}
}

func TestAggregateIgnoresOtherDays(t *testing.T) {
	inside := time.Date(2026, 8, 27, 23, 59, 59, 0, Seoul)
	after := time.Date(2026, 8, 28, 0, 0, 0, 0, Seoul)
	before := time.Date(2026, 8, 26, 23, 59, 59, 0, Seoul)

	events := []domain.ActivityEvent{
		eventAt(1, domain.EventMessage, inside),
		eventAt(1, domain.EventMessage, after),
		eventAt(1, domain.EventMessage, before),
	}
	aggs := Aggregate("2026-08-27", []int64{1}, events)
	if aggs[0].MessagesSent != 1 {
		t.Errorf("only the in-day event should count, got %d", aggs[0].MessagesSent)
	}
}

func TestAggregateDayBoundaryIsSeoul(t *testing.T) {
	// 2026-08-27 16:00 UTC is already 2026-08-28 01:00 in Seoul.
	ev := eventAt(1, domain.EventMessage, time.Date(2026, 8, 27, 16, 0, 0, 0, time.UTC))

	if got := Aggregate("2026-08-27", []int64{1}, []domain.ActivityEvent{ev}); got[0].MessagesSent != 0 {
		t.Error("event past the Seoul midnight should not count for the 27th")
	}
	if got := Aggregate("2026-08-28", []int64{1}, []domain.ActivityEvent{ev}); got[0].MessagesSent != 1 {
		t.Error("event should count for the Seoul 28th")
	}
}

func TestAggregateIgnoresUnknownActors(t *testing.T) {
	day := time.Date(2026, 8, 27, 10, 0, 0, 0, Seoul)
	events := []domain.ActivityEvent{
		eventAt(99, domain.EventMessage, day),
		eventAt(1, domain.EventMessage, day),
	}
	aggs := Aggregate("2026-08-27", []int64{1}, events)
	if len(aggs) != 1 || aggs[0].MessagesSent != 1 {
		t.Errorf("unknown actors should be dropped, got %+v", aggs)
	}
}

// Accepted friend requests are attributed to the recipient of the original
// request, not the acceptor. The grouping is preserved deliberately; this
// test pins it against accidental reinterpretation.
func TestAggregateAcceptedKeyedByRecipient(t *testing.T) {
	day := time.Date(2026, 8, 27, 10, 0, 0, 0, Seoul)
	// User 1 sent a request to user 2, who accepted it. The feed carries
	// the accepted event with actor = 1 (the request's recipient field).
	events := []domain.ActivityEvent{
		eventAt(2, domain.EventFriendReqSent, day),
		eventAt(1, domain.EventFriendReqRecv, day),
		eventAt(1, domain.EventFriendReqAccepted, day),
	}
	aggs := Aggregate("2026-08-27", []int64{1, 2}, events)

	if aggs[0].UserID != 1 || aggs[0].FriendReqAccepted != 1 {
		t.Errorf("accepted count should land on the recipient, got %+v", aggs[0])
	}
	if aggs[1].FriendReqAccepted != 0 {
		t.Errorf("acceptor must not be credited, got %+v", aggs[1])
	}
}

func TestAggregateMessagesRecvStaysZero(t *testing.T) {
	day := time.Date(2026, 8, 27, 10, 0, 0, 0, Seoul)
	events := []domain.ActivityEvent{eventAt(1, domain.EventMessage, day)}
	aggs := Aggregate("2026-08-27", []int64{1}, events)
	if aggs[0].MessagesRecv != 0 {
		t.Errorf("messages_recv has no event source and must stay zero, got %d", aggs[0].MessagesRecv)
	}
}

func TestAggregateOrderedAndRerunStable(t *testing.T) {
	day := time.Date(2026, 8, 27, 10, 0, 0, 0, Seoul)
	events := []domain.ActivityEvent{
		eventAt(3, domain.EventMessage, day),
		eventAt(1, domain.EventMessage, day),
	}
	a := Aggregate("2026-08-27", []int64{3, 1, 2}, events)
	b := Aggregate("2026-08-27", []int64{2, 3, 1}, events)

	for i := range a {
		if i > 0 && a[i].UserID <= a[i-1].UserID {
			t.Fatalf("output not ordered by user id: %+v", a)
		}
		if a[i] != b[i] {
			t.Errorf("rerun differs at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

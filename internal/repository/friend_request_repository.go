package repository

import "context"

type FriendRequestRepository interface {
	// CountPending returns the number of not-yet-answered requests sitting
	// in a user's inbox; the receive-limit gate compares it to the limit.
	CountPending(ctx context.Context, userID int64) (int, error)
}

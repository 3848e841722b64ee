package booking

import (
	"context"
	"time"
)

// Repository defines the contract for the booking ledger storage.
//
// Reserve must execute its sweep, availability check and insert as one
// atomic unit per book; concurrent reservations on the same book serialize,
// so two overlapping requests can never both pass the check.
type Repository interface {
	SweepExpired(ctx context.Context, now time.Time) (int64, error)
	ActiveForBook(ctx context.Context, bookID int64, now time.Time) ([]Interval, error)
	AllActive(ctx context.Context, now time.Time) ([]Booking, error)
	Reserve(ctx context.Context, userID, bookID int64, start, end, now time.Time) (Booking, error)
	Cancel(ctx context.Context, userID, bookID int64) (int64, error)
}

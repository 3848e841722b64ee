package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrInvalidInterval is returned when a reservation's start does not precede its end.
var ErrInvalidInterval = errors.New("booking start must precede end")

// ErrConflict is returned when a reservation overlaps an existing booking.
var ErrConflict = errors.New("booking conflicts with an existing reservation")

// Booking reserves a book for a user over a time span. Instants are stored
// with whole-second resolution.
type Booking struct {
	ID     uuid.UUID `json:"id"`
	UserID int64     `json:"user_id"`
	BookID int64     `json:"book_id"`
	Start  time.Time `json:"start_date"`
	End    time.Time `json:"end_date"`
}

// Interval is a booked time span of a single book.
type Interval struct {
	Start time.Time `json:"start_date"`
	End   time.Time `json:"end_date"`
}

package booking

import (
	"context"
	"fmt"
	"time"
)

// Service provides booking business logic on top of the ledger repository.
// Instants are truncated to whole seconds before they reach storage, and
// every listing is preceded by an expiry sweep so "active" always means
// "not yet expired as of this call".
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a new booking service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// Reserve books bookID for userID over [start, end).
func (s *Service) Reserve(ctx context.Context, userID, bookID int64, start, end time.Time) (Booking, error) {
	start = start.Truncate(time.Second)
	end = end.Truncate(time.Second)
	if !start.Before(end) {
		return Booking{}, fmt.Errorf("reserve book %d for user %d: %w", bookID, userID, ErrInvalidInterval)
	}
	return s.repo.Reserve(ctx, userID, bookID, start, end, s.now())
}

// ActiveForBook returns the not-yet-expired intervals of one book.
func (s *Service) ActiveForBook(ctx context.Context, bookID int64) ([]Interval, error) {
	now := s.now()
	if _, err := s.repo.SweepExpired(ctx, now); err != nil {
		return nil, err
	}
	return s.repo.ActiveForBook(ctx, bookID, now)
}

// AllActive returns every not-yet-expired booking across all books.
func (s *Service) AllActive(ctx context.Context) ([]Booking, error) {
	now := s.now()
	if _, err := s.repo.SweepExpired(ctx, now); err != nil {
		return nil, err
	}
	return s.repo.AllActive(ctx, now)
}

// Cancel removes all bookings of the (user, book) pair and reports how many
// were removed; zero is not an error.
func (s *Service) Cancel(ctx context.Context, userID, bookID int64) (int64, error) {
	return s.repo.Cancel(ctx, userID, bookID)
}

// Package library composes the catalog store and the booking ledger into a
// single read path. Expired bookings are swept once per call before any
// booking state is reported, so "active" is consistent across the whole
// response.
package library

import (
	"context"

	"bookledger/internal/booking"
	"bookledger/internal/catalog"
)

// CatalogReader is the catalog surface the facade consumes.
type CatalogReader interface {
	FilterBooks(ctx context.Context, f catalog.Filter) ([]catalog.BookSummary, error)
	GenresOfBook(ctx context.Context, bookID int64) ([]string, error)
}

// LedgerReader is the booking surface the facade consumes. Implementations
// must sweep expired rows before reporting active bookings.
type LedgerReader interface {
	ActiveForBook(ctx context.Context, bookID int64) ([]booking.Interval, error)
	AllActive(ctx context.Context) ([]booking.Booking, error)
}

// BookAvailability pairs a catalog row with the book's active reservations.
type BookAvailability struct {
	catalog.BookSummary
	ActiveBookings []booking.Interval `json:"active_bookings"`
}

type Facade struct {
	catalog CatalogReader
	ledger  LedgerReader
}

func NewFacade(catalogReader CatalogReader, ledgerReader LedgerReader) *Facade {
	return &Facade{catalog: catalogReader, ledger: ledgerReader}
}

// Books returns the catalog rows matching f.
func (f *Facade) Books(ctx context.Context, filter catalog.Filter) ([]catalog.BookSummary, error) {
	return f.catalog.FilterBooks(ctx, filter)
}

// ActiveBookings returns every active booking across all books.
func (f *Facade) ActiveBookings(ctx context.Context) ([]booking.Booking, error) {
	return f.ledger.AllActive(ctx)
}

// BooksWithBookings returns the filtered catalog rows, each carrying its
// active booking intervals. The ledger is read once, so a single sweep
// covers the whole result.
func (f *Facade) BooksWithBookings(ctx context.Context, filter catalog.Filter) ([]BookAvailability, error) {
	books, err := f.catalog.FilterBooks(ctx, filter)
	if err != nil {
		return nil, err
	}

	active, err := f.ledger.AllActive(ctx)
	if err != nil {
		return nil, err
	}

	byBook := make(map[int64][]booking.Interval, len(active))
	for _, b := range active {
		byBook[b.BookID] = append(byBook[b.BookID], booking.Interval{Start: b.Start, End: b.End})
	}

	out := make([]BookAvailability, 0, len(books))
	for _, summary := range books {
		out = append(out, BookAvailability{
			BookSummary:    summary,
			ActiveBookings: byBook[summary.ID],
		})
	}
	return out, nil
}

package library

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"bookledger/internal/booking"
	"bookledger/internal/catalog"

	"github.com/google/uuid"
)

// memCatalog is an in-memory catalog.Repository with the same observable
// semantics as the Postgres store: resolve-or-create by natural key, unique
// titles, conjunctive filters over the genre join.
type memCatalog struct {
	mu         sync.Mutex
	nextID     int64
	authors    map[[2]string]int64
	avatars    map[int64][]byte
	genres     map[string]int64
	books      map[int64]catalog.Book
	bookGenres map[int64]map[int64]bool
}

func newMemCatalog() *memCatalog {
	return &memCatalog{
		nextID:     1,
		authors:    make(map[[2]string]int64),
		avatars:    make(map[int64][]byte),
		genres:     make(map[string]int64),
		books:      make(map[int64]catalog.Book),
		bookGenres: make(map[int64]map[int64]bool),
	}
}

func (m *memCatalog) id() int64 {
	id := m.nextID
	m.nextID++
	return id
}

func (m *memCatalog) ResolveAuthor(_ context.Context, firstName, lastName string, avatar []byte) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveAuthorLocked(firstName, lastName, avatar), nil
}

func (m *memCatalog) resolveAuthorLocked(firstName, lastName string, avatar []byte) int64 {
	key := [2]string{firstName, lastName}
	if id, ok := m.authors[key]; ok {
		return id
	}
	id := m.id()
	m.authors[key] = id
	m.avatars[id] = avatar
	return id
}

func (m *memCatalog) ResolveGenre(_ context.Context, name string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resolveGenreLocked(name), nil
}

func (m *memCatalog) resolveGenreLocked(name string) int64 {
	if id, ok := m.genres[name]; ok {
		return id
	}
	id := m.id()
	m.genres[name] = id
	return id
}

func (m *memCatalog) AddBook(_ context.Context, b catalog.NewBook) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.books {
		if existing.Title == b.Title {
			return 0, fmt.Errorf("add book %q: %w", b.Title, catalog.ErrDuplicateTitle)
		}
	}

	authorID := m.resolveAuthorLocked(b.AuthorFirstName, b.AuthorLastName, b.AuthorAvatar)
	bookID := m.id()
	m.books[bookID] = catalog.Book{ID: bookID, Title: b.Title, Price: b.Price, Pages: b.Pages, AuthorID: authorID}
	m.bookGenres[bookID] = make(map[int64]bool)
	for _, name := range b.Genres {
		m.bookGenres[bookID][m.resolveGenreLocked(name)] = true
	}
	return bookID, nil
}

func (m *memCatalog) RemoveBook(_ context.Context, bookID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.books[bookID]; !ok {
		return fmt.Errorf("remove book %d: %w", bookID, catalog.ErrNotFound)
	}
	delete(m.bookGenres, bookID)
	delete(m.books, bookID)
	return nil
}

func (m *memCatalog) FilterBooks(_ context.Context, f catalog.Filter) ([]catalog.BookSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	authorName := make(map[int64][2]string, len(m.authors))
	for key, id := range m.authors {
		authorName[id] = key
	}

	var out []catalog.BookSummary
	for id, b := range m.books {
		// Mirrors the inner join: a book without genres never matches.
		if len(m.bookGenres[id]) == 0 {
			continue
		}
		if f.MinPrice != nil && b.Price < *f.MinPrice {
			continue
		}
		if f.MaxPrice != nil && b.Price > *f.MaxPrice {
			continue
		}
		if f.Genre != "" {
			genreID, ok := m.genres[f.Genre]
			if !ok || !m.bookGenres[id][genreID] {
				continue
			}
		}
		name := authorName[b.AuthorID]
		if f.AuthorFirstName != "" && name[0] != f.AuthorFirstName {
			continue
		}
		if f.AuthorLastName != "" && name[1] != f.AuthorLastName {
			continue
		}
		out = append(out, catalog.BookSummary{
			ID: id, Title: b.Title, Price: b.Price, Pages: b.Pages,
			AuthorFirstName: name[0], AuthorLastName: name[1],
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memCatalog) GenresOfBook(_ context.Context, bookID int64) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var names []string
	for name, id := range m.genres {
		if m.bookGenres[bookID][id] {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// memLedger is an in-memory booking.Repository applying the same sweep /
// availability-check / insert sequence as the Postgres ledger.
type memLedger struct {
	mu       sync.Mutex
	bookings []booking.Booking
}

func (m *memLedger) SweepExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var kept []booking.Booking
	var removed int64
	for _, b := range m.bookings {
		if b.End.Before(now) {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	m.bookings = kept
	return removed, nil
}

func (m *memLedger) ActiveForBook(_ context.Context, bookID int64, now time.Time) ([]booking.Interval, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []booking.Interval
	for _, b := range m.bookings {
		if b.BookID == bookID && !b.End.Before(now) {
			out = append(out, booking.Interval{Start: b.Start, End: b.End})
		}
	}
	return out, nil
}

func (m *memLedger) AllActive(_ context.Context, now time.Time) ([]booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []booking.Booking
	for _, b := range m.bookings {
		if !b.End.Before(now) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BookID != out[j].BookID {
			return out[i].BookID < out[j].BookID
		}
		return out[i].Start.Before(out[j].Start)
	})
	return out, nil
}

func (m *memLedger) Reserve(_ context.Context, userID, bookID int64, start, end, now time.Time) (booking.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var kept []booking.Booking
	var existing []booking.Interval
	for _, b := range m.bookings {
		if b.BookID == bookID && b.End.Before(now) {
			continue
		}
		kept = append(kept, b)
		if b.BookID == bookID {
			existing = append(existing, booking.Interval{Start: b.Start, End: b.End})
		}
	}
	m.bookings = kept

	if !booking.Available(existing, start) {
		return booking.Booking{}, fmt.Errorf("reserve book %d for user %d: %w", bookID, userID, booking.ErrConflict)
	}

	b := booking.Booking{ID: uuid.New(), UserID: userID, BookID: bookID, Start: start, End: end}
	m.bookings = append(m.bookings, b)
	return b, nil
}

func (m *memLedger) Cancel(_ context.Context, userID, bookID int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var kept []booking.Booking
	var removed int64
	for _, b := range m.bookings {
		if b.UserID == userID && b.BookID == bookID {
			removed++
			continue
		}
		kept = append(kept, b)
	}
	m.bookings = kept
	return removed, nil
}

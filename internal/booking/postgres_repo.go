package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE end_date < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("sweep expired bookings: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *PostgresRepo) ActiveForBook(ctx context.Context, bookID int64, now time.Time) ([]Interval, error) {
	const query = `
		SELECT start_date, end_date
		FROM bookings
		WHERE book_id = $1 AND end_date >= $2
		ORDER BY start_date`

	rows, err := r.db.Query(ctx, query, bookID, now)
	if err != nil {
		return nil, fmt.Errorf("active bookings for book %d: %w", bookID, err)
	}
	defer rows.Close()

	var out []Interval
	for rows.Next() {
		var iv Interval
		if err := rows.Scan(&iv.Start, &iv.End); err != nil {
			return nil, fmt.Errorf("active bookings for book %d: %w", bookID, err)
		}
		out = append(out, iv)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) AllActive(ctx context.Context, now time.Time) ([]Booking, error) {
	const query = `
		SELECT id, user_id, book_id, start_date, end_date
		FROM bookings
		WHERE end_date >= $1
		ORDER BY book_id, start_date`

	rows, err := r.db.Query(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("active bookings: %w", err)
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.UserID, &b.BookID, &b.Start, &b.End); err != nil {
			return nil, fmt.Errorf("active bookings: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Reserve runs the sweep / availability-check / insert sequence inside one
// transaction holding a per-book advisory lock, so two concurrent requests
// for the same book serialize and the no-overlap invariant holds.
func (r *PostgresRepo) Reserve(ctx context.Context, userID, bookID int64, start, end, now time.Time) (Booking, error) {
	fail := func(err error) (Booking, error) {
		return Booking{}, fmt.Errorf("reserve book %d for user %d: %w", bookID, userID, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fail(err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, bookID); err != nil {
		return fail(err)
	}

	// Expired rows must go before the conflict check, or a long-dead
	// booking could block the new reservation.
	if _, err = tx.Exec(ctx, `DELETE FROM bookings WHERE book_id = $1 AND end_date < $2`, bookID, now); err != nil {
		return fail(err)
	}

	rows, err := tx.Query(ctx, `SELECT start_date, end_date FROM bookings WHERE book_id = $1`, bookID)
	if err != nil {
		return fail(err)
	}
	var existing []Interval
	for rows.Next() {
		var iv Interval
		if err = rows.Scan(&iv.Start, &iv.End); err != nil {
			rows.Close()
			return fail(err)
		}
		existing = append(existing, iv)
	}
	rows.Close()
	if err = rows.Err(); err != nil {
		return fail(err)
	}

	if !Available(existing, start) {
		return fail(ErrConflict)
	}

	b := Booking{ID: uuid.New(), UserID: userID, BookID: bookID, Start: start, End: end}
	const insert = `
		INSERT INTO bookings (id, user_id, book_id, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err = tx.Exec(ctx, insert, b.ID, b.UserID, b.BookID, b.Start, b.End); err != nil {
		return fail(err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fail(err)
	}
	return b, nil
}

// Cancel removes every booking held by userID on bookID, whatever the
// interval. Zero removed rows is a no-op, not an error.
func (r *PostgresRepo) Cancel(ctx context.Context, userID, bookID int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE user_id = $1 AND book_id = $2`, userID, bookID)
	if err != nil {
		return 0, fmt.Errorf("cancel bookings of user %d on book %d: %w", userID, bookID, err)
	}
	return tag.RowsAffected(), nil
}

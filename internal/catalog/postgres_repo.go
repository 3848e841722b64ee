package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolationCode = "23505"

type PostgresRepo struct {
	db *pgxpool.Pool
}

func NewPostgresRepo(db *pgxpool.Pool) *PostgresRepo {
	return &PostgresRepo{db: db}
}

func (r *PostgresRepo) ResolveAuthor(ctx context.Context, firstName, lastName string, avatar []byte) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve author %s %s: %w", firstName, lastName, err)
	}
	defer tx.Rollback(ctx)

	id, err := resolveAuthorTx(ctx, tx, firstName, lastName, avatar)
	if err != nil {
		return 0, fmt.Errorf("resolve author %s %s: %w", firstName, lastName, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("resolve author %s %s: %w", firstName, lastName, err)
	}
	return id, nil
}

func (r *PostgresRepo) ResolveGenre(ctx context.Context, name string) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("resolve genre %q: %w", name, err)
	}
	defer tx.Rollback(ctx)

	id, err := resolveGenreTx(ctx, tx, name)
	if err != nil {
		return 0, fmt.Errorf("resolve genre %q: %w", name, err)
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("resolve genre %q: %w", name, err)
	}
	return id, nil
}

// resolveAuthorTx looks an author up by name pair and inserts the row when
// absent. The avatar is persisted only on that first insert; later lookups
// keep the original even if a different avatar is supplied.
func resolveAuthorTx(ctx context.Context, tx pgx.Tx, firstName, lastName string, avatar []byte) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx,
		`SELECT id FROM authors WHERE first_name = $1 AND last_name = $2`,
		firstName, lastName).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	err = tx.QueryRow(ctx,
		`INSERT INTO authors (first_name, last_name, avatar) VALUES ($1, $2, $3) RETURNING id`,
		firstName, lastName, avatar).Scan(&id)
	return id, err
}

func resolveGenreTx(ctx context.Context, tx pgx.Tx, name string) (int64, error) {
	var id int64
	err := tx.QueryRow(ctx, `SELECT id FROM genres WHERE name = $1`, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}

	err = tx.QueryRow(ctx, `INSERT INTO genres (name) VALUES ($1) RETURNING id`, name).Scan(&id)
	return id, err
}

// AddBook resolves the author and every genre, inserts the book row and its
// genre joins, all in one transaction. A duplicate title surfaces as
// ErrDuplicateTitle and rolls everything back, so a half-inserted book is
// never visible to readers.
func (r *PostgresRepo) AddBook(ctx context.Context, b NewBook) (int64, error) {
	fail := func(err error) (int64, error) {
		return 0, fmt.Errorf("add book %q: %w", b.Title, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fail(err)
	}
	defer tx.Rollback(ctx)

	authorID, err := resolveAuthorTx(ctx, tx, b.AuthorFirstName, b.AuthorLastName, b.AuthorAvatar)
	if err != nil {
		return fail(err)
	}

	genreIDs := make([]int64, 0, len(b.Genres))
	for _, name := range b.Genres {
		genreID, gerr := resolveGenreTx(ctx, tx, name)
		if gerr != nil {
			return fail(gerr)
		}
		genreIDs = append(genreIDs, genreID)
	}

	var bookID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO books (title, price, pages, author_id) VALUES ($1, $2, $3, $4) RETURNING id`,
		b.Title, b.Price, b.Pages, authorID).Scan(&bookID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return fail(ErrDuplicateTitle)
		}
		return fail(err)
	}

	for _, genreID := range genreIDs {
		if _, err = tx.Exec(ctx,
			`INSERT INTO book_genres (book_id, genre_id) VALUES ($1, $2)`,
			bookID, genreID); err != nil {
			return fail(err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fail(err)
	}
	return bookID, nil
}

// RemoveBook deletes the genre joins and the book row. Bookings referencing
// the book are left untouched; callers that care must cancel them first.
func (r *PostgresRepo) RemoveBook(ctx context.Context, bookID int64) error {
	fail := func(err error) error {
		return fmt.Errorf("remove book %d: %w", bookID, err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fail(err)
	}
	defer tx.Rollback(ctx)

	if _, err = tx.Exec(ctx, `DELETE FROM book_genres WHERE book_id = $1`, bookID); err != nil {
		return fail(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM books WHERE id = $1`, bookID)
	if err != nil {
		return fail(err)
	}
	if tag.RowsAffected() == 0 {
		return fail(ErrNotFound)
	}

	return tx.Commit(ctx)
}

func (r *PostgresRepo) FilterBooks(ctx context.Context, f Filter) ([]BookSummary, error) {
	query, args, err := buildFilterQuery(f)
	if err != nil {
		return nil, fmt.Errorf("filter books: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("filter books: %w", err)
	}
	defer rows.Close()

	var out []BookSummary
	for rows.Next() {
		var b BookSummary
		if err := rows.Scan(&b.ID, &b.Title, &b.Price, &b.Pages, &b.AuthorFirstName, &b.AuthorLastName); err != nil {
			return nil, fmt.Errorf("filter books: %w", err)
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *PostgresRepo) GenresOfBook(ctx context.Context, bookID int64) ([]string, error) {
	const query = `
		SELECT g.name
		FROM genres g
		JOIN book_genres bg ON g.id = bg.genre_id
		WHERE bg.book_id = $1
		ORDER BY g.name`

	rows, err := r.db.Query(ctx, query, bookID)
	if err != nil {
		return nil, fmt.Errorf("genres of book %d: %w", bookID, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("genres of book %d: %w", bookID, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

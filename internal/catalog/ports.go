package catalog

import (
	"context"
)

// Repository defines the contract for catalog storage.
type Repository interface {
	ResolveAuthor(ctx context.Context, firstName, lastName string, avatar []byte) (int64, error)
	ResolveGenre(ctx context.Context, name string) (int64, error)
	AddBook(ctx context.Context, b NewBook) (int64, error)
	RemoveBook(ctx context.Context, bookID int64) error
	FilterBooks(ctx context.Context, f Filter) ([]BookSummary, error)
	GenresOfBook(ctx context.Context, bookID int64) ([]string, error)
}

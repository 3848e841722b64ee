package catalog

import (
	"context"
)

// Service provides catalog business logic.
type Service struct {
	repo Repository
}

// NewService creates a new catalog service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// AddBook inserts a book, resolving or creating its author and genres.
func (s *Service) AddBook(ctx context.Context, b NewBook) (int64, error) {
	return s.repo.AddBook(ctx, b)
}

// RemoveBook deletes a book and its genre associations by id.
func (s *Service) RemoveBook(ctx context.Context, bookID int64) error {
	return s.repo.RemoveBook(ctx, bookID)
}

// FilterBooks returns the books matching every set field of f.
func (s *Service) FilterBooks(ctx context.Context, f Filter) ([]BookSummary, error) {
	return s.repo.FilterBooks(ctx, f)
}

// GenresOfBook returns a book's genre names in lexicographic order.
func (s *Service) GenresOfBook(ctx context.Context, bookID int64) ([]string, error) {
	return s.repo.GenresOfBook(ctx, bookID)
}

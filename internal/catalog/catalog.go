package catalog

import "errors"

// ErrNotFound is returned when the targeted book does not exist.
var ErrNotFound = errors.New("book not found")

// ErrDuplicateTitle is returned when inserting a book whose title is taken.
var ErrDuplicateTitle = errors.New("book title already exists")

// Author is identified by its (first name, last name) pair. The avatar is
// stored only when the author row is first created.
type Author struct {
	ID        int64
	FirstName string
	LastName  string
	Avatar    []byte
}

// Genre is identified by its unique name and shared across books.
type Genre struct {
	ID   int64
	Name string
}

type Book struct {
	ID       int64
	Title    string
	Price    float64
	Pages    int
	AuthorID int64
}

// NewBook describes a book to insert together with its author and genres.
// Author and genres are resolved by natural key and created when absent.
type NewBook struct {
	Title           string
	Price           float64
	Pages           int
	AuthorFirstName string
	AuthorLastName  string
	AuthorAvatar    []byte
	Genres          []string
}

// BookSummary is the projection returned by filtered catalog reads.
type BookSummary struct {
	ID              int64   `json:"id"`
	Title           string  `json:"title"`
	Price           float64 `json:"price"`
	Pages           int     `json:"pages"`
	AuthorFirstName string  `json:"first_name"`
	AuthorLastName  string  `json:"last_name"`
}

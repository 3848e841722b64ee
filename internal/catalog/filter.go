package catalog

import (
	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
)

const dialectPostgres = "postgres"

// Filter enumerates the optional predicates of a catalog read. Zero-valued
// fields are skipped; set fields are combined with AND.
type Filter struct {
	MinPrice        *float64
	MaxPrice        *float64
	Genre           string
	AuthorFirstName string
	AuthorLastName  string
}

// buildFilterQuery assembles the filtered catalog SELECT. The inner join on
// book_genres means a book with no genre rows never matches, whatever the
// filter; callers rely on that, so do not soften it to a LEFT JOIN.
func buildFilterQuery(f Filter) (string, []interface{}, error) {
	stmt := goqu.Dialect(dialectPostgres).
		From("books").
		Join(goqu.T("book_genres"), goqu.On(goqu.I("books.id").Eq(goqu.I("book_genres.book_id")))).
		Join(goqu.T("genres"), goqu.On(goqu.I("book_genres.genre_id").Eq(goqu.I("genres.id")))).
		Join(goqu.T("authors"), goqu.On(goqu.I("books.author_id").Eq(goqu.I("authors.id")))).
		Select(
			goqu.I("books.id"), goqu.I("books.title"), goqu.I("books.price"), goqu.I("books.pages"),
			goqu.I("authors.first_name"), goqu.I("authors.last_name"),
		).
		Distinct().
		Order(goqu.I("books.id").Asc())

	if f.MinPrice != nil {
		stmt = stmt.Where(goqu.I("books.price").Gte(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		stmt = stmt.Where(goqu.I("books.price").Lte(*f.MaxPrice))
	}
	if f.Genre != "" {
		stmt = stmt.Where(goqu.I("genres.name").Eq(f.Genre))
	}
	if f.AuthorFirstName != "" {
		stmt = stmt.Where(goqu.I("authors.first_name").Eq(f.AuthorFirstName))
	}
	if f.AuthorLastName != "" {
		stmt = stmt.Where(goqu.I("authors.last_name").Eq(f.AuthorLastName))
	}

	return stmt.Prepared(true).ToSQL()
}

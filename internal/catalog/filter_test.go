package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestBuildFilterQuery_NoFilters(t *testing.T) {
	sql, args, err := buildFilterQuery(Filter{})
	require.NoError(t, err)

	assert.Empty(t, args)
	assert.Contains(t, sql, "SELECT DISTINCT")
	assert.Contains(t, sql, `INNER JOIN "book_genres"`)
	assert.Contains(t, sql, `INNER JOIN "genres"`)
	assert.Contains(t, sql, `INNER JOIN "authors"`)
	assert.Contains(t, sql, `ORDER BY "books"."id" ASC`)
	assert.NotContains(t, sql, "WHERE")
}

func TestBuildFilterQuery_SingleFilters(t *testing.T) {
	tests := []struct {
		name       string
		filter     Filter
		wantClause string
		wantArg    interface{}
	}{
		{"min price", Filter{MinPrice: floatPtr(10)}, `"books"."price" >= $1`, float64(10)},
		{"max price", Filter{MaxPrice: floatPtr(25.5)}, `"books"."price" <= $1`, 25.5},
		{"genre", Filter{Genre: "Sci-Fi"}, `"genres"."name" = $1`, "Sci-Fi"},
		{"author first name", Filter{AuthorFirstName: "Jane"}, `"authors"."first_name" = $1`, "Jane"},
		{"author last name", Filter{AuthorLastName: "Doe"}, `"authors"."last_name" = $1`, "Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sql, args, err := buildFilterQuery(tt.filter)
			require.NoError(t, err)

			assert.Contains(t, sql, tt.wantClause)
			assert.Equal(t, []interface{}{tt.wantArg}, args)
		})
	}
}

// Every set filter must appear, joined conjunctively: a book qualifies only
// when it satisfies all of them at once.
func TestBuildFilterQuery_CombinedFiltersAreConjunctive(t *testing.T) {
	sql, args, err := buildFilterQuery(Filter{
		MinPrice: floatPtr(10),
		Genre:    "Sci-Fi",
	})
	require.NoError(t, err)

	assert.Contains(t, sql, `"books"."price" >= $1`)
	assert.Contains(t, sql, `"genres"."name" = $2`)
	assert.Equal(t, 1, strings.Count(sql, " AND "), "filters must be ANDed")
	assert.Equal(t, []interface{}{float64(10), "Sci-Fi"}, args)
}

func TestBuildFilterQuery_AllFilters(t *testing.T) {
	sql, args, err := buildFilterQuery(Filter{
		MinPrice:        floatPtr(5),
		MaxPrice:        floatPtr(50),
		Genre:           "Fantasy",
		AuthorFirstName: "Ursula",
		AuthorLastName:  "Le Guin",
	})
	require.NoError(t, err)

	assert.Len(t, args, 5)
	assert.Equal(t, 4, strings.Count(sql, " AND "))
}

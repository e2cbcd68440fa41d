package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

func loadContract(t *testing.T) *ast.Schema {
	t.Helper()
	schema, err := gqlparser.LoadSchema(&ast.Source{Name: "schema.graphql", Input: SchemaSDL})
	require.NoError(t, err)
	return schema
}

func TestSchemaContract(t *testing.T) {
	s := loadContract(t)

	t.Run("query fields", func(t *testing.T) {
		for _, name := range []string{"books", "authors", "book", "author", "booksCount", "authorsCount", "getallauthors"} {
			assert.NotNil(t, s.Query.Fields.ForName(name), name)
		}

		books := s.Query.Fields.ForName("books")
		require.NotNil(t, books)
		limit := books.Arguments.ForName("limit")
		require.NotNil(t, limit)
		require.NotNil(t, limit.DefaultValue)
		assert.Equal(t, "10", limit.DefaultValue.Raw)
		assert.Equal(t, "[Book!]!", books.Type.String())

		assert.Equal(t, "Int!", s.Query.Fields.ForName("booksCount").Type.String())
	})

	t.Run("mutation fields", func(t *testing.T) {
		require.NotNil(t, s.Mutation)
		for _, name := range []string{
			"addBook", "updateBook", "deleteBook",
			"addAuthor", "updateAuthor", "deleteAuthor",
			"addReview", "setAuthorMetadata",
		} {
			assert.NotNil(t, s.Mutation.Fields.ForName(name), name)
		}
		assert.Equal(t, "String", s.Mutation.Fields.ForName("deleteBook").Type.String())
		assert.Equal(t, "Int!", s.Mutation.Fields.ForName("addReview").Arguments.ForName("rating").Type.String())
	})

	t.Run("snake case field names", func(t *testing.T) {
		assert.NotNil(t, s.Types["Book"].Fields.ForName("published_date"))
		assert.NotNil(t, s.Types["Author"].Fields.ForName("born_date"))
		assert.NotNil(t, s.Types["Review"].Fields.ForName("review_date"))
		assert.NotNil(t, s.Types["AuthorMetadata"].Fields.ForName("social_media"))
		assert.NotNil(t, s.Types["BookFilter"].Fields.ForName("author_id"))
	})

	t.Run("cross store fields", func(t *testing.T) {
		assert.Equal(t, "Author", s.Types["Book"].Fields.ForName("author").Type.String())
		assert.Equal(t, "[Review!]!", s.Types["Book"].Fields.ForName("reviews").Type.String())
		assert.Equal(t, "[Review!]!", s.Types["Author"].Fields.ForName("reviews").Type.String())
		assert.Equal(t, "[Book!]!", s.Types["Author"].Fields.ForName("books").Type.String())
	})
}

func TestNewSchemaBindsResolvers(t *testing.T) {
	_, err := NewSchema(&Resolver{}, Options{})
	require.NoError(t, err)
}

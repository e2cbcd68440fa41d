package service

import (
	"context"
	"testing"

	authorModel "bookstore-graphql/internal/domains/author/model"
	"bookstore-graphql/internal/domains/book/model"
	"bookstore-graphql/internal/shared/apperror"
	"bookstore-graphql/internal/store/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

type fixture struct {
	svc   ServiceInterface
	store *memory.Store
}

func newFixture(t *testing.T, authors ...string) fixture {
	t.Helper()
	store := memory.NewStore()
	for _, name := range authors {
		_, err := store.Authors().Create(context.Background(), &authorModel.Author{Name: name})
		require.NoError(t, err)
	}
	return fixture{svc: NewService(store.Books(), store.Authors()), store: store}
}

func TestCreateBook(t *testing.T) {
	f := newFixture(t, "Frank Herbert")
	ctx := context.Background()

	b, err := f.svc.CreateBook(ctx, model.CreateBookRequest{
		Title:         " Dune ",
		Description:   strPtr("Spice"),
		PublishedDate: strPtr("1965-08-01"),
		AuthorID:      "1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, int64(1), b.AuthorID)
	require.NotNil(t, b.PublishedDate)
	assert.Equal(t, "1965-08-01", b.PublishedDate.Format("2006-01-02"))
}

func TestCreateBookErrors(t *testing.T) {
	f := newFixture(t, "Frank Herbert")
	ctx := context.Background()

	tests := []struct {
		name string
		req  model.CreateBookRequest
		want apperror.Kind
	}{
		{"blank title", model.CreateBookRequest{Title: " ", AuthorID: "1"}, apperror.KindInvalidArgument},
		{"missing author_id", model.CreateBookRequest{Title: "Dune"}, apperror.KindInvalidArgument},
		{"malformed author_id", model.CreateBookRequest{Title: "Dune", AuthorID: "x"}, apperror.KindInvalidArgument},
		{"bad date", model.CreateBookRequest{Title: "Dune", AuthorID: "1", PublishedDate: strPtr("soon")}, apperror.KindInvalidArgument},
		{"unknown author", model.CreateBookRequest{Title: "Dune", AuthorID: "999"}, apperror.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.CreateBook(ctx, tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.want, apperror.KindOf(err))
		})
	}

	n, err := f.svc.CountBooks(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListBooksFilters(t *testing.T) {
	f := newFixture(t, "Frank Herbert", "Isaac Asimov")
	ctx := context.Background()

	for _, req := range []model.CreateBookRequest{
		{Title: "Dune", AuthorID: "1", PublishedDate: strPtr("1965-08-01")},
		{Title: "Dune Messiah", AuthorID: "1", PublishedDate: strPtr("1969-10-15")},
		{Title: "Foundation", AuthorID: "2", PublishedDate: strPtr("1951-06-01")},
	} {
		_, err := f.svc.CreateBook(ctx, req)
		require.NoError(t, err)
	}

	tests := []struct {
		name string
		req  model.ListBooksRequest
		want []string
	}{
		{"no filter", model.ListBooksRequest{}, []string{"Dune", "Dune Messiah", "Foundation"}},
		{"title case-insensitive", model.ListBooksRequest{Title: strPtr("dUnE")}, []string{"Dune", "Dune Messiah"}},
		{"author", model.ListBooksRequest{AuthorID: strPtr("2")}, []string{"Foundation"}},
		{"published day", model.ListBooksRequest{PublishedDate: strPtr("1965-08-01")}, []string{"Dune"}},
		{"and-combined", model.ListBooksRequest{Title: strPtr("dune"), AuthorID: strPtr("2")}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			books, err := f.svc.ListBooks(ctx, tt.req)
			require.NoError(t, err)
			titles := []string{}
			for _, b := range books {
				titles = append(titles, b.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}

	_, err := f.svc.ListBooks(ctx, model.ListBooksRequest{AuthorID: strPtr("one")})
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))

	byAuthor, err := f.svc.ListBooksByAuthor(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, byAuthor, 2)
}

func TestUpdateBook(t *testing.T) {
	f := newFixture(t, "Frank Herbert", "Brian Herbert")
	ctx := context.Background()

	_, err := f.svc.CreateBook(ctx, model.CreateBookRequest{
		Title:       "Dune",
		Description: strPtr("original"),
		AuthorID:    "1",
	})
	require.NoError(t, err)

	updated, err := f.svc.UpdateBook(ctx, model.UpdateBookRequest{ID: "1", AuthorID: strPtr("2")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), updated.AuthorID)
	assert.Equal(t, "Dune", updated.Title)
	assert.Equal(t, "original", *updated.Description)

	_, err = f.svc.UpdateBook(ctx, model.UpdateBookRequest{ID: "1", AuthorID: strPtr("77")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = f.svc.UpdateBook(ctx, model.UpdateBookRequest{ID: "1", Title: strPtr("")})
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(err))

	_, err = f.svc.UpdateBook(ctx, model.UpdateBookRequest{ID: "5", Title: strPtr("Ghost")})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	got, err := f.svc.GetBook(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.AuthorID)
}

func TestDeleteBook(t *testing.T) {
	f := newFixture(t, "Frank Herbert")
	ctx := context.Background()

	_, err := f.svc.CreateBook(ctx, model.CreateBookRequest{Title: "Dune", AuthorID: "1"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteBook(ctx, "1"))
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(f.svc.DeleteBook(ctx, "1")))
	assert.Equal(t, apperror.KindInvalidArgument, apperror.KindOf(f.svc.DeleteBook(ctx, "")))

	_, err = f.svc.GetBook(ctx, "1")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
}

func TestDeletingAuthorLeavesBooks(t *testing.T) {
	f := newFixture(t, "Frank Herbert")
	ctx := context.Background()

	_, err := f.svc.CreateBook(ctx, model.CreateBookRequest{Title: "Dune", AuthorID: "1"})
	require.NoError(t, err)
	require.NoError(t, f.store.Authors().Delete(ctx, 1))

	b, err := f.svc.GetBook(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), b.AuthorID)
}

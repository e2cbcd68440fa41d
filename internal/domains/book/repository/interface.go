package repository

import (
	"context"

	"bookstore-graphql/internal/domains/book/model"
)

// RepositoryInterface is the relational store of books.
type RepositoryInterface interface {
	Create(ctx context.Context, b *model.Book) (*model.Book, error)
	// GetByID returns model.ErrBookNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*model.Book, error)
	// List returns one page ordered by id.
	List(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	Count(ctx context.Context) (int64, error)
	// ListByAuthor returns every book of the author ordered by id.
	ListByAuthor(ctx context.Context, authorID int64) ([]model.Book, error)
	// Update overwrites the mutable columns of an existing row.
	Update(ctx context.Context, b *model.Book) (*model.Book, error)
	// Delete returns model.ErrBookNotFound when no row matches.
	Delete(ctx context.Context, id int64) error
	ExistsByID(ctx context.Context, id int64) (bool, error)
}

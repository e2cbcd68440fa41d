package repository

import (
	"context"

	"bookstore-graphql/internal/domains/author/model"
)

// RepositoryInterface is the relational store of authors.
type RepositoryInterface interface {
	// Create inserts a, rejecting with model.ErrDuplicateAuthor when an author
	// with the same name and born_date exists. Check and insert are atomic.
	Create(ctx context.Context, a *model.Author) (*model.Author, error)

	// GetByID returns model.ErrAuthorNotFound when no row matches.
	GetByID(ctx context.Context, id int64) (*model.Author, error)

	// List returns one page ordered by id.
	List(ctx context.Context, filter model.AuthorFilter) ([]model.Author, error)

	// ListAll returns every author with only id, name, biography and
	// born_date populated.
	ListAll(ctx context.Context) ([]model.Author, error)

	Count(ctx context.Context) (int64, error)

	// Update overwrites name, biography and born_date of an existing row.
	Update(ctx context.Context, a *model.Author) (*model.Author, error)

	// Delete returns model.ErrAuthorNotFound when no row matches.
	Delete(ctx context.Context, id int64) error

	ExistsByID(ctx context.Context, id int64) (bool, error)
}

// MetadataRepository is the document store of author metadata.
type MetadataRepository interface {
	// GetByAuthorID returns model.ErrMetadataNotFound when absent.
	GetByAuthorID(ctx context.Context, authorID string) (*model.Metadata, error)

	// Upsert replaces the document for m.AuthorID, creating it if needed.
	Upsert(ctx context.Context, m *model.Metadata) (*model.Metadata, error)
}

package service

import (
	"context"

	"bookstore-graphql/internal/domains/author/model"
)

type ServiceInterface interface {
	CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error)
	GetAuthor(ctx context.Context, id string) (*model.Author, error)
	// FindAuthor returns nil without error when the author does not exist.
	FindAuthor(ctx context.Context, id int64) (*model.Author, error)
	ListAuthors(ctx context.Context, req model.ListAuthorsRequest) ([]model.Author, error)
	ListAllAuthors(ctx context.Context) ([]model.Author, error)
	CountAuthors(ctx context.Context) (int64, error)
	UpdateAuthor(ctx context.Context, req model.UpdateAuthorRequest) (*model.Author, error)
	DeleteAuthor(ctx context.Context, id string) error

	// GetMetadata returns nil without error when no document exists.
	GetMetadata(ctx context.Context, authorID int64) (*model.Metadata, error)
	SetMetadata(ctx context.Context, req model.SetMetadataRequest) (*model.Metadata, error)
}

package service

import (
	"context"

	"bookstore-graphql/internal/domains/book/model"
)

type ServiceInterface interface {
	CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error)
	GetBook(ctx context.Context, id string) (*model.Book, error)
	ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error)
	CountBooks(ctx context.Context) (int64, error)
	ListBooksByAuthor(ctx context.Context, authorID int64) ([]model.Book, error)
	UpdateBook(ctx context.Context, req model.UpdateBookRequest) (*model.Book, error)
	DeleteBook(ctx context.Context, id string) error
}

package service

import (
	"context"

	"bookstore-graphql/internal/domains/review/model"

	"github.com/shopspring/decimal"
)

type ServiceInterface interface {
	AddReview(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error)
	ListReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error)
	// ListReviewsByAuthor collects the reviews of every book the author owns.
	ListReviewsByAuthor(ctx context.Context, authorID int64) ([]model.Review, error)
	// AverageRating is nil when the book has no reviews.
	AverageRating(ctx context.Context, bookID int64) (*decimal.Decimal, error)
}

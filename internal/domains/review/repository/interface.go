package repository

import (
	"context"

	"bookstore-graphql/internal/domains/review/model"
)

// Repository is the document store of reviews.
type Repository interface {
	// Create stores r and returns it with its generated id.
	Create(ctx context.Context, r *model.Review) (*model.Review, error)
	ListByBookID(ctx context.Context, bookID string) ([]model.Review, error)
	ListByBookIDs(ctx context.Context, bookIDs []string) ([]model.Review, error)
	RatingStats(ctx context.Context, bookID string) (model.RatingStats, error)
}

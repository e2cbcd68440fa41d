package service

import (
	"context"
	"strings"
	"time"

	bookRepo "bookstore-graphql/internal/domains/book/repository"
	"bookstore-graphql/internal/domains/review/model"
	"bookstore-graphql/internal/domains/review/repository"
	"bookstore-graphql/internal/shared/apperror"
	"bookstore-graphql/internal/shared/utils"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ReviewService struct {
	repo  repository.Repository
	books bookRepo.RepositoryInterface
	now   func() time.Time
}

func NewService(repo repository.Repository, books bookRepo.RepositoryInterface) ServiceInterface {
	return &ReviewService{repo: repo, books: books, now: time.Now}
}

func (s *ReviewService) AddReview(ctx context.Context, req model.CreateReviewRequest) (*model.Review, error) {
	const op = "ReviewService.AddReview"

	req.BookID = strings.TrimSpace(req.BookID)
	req.User = strings.TrimSpace(req.User)
	req.Review = strings.TrimSpace(req.Review)
	if err := req.Validate(); err != nil {
		return nil, apperror.InvalidInput(op, err)
	}

	bookID, err := utils.ParseID(req.BookID)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "book_id: %v", err)
	}
	exists, err := s.books.ExistsByID(ctx, bookID)
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}
	if !exists {
		return nil, apperror.NotFound(op, model.ErrBookNotFound)
	}

	created, err := s.repo.Create(ctx, &model.Review{
		BookID:     utils.FormatID(bookID),
		User:       req.User,
		Rating:     req.Rating,
		Review:     req.Review,
		ReviewDate: s.now().UTC(),
	})
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}

	log.Info().Str("review_id", created.ID).Int64("book_id", bookID).Msg("Review added")
	return created, nil
}

func (s *ReviewService) ListReviewsByBook(ctx context.Context, bookID int64) ([]model.Review, error) {
	reviews, err := s.repo.ListByBookID(ctx, utils.FormatID(bookID))
	if err != nil {
		return nil, apperror.StoreFailure("ReviewService.ListReviewsByBook", err)
	}
	return reviews, nil
}

func (s *ReviewService) ListReviewsByAuthor(ctx context.Context, authorID int64) ([]model.Review, error) {
	const op = "ReviewService.ListReviewsByAuthor"

	books, err := s.books.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}
	if len(books) == 0 {
		return []model.Review{}, nil
	}

	ids := make([]string, 0, len(books))
	for _, b := range books {
		ids = append(ids, utils.FormatID(b.ID))
	}

	reviews, err := s.repo.ListByBookIDs(ctx, ids)
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}
	return reviews, nil
}

func (s *ReviewService) AverageRating(ctx context.Context, bookID int64) (*decimal.Decimal, error) {
	stats, err := s.repo.RatingStats(ctx, utils.FormatID(bookID))
	if err != nil {
		return nil, apperror.StoreFailure("ReviewService.AverageRating", err)
	}
	return utils.AverageRating(stats.Total, stats.Count), nil
}

package memory

import (
	"context"
	"fmt"

	"bookstore-graphql/internal/domains/review/model"
	"bookstore-graphql/internal/domains/review/repository"
)

var _ repository.Repository = (*ReviewRepository)(nil)

type ReviewRepository struct {
	s *Store
}

func (r *ReviewRepository) Create(_ context.Context, review *model.Review) (*model.Review, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextReviewID++
	created := *review
	created.ID = fmt.Sprintf("%024x", r.s.nextReviewID)
	r.s.reviews = append(r.s.reviews, created)
	return &created, nil
}

func (r *ReviewRepository) ListByBookID(_ context.Context, bookID string) ([]model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := []model.Review{}
	for _, rv := range r.s.reviews {
		if rv.BookID == bookID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *ReviewRepository) ListByBookIDs(_ context.Context, bookIDs []string) ([]model.Review, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	wanted := make(map[string]struct{}, len(bookIDs))
	for _, id := range bookIDs {
		wanted[id] = struct{}{}
	}
	out := []model.Review{}
	for _, rv := range r.s.reviews {
		if _, ok := wanted[rv.BookID]; ok {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *ReviewRepository) RatingStats(_ context.Context, bookID string) (model.RatingStats, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	var stats model.RatingStats
	for _, rv := range r.s.reviews {
		if rv.BookID == bookID {
			stats.Count++
			stats.Total += int64(rv.Rating)
		}
	}
	return stats, nil
}

package graph

import (
	"time"

	reviewModel "bookstore-graphql/internal/domains/review/model"

	"github.com/graph-gophers/graphql-go"
)

type ReviewResolver struct {
	review reviewModel.Review
}

func (r *ReviewResolver) ID() graphql.ID {
	return graphql.ID(r.review.ID)
}

func (r *ReviewResolver) BookID() graphql.ID {
	return graphql.ID(r.review.BookID)
}

func (r *ReviewResolver) User() string {
	return r.review.User
}

func (r *ReviewResolver) Rating() int32 {
	return int32(r.review.Rating)
}

func (r *ReviewResolver) Review() string {
	return r.review.Review
}

// ReviewDate is RFC 3339 in UTC.
func (r *ReviewResolver) ReviewDate() *string {
	if r.review.ReviewDate.IsZero() {
		return nil
	}
	s := r.review.ReviewDate.UTC().Format(time.RFC3339)
	return &s
}

func reviewResolvers(reviews []reviewModel.Review) []*ReviewResolver {
	out := make([]*ReviewResolver, len(reviews))
	for i := range reviews {
		out[i] = &ReviewResolver{review: reviews[i]}
	}
	return out
}

package graph

import (
	"context"
	"time"

	bookModel "bookstore-graphql/internal/domains/book/model"
	"bookstore-graphql/internal/shared/utils"

	"github.com/graph-gophers/graphql-go"
)

type BookResolver struct {
	root *Resolver
	book bookModel.Book
}

func (b *BookResolver) ID() graphql.ID {
	return graphql.ID(utils.FormatID(b.book.ID))
}

func (b *BookResolver) Title() string {
	return b.book.Title
}

func (b *BookResolver) Description() *string {
	return b.book.Description
}

func (b *BookResolver) PublishedDate() *string {
	return utils.FormatDatePtr(b.book.PublishedDate)
}

// Author is null when the book points at a deleted author.
func (b *BookResolver) Author(ctx context.Context) (_ *AuthorResolver, err error) {
	defer b.root.track("Book.author", time.Now(), &err)

	author, err := b.root.authors.FindAuthor(ctx, b.book.AuthorID)
	if err != nil || author == nil {
		return nil, err
	}
	return &AuthorResolver{root: b.root, author: *author}, nil
}

func (b *BookResolver) Reviews(ctx context.Context) (_ []*ReviewResolver, err error) {
	defer b.root.track("Book.reviews", time.Now(), &err)

	reviews, err := b.root.reviews.ListReviewsByBook(ctx, b.book.ID)
	if err != nil {
		return nil, err
	}
	return reviewResolvers(reviews), nil
}

func (b *BookResolver) AverageRating(ctx context.Context) (_ *float64, err error) {
	defer b.root.track("Book.averageRating", time.Now(), &err)

	avg, err := b.root.reviews.AverageRating(ctx, b.book.ID)
	if err != nil || avg == nil {
		return nil, err
	}
	v := avg.InexactFloat64()
	return &v, nil
}

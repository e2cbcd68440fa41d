package graph

import (
	"context"
	"time"

	authorModel "bookstore-graphql/internal/domains/author/model"
	bookModel "bookstore-graphql/internal/domains/book/model"
	reviewModel "bookstore-graphql/internal/domains/review/model"

	"github.com/graph-gophers/graphql-go"
)

const (
	msgBookDeleted   = "Book deleted successfully"
	msgAuthorDeleted = "Author deleted successfully"
)

type addBookArgs struct {
	Title         string
	Description   *string
	PublishedDate *string
	AuthorID      graphql.ID
}

type updateBookArgs struct {
	ID            graphql.ID
	Title         *string
	Description   *string
	PublishedDate *string
	AuthorID      *graphql.ID
}

type addAuthorArgs struct {
	Name      string
	Biography *string
	BornDate  *string
}

type updateAuthorArgs struct {
	ID        graphql.ID
	Name      *string
	Biography *string
	BornDate  *string
}

type addReviewArgs struct {
	BookID graphql.ID
	User   string
	Rating int32
	Review string
}

type setAuthorMetadataArgs struct {
	AuthorID  graphql.ID
	Awards    *[]string
	Website   *string
	Twitter   *string
	Instagram *string
}

// ========================================
// BOOKS
// ========================================

func (r *Resolver) AddBook(ctx context.Context, args addBookArgs) (_ *BookResolver, err error) {
	defer r.track("Mutation.addBook", time.Now(), &err)

	book, err := r.books.CreateBook(ctx, bookModel.CreateBookRequest{
		Title:         args.Title,
		Description:   args.Description,
		PublishedDate: args.PublishedDate,
		AuthorID:      string(args.AuthorID),
	})
	if err != nil {
		return nil, err
	}
	return &BookResolver{root: r, book: *book}, nil
}

func (r *Resolver) UpdateBook(ctx context.Context, args updateBookArgs) (_ *BookResolver, err error) {
	defer r.track("Mutation.updateBook", time.Now(), &err)

	book, err := r.books.UpdateBook(ctx, bookModel.UpdateBookRequest{
		ID:            string(args.ID),
		Title:         args.Title,
		Description:   args.Description,
		PublishedDate: args.PublishedDate,
		AuthorID:      idPtr(args.AuthorID),
	})
	if err != nil {
		return nil, err
	}
	return &BookResolver{root: r, book: *book}, nil
}

func (r *Resolver) DeleteBook(ctx context.Context, args idArgs) (_ *string, err error) {
	defer r.track("Mutation.deleteBook", time.Now(), &err)

	if err := r.books.DeleteBook(ctx, string(args.ID)); err != nil {
		return nil, err
	}
	msg := msgBookDeleted
	return &msg, nil
}

// ========================================
// AUTHORS
// ========================================

func (r *Resolver) AddAuthor(ctx context.Context, args addAuthorArgs) (_ *AuthorResolver, err error) {
	defer r.track("Mutation.addAuthor", time.Now(), &err)

	author, err := r.authors.CreateAuthor(ctx, authorModel.CreateAuthorRequest{
		Name:      args.Name,
		Biography: args.Biography,
		BornDate:  args.BornDate,
	})
	if err != nil {
		return nil, err
	}
	return &AuthorResolver{root: r, author: *author}, nil
}

func (r *Resolver) UpdateAuthor(ctx context.Context, args updateAuthorArgs) (_ *AuthorResolver, err error) {
	defer r.track("Mutation.updateAuthor", time.Now(), &err)

	author, err := r.authors.UpdateAuthor(ctx, authorModel.UpdateAuthorRequest{
		ID:        string(args.ID),
		Name:      args.Name,
		Biography: args.Biography,
		BornDate:  args.BornDate,
	})
	if err != nil {
		return nil, err
	}
	return &AuthorResolver{root: r, author: *author}, nil
}

func (r *Resolver) DeleteAuthor(ctx context.Context, args idArgs) (_ *string, err error) {
	defer r.track("Mutation.deleteAuthor", time.Now(), &err)

	if err := r.authors.DeleteAuthor(ctx, string(args.ID)); err != nil {
		return nil, err
	}
	msg := msgAuthorDeleted
	return &msg, nil
}

func (r *Resolver) SetAuthorMetadata(ctx context.Context, args setAuthorMetadataArgs) (_ *AuthorMetadataResolver, err error) {
	defer r.track("Mutation.setAuthorMetadata", time.Now(), &err)

	req := authorModel.SetMetadataRequest{
		AuthorID:  string(args.AuthorID),
		Website:   args.Website,
		Twitter:   args.Twitter,
		Instagram: args.Instagram,
	}
	if args.Awards != nil {
		req.Awards = *args.Awards
		if req.Awards == nil {
			req.Awards = []string{}
		}
	}

	meta, err := r.authors.SetMetadata(ctx, req)
	if err != nil {
		return nil, err
	}
	return &AuthorMetadataResolver{meta: *meta}, nil
}

// ========================================
// REVIEWS
// ========================================

func (r *Resolver) AddReview(ctx context.Context, args addReviewArgs) (_ *ReviewResolver, err error) {
	defer r.track("Mutation.addReview", time.Now(), &err)

	review, err := r.reviews.AddReview(ctx, reviewModel.CreateReviewRequest{
		BookID: string(args.BookID),
		User:   args.User,
		Rating: int(args.Rating),
		Review: args.Review,
	})
	if err != nil {
		return nil, err
	}
	return &ReviewResolver{review: *review}, nil
}

package graph

import (
	"context"
	"math"
	"time"

	authorModel "bookstore-graphql/internal/domains/author/model"
	bookModel "bookstore-graphql/internal/domains/book/model"

	"github.com/graph-gophers/graphql-go"
)

type BookFilterInput struct {
	Title         *string
	AuthorID      *graphql.ID
	PublishedDate *string
}

type AuthorFilterInput struct {
	Name     *string
	BornDate *string
}

type booksArgs struct {
	Limit  int32
	Offset int32
	Filter *BookFilterInput
}

type authorsArgs struct {
	Limit  int32
	Offset int32
	Filter *AuthorFilterInput
}

type idArgs struct {
	ID graphql.ID
}

// ========================================
// QUERIES
// ========================================

func (r *Resolver) Books(ctx context.Context, args booksArgs) (_ []*BookResolver, err error) {
	defer r.track("Query.books", time.Now(), &err)

	req := bookModel.ListBooksRequest{
		Limit:  intPtr(args.Limit),
		Offset: intPtr(args.Offset),
	}
	if f := args.Filter; f != nil {
		req.Title = f.Title
		req.AuthorID = idPtr(f.AuthorID)
		req.PublishedDate = f.PublishedDate
	}

	books, err := r.books.ListBooks(ctx, req)
	if err != nil {
		return nil, err
	}
	return r.bookResolvers(books), nil
}

func (r *Resolver) Authors(ctx context.Context, args authorsArgs) (_ []*AuthorResolver, err error) {
	defer r.track("Query.authors", time.Now(), &err)

	req := authorModel.ListAuthorsRequest{
		Limit:  intPtr(args.Limit),
		Offset: intPtr(args.Offset),
	}
	if f := args.Filter; f != nil {
		req.Name = f.Name
		req.BornDate = f.BornDate
	}

	authors, err := r.authors.ListAuthors(ctx, req)
	if err != nil {
		return nil, err
	}
	return r.authorResolvers(authors), nil
}

func (r *Resolver) Book(ctx context.Context, args idArgs) (_ *BookResolver, err error) {
	defer r.track("Query.book", time.Now(), &err)

	book, err := r.books.GetBook(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &BookResolver{root: r, book: *book}, nil
}

func (r *Resolver) Author(ctx context.Context, args idArgs) (_ *AuthorResolver, err error) {
	defer r.track("Query.author", time.Now(), &err)

	author, err := r.authors.GetAuthor(ctx, string(args.ID))
	if err != nil {
		return nil, err
	}
	return &AuthorResolver{root: r, author: *author}, nil
}

func (r *Resolver) BooksCount(ctx context.Context) (_ int32, err error) {
	defer r.track("Query.booksCount", time.Now(), &err)

	n, err := r.books.CountBooks(ctx)
	if err != nil {
		return 0, err
	}
	return clampCount(n), nil
}

func (r *Resolver) AuthorsCount(ctx context.Context) (_ int32, err error) {
	defer r.track("Query.authorsCount", time.Now(), &err)

	n, err := r.authors.CountAuthors(ctx)
	if err != nil {
		return 0, err
	}
	return clampCount(n), nil
}

// Getallauthors lists every author without paging.
func (r *Resolver) Getallauthors(ctx context.Context) (_ []*AuthorResolver, err error) {
	defer r.track("Query.getallauthors", time.Now(), &err)

	authors, err := r.authors.ListAllAuthors(ctx)
	if err != nil {
		return nil, err
	}
	return r.authorResolvers(authors), nil
}

// ========================================
// HELPERS
// ========================================

func (r *Resolver) bookResolvers(books []bookModel.Book) []*BookResolver {
	out := make([]*BookResolver, len(books))
	for i := range books {
		out[i] = &BookResolver{root: r, book: books[i]}
	}
	return out
}

func (r *Resolver) authorResolvers(authors []authorModel.Author) []*AuthorResolver {
	out := make([]*AuthorResolver, len(authors))
	for i := range authors {
		out[i] = &AuthorResolver{root: r, author: authors[i]}
	}
	return out
}

// Arguments with an SDL default are always supplied by the engine.
func intPtr(v int32) *int {
	n := int(v)
	return &n
}

// clampCount saturates counts that do not fit a GraphQL Int.
func clampCount(n int64) int32 {
	if n > math.MaxInt32 {
		return math.MaxInt32
	}
	return int32(n)
}

func idPtr(id *graphql.ID) *string {
	if id == nil {
		return nil
	}
	s := string(*id)
	return &s
}

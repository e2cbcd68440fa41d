package graph

import (
	"context"
	"time"

	authorModel "bookstore-graphql/internal/domains/author/model"
	"bookstore-graphql/internal/shared/utils"

	"github.com/graph-gophers/graphql-go"
)

type AuthorResolver struct {
	root   *Resolver
	author authorModel.Author
}

func (a *AuthorResolver) ID() graphql.ID {
	return graphql.ID(utils.FormatID(a.author.ID))
}

func (a *AuthorResolver) Name() string {
	return a.author.Name
}

func (a *AuthorResolver) Biography() *string {
	return a.author.Biography
}

func (a *AuthorResolver) BornDate() *string {
	return utils.FormatDatePtr(a.author.BornDate)
}

func (a *AuthorResolver) Books(ctx context.Context) (_ []*BookResolver, err error) {
	defer a.root.track("Author.books", time.Now(), &err)

	books, err := a.root.books.ListBooksByAuthor(ctx, a.author.ID)
	if err != nil {
		return nil, err
	}
	return a.root.bookResolvers(books), nil
}

// Reviews collects the reviews of every book the author owns.
func (a *AuthorResolver) Reviews(ctx context.Context) (_ []*ReviewResolver, err error) {
	defer a.root.track("Author.reviews", time.Now(), &err)

	reviews, err := a.root.reviews.ListReviewsByAuthor(ctx, a.author.ID)
	if err != nil {
		return nil, err
	}
	return reviewResolvers(reviews), nil
}

func (a *AuthorResolver) Metadata(ctx context.Context) (_ *AuthorMetadataResolver, err error) {
	defer a.root.track("Author.metadata", time.Now(), &err)

	meta, err := a.root.authors.GetMetadata(ctx, a.author.ID)
	if err != nil || meta == nil {
		return nil, err
	}
	return &AuthorMetadataResolver{meta: *meta}, nil
}

// ========================================
// METADATA
// ========================================

type AuthorMetadataResolver struct {
	meta authorModel.Metadata
}

func (m *AuthorMetadataResolver) AuthorID() graphql.ID {
	return graphql.ID(m.meta.AuthorID)
}

func (m *AuthorMetadataResolver) Awards() []string {
	if m.meta.Awards == nil {
		return []string{}
	}
	return m.meta.Awards
}

func (m *AuthorMetadataResolver) Website() *string {
	return optional(m.meta.Website)
}

func (m *AuthorMetadataResolver) SocialMedia() *SocialMediaResolver {
	return &SocialMediaResolver{social: m.meta.SocialMedia}
}

type SocialMediaResolver struct {
	social authorModel.SocialMedia
}

func (s *SocialMediaResolver) Twitter() *string {
	return optional(s.social.Twitter)
}

func (s *SocialMediaResolver) Instagram() *string {
	return optional(s.social.Instagram)
}

// optional maps the empty string to null.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

package service

import (
	"context"
	"errors"
	"strings"

	"bookstore-graphql/internal/domains/author/model"
	"bookstore-graphql/internal/domains/author/repository"
	"bookstore-graphql/internal/shared/apperror"
	"bookstore-graphql/internal/shared/utils"

	"github.com/rs/zerolog/log"
)

type AuthorService struct {
	repo     repository.RepositoryInterface
	metadata repository.MetadataRepository
}

func NewService(repo repository.RepositoryInterface, metadata repository.MetadataRepository) ServiceInterface {
	return &AuthorService{repo: repo, metadata: metadata}
}

// ========================================
// AUTHORS
// ========================================

func (s *AuthorService) CreateAuthor(ctx context.Context, req model.CreateAuthorRequest) (*model.Author, error) {
	const op = "AuthorService.CreateAuthor"

	req.Name = strings.TrimSpace(req.Name)
	if err := req.Validate(); err != nil {
		return nil, apperror.InvalidInput(op, err)
	}

	bornDate, err := utils.ParseDatePtr(req.BornDate)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "born_date: %v", err)
	}

	created, err := s.repo.Create(ctx, &model.Author{
		Name:      req.Name,
		Biography: req.Biography,
		BornDate:  bornDate,
	})
	if err != nil {
		if errors.Is(err, model.ErrDuplicateAuthor) {
			return nil, apperror.Conflict(op, err)
		}
		return nil, apperror.StoreFailure(op, err)
	}

	log.Info().Int64("author_id", created.ID).Msg("Author created")
	return created, nil
}

func (s *AuthorService) GetAuthor(ctx context.Context, id string) (*model.Author, error) {
	const op = "AuthorService.GetAuthor"

	authorID, err := utils.ParseID(id)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "%v", err)
	}

	a, err := s.repo.GetByID(ctx, authorID)
	if err != nil {
		return nil, notFoundOr(op, err)
	}
	return a, nil
}

func (s *AuthorService) FindAuthor(ctx context.Context, id int64) (*model.Author, error) {
	a, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, model.ErrAuthorNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.StoreFailure("AuthorService.FindAuthor", err)
	}
	return a, nil
}

func (s *AuthorService) ListAuthors(ctx context.Context, req model.ListAuthorsRequest) ([]model.Author, error) {
	const op = "AuthorService.ListAuthors"

	filter := model.AuthorFilter{Name: utils.TrimmedPtr(req.Name)}
	filter.Limit, filter.Offset = utils.ClampPage(req.Limit, req.Offset)

	bornDate, err := utils.ParseDatePtr(req.BornDate)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "born_date: %v", err)
	}
	filter.BornDate = bornDate

	authors, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}
	return authors, nil
}

func (s *AuthorService) ListAllAuthors(ctx context.Context) ([]model.Author, error) {
	authors, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, apperror.StoreFailure("AuthorService.ListAllAuthors", err)
	}
	return authors, nil
}

func (s *AuthorService) CountAuthors(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperror.StoreFailure("AuthorService.CountAuthors", err)
	}
	return n, nil
}

func (s *AuthorService) UpdateAuthor(ctx context.Context, req model.UpdateAuthorRequest) (*model.Author, error) {
	const op = "AuthorService.UpdateAuthor"

	if err := req.Validate(); err != nil {
		return nil, apperror.InvalidInput(op, err)
	}
	authorID, err := utils.ParseID(req.ID)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "%v", err)
	}

	existing, err := s.repo.GetByID(ctx, authorID)
	if err != nil {
		return nil, notFoundOr(op, err)
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Biography != nil {
		existing.Biography = utils.TrimmedPtr(req.Biography)
	}
	if req.BornDate != nil {
		// A blank born_date clears the column.
		existing.BornDate, err = utils.ParseDatePtr(req.BornDate)
		if err != nil {
			return nil, apperror.InvalidArgument(op, "born_date: %v", err)
		}
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, notFoundOr(op, err)
	}
	return updated, nil
}

// DeleteAuthor leaves the author's books and metadata in place.
func (s *AuthorService) DeleteAuthor(ctx context.Context, id string) error {
	const op = "AuthorService.DeleteAuthor"

	authorID, err := utils.ParseID(id)
	if err != nil {
		return apperror.InvalidArgument(op, "%v", err)
	}
	if err := s.repo.Delete(ctx, authorID); err != nil {
		return notFoundOr(op, err)
	}

	log.Info().Int64("author_id", authorID).Msg("Author deleted")
	return nil
}

// ========================================
// METADATA
// ========================================

func (s *AuthorService) GetMetadata(ctx context.Context, authorID int64) (*model.Metadata, error) {
	m, err := s.metadata.GetByAuthorID(ctx, utils.FormatID(authorID))
	if errors.Is(err, model.ErrMetadataNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperror.StoreFailure("AuthorService.GetMetadata", err)
	}
	return m, nil
}

// SetMetadata merges the supplied fields into the author's metadata
// document, creating it on first use.
func (s *AuthorService) SetMetadata(ctx context.Context, req model.SetMetadataRequest) (*model.Metadata, error) {
	const op = "AuthorService.SetMetadata"

	if err := req.Validate(); err != nil {
		return nil, apperror.InvalidInput(op, err)
	}
	authorID, err := utils.ParseID(req.AuthorID)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "author_id: %v", err)
	}

	exists, err := s.repo.ExistsByID(ctx, authorID)
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}
	if !exists {
		return nil, apperror.NotFound(op, model.ErrAuthorNotFound)
	}

	key := utils.FormatID(authorID)
	m, err := s.metadata.GetByAuthorID(ctx, key)
	switch {
	case errors.Is(err, model.ErrMetadataNotFound):
		m = &model.Metadata{AuthorID: key}
	case err != nil:
		return nil, apperror.StoreFailure(op, err)
	}

	if req.Awards != nil {
		m.Awards = req.Awards
	}
	if req.Website != nil {
		m.Website = strings.TrimSpace(*req.Website)
	}
	if req.Twitter != nil {
		m.SocialMedia.Twitter = strings.TrimSpace(*req.Twitter)
	}
	if req.Instagram != nil {
		m.SocialMedia.Instagram = strings.TrimSpace(*req.Instagram)
	}

	stored, err := s.metadata.Upsert(ctx, m)
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}
	return stored, nil
}

func notFoundOr(op string, err error) error {
	if errors.Is(err, model.ErrAuthorNotFound) {
		return apperror.NotFound(op, err)
	}
	return apperror.StoreFailure(op, err)
}

package service

import (
	"context"
	"errors"
	"strings"

	authorRepo "bookstore-graphql/internal/domains/author/repository"
	"bookstore-graphql/internal/domains/book/model"
	"bookstore-graphql/internal/domains/book/repository"
	"bookstore-graphql/internal/shared/apperror"
	"bookstore-graphql/internal/shared/utils"

	"github.com/rs/zerolog/log"
)

type BookService struct {
	repo    repository.RepositoryInterface
	authors authorRepo.RepositoryInterface
}

func NewService(repo repository.RepositoryInterface, authors authorRepo.RepositoryInterface) ServiceInterface {
	return &BookService{repo: repo, authors: authors}
}

func (s *BookService) CreateBook(ctx context.Context, req model.CreateBookRequest) (*model.Book, error) {
	const op = "BookService.CreateBook"

	req.Title = strings.TrimSpace(req.Title)
	req.AuthorID = strings.TrimSpace(req.AuthorID)
	if err := req.Validate(); err != nil {
		return nil, apperror.InvalidInput(op, err)
	}

	authorID, err := s.resolveAuthor(ctx, op, req.AuthorID)
	if err != nil {
		return nil, err
	}
	published, err := utils.ParseDatePtr(req.PublishedDate)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "published_date: %v", err)
	}

	created, err := s.repo.Create(ctx, &model.Book{
		Title:         req.Title,
		Description:   req.Description,
		PublishedDate: published,
		AuthorID:      authorID,
	})
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}

	log.Info().Int64("book_id", created.ID).Int64("author_id", authorID).Msg("Book created")
	return created, nil
}

func (s *BookService) GetBook(ctx context.Context, id string) (*model.Book, error) {
	const op = "BookService.GetBook"

	bookID, err := utils.ParseID(id)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "%v", err)
	}
	b, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return nil, notFoundOr(op, err)
	}
	return b, nil
}

func (s *BookService) ListBooks(ctx context.Context, req model.ListBooksRequest) ([]model.Book, error) {
	const op = "BookService.ListBooks"

	filter := model.BookFilter{Title: utils.TrimmedPtr(req.Title)}
	filter.Limit, filter.Offset = utils.ClampPage(req.Limit, req.Offset)

	if id := utils.TrimmedPtr(req.AuthorID); id != nil {
		authorID, err := utils.ParseID(*id)
		if err != nil {
			return nil, apperror.InvalidArgument(op, "author_id: %v", err)
		}
		filter.AuthorID = &authorID
	}

	published, err := utils.ParseDatePtr(req.PublishedDate)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "published_date: %v", err)
	}
	filter.PublishedDate = published

	books, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, apperror.StoreFailure(op, err)
	}
	return books, nil
}

func (s *BookService) CountBooks(ctx context.Context) (int64, error) {
	n, err := s.repo.Count(ctx)
	if err != nil {
		return 0, apperror.StoreFailure("BookService.CountBooks", err)
	}
	return n, nil
}

func (s *BookService) ListBooksByAuthor(ctx context.Context, authorID int64) ([]model.Book, error) {
	books, err := s.repo.ListByAuthor(ctx, authorID)
	if err != nil {
		return nil, apperror.StoreFailure("BookService.ListBooksByAuthor", err)
	}
	return books, nil
}

func (s *BookService) UpdateBook(ctx context.Context, req model.UpdateBookRequest) (*model.Book, error) {
	const op = "BookService.UpdateBook"

	if err := req.Validate(); err != nil {
		return nil, apperror.InvalidInput(op, err)
	}
	bookID, err := utils.ParseID(req.ID)
	if err != nil {
		return nil, apperror.InvalidArgument(op, "%v", err)
	}

	existing, err := s.repo.GetByID(ctx, bookID)
	if err != nil {
		return nil, notFoundOr(op, err)
	}

	if req.AuthorID != nil {
		authorID, err := s.resolveAuthor(ctx, op, strings.TrimSpace(*req.AuthorID))
		if err != nil {
			return nil, err
		}
		existing.AuthorID = authorID
	}
	if req.Title != nil {
		existing.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		existing.Description = utils.TrimmedPtr(req.Description)
	}
	if req.PublishedDate != nil {
		// A blank published_date clears the column.
		existing.PublishedDate, err = utils.ParseDatePtr(req.PublishedDate)
		if err != nil {
			return nil, apperror.InvalidArgument(op, "published_date: %v", err)
		}
	}

	updated, err := s.repo.Update(ctx, existing)
	if err != nil {
		return nil, notFoundOr(op, err)
	}
	return updated, nil
}

// DeleteBook leaves the book's reviews in the document store.
func (s *BookService) DeleteBook(ctx context.Context, id string) error {
	const op = "BookService.DeleteBook"

	bookID, err := utils.ParseID(id)
	if err != nil {
		return apperror.InvalidArgument(op, "%v", err)
	}
	if err := s.repo.Delete(ctx, bookID); err != nil {
		return notFoundOr(op, err)
	}

	log.Info().Int64("book_id", bookID).Msg("Book deleted")
	return nil
}

// resolveAuthor parses id and checks that the author exists.
func (s *BookService) resolveAuthor(ctx context.Context, op, id string) (int64, error) {
	authorID, err := utils.ParseID(id)
	if err != nil {
		return 0, apperror.InvalidArgument(op, "author_id: %v", err)
	}
	exists, err := s.authors.ExistsByID(ctx, authorID)
	if err != nil {
		return 0, apperror.StoreFailure(op, err)
	}
	if !exists {
		return 0, apperror.NotFound(op, model.ErrAuthorNotFound)
	}
	return authorID, nil
}

func notFoundOr(op string, err error) error {
	if errors.Is(err, model.ErrBookNotFound) {
		return apperror.NotFound(op, err)
	}
	return apperror.StoreFailure(op, err)
}

package memory

import (
	"context"
	"sort"
	"strings"

	"bookstore-graphql/internal/domains/book/model"
	"bookstore-graphql/internal/domains/book/repository"
	"bookstore-graphql/internal/shared/utils"
)

var _ repository.RepositoryInterface = (*BookRepository)(nil)

type BookRepository struct {
	s *Store
}

func (r *BookRepository) Create(_ context.Context, b *model.Book) (*model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextBookID++
	now := r.s.now().UTC()
	created := *b
	created.ID = r.s.nextBookID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.s.books[created.ID] = created
	return &created, nil
}

func (r *BookRepository) GetByID(_ context.Context, id int64) (*model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	b, ok := r.s.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &b, nil
}

func (r *BookRepository) sorted(keep func(model.Book) bool) []model.Book {
	out := []model.Book{}
	for _, b := range r.s.books {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *BookRepository) List(_ context.Context, filter model.BookFilter) ([]model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := r.sorted(func(b model.Book) bool {
		if filter.Title != nil && !strings.Contains(strings.ToLower(b.Title), strings.ToLower(*filter.Title)) {
			return false
		}
		if filter.AuthorID != nil && b.AuthorID != *filter.AuthorID {
			return false
		}
		if filter.PublishedDate != nil {
			start, end := utils.DayWindow(*filter.PublishedDate)
			return inDay(b.PublishedDate, start, end)
		}
		return true
	})
	return page(matched, filter.Limit, filter.Offset), nil
}

func (r *BookRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.books)), nil
}

func (r *BookRepository) ListByAuthor(_ context.Context, authorID int64) ([]model.Book, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.sorted(func(b model.Book) bool { return b.AuthorID == authorID }), nil
}

func (r *BookRepository) Update(_ context.Context, b *model.Book) (*model.Book, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.books[b.ID]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	existing.Title = b.Title
	existing.Description = b.Description
	existing.PublishedDate = b.PublishedDate
	existing.AuthorID = b.AuthorID
	existing.UpdatedAt = r.s.now().UTC()
	r.s.books[b.ID] = existing
	return &existing, nil
}

func (r *BookRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.s.books, id)
	return nil
}

func (r *BookRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.books[id]
	return ok, nil
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"bookstore-graphql/internal/domains/author/model"
	"bookstore-graphql/internal/domains/author/repository"
	"bookstore-graphql/internal/shared/utils"
)

var (
	_ repository.RepositoryInterface = (*AuthorRepository)(nil)
	_ repository.MetadataRepository  = (*MetadataRepository)(nil)
)

type AuthorRepository struct {
	s *Store
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func (r *AuthorRepository) Create(_ context.Context, a *model.Author) (*model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.authors {
		if existing.Name == a.Name && sameDate(existing.BornDate, a.BornDate) {
			return nil, model.ErrDuplicateAuthor
		}
	}

	r.s.nextAuthorID++
	now := r.s.now().UTC()
	created := *a
	created.ID = r.s.nextAuthorID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.s.authors[created.ID] = created
	return &created, nil
}

func (r *AuthorRepository) GetByID(_ context.Context, id int64) (*model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	a, ok := r.s.authors[id]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	return &a, nil
}

func (r *AuthorRepository) sorted() []model.Author {
	out := make([]model.Author, 0, len(r.s.authors))
	for _, a := range r.s.authors {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *AuthorRepository) List(_ context.Context, filter model.AuthorFilter) ([]model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	matched := []model.Author{}
	for _, a := range r.sorted() {
		if filter.Name != nil && !strings.Contains(strings.ToLower(a.Name), strings.ToLower(*filter.Name)) {
			continue
		}
		if filter.BornDate != nil {
			start, end := utils.DayWindow(*filter.BornDate)
			if !inDay(a.BornDate, start, end) {
				continue
			}
		}
		matched = append(matched, a)
	}
	return page(matched, filter.Limit, filter.Offset), nil
}

func (r *AuthorRepository) ListAll(_ context.Context) ([]model.Author, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	all := r.sorted()
	for i := range all {
		all[i] = model.Author{ID: all[i].ID, Name: all[i].Name, Biography: all[i].Biography, BornDate: all[i].BornDate}
	}
	return all, nil
}

func (r *AuthorRepository) Count(_ context.Context) (int64, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return int64(len(r.s.authors)), nil
}

func (r *AuthorRepository) Update(_ context.Context, a *model.Author) (*model.Author, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	existing, ok := r.s.authors[a.ID]
	if !ok {
		return nil, model.ErrAuthorNotFound
	}
	existing.Name = a.Name
	existing.Biography = a.Biography
	existing.BornDate = a.BornDate
	existing.UpdatedAt = r.s.now().UTC()
	r.s.authors[a.ID] = existing
	return &existing, nil
}

func (r *AuthorRepository) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.authors[id]; !ok {
		return model.ErrAuthorNotFound
	}
	delete(r.s.authors, id)
	return nil
}

func (r *AuthorRepository) ExistsByID(_ context.Context, id int64) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	_, ok := r.s.authors[id]
	return ok, nil
}

// ========================================
// METADATA
// ========================================

type MetadataRepository struct {
	s *Store
}

func (r *MetadataRepository) GetByAuthorID(_ context.Context, authorID string) (*model.Metadata, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	m, ok := r.s.metadata[authorID]
	if !ok {
		return nil, model.ErrMetadataNotFound
	}
	m.Awards = append([]string(nil), m.Awards...)
	return &m, nil
}

func (r *MetadataRepository) Upsert(_ context.Context, m *model.Metadata) (*model.Metadata, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := *m
	stored.Awards = append([]string{}, m.Awards...)
	stored.UpdatedAt = r.s.now().UTC()
	r.s.metadata[m.AuthorID] = stored
	return &stored, nil
}

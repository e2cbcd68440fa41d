// Package memory is an in-process implementation of every repository,
// relational and document alike. It backs tests and the "memory" drivers.
package memory

import (
	"sync"
	"time"

	authorModel "bookstore-graphql/internal/domains/author/model"
	bookModel "bookstore-graphql/internal/domains/book/model"
	reviewModel "bookstore-graphql/internal/domains/review/model"
)

// Store holds all collections behind a single lock.
type Store struct {
	mu sync.RWMutex

	authors      map[int64]authorModel.Author
	books        map[int64]bookModel.Book
	reviews      []reviewModel.Review
	metadata     map[string]authorModel.Metadata
	nextAuthorID int64
	nextBookID   int64
	nextReviewID int64

	now func() time.Time
}

func NewStore() *Store {
	return &Store{
		authors:  make(map[int64]authorModel.Author),
		books:    make(map[int64]bookModel.Book),
		metadata: make(map[string]authorModel.Metadata),
		now:      time.Now,
	}
}

// SetClock replaces the timestamp source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) Authors() *AuthorRepository {
	return &AuthorRepository{s: s}
}

func (s *Store) Books() *BookRepository {
	return &BookRepository{s: s}
}

func (s *Store) Reviews() *ReviewRepository {
	return &ReviewRepository{s: s}
}

func (s *Store) Metadata() *MetadataRepository {
	return &MetadataRepository{s: s}
}

func inDay(t *time.Time, start, end time.Time) bool {
	return t != nil && !t.Before(start) && t.Before(end)
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return []T{}
	}
	end := min(offset+limit, len(items))
	return items[offset:end]
}

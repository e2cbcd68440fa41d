package model

import "time"

const MaxTitleLength = 255

// Book is a row of the books table. AuthorID is not a foreign key and may
// point at a deleted author.
type Book struct {
	ID            int64      `json:"id" db:"id"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description" db:"description"`
	PublishedDate *time.Time `json:"published_date" db:"published_date"`
	AuthorID      int64      `json:"author_id" db:"author_id"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}

// BookFilter is the typed, already-parsed form of a books query.
type BookFilter struct {
	Title         *string    // case-insensitive substring
	AuthorID      *int64     // exact
	PublishedDate *time.Time // whole UTC day
	Limit         int
	Offset        int
}

func (f BookFilter) IsEmpty() bool {
	return f.Title == nil && f.AuthorID == nil && f.PublishedDate == nil
}

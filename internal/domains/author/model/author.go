package model

import "time"

const MaxNameLength = 255

// Author is a row of the authors table.
type Author struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Biography *string    `json:"biography" db:"biography"`
	BornDate  *time.Time `json:"born_date" db:"born_date"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// AuthorFilter is the typed, already-parsed form of an authors query.
type AuthorFilter struct {
	Name     *string    // case-insensitive substring
	BornDate *time.Time // whole UTC day
	Limit    int
	Offset   int
}

// IsEmpty reports whether no predicate is set.
func (f AuthorFilter) IsEmpty() bool {
	return f.Name == nil && f.BornDate == nil
}

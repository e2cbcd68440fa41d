package model

import "time"

// Review is a book_reviews document. BookID is the string form of the
// relational book id. Reviews are immutable once stored.
type Review struct {
	ID         string    `json:"id"`
	BookID     string    `json:"book_id"`
	User       string    `json:"user"`
	Rating     int       `json:"rating"`
	Review     string    `json:"review"`
	ReviewDate time.Time `json:"review_date"`
}

// RatingStats aggregates the ratings of one book.
type RatingStats struct {
	Count int64
	Total int64
}

package model

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type CreateReviewRequest struct {
	BookID string `json:"book_id"`
	User   string `json:"user"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

// Validate rejects missing or zero-valued fields. Any non-zero rating is
// stored as given.
func (r CreateReviewRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.BookID, validation.Required),
		validation.Field(&r.User, validation.Required),
		validation.Field(&r.Rating, validation.Required),
		validation.Field(&r.Review, validation.Required),
	)
}

package model

import (
	"errors"
	"strings"

	"bookstore-graphql/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ListBooksRequest carries the raw GraphQL arguments of the books query.
type ListBooksRequest struct {
	Limit         *int
	Offset        *int
	Title         *string
	AuthorID      *string
	PublishedDate *string
}

type CreateBookRequest struct {
	Title         string  `json:"title"`
	Description   *string `json:"description"`
	PublishedDate *string `json:"published_date"`
	AuthorID      string  `json:"author_id"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title, validation.Required, validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.AuthorID, validation.Required),
		validation.Field(&r.PublishedDate, validation.By(validDate)),
	)
}

// UpdateBookRequest changes only the non-nil fields.
type UpdateBookRequest struct {
	ID            string  `json:"id"`
	Title         *string `json:"title"`
	Description   *string `json:"description"`
	PublishedDate *string `json:"published_date"`
	AuthorID      *string `json:"author_id"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Title, validation.By(notBlank), validation.RuneLength(1, MaxTitleLength)),
		validation.Field(&r.AuthorID, validation.By(notBlank)),
		validation.Field(&r.PublishedDate, validation.By(validDate)),
	)
}

func validDate(value interface{}) error {
	s, ok := value.(*string)
	if !ok || s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	if _, err := utils.ParseDate(*s); err != nil {
		return errors.New("must be a date in YYYY-MM-DD form")
	}
	return nil
}

func notBlank(value interface{}) error {
	s, ok := value.(*string)
	if ok && s != nil && strings.TrimSpace(*s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

package model

import (
	"errors"
	"strings"

	"bookstore-graphql/internal/shared/utils"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ListAuthorsRequest carries the raw GraphQL arguments of the authors query.
type ListAuthorsRequest struct {
	Limit    *int
	Offset   *int
	Name     *string
	BornDate *string
}

type CreateAuthorRequest struct {
	Name      string  `json:"name"`
	Biography *string `json:"biography"`
	BornDate  *string `json:"born_date"`
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required,
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.BornDate, validation.By(validDate)),
	)
}

// UpdateAuthorRequest changes only the non-nil fields.
type UpdateAuthorRequest struct {
	ID        string  `json:"id"`
	Name      *string `json:"name"`
	Biography *string `json:"biography"`
	BornDate  *string `json:"born_date"`
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.ID, validation.Required),
		validation.Field(&r.Name,
			validation.By(notBlank),
			validation.RuneLength(1, MaxNameLength),
		),
		validation.Field(&r.BornDate, validation.By(validDate)),
	)
}

type SetMetadataRequest struct {
	AuthorID  string   `json:"author_id"`
	Awards    []string `json:"awards"`
	Website   *string  `json:"website"`
	Twitter   *string  `json:"twitter"`
	Instagram *string  `json:"instagram"`
}

func (r SetMetadataRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.AuthorID, validation.Required),
		validation.Field(&r.Awards, validation.Each(validation.Required)),
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

// notBlank rejects a supplied but blank optional string.
func notBlank(value interface{}) error {
	s, ok := value.(*string)
	if ok && s != nil && strings.TrimSpace(*s) == "" {
		return errors.New("cannot be blank")
	}
	return nil
}

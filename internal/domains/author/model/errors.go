package model

import "errors"

var (
	ErrAuthorNotFound   = errors.New("author not found")
	ErrDuplicateAuthor  = errors.New("author with the same name and born_date already exists")
	ErrMetadataNotFound = errors.New("author metadata not found")
)

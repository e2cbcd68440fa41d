package utils

import (
	"errors"
	"strconv"
	"strings"
)

var (
	ErrEmptyID   = errors.New("id is required")
	ErrInvalidID = errors.New("id must be a positive integer")
)

// ParseID converts a GraphQL ID into a relational primary key.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrEmptyID
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}

func FormatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ClampPage applies the default page size and bounds to limit/offset.
func ClampPage(limit, offset *int) (int, int) {
	l, o := DefaultPageLimit, 0
	if limit != nil {
		l = *limit
	}
	if offset != nil {
		o = *offset
	}
	if l < 1 {
		l = 1
	}
	if l > MaxPageLimit {
		l = MaxPageLimit
	}
	if o < 0 {
		o = 0
	}
	return l, o
}

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100
)

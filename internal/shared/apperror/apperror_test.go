package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessage(t *testing.T) {
	cause := errors.New("connection refused")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"explicit message wins", InvalidArgument("op", "title is %s", "required"), "title is required"},
		{"cause message is preserved", StoreFailure("op", cause), "connection refused"},
		{"kind as last resort", &Error{Kind: KindConflict}, "CONFLICT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestWrapKeepsTaggedErrors(t *testing.T) {
	notFound := NotFound("BookService.GetByID", errors.New("book not found"))
	wrapped := fmt.Errorf("resolver: %w", notFound)

	got := Wrap("Query.book", wrapped)
	require.NotNil(t, got)
	assert.Equal(t, KindNotFound, got.Kind)
	assert.Same(t, notFound, got)
}

func TestWrapUntaggedBecomesStoreFailure(t *testing.T) {
	cause := errors.New("pool closed")

	got := Wrap("Query.books", cause)
	require.NotNil(t, got)
	assert.Equal(t, KindStoreFailure, got.Kind)
	assert.Equal(t, "pool closed", got.Error())
	assert.ErrorIs(t, got, cause)
	assert.Nil(t, Wrap("noop", nil))
}

func TestKindOfAndExtensions(t *testing.T) {
	err := Conflict("AuthorService.Create", errors.New("duplicate"))

	assert.Equal(t, KindConflict, KindOf(err))
	assert.True(t, Is(err, KindConflict))
	assert.False(t, Is(nil, KindConflict))
	assert.Equal(t, KindStoreFailure, KindOf(errors.New("plain")))
	assert.Equal(t, map[string]interface{}{"code": "CONFLICT"}, err.Extensions())
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorPassthrough(t *testing.T) {
	got := FromError(ErrValidation)
	assert.Same(t, ErrValidation, got)
}

func TestFromErrorWrapsPlainErrors(t *testing.T) {
	got := FromError(errors.New("boom"))
	require.NotNil(t, got)
	assert.Equal(t, ErrInternal.Code, got.Code)
	assert.Equal(t, http.StatusInternalServerError, got.Status)
}

func TestFromErrorTypedNil(t *testing.T) {
	var typedNil *Error
	got := FromError(error(typedNil))
	require.NotNil(t, got)
	assert.Equal(t, ErrInternal.Code, got.Code)
}

func TestFromErrorUnwrapsWrappedTyped(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", ErrNotFound)
	got := FromError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, ErrNotFound.Code, got.Code)
	assert.Equal(t, http.StatusNotFound, got.Status)
}

func TestCloneOverridesMessageOnly(t *testing.T) {
	clone := Clone(ErrValidation, "page must be a positive integer")
	require.NotNil(t, clone)
	assert.Equal(t, ErrValidation.Code, clone.Code)
	assert.Equal(t, ErrValidation.Status, clone.Status)
	assert.Equal(t, "page must be a positive integer", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
}

package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := NewDuplicateUsername()
	mapped := ToDomainError(err)
	require.NotNil(t, mapped)
	assert.Equal(t, "DUPLICATE_USERNAME", mapped.Code)
	assert.Equal(t, http.StatusConflict, mapped.HTTPStatus)
	assert.Equal(t, "User already exists", mapped.Message)
}

func TestToDomainErrorNoRows(t *testing.T) {
	mapped := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, mapped)
	assert.Equal(t, "NOT_FOUND", mapped.Code)
	assert.Equal(t, http.StatusNotFound, mapped.HTTPStatus)
}

func TestToDomainErrorUnknown(t *testing.T) {
	mapped := ToDomainError(errors.New("something odd"))
	require.NotNil(t, mapped)
	assert.Equal(t, "INTERNAL_ERROR", mapped.Code)
	assert.Equal(t, http.StatusInternalServerError, mapped.HTTPStatus)
	// The message stays generic, the cause is only in the wrapped error.
	assert.Equal(t, "internal server error", mapped.Message)
	assert.EqualError(t, mapped.Unwrap(), "something odd")
}

func TestInvalidCredentialsShape(t *testing.T) {
	a := NewInvalidCredentials()
	b := NewInvalidCredentials()
	assert.Equal(t, a, b)
}

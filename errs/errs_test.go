package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstructorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name   string
		err    *ApiErr
		status int
		is     func(error) bool
	}{
		{"not found", NewNotFoundError("category not found"), http.StatusNotFound, IsNotFound},
		{"forbidden", NewForbiddenError("nope"), http.StatusForbidden, IsForbidden},
		{"bad request", NewBadRequestError("bad"), http.StatusBadRequest, IsBadRequest},
		{"unauthorized", NewUnauthorizedError("who"), http.StatusUnauthorized, IsUnauthorized},
		{"conflict", NewConflictError("dup"), http.StatusConflict, IsConflict},
		{"internal", NewInternalError("boom"), http.StatusInternalServerError, IsInternal},
		{"dependents", NewDependentsError("in use"), http.StatusBadRequest, IsHasDependents},
		{"validation", NewFieldError("name", "name is required"), http.StatusBadRequest, IsValidation},
		{"missing token", NewMissingTokenError(), http.StatusUnauthorized, IsMissingTokenError},
		{"credentials", NewInvalidCredentialsError(), http.StatusUnauthorized, IsInvalidCredentialsError},
		{"rate limit", NewRateLimitError(30 * time.Second), http.StatusTooManyRequests, IsRateLimitError},
		{"transaction", NewTransactionFailedError("commit", errors.New("disk full")), http.StatusInternalServerError, IsTransactionFailedError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.StatusCode)
			assert.Equal(t, tt.status, StatusOf(fmt.Errorf("wrapped: %w", tt.err)))
			assert.True(t, tt.is(tt.err))
		})
	}
}

func TestMessageKeepsConstructorText(t *testing.T) {
	err := NewConflictError("category already exists")
	assert.Equal(t, "category already exists", err.Message())
	assert.Equal(t, "category already exists", err.Error())

	detailed := NewMalformedPayloadError("JSON", errors.New("request body is empty"))
	assert.Equal(t, "malformed payload", detailed.Message())
	assert.Contains(t, detailed.Error(), "Malformed JSON payload")
}

func TestValidationErrorSortsMessages(t *testing.T) {
	err := NewValidationError(map[string][]string{"name": {"b", "a"}})
	assert.Equal(t, []string{"a", "b"}, err.Fields["name"])
	assert.Equal(t, "validation failed", err.Message())
}

func TestStatusOfPlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, StatusOf(errors.New("plain")))
}

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name   string
		cause  error
		status int
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound},
		{"gorm duplicate", gorm.ErrDuplicatedKey, http.StatusConflict},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: categories.name (2067)"), http.StatusConflict},
		{"postgres unique", errors.New(`ERROR: duplicate key value violates unique constraint "idx_categories_name" (SQLSTATE 23505)`), http.StatusConflict},
		{"foreign key", errors.New("FOREIGN KEY constraint failed"), http.StatusBadRequest},
		{"connection", errors.New("dial tcp 127.0.0.1:5432: connect: connection refused"), http.StatusServiceUnavailable},
		{"other", errors.New("syntax error"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDatabaseError("create", "category", tt.cause)
			assert.Equal(t, tt.status, err.StatusCode)
		})
	}
}

func TestNewDatabaseErrorPassesApiErrThrough(t *testing.T) {
	original := NewForbiddenError("not yours")
	assert.Same(t, original, NewDatabaseError("update", "category", fmt.Errorf("tx: %w", original)))
}

func TestGetFullErrorFollowsCauses(t *testing.T) {
	inner := NewDatabaseError("find", "user", errors.New("disk I/O error"))
	outer := NewInternalErrorWithCause("login failed", inner)
	full := outer.GetFullError()
	assert.Contains(t, full, "login failed")
	assert.Contains(t, full, "disk I/O error")
}

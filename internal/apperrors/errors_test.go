package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{New(KindValidation, "bad input"), http.StatusUnprocessableEntity},
		{ErrDuplicateEmail, http.StatusUnprocessableEntity},
		{ErrAuthenticationFailed, http.StatusUnprocessableEntity},
		{ErrAuthorizationDenied, http.StatusForbidden},
		{ErrNotFound, http.StatusNotFound},
		{errors.New("connection refused"), http.StatusInternalServerError},
		{Wrap(KindInternal, "internal server error", errors.New("boom")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusCode(tt.err), "error: %v", tt.err)
	}
}

func TestKindMatching_SurvivesWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("creating user: %w", Wrap(KindDuplicateEmail, "email already exists", errors.New("pq: duplicate key")))

	assert.ErrorIs(t, err, ErrDuplicateEmail)
	assert.Equal(t, KindDuplicateEmail, KindOf(err))
	assert.Equal(t, "email already exists", MessageOf(err))
}

func TestMessageOf_HidesInternals(t *testing.T) {
	t.Parallel()

	cause := errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")
	assert.Equal(t, "internal server error", MessageOf(cause))

	wrapped := Wrap(KindInternal, "internal server error", cause)
	assert.NotContains(t, MessageOf(wrapped), "10.0.0.5")
}

func TestDifferentKindsDoNotMatch(t *testing.T) {
	t.Parallel()

	assert.NotErrorIs(t, ErrAuthenticationFailed, ErrAuthorizationDenied)
	assert.NotErrorIs(t, New(KindValidation, "x"), ErrNotFound)
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCodes(t *testing.T) {
	cases := []struct {
		err  *AppError
		want int
	}{
		{NotFound("service", nil), http.StatusNotFound},
		{BadRequest("bad", nil), http.StatusBadRequest},
		{InvalidInput("bad field", nil), http.StatusUnprocessableEntity},
		{Unauthorized(nil), http.StatusUnauthorized},
		{SlotUnavailable(nil), http.StatusConflict},
		{ScheduleConflict("overlap"), http.StatusConflict},
		{PersistenceUnavailable(nil), http.StatusServiceUnavailable},
		{Internal(nil), http.StatusInternalServerError},
		{ScheduleData("abc", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.err.StatusCode(), "reason=%s", tc.err.Reason)
	}
}

func TestRetryable(t *testing.T) {
	assert.True(t, PersistenceUnavailable(nil).Retryable())
	assert.False(t, SlotUnavailable(nil).Retryable())
	assert.False(t, InvalidInput("x", nil).Retryable())
}

func TestAsUnwrapsThroughWrapping(t *testing.T) {
	inner := SlotUnavailable(errors.New("exclusion constraint"))
	wrapped := fmt.Errorf("booking failed: %w", inner)

	appErr, ok := As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "slot_unavailable", appErr.Reason)

	_, ok = As(errors.New("plain"))
	assert.False(t, ok)
}

func TestErrorMessageIncludesCause(t *testing.T) {
	err := InvalidInput("invalid date", errors.New("parse failed"))
	assert.Contains(t, err.Error(), "invalid date")
	assert.Contains(t, err.Error(), "parse failed")
	assert.Equal(t, "parse failed", errors.Unwrap(err).Error())
}

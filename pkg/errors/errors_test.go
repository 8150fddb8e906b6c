package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	testCases := []struct {
		code   int
		status int
	}{
		{ErrCodeInvalidParams, http.StatusBadRequest},
		{ErrCodeBindError, http.StatusBadRequest},
		{ErrCodeCartEmpty, http.StatusBadRequest},
		{ErrCodeBookNotFound, http.StatusNotFound},
		{ErrCodeUserNotFound, http.StatusNotFound},
		{ErrCodeISBNDuplicate, http.StatusConflict},
		{ErrCodeUnavailable, http.StatusServiceUnavailable},
		{ErrCodeDatabaseError, http.StatusInternalServerError},
		{ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		t.Run(fmt.Sprintf("code_%d", tc.code), func(t *testing.T) {
			assert.Equal(t, tc.status, HTTPStatus(tc.code))
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("AppError原样返回", func(t *testing.T) {
		got := GetAppError(fmt.Errorf("checkout: %w", ErrUserNotFound))
		assert.Same(t, ErrUserNotFound, got)
	})

	t.Run("普通错误包装为内部错误", func(t *testing.T) {
		raw := errors.New("connection refused")
		got := GetAppError(raw)
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.ErrorIs(t, got, raw)
	})
}

func TestAppErrorIs(t *testing.T) {
	wrapped := Wrap(errors.New("boom"), "查询失败")
	assert.False(t, errors.Is(wrapped, ErrUserNotFound))

	same := New(ErrCodeUserNotFound, "invalid user")
	assert.True(t, errors.Is(same, ErrUserNotFound))
	assert.Contains(t, wrapped.Error(), "boom")
}

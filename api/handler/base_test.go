package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/presenta/backend/domain"
)

func TestMapError(t *testing.T) {
	h := newBaseHandler(nil, nil, false)

	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", domain.Validation("campo requerido"), http.StatusBadRequest, "VALIDATION"},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusBadRequest, "INVALID_CREDENTIALS"},
		{"duplicate user answers 400", domain.ErrDuplicateUser, http.StatusBadRequest, "DUPLICATE_USER"},
		{"unauthorized", domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{"expired token", domain.ErrTokenExpired, http.StatusUnauthorized, "EXPIRED_TOKEN"},
		{"invalid token", domain.ErrTokenInvalid, http.StatusUnauthorized, "INVALID_TOKEN"},
		{"inactive user", domain.ErrInactiveUser, http.StatusForbidden, "INACTIVE_USER"},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
		{"user not found", domain.ErrUserNotFound, http.StatusNotFound, "NOT_FOUND"},
		{"conflict", domain.ErrDuplicateTenant, http.StatusConflict, "CONFLICT"},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			status, code, _ := h.mapError(tc.err)
			require.Equal(t, tc.status, status)
			require.Equal(t, tc.code, code)
		})
	}
}

func TestMapErrorHidesInternalDetail(t *testing.T) {
	prod := newBaseHandler(nil, nil, false)
	_, _, message := prod.mapError(errors.New("pq: connection refused"))
	require.Equal(t, "Error interno del servidor", message)

	dev := newBaseHandler(nil, nil, true)
	_, _, message = dev.mapError(errors.New("pq: connection refused"))
	require.Equal(t, "pq: connection refused", message)
}

package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"ecommerce-rbac/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
	}{
		{name: "validation", err: &usecase.Error{Kind: usecase.ErrValidation, Message: "Validation failed", Fields: map[string]string{"email": "Invalid email format"}}, wantStatus: http.StatusBadRequest, wantMessage: "Validation failed"},
		{name: "bad request", err: &usecase.Error{Kind: usecase.ErrBadRequest, Message: "User is not a vendor"}, wantStatus: http.StatusBadRequest, wantMessage: "User is not a vendor"},
		{name: "conflict", err: &usecase.Error{Kind: usecase.ErrConflict, Message: "User already exists"}, wantStatus: http.StatusBadRequest, wantMessage: "User already exists"},
		{name: "expired", err: &usecase.Error{Kind: usecase.ErrExpired, Message: "Otp has been expired"}, wantStatus: http.StatusBadRequest, wantMessage: "Otp has been expired"},
		{name: "invalid code", err: &usecase.Error{Kind: usecase.ErrInvalidCode, Message: "Otp is invalid or expired"}, wantStatus: http.StatusBadRequest, wantMessage: "Otp is invalid or expired"},
		{name: "unauthenticated", err: &usecase.Error{Kind: usecase.ErrUnauthenticated, Message: "User not found, please login again"}, wantStatus: http.StatusUnauthorized, wantMessage: "User not found, please login again"},
		{name: "forbidden", err: &usecase.Error{Kind: usecase.ErrForbidden, Message: "nope"}, wantStatus: http.StatusForbidden, wantMessage: "nope"},
		{name: "not found", err: &usecase.Error{Kind: usecase.ErrNotFound, Message: "Product not found"}, wantStatus: http.StatusNotFound, wantMessage: "Product not found"},
		{name: "throttled", err: &usecase.Error{Kind: usecase.ErrTooManyRequests, Message: "Please wait"}, wantStatus: http.StatusTooManyRequests, wantMessage: "Please wait"},
		{name: "internal", err: &usecase.Error{Kind: usecase.ErrInternal, Message: "Error fetching products"}, wantStatus: http.StatusInternalServerError, wantMessage: "Error fetching products"},
		{name: "wrapped", err: fmt.Errorf("list: %w", &usecase.Error{Kind: usecase.ErrNotFound, Message: "Review not found"}), wantStatus: http.StatusNotFound, wantMessage: "Review not found"},
		{name: "raw driver error", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantMessage: "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zap.NewNop(), tt.err, "test")

			assert.Equal(t, tt.wantStatus, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantMessage, body["message"])
		})
	}
}

func TestHandleServiceError_ValidationFields(t *testing.T) {
	rec := httptest.NewRecorder()
	handleServiceError(rec, zap.NewNop(), &usecase.Error{
		Kind:    usecase.ErrValidation,
		Message: "Validation failed",
		Fields:  map[string]string{"email": "Invalid email format"},
	}, "signup")

	var body struct {
		Message string            `json:"message"`
		Errors  map[string]string `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Invalid email format", body.Errors["email"])
}

func TestHealth(t *testing.T) {
	t.Run("all up", func(t *testing.T) {
		h := NewHealthHandler(map[string]HealthCheck{
			"database": func(ctx context.Context) error { return nil },
		}, zap.NewNop())

		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok","checks":{"database":"ok"}}`, rec.Body.String())
	})

	t.Run("one down", func(t *testing.T) {
		h := NewHealthHandler(map[string]HealthCheck{
			"database": func(ctx context.Context) error { return nil },
			"redis":    func(ctx context.Context) error { return errors.New("dial tcp: refused") },
		}, zap.NewNop())

		rec := httptest.NewRecorder()
		h.Health(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		assert.JSONEq(t, `{"status":"degraded","checks":{"database":"ok","redis":"down"}}`, rec.Body.String())
	})
}

func TestQueryFlag(t *testing.T) {
	assert.True(t, queryFlag("true"))
	assert.True(t, queryFlag("1"))
	assert.True(t, queryFlag("yes"))
	assert.False(t, queryFlag(""))
	assert.False(t, queryFlag("false"))
	assert.False(t, queryFlag("0"))
}

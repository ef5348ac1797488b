package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/ledger-api/internal/mocks"
	"github.com/fintrack/ledger-api/internal/service/auth"
)

func protectedHandler(t *testing.T, wantUserID int64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserID(r)
		require.True(t, ok, "user ID must be present for authenticated requests")
		assert.Equal(t, wantUserID, userID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticateAllowsValidToken(t *testing.T) {
	jwtService := &mocks.MockJWTService{
		Claims: &auth.Claims{UserID: 42, TokenType: "access"},
	}
	mw := NewAuthMiddleware(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rr := httptest.NewRecorder()

	mw.Authenticate(protectedHandler(t, 42)).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestAuthenticateRejections(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run for rejected requests")
	})

	tests := []struct {
		name        string
		header      string
		validateErr error
		wantBody    string
	}{
		{"missing header", "", nil, "Authorization header required"},
		{"not bearer", "Basic dXNlcjpwYXNz", nil, "Invalid authorization format"},
		{"malformed bearer", "Bearer", nil, "Invalid authorization format"},
		{"expired token", "Bearer old", auth.ErrExpiredToken, "Token expired"},
		{"invalid token", "Bearer junk", auth.ErrInvalidToken, "Invalid token"},
		{"refresh token used as access", "Bearer refresh", auth.ErrWrongTokenType, "Invalid token"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			jwtService := &mocks.MockJWTService{ValidateErr: tc.validateErr}
			mw := NewAuthMiddleware(jwtService)

			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rr := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rr, req)

			assert.Equal(t, http.StatusUnauthorized, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.wantBody)
		})
	}
}

func TestAuthenticateUnexpectedValidationError(t *testing.T) {
	jwtService := &mocks.MockJWTService{
		ValidateErr: assert.AnError,
	}
	mw := NewAuthMiddleware(jwtService)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer sometoken")
	rr := httptest.NewRecorder()

	mw.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("next handler must not run")
	})).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

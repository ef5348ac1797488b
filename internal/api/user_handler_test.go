package api

import (
	"context"
	"net/http"
	"strconv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fintrack/ledger-api/internal/domain"
)

func TestRegisterEndpoint(t *testing.T) {
	env := newTestEnv(t)

	var resp AuthResponse
	rr := env.do(t, http.MethodPost, "/api/users", map[string]string{
		"name":     "Maria Souza",
		"email":    "maria@example.com",
		"password": "secretpass123",
	}, &resp)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.NotZero(t, resp.UserID)
	assert.Equal(t, "Maria Souza", resp.Name)
	assert.Equal(t, "maria@example.com", resp.Email)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	// The issued access token must validate against the same service.
	claims, err := env.jwtService.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.UserID, claims.UserID)
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.registerUser(t, "maria@example.com")

	rr := env.do(t, http.MethodPost, "/api/users", map[string]string{
		"name":     "Other Maria",
		"email":    "maria@example.com",
		"password": "otherpass123",
	}, nil)

	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "email already registered", errorMessage(t, rr))
}

func TestRegisterEndpointValidation(t *testing.T) {
	env := newTestEnv(t)

	tests := []struct {
		name    string
		payload map[string]string
	}{
		{"missing name", map[string]string{"email": "a@b.com", "password": "secretpass123"}},
		{"bad email", map[string]string{"name": "Ana", "email": "nope", "password": "secretpass123"}},
		{"short password", map[string]string{"name": "Ana", "email": "a@b.com", "password": "short"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rr := env.do(t, http.MethodPost, "/api/users", tc.payload, nil)
			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestAuthenticateEndpoint(t *testing.T) {
	env := newTestEnv(t)
	registered := env.registerUser(t, "maria@example.com")

	t.Run("success", func(t *testing.T) {
		var resp AuthResponse
		rr := env.do(t, http.MethodPost, "/api/users/authenticate", map[string]string{
			"email":    "maria@example.com",
			"password": "secretpass123",
		}, &resp)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, registered.ID, resp.UserID)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("unknown email", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/users/authenticate", map[string]string{
			"email":    "ghost@example.com",
			"password": "secretpass123",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "user not found", errorMessage(t, rr))
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/api/users/authenticate", map[string]string{
			"email":    "maria@example.com",
			"password": "wrongpass123",
		}, nil)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "invalid credential", errorMessage(t, rr))
	})
}

func TestRefreshTokenEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "maria@example.com")

	refreshToken, err := env.jwtService.GenerateRefreshToken(context.Background(), user.ID)
	require.NoError(t, err)

	var resp RefreshTokenResponse
	rr := env.do(t, http.MethodPost, "/api/auth/refresh", map[string]string{
		"refresh_token": refreshToken,
	}, &resp)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)

	claims, err := env.jwtService.ValidateToken(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestRefreshTokenEndpointRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "maria@example.com")

	accessToken, err := env.jwtService.GenerateToken(context.Background(), user.ID)
	require.NoError(t, err)

	rr := env.do(t, http.MethodPost, "/api/auth/refresh", map[string]string{
		"refresh_token": accessToken,
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetBalanceEndpoint(t *testing.T) {
	env := newTestEnv(t)
	user := env.registerUser(t, "maria@example.com")

	t.Run("no entries", func(t *testing.T) {
		var resp BalanceResponse
		rr := env.do(t, http.MethodGet, balancePath(user.ID), nil, &resp)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "0", resp.Balance)
	})

	t.Run("income minus expense", func(t *testing.T) {
		ctx := context.Background()
		_, err := env.entryService.Save(ctx, &domain.Entry{
			Description: "salary",
			Month:       4,
			Year:        2026,
			Amount:      decimal.NewFromInt(100),
			Type:        domain.EntryTypeIncome,
			UserID:      user.ID,
		})
		require.NoError(t, err)
		_, err = env.entryService.Save(ctx, &domain.Entry{
			Description: "groceries",
			Month:       4,
			Year:        2026,
			Amount:      decimal.NewFromInt(40),
			Type:        domain.EntryTypeExpense,
			UserID:      user.ID,
		})
		require.NoError(t, err)

		var resp BalanceResponse
		rr := env.do(t, http.MethodGet, balancePath(user.ID), nil, &resp)

		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "60", resp.Balance)
		assert.Equal(t, user.ID, resp.UserID)
	})

	t.Run("unknown user", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/users/9999/balance", nil, nil)
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := env.do(t, http.MethodGet, "/api/users/abc/balance", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func balancePath(userID int64) string {
	return "/api/users/" + strconv.FormatInt(userID, 10) + "/balance"
}

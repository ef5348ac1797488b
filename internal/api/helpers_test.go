package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/fintrack/ledger-api/internal/config"
	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/mocks"
	"github.com/fintrack/ledger-api/internal/service"
	"github.com/fintrack/ledger-api/internal/service/auth"
)

// testEnv wires real services over mock stores behind a chi router, the
// same shape the server assembles at startup minus the database.
type testEnv struct {
	router     *chi.Mux
	userStore  *mocks.MockUserStore
	entryStore *mocks.MockEntryStore
	jwtService auth.JWTService

	userService  service.UserService
	entryService service.EntryService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	entryStore := mocks.NewMockEntryStore()

	jwtService, err := auth.NewJWTService(config.AuthConfig{
		JWTSecret:                   "test-secret-key-thats-long-enough-for-hmac",
		TokenLifetimeMinutes:        60,
		RefreshTokenLifetimeMinutes: 1440,
	})
	require.NoError(t, err)

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	userService := service.NewUserService(userStore, hasher, hasher, nil)
	entryService := service.NewEntryService(entryStore, nil)

	userHandler := NewUserHandler(userService, entryService, jwtService, nil)
	entryHandler := NewEntryHandler(entryService, userService, nil)

	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/authenticate", userHandler.Authenticate)
		r.Post("/auth/refresh", userHandler.RefreshToken)
		r.Get("/users/{id}/balance", userHandler.GetBalance)

		r.Post("/entries", entryHandler.Create)
		r.Get("/entries", entryHandler.Search)
		r.Put("/entries/{id}", entryHandler.Update)
		r.Patch("/entries/{id}/status", entryHandler.UpdateStatus)
		r.Delete("/entries/{id}", entryHandler.Delete)
	})

	return &testEnv{
		router:       r,
		userStore:    userStore,
		entryStore:   entryStore,
		jwtService:   jwtService,
		userService:  userService,
		entryService: entryService,
	}
}

// registerUser creates a user directly through the service and returns it.
func (env *testEnv) registerUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := env.userService.Register(
		context.Background(),
		"Test User",
		email,
		"secretpass123",
	)
	require.NoError(t, err)
	return user
}

// do performs a request against the test router and decodes the JSON body
// into out when it is non-nil.
func (env *testEnv) do(t *testing.T, method, path string, body, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	env.router.ServeHTTP(rr, req)

	if out != nil && rr.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), out))
	}
	return rr
}

func errorMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error string `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Error
}

func entryPayload(userID int64) map[string]interface{} {
	return map[string]interface{}{
		"description": "groceries",
		"month":       4,
		"year":        2026,
		"amount":      "250.50",
		"type":        "EXPENSE",
		"user_id":     userID,
	}
}

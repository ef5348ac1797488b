package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/fintrack/ledger-api/internal/api/shared"
	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/platform/logger"
	"github.com/fintrack/ledger-api/internal/service"
	"github.com/fintrack/ledger-api/internal/service/auth"
	"github.com/fintrack/ledger-api/internal/store"
)

// UserHandler handles registration, authentication and balance requests.
type UserHandler struct {
	userService  service.UserService
	entryService service.EntryService
	jwtService   auth.JWTService
	logger       *slog.Logger
}

// NewUserHandler creates a UserHandler with the given dependencies.
func NewUserHandler(
	userService service.UserService,
	entryService service.EntryService,
	jwtService auth.JWTService,
	log *slog.Logger,
) *UserHandler {
	if log == nil {
		log = slog.Default()
	}
	return &UserHandler{
		userService:  userService,
		entryService: entryService,
		jwtService:   jwtService,
		logger:       log.With(slog.String("component", "user_handler")),
	}
}

// Register handles POST /api/users requests.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req RegisterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create user"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	resp, err := h.authResponse(r, user)
	if err != nil {
		log.Error("failed to generate tokens after registration",
			slog.Int64("user_id", user.ID))
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	log.Info("user registered", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, resp)
}

// Authenticate handles POST /api/users/authenticate requests.
func (h *UserHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req LoginRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	user, err := h.userService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to authenticate user"
		}
		// Repeated auth failures are worth seeing in the logs.
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err,
			shared.WithElevatedLogLevel())
		return
	}

	resp, err := h.authResponse(r, user)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	log.Debug("user authenticated", slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

// RefreshToken handles POST /api/auth/refresh requests. It validates the
// presented refresh token and issues a new access/refresh token pair.
func (h *UserHandler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	claims, err := h.jwtService.ValidateRefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusUnauthorized,
			"Invalid refresh token", err, shared.WithElevatedLogLevel())
		return
	}

	accessToken, err := h.jwtService.GenerateToken(r.Context(), claims.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), claims.UserID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to generate authentication token", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, RefreshTokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(h.jwtService.TokenLifetime()).UTC().Format(time.RFC3339),
	})
}

// GetBalance handles GET /api/users/{id}/balance requests.
func (h *UserHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	userID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || userID <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid user ID")
		return
	}

	// Unknown users get a 404 rather than a zero balance.
	if _, err := h.userService.GetByID(r.Context(), userID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			shared.RespondWithError(w, r, http.StatusNotFound, "User not found")
			return
		}
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to compute balance", err)
		return
	}

	balance, err := h.entryService.GetBalance(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to compute balance", err)
		return
	}

	log.Debug("balance computed",
		slog.Int64("user_id", userID),
		slog.String("balance", balance.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, BalanceResponse{
		UserID:  userID,
		Balance: balance.String(),
	})
}

// authResponse issues a token pair for the user and assembles the common
// authentication response body.
func (h *UserHandler) authResponse(r *http.Request, user *domain.User) (*AuthResponse, error) {
	accessToken, err := h.jwtService.GenerateToken(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	refreshToken, err := h.jwtService.GenerateRefreshToken(r.Context(), user.ID)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		UserID:       user.ID,
		Name:         user.Name,
		Email:        user.Email,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    time.Now().Add(h.jwtService.TokenLifetime()).UTC().Format(time.RFC3339),
	}, nil
}

package api

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger-api/internal/domain"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the user authentication endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	// UserID is the unique identifier for the authenticated user
	UserID int64 `json:"user_id"`

	// Name is the registered display name of the user
	Name string `json:"name"`

	// Email is the registered email of the user
	Email string `json:"email"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`

	// ExpiresAt is the ISO 8601 timestamp when the access token expires
	ExpiresAt string `json:"expires_at,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresAt    string `json:"expires_at"`
}

// Amount is a decimal value that accepts either a JSON number or a JSON
// string on input, and always serializes as a string so clients never lose
// precision to floating point.
type Amount struct {
	decimal.Decimal
}

// UnmarshalJSON accepts `12.34` and `"12.34"` interchangeably.
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		a.Decimal = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid amount %q: %w", s, err)
	}
	a.Decimal = d
	return nil
}

// MarshalJSON serializes the amount as a quoted decimal string.
func (a Amount) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Decimal.String())
}

// EntryRequest defines the payload for creating or updating a ledger entry.
// Field validation happens in the domain layer so that rule violations come
// back with the exact business rule messages; the struct tags only assert
// presence of the JSON shape.
type EntryRequest struct {
	Description string `json:"description"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	Amount      Amount `json:"amount"`
	Type        string `json:"type"`
	Status      string `json:"status,omitempty"`
	UserID      int64  `json:"user_id"`
}

// StatusUpdateRequest defines the payload for the entry status update endpoint.
type StatusUpdateRequest struct {
	Status string `json:"status" validate:"required"`
}

// EntryResponse defines the representation of a ledger entry in responses.
type EntryResponse struct {
	ID          int64  `json:"id"`
	Description string `json:"description"`
	Month       int    `json:"month"`
	Year        int    `json:"year"`
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	UserID      int64  `json:"user_id"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// NewEntryResponse converts a domain entry to its API representation.
func NewEntryResponse(entry *domain.Entry) EntryResponse {
	return EntryResponse{
		ID:          entry.ID,
		Description: entry.Description,
		Month:       entry.Month,
		Year:        entry.Year,
		Amount:      entry.Amount.String(),
		Type:        string(entry.Type),
		Status:      string(entry.Status),
		UserID:      entry.UserID,
		CreatedAt:   entry.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   entry.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// BalanceResponse defines the response for the user balance endpoint.
type BalanceResponse struct {
	UserID  int64  `json:"user_id"`
	Balance string `json:"balance"`
}

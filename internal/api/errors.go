package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/service"
	"github.com/fintrack/ledger-api/internal/service/auth"
	"github.com/fintrack/ledger-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes based on
// the error type, so handlers never leak internal error structure through
// ad hoc status decisions.
func MapErrorToStatusCode(err error) int {
	switch {
	// Authentication errors
	case errors.Is(err, auth.ErrUserNotFound),
		errors.Is(err, auth.ErrInvalidCredential),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return http.StatusUnauthorized

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound),
		errors.Is(err, store.ErrEntryNotFound):
		return http.StatusNotFound

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrEmailRegistered):
		return http.StatusConflict

	// Bad request errors
	case domain.IsBusinessRuleError(err),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	// Default: internal server error
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for err.
// Business rule violations keep their own wording since those messages are
// part of the API contract; everything else maps to a fixed phrase.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	// Business rule violations carry their message verbatim
	case domain.IsBusinessRuleError(err):
		return err.Error()

	// Authentication errors
	case errors.Is(err, auth.ErrUserNotFound):
		return auth.ErrUserNotFound.Error()

	case errors.Is(err, auth.ErrInvalidCredential):
		return auth.ErrInvalidCredential.Error()

	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken):
		return "Invalid token"

	case errors.Is(err, auth.ErrInvalidRefreshToken),
		errors.Is(err, auth.ErrExpiredRefreshToken),
		errors.Is(err, auth.ErrWrongTokenType):
		return "Invalid refresh token"

	// Not found errors
	case errors.Is(err, store.ErrUserNotFound):
		return "User not found"

	case errors.Is(err, store.ErrEntryNotFound):
		return "Entry not found"

	// Conflict errors
	case errors.Is(err, store.ErrEmailExists),
		errors.Is(err, service.ErrEmailRegistered):
		return service.ErrEmailRegistered.Error()

	// Bad request errors
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entry data"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError turns a struct validation error into a short
// user-friendly message without echoing internal type names.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Example: "Key: 'LoginRequest.Email' Error:Field validation for 'Email' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				var tag string
				if len(fieldParts) >= 5 {
					tag = fieldParts[3]
				}
				if tag != "" {
					return fmt.Sprintf("Invalid %s: %s", field, getValidationTagMessage(tag))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "email":
		return "invalid email format"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	default:
		return "validation failed"
	}
}

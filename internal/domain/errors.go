package domain

import "errors"

// Business rule errors. These carry the exact message shown to the end
// user, so handlers can pass them through unchanged.
var (
	// ErrInvalidDescription is returned when an entry description is missing or blank.
	ErrInvalidDescription = errors.New("invalid description")

	// ErrInvalidMonth is returned when an entry month is missing or outside 1-12.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrInvalidYear is returned when an entry year is not exactly four digits.
	ErrInvalidYear = errors.New("invalid year")

	// ErrUserRequired is returned when an entry has no owning user.
	ErrUserRequired = errors.New("user required")

	// ErrInvalidAmount is returned when an entry amount is missing, zero or negative.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrTypeRequired is returned when an entry has no type.
	ErrTypeRequired = errors.New("type required")

	// ErrInvalidEntryType is returned when an entry type is not INCOME or EXPENSE.
	ErrInvalidEntryType = errors.New("invalid entry type")

	// ErrInvalidEntryStatus is returned when an entry status is not a known status.
	ErrInvalidEntryStatus = errors.New("invalid entry status")

	// ErrEmptyName is returned when a user name is missing.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrEmptyEmail is returned when a user email is missing.
	ErrEmptyEmail = errors.New("email cannot be empty")

	// ErrInvalidEmail is returned when a user email is malformed.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrEmptyPassword is returned when a user has neither a plaintext nor
	// a hashed password.
	ErrEmptyPassword = errors.New("password cannot be empty")
)

// IsBusinessRuleError reports whether err is a caller-correctable business
// rule violation whose message is safe to show to the end user.
func IsBusinessRuleError(err error) bool {
	return errors.Is(err, ErrInvalidDescription) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrInvalidYear) ||
		errors.Is(err, ErrUserRequired) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrTypeRequired) ||
		errors.Is(err, ErrInvalidEntryType) ||
		errors.Is(err, ErrInvalidEntryStatus) ||
		errors.Is(err, ErrEmptyName) ||
		errors.Is(err, ErrEmptyEmail) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrEmptyPassword)
}

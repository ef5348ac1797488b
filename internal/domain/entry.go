package domain

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// EntryType classifies an entry as money in or money out.
type EntryType string

// Possible entry types.
const (
	EntryTypeIncome  EntryType = "INCOME"
	EntryTypeExpense EntryType = "EXPENSE"
)

// ParseEntryType converts a string into an EntryType, accepting any case.
// Returns ErrInvalidEntryType for unknown values.
func ParseEntryType(s string) (EntryType, error) {
	switch EntryType(strings.ToUpper(s)) {
	case EntryTypeIncome:
		return EntryTypeIncome, nil
	case EntryTypeExpense:
		return EntryTypeExpense, nil
	default:
		return "", ErrInvalidEntryType
	}
}

// EntryStatus represents the settlement state of an entry.
type EntryStatus string

// Possible entry status values.
const (
	EntryStatusPending   EntryStatus = "PENDING"
	EntryStatusSettled   EntryStatus = "SETTLED"
	EntryStatusCancelled EntryStatus = "CANCELLED"
)

// ParseEntryStatus converts a string into an EntryStatus, accepting any case.
// Returns ErrInvalidEntryStatus for unknown values.
func ParseEntryStatus(s string) (EntryStatus, error) {
	switch EntryStatus(strings.ToUpper(s)) {
	case EntryStatusPending:
		return EntryStatusPending, nil
	case EntryStatusSettled:
		return EntryStatusSettled, nil
	case EntryStatusCancelled:
		return EntryStatusCancelled, nil
	default:
		return "", ErrInvalidEntryStatus
	}
}

// Entry represents a single recorded financial transaction owned by a user.
type Entry struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Month       int             `json:"month"`
	Year        int             `json:"year"`
	Amount      decimal.Decimal `json:"amount"`
	Type        EntryType       `json:"type"`
	Status      EntryStatus     `json:"status"`
	UserID      int64           `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// Validate checks the entry's fields in a fixed order and returns the
// first violation: description, month, year, owning user, amount, type.
// Callers rely on this order when reporting errors to the user.
func (e *Entry) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrInvalidDescription
	}

	if e.Month < 1 || e.Month > 12 {
		return ErrInvalidMonth
	}

	// Exactly four digits in decimal form, mirroring the rule that a year
	// like 202 or 20200 is a typo rather than a real year.
	if len(strconv.Itoa(e.Year)) != 4 || e.Year < 0 {
		return ErrInvalidYear
	}

	if e.UserID <= 0 {
		return ErrUserRequired
	}

	// Zero is rejected: an entry that moves no money is meaningless.
	if e.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	if e.Type == "" {
		return ErrTypeRequired
	}
	if e.Type != EntryTypeIncome && e.Type != EntryTypeExpense {
		return ErrInvalidEntryType
	}

	if e.Status != "" {
		if _, err := ParseEntryStatus(string(e.Status)); err != nil {
			return err
		}
	}

	return nil
}

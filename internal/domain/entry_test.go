package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func validEntry() *Entry {
	return &Entry{
		Description: "salary",
		Month:       3,
		Year:        2026,
		Amount:      decimal.NewFromInt(5000),
		Type:        EntryTypeIncome,
		Status:      EntryStatusPending,
		UserID:      1,
	}
}

func TestEntryValidateAccepts(t *testing.T) {
	if err := validEntry().Validate(); err != nil {
		t.Fatalf("Expected valid entry, got %v", err)
	}

	// Status is optional at validation time; saving assigns it.
	entry := validEntry()
	entry.Status = ""
	if err := entry.Validate(); err != nil {
		t.Errorf("Expected entry without status to be valid, got %v", err)
	}
}

func TestEntryValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Entry)
		wantErr error
	}{
		{"empty description", func(e *Entry) { e.Description = "" }, ErrInvalidDescription},
		{"blank description", func(e *Entry) { e.Description = "  " }, ErrInvalidDescription},
		{"month zero", func(e *Entry) { e.Month = 0 }, ErrInvalidMonth},
		{"month thirteen", func(e *Entry) { e.Month = 13 }, ErrInvalidMonth},
		{"three digit year", func(e *Entry) { e.Year = 202 }, ErrInvalidYear},
		{"five digit year", func(e *Entry) { e.Year = 20260 }, ErrInvalidYear},
		{"missing user", func(e *Entry) { e.UserID = 0 }, ErrUserRequired},
		{"zero amount", func(e *Entry) { e.Amount = decimal.Zero }, ErrInvalidAmount},
		{
			"negative amount",
			func(e *Entry) { e.Amount = decimal.NewFromInt(-10) },
			ErrInvalidAmount,
		},
		{"missing type", func(e *Entry) { e.Type = "" }, ErrTypeRequired},
		{"unknown type", func(e *Entry) { e.Type = "TRANSFER" }, ErrInvalidEntryType},
		{"unknown status", func(e *Entry) { e.Status = "OPEN" }, ErrInvalidEntryStatus},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			entry := validEntry()
			tc.mutate(entry)
			if err := entry.Validate(); !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

// The checks run in a fixed order so the first problem wins even when
// several fields are bad at once.
func TestEntryValidateOrder(t *testing.T) {
	entry := &Entry{}
	if err := entry.Validate(); !errors.Is(err, ErrInvalidDescription) {
		t.Errorf("Expected description error first, got %v", err)
	}

	entry.Description = "rent"
	if err := entry.Validate(); !errors.Is(err, ErrInvalidMonth) {
		t.Errorf("Expected month error next, got %v", err)
	}

	entry.Month = 5
	if err := entry.Validate(); !errors.Is(err, ErrInvalidYear) {
		t.Errorf("Expected year error next, got %v", err)
	}

	entry.Year = 2026
	if err := entry.Validate(); !errors.Is(err, ErrUserRequired) {
		t.Errorf("Expected user error next, got %v", err)
	}

	entry.UserID = 7
	if err := entry.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("Expected amount error next, got %v", err)
	}

	entry.Amount = decimal.NewFromInt(100)
	if err := entry.Validate(); !errors.Is(err, ErrTypeRequired) {
		t.Errorf("Expected type error next, got %v", err)
	}

	entry.Type = EntryTypeExpense
	if err := entry.Validate(); err != nil {
		t.Errorf("Expected valid entry at the end, got %v", err)
	}
}

func TestParseEntryType(t *testing.T) {
	for _, s := range []string{"INCOME", "income", "Income"} {
		got, err := ParseEntryType(s)
		if err != nil || got != EntryTypeIncome {
			t.Errorf("ParseEntryType(%q) = %v, %v", s, got, err)
		}
	}

	if _, err := ParseEntryType("deposit"); !errors.Is(err, ErrInvalidEntryType) {
		t.Errorf("Expected ErrInvalidEntryType, got %v", err)
	}
}

func TestParseEntryStatus(t *testing.T) {
	for s, want := range map[string]EntryStatus{
		"pending":   EntryStatusPending,
		"SETTLED":   EntryStatusSettled,
		"Cancelled": EntryStatusCancelled,
	} {
		got, err := ParseEntryStatus(s)
		if err != nil || got != want {
			t.Errorf("ParseEntryStatus(%q) = %v, %v", s, got, err)
		}
	}

	if _, err := ParseEntryStatus("done"); !errors.Is(err, ErrInvalidEntryStatus) {
		t.Errorf("Expected ErrInvalidEntryStatus, got %v", err)
	}
}

func TestIsBusinessRuleError(t *testing.T) {
	for _, err := range []error{
		ErrInvalidDescription, ErrInvalidMonth, ErrInvalidYear,
		ErrUserRequired, ErrInvalidAmount, ErrTypeRequired,
		ErrInvalidEntryType, ErrInvalidEntryStatus,
		ErrEmptyName, ErrEmptyEmail, ErrInvalidEmail, ErrEmptyPassword,
	} {
		if !IsBusinessRuleError(err) {
			t.Errorf("Expected %v to be a business rule error", err)
		}
	}

	if IsBusinessRuleError(errors.New("boom")) {
		t.Error("Expected arbitrary error not to be a business rule error")
	}
}

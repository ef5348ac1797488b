package mocks

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/store"
)

// MockEntryStore implements store.EntryStore for testing.
type MockEntryStore struct {
	// Function fields for customizable behavior
	CreateFn                 func(ctx context.Context, entry *domain.Entry) error
	GetByIDFn                func(ctx context.Context, id int64) (*domain.Entry, error)
	UpdateFn                 func(ctx context.Context, entry *domain.Entry) error
	DeleteFn                 func(ctx context.Context, id int64) error
	FindAllMatchingFn        func(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error)
	SumAmountByUserAndTypeFn func(ctx context.Context, userID int64, entryType domain.EntryType) (decimal.Decimal, error)

	// Data for the default implementation, keyed by entry ID
	Entries map[int64]*domain.Entry
	nextID  int64

	CreateError error
	UpdateError error
}

// NewMockEntryStore creates a mock store with initialized defaults.
func NewMockEntryStore() *MockEntryStore {
	return &MockEntryStore{
		Entries: make(map[int64]*domain.Entry),
	}
}

// Create implements the EntryStore interface.
func (m *MockEntryStore) Create(ctx context.Context, entry *domain.Entry) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, entry)
	}
	if m.CreateError != nil {
		return m.CreateError
	}

	m.nextID++
	entry.ID = m.nextID
	m.Entries[entry.ID] = entry
	return nil
}

// GetByID implements the EntryStore interface.
func (m *MockEntryStore) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	entry, exists := m.Entries[id]
	if !exists {
		return nil, store.ErrEntryNotFound
	}
	return entry, nil
}

// Update implements the EntryStore interface.
func (m *MockEntryStore) Update(ctx context.Context, entry *domain.Entry) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, entry)
	}
	if m.UpdateError != nil {
		return m.UpdateError
	}

	if _, exists := m.Entries[entry.ID]; !exists {
		return store.ErrEntryNotFound
	}
	m.Entries[entry.ID] = entry
	return nil
}

// Delete implements the EntryStore interface.
func (m *MockEntryStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Entries[id]; !exists {
		return store.ErrEntryNotFound
	}
	delete(m.Entries, id)
	return nil
}

// FindAllMatching implements the EntryStore interface. The default
// implementation applies the same matching rules as the real store:
// mandatory user equality, case-insensitive description containment and
// equality on the remaining optional criteria.
func (m *MockEntryStore) FindAllMatching(
	ctx context.Context,
	filter store.EntryFilter,
) ([]*domain.Entry, error) {
	if m.FindAllMatchingFn != nil {
		return m.FindAllMatchingFn(ctx, filter)
	}

	matches := []*domain.Entry{}
	for _, entry := range m.Entries {
		if entry.UserID != filter.UserID {
			continue
		}
		if filter.Description != nil &&
			!strings.Contains(
				strings.ToLower(entry.Description),
				strings.ToLower(*filter.Description),
			) {
			continue
		}
		if filter.Month != nil && entry.Month != *filter.Month {
			continue
		}
		if filter.Year != nil && entry.Year != *filter.Year {
			continue
		}
		if filter.Type != nil && entry.Type != *filter.Type {
			continue
		}
		if filter.Status != nil && entry.Status != *filter.Status {
			continue
		}
		matches = append(matches, entry)
	}
	return matches, nil
}

// SumAmountByUserAndType implements the EntryStore interface.
func (m *MockEntryStore) SumAmountByUserAndType(
	ctx context.Context,
	userID int64,
	entryType domain.EntryType,
) (decimal.Decimal, error) {
	if m.SumAmountByUserAndTypeFn != nil {
		return m.SumAmountByUserAndTypeFn(ctx, userID, entryType)
	}

	sum := decimal.Zero
	for _, entry := range m.Entries {
		if entry.UserID == userID && entry.Type == entryType {
			sum = sum.Add(entry.Amount)
		}
	}
	return sum, nil
}

package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger-api/internal/domain"
)

// EntryFilter describes an example-based search over a user's entries.
// UserID is always required; nil optional fields are excluded from the
// matching criteria. Description matches by case-insensitive substring
// containment, the remaining fields by case-insensitive equality.
type EntryFilter struct {
	UserID      int64
	Description *string
	Month       *int
	Year        *int
	Type        *domain.EntryType
	Status      *domain.EntryStatus
}

// EntryStore defines the interface for financial entry persistence.
type EntryStore interface {
	// Create saves a new entry to the store and assigns its ID.
	// Returns ErrInvalidEntity if the owning user does not exist.
	Create(ctx context.Context, entry *domain.Entry) error

	// GetByID retrieves an entry by its unique ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)

	// Update persists changes to an existing entry.
	// Returns ErrEntryNotFound if the entry does not exist.
	Update(ctx context.Context, entry *domain.Entry) error

	// Delete removes an entry from the store by its ID.
	// Returns ErrEntryNotFound if the entry does not exist.
	Delete(ctx context.Context, id int64) error

	// FindAllMatching returns all entries matching the filter, most
	// recent first. An empty result is a normal outcome, not an error.
	FindAllMatching(ctx context.Context, filter EntryFilter) ([]*domain.Entry, error)

	// SumAmountByUserAndType returns the total amount of the user's
	// entries of the given type. A user with no such entries sums to zero.
	SumAmountByUserAndType(
		ctx context.Context,
		userID int64,
		entryType domain.EntryType,
	) (decimal.Decimal, error)
}

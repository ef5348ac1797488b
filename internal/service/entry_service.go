package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/store"
)

// EntryService manages the validation and lifecycle of financial entries.
type EntryService interface {
	// Validate checks the entry's fields in a fixed order and returns
	// the first business rule violation, or nil when the entry is valid.
	Validate(entry *domain.Entry) error

	// Save validates the entry, forces its status to PENDING and
	// persists it. The stored entry with its assigned ID is returned.
	Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Update validates and persists changes to an existing entry. The
	// caller-supplied status is kept. Returns ErrMissingID without
	// touching the store when the entry has no ID.
	Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error)

	// Delete removes an existing entry. Returns ErrMissingID without
	// touching the store when the entry has no ID.
	Delete(ctx context.Context, entry *domain.Entry) error

	// Search returns the user's entries matching the filter's optional
	// criteria.
	Search(ctx context.Context, filter store.EntryFilter) ([]*domain.Entry, error)

	// UpdateStatus sets the entry's status and delegates to Update.
	UpdateStatus(
		ctx context.Context,
		entry *domain.Entry,
		status domain.EntryStatus,
	) (*domain.Entry, error)

	// GetByID retrieves an entry by ID. Returns store.ErrEntryNotFound
	// when absent; absence is a normal outcome, not a failure.
	GetByID(ctx context.Context, id int64) (*domain.Entry, error)

	// GetBalance returns the user's income total minus expense total.
	// A user with no entries has a balance of zero.
	GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error)
}

type entryService struct {
	entryStore store.EntryStore
	logger     *slog.Logger
}

// NewEntryService creates an EntryService backed by the given store.
func NewEntryService(entryStore store.EntryStore, log *slog.Logger) EntryService {
	if log == nil {
		log = slog.Default()
	}
	return &entryService{
		entryStore: entryStore,
		logger:     log.With("component", "entry_service"),
	}
}

// Validate implements EntryService.Validate. The check order is part of
// the contract: description, month, year, user, amount, type.
func (s *entryService) Validate(entry *domain.Entry) error {
	return entry.Validate()
}

// Save implements EntryService.Save.
func (s *entryService) Save(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if err := s.Validate(entry); err != nil {
		s.logger.Debug("entry validation failed during save", "error", err)
		return nil, err
	}

	// New entries always start out pending, whatever the caller sent.
	entry.Status = domain.EntryStatusPending

	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	if err := s.entryStore.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to create entry: %w", err)
	}

	s.logger.Info("entry saved",
		"entry_id", entry.ID,
		"user_id", entry.UserID)
	return entry, nil
}

// Update implements EntryService.Update.
func (s *entryService) Update(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	if entry.ID == 0 {
		return nil, ErrMissingID
	}

	if err := s.Validate(entry); err != nil {
		s.logger.Debug("entry validation failed during update",
			"error", err,
			"entry_id", entry.ID)
		return nil, err
	}

	entry.UpdatedAt = time.Now().UTC()

	if err := s.entryStore.Update(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("entry updated",
		"entry_id", entry.ID,
		"status", string(entry.Status))
	return entry, nil
}

// Delete implements EntryService.Delete.
func (s *entryService) Delete(ctx context.Context, entry *domain.Entry) error {
	if entry.ID == 0 {
		return ErrMissingID
	}

	if err := s.entryStore.Delete(ctx, entry.ID); err != nil {
		return err
	}

	s.logger.Info("entry deleted", "entry_id", entry.ID)
	return nil
}

// Search implements EntryService.Search.
func (s *entryService) Search(
	ctx context.Context,
	filter store.EntryFilter,
) ([]*domain.Entry, error) {
	entries, err := s.entryStore.FindAllMatching(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	return entries, nil
}

// UpdateStatus implements EntryService.UpdateStatus.
func (s *entryService) UpdateStatus(
	ctx context.Context,
	entry *domain.Entry,
	status domain.EntryStatus,
) (*domain.Entry, error) {
	entry.Status = status
	return s.Update(ctx, entry)
}

// GetByID implements EntryService.GetByID.
func (s *entryService) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	return s.entryStore.GetByID(ctx, id)
}

// GetBalance implements EntryService.GetBalance. A missing or empty sum
// on either side counts as zero.
func (s *entryService) GetBalance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	income, err := s.entryStore.SumAmountByUserAndType(ctx, userID, domain.EntryTypeIncome)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum income: %w", err)
	}

	expense, err := s.entryStore.SumAmountByUserAndType(ctx, userID, domain.EntryTypeExpense)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum expenses: %w", err)
	}

	return income.Sub(expense), nil
}

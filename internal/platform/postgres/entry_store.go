package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/fintrack/ledger-api/internal/domain"
	"github.com/fintrack/ledger-api/internal/platform/logger"
	"github.com/fintrack/ledger-api/internal/store"
)

// EntryStore implements store.EntryStore using a PostgreSQL database as
// the storage backend.
type EntryStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewEntryStore creates a new PostgreSQL implementation of the
// EntryStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
func NewEntryStore(db store.DBTX, log *slog.Logger) *EntryStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &EntryStore{
		db:     db,
		logger: log.With(slog.String("component", "entry_store")),
	}
}

// Ensure EntryStore implements store.EntryStore.
var _ store.EntryStore = (*EntryStore)(nil)

// Create implements store.EntryStore.Create.
// Returns store.ErrInvalidEntity when the owning user does not exist
// (foreign key violation).
func (s *EntryStore) Create(ctx context.Context, entry *domain.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		INSERT INTO entries (description, month, year, amount, type, status, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Amount,
		entry.Type,
		entry.Status,
		entry.UserID,
		entry.CreatedAt,
		entry.UpdatedAt,
	).Scan(&entry.ID)

	if err != nil {
		if isForeignKeyViolation(err) {
			log.Warn("foreign key violation during entry creation",
				slog.Int64("user_id", entry.UserID))
			return fmt.Errorf("%w: user with ID %d not found",
				store.ErrInvalidEntity, entry.UserID)
		}
		log.Error("failed to create entry",
			slog.String("error", err.Error()),
			slog.Int64("user_id", entry.UserID))
		return mapError(err)
	}

	log.Info("entry created successfully",
		slog.Int64("entry_id", entry.ID),
		slog.Int64("user_id", entry.UserID),
		slog.String("status", string(entry.Status)))
	return nil
}

// GetByID implements store.EntryStore.GetByID.
// Returns store.ErrEntryNotFound if the entry does not exist.
func (s *EntryStore) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, description, month, year, amount, type, status, user_id, created_at, updated_at
		FROM entries
		WHERE id = $1
	`

	entry, err := scanEntry(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("entry not found", slog.Int64("entry_id", id))
			return nil, store.ErrEntryNotFound
		}
		log.Error("failed to get entry by ID",
			slog.String("error", err.Error()),
			slog.Int64("entry_id", id))
		return nil, mapError(err)
	}

	return entry, nil
}

// Update implements store.EntryStore.Update.
// Returns store.ErrEntryNotFound if the entry does not exist.
func (s *EntryStore) Update(ctx context.Context, entry *domain.Entry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE entries
		SET description = $1, month = $2, year = $3, amount = $4,
		    type = $5, status = $6, user_id = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		entry.Description,
		entry.Month,
		entry.Year,
		entry.Amount,
		entry.Type,
		entry.Status,
		entry.UserID,
		entry.UpdatedAt,
		entry.ID,
	)
	if err != nil {
		log.Error("failed to update entry",
			slog.String("error", err.Error()),
			slog.Int64("entry_id", entry.ID))
		return mapError(err)
	}

	if err := checkRowsAffected(result, store.ErrEntryNotFound); err != nil {
		log.Debug("entry not found for update", slog.Int64("entry_id", entry.ID))
		return err
	}

	log.Info("entry updated successfully",
		slog.Int64("entry_id", entry.ID),
		slog.String("status", string(entry.Status)))
	return nil
}

// Delete implements store.EntryStore.Delete.
// Returns store.ErrEntryNotFound if the entry does not exist.
func (s *EntryStore) Delete(ctx context.Context, id int64) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete entry",
			slog.String("error", err.Error()),
			slog.Int64("entry_id", id))
		return mapError(err)
	}

	if err := checkRowsAffected(result, store.ErrEntryNotFound); err != nil {
		log.Debug("entry not found for delete", slog.Int64("entry_id", id))
		return err
	}

	log.Info("entry deleted successfully", slog.Int64("entry_id", id))
	return nil
}

// FindAllMatching implements store.EntryStore.FindAllMatching.
// The filter's optional fields are translated into WHERE clauses; the
// description matches by case-insensitive containment (ILIKE), the rest
// by equality on their canonical form.
func (s *EntryStore) FindAllMatching(
	ctx context.Context,
	filter store.EntryFilter,
) ([]*domain.Entry, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var sb strings.Builder
	sb.WriteString(`
		SELECT id, description, month, year, amount, type, status, user_id, created_at, updated_at
		FROM entries
		WHERE user_id = $1`)
	args := []any{filter.UserID}

	addClause := func(condition string, value any) {
		args = append(args, value)
		fmt.Fprintf(&sb, " AND %s $%d", condition, len(args))
	}

	if filter.Description != nil {
		addClause("description ILIKE", "%"+*filter.Description+"%")
	}
	if filter.Month != nil {
		addClause("month =", *filter.Month)
	}
	if filter.Year != nil {
		addClause("year =", *filter.Year)
	}
	if filter.Type != nil {
		addClause("type =", *filter.Type)
	}
	if filter.Status != nil {
		addClause("status =", *filter.Status)
	}

	sb.WriteString(" ORDER BY year DESC, month DESC, id DESC")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		log.Error("failed to query entries",
			slog.String("error", err.Error()),
			slog.Int64("user_id", filter.UserID))
		return nil, mapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	entries := []*domain.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			log.Error("failed to scan entry row",
				slog.String("error", err.Error()))
			return nil, err
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, mapError(err)
	}

	log.Debug("found matching entries",
		slog.Int64("user_id", filter.UserID),
		slog.Int("count", len(entries)))
	return entries, nil
}

// SumAmountByUserAndType implements store.EntryStore.SumAmountByUserAndType.
// A user with no entries of the given type sums to zero.
func (s *EntryStore) SumAmountByUserAndType(
	ctx context.Context,
	userID int64,
	entryType domain.EntryType,
) (decimal.Decimal, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT SUM(amount)
		FROM entries
		WHERE user_id = $1 AND type = $2
	`

	var sum decimal.NullDecimal
	err := s.db.QueryRowContext(ctx, query, userID, entryType).Scan(&sum)
	if err != nil {
		log.Error("failed to sum entry amounts",
			slog.String("error", err.Error()),
			slog.Int64("user_id", userID),
			slog.String("type", string(entryType)))
		return decimal.Zero, mapError(err)
	}

	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanEntry(row rowScanner) (*domain.Entry, error) {
	var entry domain.Entry
	var entryType, status string

	err := row.Scan(
		&entry.ID,
		&entry.Description,
		&entry.Month,
		&entry.Year,
		&entry.Amount,
		&entryType,
		&status,
		&entry.UserID,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	entry.Type = domain.EntryType(entryType)
	entry.Status = domain.EntryStatus(status)
	return &entry, nil
}

package sqlite

import (
	"context"
	"database/sql"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	"github.com/SscSPs/expense_bot/internal/models"
	"github.com/SscSPs/expense_bot/internal/utils/mapping"
)

// SharedLedgerRepository persists shared ledger entries. Amounts are stored as decimal text.
type SharedLedgerRepository struct {
	db *sql.DB
}

func NewSharedLedgerRepository(db *sql.DB) *SharedLedgerRepository {
	return &SharedLedgerRepository{db: db}
}

var _ portsrepo.SharedLedgerRepositoryFacade = (*SharedLedgerRepository)(nil)

// AppendSharedEntries inserts all entries in one transaction.
func (r *SharedLedgerRepository) AppendSharedEntries(ctx context.Context, entries []domain.SharedLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.StoreError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shared_ledger_entries (entry_id, user_id, payer, payee, description, amount, split, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return apperrors.StoreError("failed to prepare insert", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		m := mapping.ToModelSharedEntry(e)
		if _, err := stmt.ExecContext(ctx, m.EntryID, m.UserID, m.Payer, m.Payee, m.Description,
			m.Amount.String(), m.Split, formatTime(m.CreatedAt)); err != nil {
			return apperrors.StoreError("failed to insert shared ledger entry", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.StoreError("failed to commit transaction", err)
	}
	return nil
}

// ListSharedEntries returns the user's entries in insertion order. rowid serves as Seq.
func (r *SharedLedgerRepository) ListSharedEntries(ctx context.Context, userID int64) ([]domain.SharedLedgerEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT entry_id, user_id, payer, payee, description, amount, split, created_at, rowid
		FROM shared_ledger_entries
		WHERE user_id = ?
		ORDER BY created_at, rowid`, userID)
	if err != nil {
		return nil, apperrors.StoreError("failed to query shared ledger entries", err)
	}
	defer rows.Close()

	var result []models.SharedLedgerEntry
	for rows.Next() {
		var m models.SharedLedgerEntry
		var createdAt string
		if err := rows.Scan(&m.EntryID, &m.UserID, &m.Payer, &m.Payee, &m.Description, &m.Amount, &m.Split, &createdAt, &m.Seq); err != nil {
			return nil, apperrors.StoreError("failed to scan shared ledger entry", err)
		}
		if m.CreatedAt, err = parseTime(createdAt); err != nil {
			return nil, apperrors.StoreError("failed to parse entry timestamp", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreError("error iterating shared ledger entries", err)
	}
	return mapping.ToDomainSharedEntrySlice(result), nil
}

func (r *SharedLedgerRepository) ClearSharedEntries(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM shared_ledger_entries WHERE user_id = ?`, userID)
	if err != nil {
		return 0, apperrors.StoreError("failed to clear shared ledger entries", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, apperrors.StoreError("failed to count cleared entries", err)
	}
	return n, nil
}

package pgsql

import (
	"context"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portsrepo "github.com/SscSPs/expense_bot/internal/core/ports/repositories"
	"github.com/SscSPs/expense_bot/internal/models"
	"github.com/SscSPs/expense_bot/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxSharedLedgerRepository struct {
	BaseRepository
}

// newPgxSharedLedgerRepository creates a new repository for shared ledger entries.
func newPgxSharedLedgerRepository(pool *pgxpool.Pool) portsrepo.SharedLedgerRepositoryFacade {
	return &PgxSharedLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.SharedLedgerRepositoryFacade = (*PgxSharedLedgerRepository)(nil)

// AppendSharedEntries inserts all entries in one transaction.
func (r *PgxSharedLedgerRepository) AppendSharedEntries(ctx context.Context, entries []domain.SharedLedgerEntry) error {
	if len(entries) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Will be ignored if transaction is committed successfully
	defer r.Rollback(ctx, tx)

	query := `
		INSERT INTO shared_ledger_entries (entry_id, user_id, payer, payee, description, amount, split, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	batch := &pgx.Batch{}
	for _, e := range entries {
		m := mapping.ToModelSharedEntry(e)
		batch.Queue(query, m.EntryID, m.UserID, m.Payer, m.Payee, m.Description, m.Amount, m.Split, m.CreatedAt)
	}

	br := tx.SendBatch(ctx, batch)
	for range entries {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return apperrors.StoreError("failed to insert shared ledger entry", err)
		}
	}
	if err := br.Close(); err != nil {
		return apperrors.StoreError("failed to close insert batch", err)
	}

	return r.Commit(ctx, tx)
}

// ListSharedEntries returns every entry recorded by userID in insertion order.
func (r *PgxSharedLedgerRepository) ListSharedEntries(ctx context.Context, userID int64) ([]domain.SharedLedgerEntry, error) {
	query := `
		SELECT entry_id, user_id, payer, payee, description, amount, split, created_at, seq
		FROM shared_ledger_entries
		WHERE user_id = $1
		ORDER BY created_at, seq;
	`
	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, apperrors.StoreError("failed to query shared ledger entries", err)
	}
	defer rows.Close()

	var result []models.SharedLedgerEntry
	for rows.Next() {
		var m models.SharedLedgerEntry
		if err := rows.Scan(&m.EntryID, &m.UserID, &m.Payer, &m.Payee, &m.Description, &m.Amount, &m.Split, &m.CreatedAt, &m.Seq); err != nil {
			return nil, apperrors.StoreError("failed to scan shared ledger entry", err)
		}
		result = append(result, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.StoreError("error iterating shared ledger entries", err)
	}

	return mapping.ToDomainSharedEntrySlice(result), nil
}

// ClearSharedEntries deletes every entry recorded by userID.
func (r *PgxSharedLedgerRepository) ClearSharedEntries(ctx context.Context, userID int64) (int64, error) {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM shared_ledger_entries WHERE user_id = $1;`, userID)
	if err != nil {
		return 0, apperrors.StoreError("failed to clear shared ledger entries", err)
	}
	return tag.RowsAffected(), nil
}

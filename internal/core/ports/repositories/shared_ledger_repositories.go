package repositories

import (
	"context"

	"github.com/SscSPs/expense_bot/internal/core/domain"
)

// SharedLedgerReader defines read operations for shared ledger entries.
type SharedLedgerReader interface {
	// ListSharedEntries returns every entry recorded by userID, in no particular order.
	ListSharedEntries(ctx context.Context, userID int64) ([]domain.SharedLedgerEntry, error)
}

// SharedLedgerWriter defines write operations for shared ledger entries.
type SharedLedgerWriter interface {
	// AppendSharedEntries durably writes entries. SQL implementations write all of them or none.
	AppendSharedEntries(ctx context.Context, entries []domain.SharedLedgerEntry) error

	// ClearSharedEntries irreversibly deletes all entries recorded by userID and returns how many were removed.
	ClearSharedEntries(ctx context.Context, userID int64) (int64, error)
}

// SharedLedgerRepositoryFacade combines all shared ledger repository interfaces.
type SharedLedgerRepositoryFacade interface {
	SharedLedgerReader
	SharedLedgerWriter
}

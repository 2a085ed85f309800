package mapping

import (
	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/SscSPs/expense_bot/internal/models"
)

// ToModelSharedEntry converts a domain SharedLedgerEntry to a model SharedLedgerEntry
func ToModelSharedEntry(d domain.SharedLedgerEntry) models.SharedLedgerEntry {
	return models.SharedLedgerEntry{
		EntryID:     d.EntryID,
		UserID:      d.UserID,
		Payer:       d.Payer,
		Payee:       d.Payee,
		Description: d.Description,
		Amount:      d.Amount,
		Split:       d.Split,
		CreatedAt:   d.CreatedAt,
		Seq:         d.Seq,
	}
}

// ToDomainSharedEntry converts a model SharedLedgerEntry to a domain SharedLedgerEntry
func ToDomainSharedEntry(m models.SharedLedgerEntry) domain.SharedLedgerEntry {
	return domain.SharedLedgerEntry{
		EntryID:     m.EntryID,
		UserID:      m.UserID,
		Payer:       m.Payer,
		Payee:       m.Payee,
		Description: m.Description,
		Amount:      m.Amount,
		Split:       m.Split,
		CreatedAt:   m.CreatedAt.UTC(),
		Seq:         m.Seq,
	}
}

// ToDomainSharedEntrySlice converts a slice of model entries to domain entries
func ToDomainSharedEntrySlice(ms []models.SharedLedgerEntry) []domain.SharedLedgerEntry {
	ds := make([]domain.SharedLedgerEntry, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainSharedEntry(m)
	}
	return ds
}

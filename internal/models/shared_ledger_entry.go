package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SharedLedgerEntry is the persisted form of one payer → payee debt line.
type SharedLedgerEntry struct {
	EntryID     string          `db:"entry_id"`
	UserID      int64           `db:"user_id"` // recording chat user
	Payer       string          `db:"payer"`
	Payee       string          `db:"payee"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	Split       bool            `db:"split"`
	CreatedAt   time.Time       `db:"created_at"`
	Seq         int64           `db:"seq"`
}

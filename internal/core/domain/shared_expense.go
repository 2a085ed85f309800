package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SplitMode is the policy for dividing a shared expense across its payees.
// The string values double as the action tag of the mode-choice button payload.
type SplitMode string

const (
	// EqualSplit divides the total evenly; each entry holds one payee's share.
	EqualSplit SplitMode = "split"
	// FullOwe replicates the total; each payee independently owes the whole amount.
	FullOwe SplitMode = "owe"
)

// ParseSplitMode maps a payload action tag to a SplitMode.
func ParseSplitMode(action string) (SplitMode, bool) {
	switch SplitMode(action) {
	case EqualSplit:
		return EqualSplit, true
	case FullOwe:
		return FullOwe, true
	default:
		return "", false
	}
}

// SharedExpenseProposal is a parsed but not yet recorded shared expense.
// It is never stored server-side; it travels inside the mode-choice button payload.
type SharedExpenseProposal struct {
	Amount      decimal.Decimal `json:"amount"`
	Payer       string          `json:"payer"`
	Description string          `json:"description"`
	Payees      []string        `json:"payees"` // at least one, duplicates allowed
}

// SharedLedgerEntry records that Payee owes Amount to Payer.
// Entries are append-only; the only deletion path is clearing every entry of a recording user.
type SharedLedgerEntry struct {
	EntryID     string          `json:"entryID"`
	UserID      int64           `json:"userID" validate:"required"` // recording chat user
	Payer       string          `json:"payer" validate:"required"`
	Payee       string          `json:"payee" validate:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" validate:"gt=0"`
	Split       bool            `json:"split"` // true: Amount is this payee's equal share
	CreatedAt   time.Time       `json:"createdAt"`
	// Seq is assigned by the store on append and increases with insertion order.
	// Entries of one proposal share CreatedAt, so Seq breaks the tie.
	Seq int64 `json:"seq"`
}

// OlderThan reports whether e was recorded before other.
func (e SharedLedgerEntry) OlderThan(other SharedLedgerEntry) bool {
	if !e.CreatedAt.Equal(other.CreatedAt) {
		return e.CreatedAt.Before(other.CreatedAt)
	}
	return e.Seq < other.Seq
}

// EffectiveAmount is the amount transferred between payer and payee when netting.
// A split entry credits the payer with half of the stored share.
func (e SharedLedgerEntry) EffectiveAmount() decimal.Decimal {
	if e.Split {
		return e.Amount.Div(decimal.NewFromInt(2))
	}
	return e.Amount
}

package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/SscSPs/expense_bot/internal/core/services"
)

func proposal(amount string, payees ...string) domain.SharedExpenseProposal {
	return domain.SharedExpenseProposal{
		Amount:      decimal.RequireFromString(amount),
		Payer:       "jai",
		Description: "dinner",
		Payees:      payees,
	}
}

func TestToLedgerEntries_EqualSplitSinglePayee(t *testing.T) {
	entries, err := services.ToLedgerEntries(proposal("600", "swaraj"), domain.EqualSplit)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(600)))
	assert.True(t, entries[0].Split)
	assert.Equal(t, "jai", entries[0].Payer)
	assert.Equal(t, "swaraj", entries[0].Payee)
	assert.Equal(t, "dinner", entries[0].Description)
}

func TestToLedgerEntries_FullOweReplicatesTotal(t *testing.T) {
	entries, err := services.ToLedgerEntries(proposal("600", "raj", "swaraj"), domain.FullOwe)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(600)))
		assert.False(t, e.Split)
	}
	assert.Equal(t, "raj", entries[0].Payee)
	assert.Equal(t, "swaraj", entries[1].Payee)
}

func TestToLedgerEntries_EqualSplitSumsWithinOneUnit(t *testing.T) {
	for _, tc := range []struct {
		amount string
		payees []string
	}{
		{"100", []string{"a", "b", "c"}},
		{"10", []string{"a", "b", "c", "d", "e", "f", "g"}},
		{"0.01", []string{"a", "b"}},
		{"999.99", []string{"a", "a", "b"}},
	} {
		entries, err := services.ToLedgerEntries(proposal(tc.amount, tc.payees...), domain.EqualSplit)
		require.NoError(t, err)
		require.Len(t, entries, len(tc.payees))

		sum := decimal.Zero
		for _, e := range entries {
			assert.True(t, e.Split)
			sum = sum.Add(e.Amount)
		}
		diff := decimal.RequireFromString(tc.amount).Sub(sum).Abs()
		assert.True(t, diff.LessThanOrEqual(decimal.RequireFromString("0.01")), "amount %s diff %s", tc.amount, diff)
	}
}

func TestToLedgerEntries_Rejects(t *testing.T) {
	_, err := services.ToLedgerEntries(proposal("10"), domain.EqualSplit)
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = services.ToLedgerEntries(proposal("10", "raj"), domain.SplitMode("half"))
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = services.ToLedgerEntries(proposal("0", "raj"), domain.FullOwe)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

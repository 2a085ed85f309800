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

func balanceOf(t *testing.T, net domain.NetBalance, person string) decimal.Decimal {
	t.Helper()
	amount, ok := net.Get(person)
	require.True(t, ok, "missing %s", person)
	return amount
}

func TestNetBalances_Scenarios(t *testing.T) {
	split, err := services.ToLedgerEntries(proposal("600", "swaraj"), domain.EqualSplit)
	require.NoError(t, err)
	net, err := services.NetBalances(split)
	require.NoError(t, err)
	assert.True(t, balanceOf(t, net, "jai").Equal(decimal.NewFromInt(300)))
	assert.True(t, balanceOf(t, net, "swaraj").Equal(decimal.NewFromInt(-300)))

	owe, err := services.ToLedgerEntries(proposal("600", "swaraj"), domain.FullOwe)
	require.NoError(t, err)
	net, err = services.NetBalances(owe)
	require.NoError(t, err)
	assert.True(t, balanceOf(t, net, "jai").Equal(decimal.NewFromInt(600)))
	assert.True(t, balanceOf(t, net, "swaraj").Equal(decimal.NewFromInt(-600)))
}

func TestNetBalances_EmptyIsEmptyResult(t *testing.T) {
	_, err := services.NetBalances(nil)
	assert.ErrorIs(t, err, apperrors.ErrEmptyResult)
}

func TestNetBalances_ConservesAndOrdersFirstSeen(t *testing.T) {
	entries := []domain.SharedLedgerEntry{
		{Payer: "jai", Payee: "raj", Amount: decimal.RequireFromString("33.33"), Split: true},
		{Payer: "raj", Payee: "amy", Amount: decimal.NewFromInt(50)},
		{Payer: "amy", Payee: "jai", Amount: decimal.RequireFromString("12.5"), Split: true},
		{Payer: "jai", Payee: "jai", Amount: decimal.NewFromInt(7)},
	}

	net, err := services.NetBalances(entries)
	require.NoError(t, err)

	people := make([]string, 0, net.Len())
	total := decimal.Zero
	for _, b := range net.Balances() {
		people = append(people, b.Person)
		total = total.Add(b.Amount)
	}
	assert.Equal(t, []string{"jai", "raj", "amy"}, people)
	assert.True(t, total.IsZero(), "balances must sum to zero, got %s", total)
	assert.True(t, balanceOf(t, net, "raj").Equal(decimal.RequireFromString("33.335")))
}

func TestNetBalances_Idempotent(t *testing.T) {
	entries := []domain.SharedLedgerEntry{
		{Payer: "jai", Payee: "raj", Amount: decimal.NewFromInt(10)},
		{Payer: "raj", Payee: "jai", Amount: decimal.NewFromInt(4), Split: true},
	}

	first, err := services.NetBalances(entries)
	require.NoError(t, err)
	second, err := services.NetBalances(entries)
	require.NoError(t, err)

	assert.Equal(t, first.Balances(), second.Balances())
}

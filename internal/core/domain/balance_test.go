package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNetBalance_FirstSeenOrder(t *testing.T) {
	net := NewNetBalance()
	net.Add("jai", decimal.NewFromInt(10))
	net.Add("raj", decimal.NewFromInt(-10))
	net.Add("jai", decimal.NewFromInt(5))

	assert.Equal(t, 2, net.Len())
	b := net.Balances()
	assert.Equal(t, "jai", b[0].Person)
	assert.True(t, b[0].Amount.Equal(decimal.NewFromInt(15)))
	assert.True(t, b[0].IsOwed())
	assert.False(t, b[1].IsOwed())

	_, ok := net.Get("amy")
	assert.False(t, ok)
}

func TestNetBalance_BalancesIsCopy(t *testing.T) {
	net := NewNetBalance()
	net.Add("jai", decimal.NewFromInt(1))

	b := net.Balances()
	b[0].Amount = decimal.NewFromInt(100)

	got, _ := net.Get("jai")
	assert.True(t, got.Equal(decimal.NewFromInt(1)))
}

func TestEffectiveAmount(t *testing.T) {
	split := SharedLedgerEntry{Amount: decimal.NewFromInt(45), Split: true}
	owe := SharedLedgerEntry{Amount: decimal.NewFromInt(45)}

	assert.True(t, split.EffectiveAmount().Equal(decimal.RequireFromString("22.5")))
	assert.True(t, owe.EffectiveAmount().Equal(decimal.NewFromInt(45)))
}

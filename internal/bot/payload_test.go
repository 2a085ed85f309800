package bot

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
)

func TestEncodeProposal_Format(t *testing.T) {
	p := domain.SharedExpenseProposal{
		Amount: decimal.RequireFromString("90.5"), Payer: "jai", Description: "team lunch", Payees: []string{"raj", "swaraj"},
	}

	payload, err := EncodeProposal(domain.EqualSplit, p)
	require.NoError(t, err)
	assert.Equal(t, "split|90.5|jai|team lunch|raj,swaraj", payload)

	mode, decoded, err := DecodeProposal(payload)
	require.NoError(t, err)
	assert.Equal(t, domain.EqualSplit, mode)
	assert.True(t, decoded.Amount.Equal(p.Amount))
	assert.Equal(t, p.Payer, decoded.Payer)
	assert.Equal(t, p.Description, decoded.Description)
	assert.Equal(t, p.Payees, decoded.Payees)
}

func TestEncodeProposal_EmptyDescription(t *testing.T) {
	payload, err := EncodeProposal(domain.FullOwe, domain.SharedExpenseProposal{
		Amount: decimal.NewFromInt(100), Payer: "jai", Payees: []string{"swaraj"},
	})
	require.NoError(t, err)
	assert.Equal(t, "owe|100|jai||swaraj", payload)

	_, decoded, err := DecodeProposal(payload)
	require.NoError(t, err)
	assert.Empty(t, decoded.Description)
}

func TestEncodeProposal_Rejects(t *testing.T) {
	base := func() domain.SharedExpenseProposal {
		return domain.SharedExpenseProposal{Amount: decimal.NewFromInt(1), Payer: "jai", Description: "x", Payees: []string{"raj"}}
	}

	tests := map[string]func(p *domain.SharedExpenseProposal){
		"separator in description": func(p *domain.SharedExpenseProposal) { p.Description = "a|b" },
		"separator in payer":       func(p *domain.SharedExpenseProposal) { p.Payer = "j|ai" },
		"comma in payee":           func(p *domain.SharedExpenseProposal) { p.Payees = []string{"r,aj"} },
		"empty payee":              func(p *domain.SharedExpenseProposal) { p.Payees = []string{""} },
		"no payees":                func(p *domain.SharedExpenseProposal) { p.Payees = nil },
		"too long":                 func(p *domain.SharedExpenseProposal) { p.Description = strings.Repeat("d", MaxPayloadBytes) },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			p := base()
			mutate(&p)
			_, err := EncodeProposal(domain.EqualSplit, p)
			assert.ErrorIs(t, err, apperrors.ErrMalformedCommand)
		})
	}
}

func TestDecodeProposal_Invalid(t *testing.T) {
	for _, payload := range []string{
		"",
		"split|100|jai|lunch",
		"split|100|jai|lunch|raj|extra",
		"half|100|jai|lunch|raj",
		"split|abc|jai|lunch|raj",
		"split|-1|jai|lunch|raj",
		"split|100||lunch|raj",
		"split|100|jai|lunch|",
		"split|100|jai|lunch|raj,,amy",
		"settle_now|",
	} {
		_, _, err := DecodeProposal(payload)
		assert.ErrorIs(t, err, apperrors.ErrInvalidPayload, "payload %q", payload)
	}
}

func TestParseCommand(t *testing.T) {
	cmd, ok := ParseCommand(1, 2, "/Shared@expense_bot  90 jai   lunch raj")
	require.True(t, ok)
	assert.Equal(t, "shared", cmd.Name)
	assert.Equal(t, []string{"90", "jai", "lunch", "raj"}, cmd.Args)
	assert.Equal(t, int64(1), cmd.UserID)
	assert.Equal(t, int64(2), cmd.ChatID)

	_, ok = ParseCommand(1, 2, "hello there")
	assert.False(t, ok)

	_, ok = ParseCommand(1, 2, "/")
	assert.False(t, ok)
}

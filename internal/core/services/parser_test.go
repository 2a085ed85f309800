package services_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/services"
)

func TestParseSharedCommand(t *testing.T) {
	tests := []struct {
		name         string
		policy       services.PayeePolicy
		args         []string
		wantPayer    string
		wantDesc     string
		wantPayees   []string
		wantAmount   string
		wantErrField string
	}{
		{
			name:       "legacy last token is payee",
			policy:     services.LegacyTrailingPayee{},
			args:       []string{"600", "jai", "team", "dinner", "swaraj"},
			wantAmount: "600", wantPayer: "jai", wantDesc: "team dinner", wantPayees: []string{"swaraj"},
		},
		{
			name:       "legacy single remainder token has empty description",
			policy:     services.LegacyTrailingPayee{},
			args:       []string{"100", "jai", "swaraj"},
			wantAmount: "100", wantPayer: "jai", wantDesc: "", wantPayees: []string{"swaraj"},
		},
		{
			name:       "legacy ignores commas",
			policy:     services.LegacyTrailingPayee{},
			args:       []string{"90", "jai", "lunch", "raj,", "swaraj"},
			wantAmount: "90", wantPayer: "jai", wantDesc: "lunch raj,", wantPayees: []string{"swaraj"},
		},
		{
			name:       "delimited without commas matches legacy",
			policy:     services.DelimitedPayees{},
			args:       []string{"600", "jai", "team", "dinner", "swaraj"},
			wantAmount: "600", wantPayer: "jai", wantDesc: "team dinner", wantPayees: []string{"swaraj"},
		},
		{
			name:       "delimited comma separated tokens",
			policy:     services.DelimitedPayees{},
			args:       []string{"90", "jai", "lunch", "raj,", "swaraj"},
			wantAmount: "90", wantPayer: "jai", wantDesc: "lunch", wantPayees: []string{"raj", "swaraj"},
		},
		{
			name:       "delimited comma joined token",
			policy:     services.DelimitedPayees{},
			args:       []string{"90.5", "jai", "cab", "ride", "raj,swaraj,amy"},
			wantAmount: "90.5", wantPayer: "jai", wantDesc: "cab ride", wantPayees: []string{"raj", "swaraj", "amy"},
		},
		{
			name:       "duplicates allowed",
			policy:     services.DelimitedPayees{},
			args:       []string{"20", "jai", "tea", "raj,raj"},
			wantAmount: "20", wantPayer: "jai", wantDesc: "tea", wantPayees: []string{"raj", "raj"},
		},
		{name: "no args", policy: services.DelimitedPayees{}, args: nil, wantErrField: "amount"},
		{name: "non numeric amount", policy: services.DelimitedPayees{}, args: []string{"abc", "jai", "x", "raj"}, wantErrField: "amount"},
		{name: "zero amount", policy: services.DelimitedPayees{}, args: []string{"0", "jai", "x", "raj"}, wantErrField: "amount"},
		{name: "negative amount", policy: services.DelimitedPayees{}, args: []string{"-5", "jai", "x", "raj"}, wantErrField: "amount"},
		{name: "huge exponent", policy: services.DelimitedPayees{}, args: []string{"1e1000000", "jai", "swaraj"}, wantErrField: "amount"},
		{name: "tiny exponent", policy: services.DelimitedPayees{}, args: []string{"1e-1000000", "jai", "swaraj"}, wantErrField: "amount"},
		{name: "sixteen integer digits", policy: services.DelimitedPayees{}, args: []string{"1234567890123456", "jai", "swaraj"}, wantErrField: "amount"},
		{name: "nine decimal places", policy: services.DelimitedPayees{}, args: []string{"1.123456789", "jai", "swaraj"}, wantErrField: "amount"},
		{name: "overlong token", policy: services.DelimitedPayees{}, args: []string{"0000000000000000000000000000000001", "jai", "swaraj"}, wantErrField: "amount"},
		{
			name:       "largest accepted amount",
			policy:     services.DelimitedPayees{},
			args:       []string{"999999999999999.12345678", "jai", "swaraj"},
			wantAmount: "999999999999999.12345678", wantPayer: "jai", wantDesc: "", wantPayees: []string{"swaraj"},
		},
		{
			name:       "exponent within bounds",
			policy:     services.DelimitedPayees{},
			args:       []string{"1.5e3", "jai", "swaraj"},
			wantAmount: "1500", wantPayer: "jai", wantDesc: "", wantPayees: []string{"swaraj"},
		},
		{name: "missing payer", policy: services.DelimitedPayees{}, args: []string{"10"}, wantErrField: "payer"},
		{name: "missing payees", policy: services.LegacyTrailingPayee{}, args: []string{"10", "jai"}, wantErrField: "payees"},
		{name: "only commas", policy: services.DelimitedPayees{}, args: []string{"10", "jai", ",,"}, wantErrField: "payees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := services.NewCommandParser(tt.policy).ParseSharedCommand(tt.args)

			if tt.wantErrField != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, apperrors.ErrMalformedCommand)
				var mce *apperrors.MalformedCommandError
				require.True(t, errors.As(err, &mce))
				assert.Equal(t, tt.wantErrField, mce.Field)
				return
			}

			require.NoError(t, err)
			assert.True(t, p.Amount.Equal(decimal.RequireFromString(tt.wantAmount)))
			assert.Equal(t, tt.wantPayer, p.Payer)
			assert.Equal(t, tt.wantDesc, p.Description)
			assert.Equal(t, tt.wantPayees, p.Payees)
		})
	}
}

func TestParseAddCommand(t *testing.T) {
	parser := services.NewCommandParser(nil)

	amount, category, err := parser.ParseAddCommand([]string{"150", "lunch", "out"})
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "lunch out", category)

	_, category, err = parser.ParseAddCommand([]string{"99.99"})
	require.NoError(t, err)
	assert.Equal(t, "misc", category)

	_, _, err = parser.ParseAddCommand([]string{"abc", "lunch"})
	assert.ErrorIs(t, err, apperrors.ErrMalformedCommand)

	_, _, err = parser.ParseAddCommand(nil)
	assert.ErrorIs(t, err, apperrors.ErrMalformedCommand)

	_, _, err = parser.ParseAddCommand([]string{"1e200000000", "x"})
	var mce *apperrors.MalformedCommandError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "amount", mce.Field)
}

func TestPayeePolicyByName(t *testing.T) {
	p, err := services.PayeePolicyByName("")
	require.NoError(t, err)
	assert.Equal(t, services.PayeePolicyDelimited, p.Name())

	p, err = services.PayeePolicyByName(" Legacy ")
	require.NoError(t, err)
	assert.Equal(t, services.PayeePolicyLegacy, p.Name())

	_, err = services.PayeePolicyByName("fixed-count")
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

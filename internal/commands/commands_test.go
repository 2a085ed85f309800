package commands

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/SscSPs/expense_bot/internal/utils"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	root := NewRootCommand()

	names := make([]string, 0)
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate", "balances", "token", "secret"}, names)
}

func TestTokenCommand_MintsVerifiableToken(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")
	t.Setenv("JWT_SECRET", "test-secret")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"token", "4242", "--expiry", "5m"})

	require.NoError(t, root.Execute())

	claims, err := utils.ParseAndValidateJWT(string(bytes.TrimSpace(out.Bytes())), "test-secret")
	require.NoError(t, err)
	assert.Equal(t, "4242", claims.Subject)
}

func TestTokenCommand_RejectsBadUserID(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"token", "abc"})

	assert.Error(t, root.Execute())
}

func TestBalancesCommand_EmptyMemoryStore(t *testing.T) {
	t.Setenv("DATA_BACKEND", "memory")

	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"balances", "1"})

	require.NoError(t, root.Execute())
	assert.Equal(t, "No balances to show.\n", out.String())
}

func TestPrintBalances(t *testing.T) {
	net := domain.NewNetBalance()
	net.Add("jai", decimal.NewFromInt(300))
	net.Add("swaraj", decimal.NewFromInt(-300))
	net.Add("amy", decimal.Zero)

	var out bytes.Buffer
	printBalances(&out, net, "₹")

	assert.Contains(t, out.String(), "jai                  gets ₹300.00")
	assert.Contains(t, out.String(), "swaraj               owes ₹300.00")
	assert.Contains(t, out.String(), "amy                  settled")
}

func TestSecretCommand_PrintsHex(t *testing.T) {
	root := NewRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"secret", "--bytes", "16"})

	require.NoError(t, root.Execute())
	assert.Regexp(t, `^[0-9a-f]{32}\n$`, out.String())
}

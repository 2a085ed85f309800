package services

import (
	"fmt"
	"strings"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PayeePolicy decides where the free-text description ends and the payee list begins.
// The split is ambiguous from token count alone, so it is kept swappable.
type PayeePolicy interface {
	Name() string
	SplitPayees(rest []string) (description []string, payees []string, err error)
}

const (
	PayeePolicyLegacy    = "legacy"
	PayeePolicyDelimited = "delimited"
)

// PayeePolicyByName returns the policy configured by name.
func PayeePolicyByName(name string) (PayeePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", PayeePolicyDelimited:
		return DelimitedPayees{}, nil
	case PayeePolicyLegacy:
		return LegacyTrailingPayee{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown payee policy %q", apperrors.ErrValidation, name)
	}
}

// LegacyTrailingPayee treats the last token as the only payee and everything before it
// as the description. A remainder of one token yields an empty description.
type LegacyTrailingPayee struct{}

func (LegacyTrailingPayee) Name() string { return PayeePolicyLegacy }

func (LegacyTrailingPayee) SplitPayees(rest []string) ([]string, []string, error) {
	if len(rest) == 0 {
		return nil, nil, apperrors.NewMalformedCommand("payees", "at least one payee required")
	}
	last := len(rest) - 1
	return rest[:last], []string{rest[last]}, nil
}

// DelimitedPayees treats the last token as a payee, plus every directly preceding token
// that ends with a comma. Each payee token may itself be a comma-joined list.
// Input without commas is split exactly like LegacyTrailingPayee.
type DelimitedPayees struct{}

func (DelimitedPayees) Name() string { return PayeePolicyDelimited }

func (DelimitedPayees) SplitPayees(rest []string) ([]string, []string, error) {
	if len(rest) == 0 {
		return nil, nil, apperrors.NewMalformedCommand("payees", "at least one payee required")
	}
	start := len(rest) - 1
	for start > 0 && strings.HasSuffix(rest[start-1], ",") {
		start--
	}

	var payees []string
	for _, tok := range rest[start:] {
		for _, name := range strings.Split(tok, ",") {
			if name = strings.TrimSpace(name); name != "" {
				payees = append(payees, name)
			}
		}
	}
	if len(payees) == 0 {
		return nil, nil, apperrors.NewMalformedCommand("payees", "at least one payee required")
	}
	return rest[:start], payees, nil
}

// CommandParser turns tokenized command arguments into structured requests.
type CommandParser struct {
	policy PayeePolicy
}

// NewCommandParser creates a parser using policy to split description from payees.
func NewCommandParser(policy PayeePolicy) *CommandParser {
	if policy == nil {
		policy = DelimitedPayees{}
	}
	return &CommandParser{policy: policy}
}

// Policy returns the payee policy in use.
func (p *CommandParser) Policy() PayeePolicy {
	return p.policy
}

// ParseSharedCommand parses `<amount> <payer> [description...] <payee> [...]`.
func (p *CommandParser) ParseSharedCommand(args []string) (domain.SharedExpenseProposal, error) {
	if len(args) == 0 {
		return domain.SharedExpenseProposal{}, apperrors.NewMalformedCommand("amount", "missing")
	}
	amount, err := ParseAmount(args[0])
	if err != nil {
		return domain.SharedExpenseProposal{}, err
	}
	if len(args) < 2 || strings.TrimSpace(args[1]) == "" {
		return domain.SharedExpenseProposal{}, apperrors.NewMalformedCommand("payer", "missing")
	}

	descTokens, payees, err := p.policy.SplitPayees(args[2:])
	if err != nil {
		return domain.SharedExpenseProposal{}, err
	}

	return domain.SharedExpenseProposal{
		Amount:      amount,
		Payer:       args[1],
		Description: strings.Join(descTokens, " "),
		Payees:      payees,
	}, nil
}

// ParseAddCommand parses `<amount> [category...]`. The category defaults to "misc".
func (p *CommandParser) ParseAddCommand(args []string) (decimal.Decimal, string, error) {
	if len(args) == 0 {
		return decimal.Zero, "", apperrors.NewMalformedCommand("amount", "missing")
	}
	amount, err := ParseAmount(args[0])
	if err != nil {
		return decimal.Zero, "", err
	}
	category := strings.Join(args[1:], " ")
	if category == "" {
		category = domain.DefaultCategory
	}
	return amount, category, nil
}

// Amount bounds. Anything past them is rejected before it can reach String(),
// which expands exponents digit by digit.
const (
	maxAmountTokenLen       = 32
	maxAmountIntegerDigits  = 15
	maxAmountFractionDigits = 8
)

// ParseAmount parses a positive decimal amount token of bounded magnitude and precision.
func ParseAmount(tok string) (decimal.Decimal, error) {
	tok = strings.TrimSpace(tok)
	if len(tok) > maxAmountTokenLen {
		return decimal.Zero, apperrors.NewMalformedCommand("amount", "too long")
	}
	amount, err := decimal.NewFromString(tok)
	if err != nil {
		return decimal.Zero, apperrors.NewMalformedCommand("amount", fmt.Sprintf("%q is not a number", tok))
	}
	if !amount.IsPositive() {
		return decimal.Zero, apperrors.NewMalformedCommand("amount", "must be positive")
	}

	exp := int64(amount.Exponent())
	if exp < -maxAmountFractionDigits {
		return decimal.Zero, apperrors.NewMalformedCommand("amount",
			fmt.Sprintf("at most %d decimal places", maxAmountFractionDigits))
	}
	if int64(amount.NumDigits())+exp > maxAmountIntegerDigits {
		return decimal.Zero, apperrors.NewMalformedCommand("amount", "too large")
	}
	return amount, nil
}

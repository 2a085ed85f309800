package bot

import (
	"fmt"
	"strings"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/SscSPs/expense_bot/internal/core/services"
)

// Fixed payloads of navigation buttons.
const (
	TagSettleNow  = "settle_now"
	TagClearAll   = "clear_all"
	TagShowShared = "show_shared"
	TagClose      = "close"
)

const (
	fieldSeparator = "|"
	payeeSeparator = ","
	payloadFields  = 5

	// MaxPayloadBytes is Telegram's callback_data limit.
	MaxPayloadBytes = 64
)

// EncodeProposal renders `action|amount|payer|description|payee1,payee2`.
// Proposals that cannot round-trip are rejected as malformed commands.
func EncodeProposal(mode domain.SplitMode, p domain.SharedExpenseProposal) (string, error) {
	if strings.Contains(p.Payer, fieldSeparator) {
		return "", apperrors.NewMalformedCommand("payer", "must not contain "+fieldSeparator)
	}
	if strings.Contains(p.Description, fieldSeparator) {
		return "", apperrors.NewMalformedCommand("description", "must not contain "+fieldSeparator)
	}
	if len(p.Payees) == 0 {
		return "", apperrors.NewMalformedCommand("payees", "at least one payee required")
	}
	for _, payee := range p.Payees {
		if payee == "" || strings.ContainsAny(payee, fieldSeparator+payeeSeparator) {
			return "", apperrors.NewMalformedCommand("payees", fmt.Sprintf("invalid payee name %q", payee))
		}
	}

	payload := strings.Join([]string{
		string(mode),
		p.Amount.String(),
		p.Payer,
		p.Description,
		strings.Join(p.Payees, payeeSeparator),
	}, fieldSeparator)

	if len(payload) > MaxPayloadBytes {
		return "", apperrors.NewMalformedCommand("description", fmt.Sprintf("too long for a button (%d > %d bytes)", len(payload), MaxPayloadBytes))
	}
	return payload, nil
}

// DecodeProposal parses a payload produced by EncodeProposal.
// Any deviation from the five-field format fails with ErrInvalidPayload.
func DecodeProposal(payload string) (domain.SplitMode, domain.SharedExpenseProposal, error) {
	fields := strings.Split(payload, fieldSeparator)
	if len(fields) != payloadFields {
		return "", domain.SharedExpenseProposal{}, invalidPayload("expected %d fields, got %d", payloadFields, len(fields))
	}

	mode, ok := domain.ParseSplitMode(fields[0])
	if !ok {
		return "", domain.SharedExpenseProposal{}, invalidPayload("unknown action %q", fields[0])
	}
	amount, err := services.ParseAmount(fields[1])
	if err != nil {
		return "", domain.SharedExpenseProposal{}, invalidPayload("bad amount %q", fields[1])
	}
	if fields[2] == "" {
		return "", domain.SharedExpenseProposal{}, invalidPayload("missing payer")
	}

	payees := strings.Split(fields[4], payeeSeparator)
	for _, payee := range payees {
		if payee == "" {
			return "", domain.SharedExpenseProposal{}, invalidPayload("empty payee")
		}
	}

	return mode, domain.SharedExpenseProposal{
		Amount:      amount,
		Payer:       fields[2],
		Description: fields[3],
		Payees:      payees,
	}, nil
}

func invalidPayload(format string, args ...any) error {
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidPayload, fmt.Sprintf(format, args...))
}

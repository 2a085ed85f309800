package bot

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/SscSPs/expense_bot/internal/apperrors"
	"github.com/SscSPs/expense_bot/internal/core/domain"
	portssvc "github.com/SscSPs/expense_bot/internal/core/ports/services"
	"github.com/SscSPs/expense_bot/internal/middleware"
)

// Tracker receives product analytics events.
type Tracker interface {
	Enqueue(distinctID string, event string, properties map[string]any)
}

type noopTracker struct{}

func (noopTracker) Enqueue(string, string, map[string]any) {}

// Analytics event names.
const (
	EventSharedProposed  = "shared_expense_proposed"
	EventSharedRecorded  = "shared_expense_recorded"
	EventSharedCleared   = "shared_expenses_cleared"
	EventExpenseAdded    = "expense_added"
	EventInvalidPayload  = "invalid_button_payload"
	EventCommandReceived = "command_received"
)

// recentWindows maps report commands to their look-back in days.
var recentWindows = map[string]int{
	"daily":  1,
	"weekly": 7,
	"15days": 15,
}

// Dispatcher routes commands and button presses to the services.
type Dispatcher struct {
	shared   portssvc.SharedExpenseSvcFacade
	expenses portssvc.ExpenseSvcFacade
	render   Renderer
	tracker  Tracker
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithTracker sets the analytics tracker.
func WithTracker(t Tracker) Option {
	return func(d *Dispatcher) {
		if t != nil {
			d.tracker = t
		}
	}
}

// WithCurrency sets the symbol amounts are rendered with.
func WithCurrency(symbol string) Option {
	return func(d *Dispatcher) {
		d.render = NewRenderer(symbol)
	}
}

// NewDispatcher creates a dispatcher over the given services.
func NewDispatcher(shared portssvc.SharedExpenseSvcFacade, expenses portssvc.ExpenseSvcFacade, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		shared:   shared,
		expenses: expenses,
		render:   NewRenderer("₹"),
		tracker:  noopTracker{},
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// HandleCommand answers a slash command. Unknown commands yield ReplyNone.
func (d *Dispatcher) HandleCommand(ctx context.Context, cmd Command) Reply {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.Int64("user_id", cmd.UserID), slog.String("command", cmd.Name))
	ctx = middleware.WithLogger(ctx, logger)
	logger.Debug("Handling command", slog.Int("args", len(cmd.Args)))

	switch cmd.Name {
	case "start":
		return markdown(ReplySend, textStart)
	case "help":
		return markdown(ReplySend, textHelp)
	case "shared":
		return d.proposeShared(ctx, cmd)
	case "show":
		return d.history(ctx, cmd.UserID, ReplySend)
	case "settle":
		return d.balances(ctx, cmd.UserID, ReplySend)
	case "add":
		return d.addExpense(ctx, cmd)
	case "monthly":
		return d.monthly(ctx, cmd.UserID)
	default:
		if days, ok := recentWindows[cmd.Name]; ok {
			return d.recent(ctx, cmd.UserID, days)
		}
		return Reply{}
	}
}

// HandleButton answers a button press. Payloads that do not decode are refused without side effects.
func (d *Dispatcher) HandleButton(ctx context.Context, press ButtonPress) Reply {
	logger := middleware.GetLoggerFromCtx(ctx).With(slog.Int64("user_id", press.UserID), slog.Int("message_id", press.MessageID))
	ctx = middleware.WithLogger(ctx, logger)

	switch press.Payload {
	case TagSettleNow:
		return d.balances(ctx, press.UserID, ReplyEdit)
	case TagShowShared:
		return d.history(ctx, press.UserID, ReplyEdit)
	case TagClearAll:
		return d.clear(ctx, press.UserID)
	case TagClose:
		return Reply{Kind: ReplyDelete}
	}

	mode, proposal, err := DecodeProposal(press.Payload)
	if err != nil {
		logger.Warn("Rejected button payload", slog.String("error", err.Error()))
		d.track(press.UserID, EventInvalidPayload, nil)
		return Reply{Kind: ReplyAlert, Text: textInvalidButton}
	}
	return d.record(ctx, press.UserID, proposal, mode)
}

func (d *Dispatcher) proposeShared(ctx context.Context, cmd Command) Reply {
	proposal, err := d.shared.ProposeSharedExpense(ctx, cmd.Args)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: ReplySend, Text: usageShared})
	}

	splitPayload, err := EncodeProposal(domain.EqualSplit, proposal)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: ReplySend, Text: usageShared})
	}
	owePayload, err := EncodeProposal(domain.FullOwe, proposal)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: ReplySend, Text: usageShared})
	}

	d.track(cmd.UserID, EventSharedProposed, map[string]any{"payees": len(proposal.Payees)})
	return Reply{
		Kind: ReplySend,
		Text: textChooseMode,
		Buttons: [][]Button{
			{{Text: buttonSplit, Payload: splitPayload}, {Text: buttonOwe, Payload: owePayload}},
			{buttonClose},
		},
	}
}

func (d *Dispatcher) record(ctx context.Context, userID int64, proposal domain.SharedExpenseProposal, mode domain.SplitMode) Reply {
	entries, err := d.shared.RecordSharedExpense(ctx, userID, proposal, mode)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			return Reply{Kind: ReplyAlert, Text: textInvalidButton}
		}
		return d.failure(ctx, err, Reply{Kind: ReplyAlert, Text: textSomethingWrong})
	}
	d.track(userID, EventSharedRecorded, map[string]any{"mode": string(mode), "entries": len(entries)})
	return markdown(ReplyEdit, d.render.Recorded(proposal, entries))
}

func (d *Dispatcher) history(ctx context.Context, userID int64, kind ReplyKind) Reply {
	entries, err := d.shared.ListSharedHistory(ctx, userID)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: kind, Text: textNoShared})
	}
	reply := markdown(kind, d.render.History(entries))
	reply.Buttons = [][]Button{{buttonSettleNow, buttonClose}}
	return reply
}

func (d *Dispatcher) balances(ctx context.Context, userID int64, kind ReplyKind) Reply {
	net, err := d.shared.CalculateBalances(ctx, userID)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: kind, Text: textNoBalances})
	}
	reply := markdown(kind, d.render.Balances(net))
	reply.Buttons = [][]Button{{buttonClearAll, buttonBack, buttonClose}}
	return reply
}

func (d *Dispatcher) clear(ctx context.Context, userID int64) Reply {
	removed, err := d.shared.ClearSharedExpenses(ctx, userID)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: ReplyAlert, Text: textSomethingWrong})
	}
	d.track(userID, EventSharedCleared, map[string]any{"removed": removed})
	return Reply{Kind: ReplyEdit, Text: textCleared}
}

func (d *Dispatcher) addExpense(ctx context.Context, cmd Command) Reply {
	expense, err := d.expenses.AddExpense(ctx, cmd.UserID, cmd.Args)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: ReplySend, Text: usageAdd})
	}
	d.track(cmd.UserID, EventExpenseAdded, map[string]any{"category": expense.Category})
	return markdown(ReplySend, d.render.Added(*expense))
}

func (d *Dispatcher) recent(ctx context.Context, userID int64, days int) Reply {
	d.track(userID, EventCommandReceived, map[string]any{"report_days": days})
	expenses, err := d.expenses.ListRecentExpenses(ctx, userID, days)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: ReplySend, Text: d.render.NoRecent(days)})
	}
	return markdown(ReplySend, d.render.Recent(expenses, days))
}

func (d *Dispatcher) monthly(ctx context.Context, userID int64) Reply {
	totals, err := d.expenses.MonthlyCategoryTotals(ctx, userID)
	if err != nil {
		return d.failure(ctx, err, Reply{Kind: ReplySend, Text: textNoMonthly})
	}
	return markdown(ReplySend, d.render.Monthly(totals))
}

// failure maps err to a user-facing reply. expected is used for malformed input
// and empty results; anything else is reported as a transient failure.
func (d *Dispatcher) failure(ctx context.Context, err error, expected Reply) Reply {
	logger := middleware.GetLoggerFromCtx(ctx)
	switch {
	case errors.Is(err, apperrors.ErrMalformedCommand), errors.Is(err, apperrors.ErrEmptyResult):
		logger.Debug("Command not fulfilled", slog.String("error", err.Error()))
		return expected
	default:
		logger.Error("Command failed", slog.String("error", err.Error()))
		kind := ReplySend
		if expected.Kind == ReplyAlert || expected.Kind == ReplyEdit {
			kind = ReplyAlert
		}
		return Reply{Kind: kind, Text: textSomethingWrong}
	}
}

func (d *Dispatcher) track(userID int64, event string, props map[string]any) {
	d.tracker.Enqueue(strconv.FormatInt(userID, 10), event, props)
}

func markdown(kind ReplyKind, text string) Reply {
	return Reply{Kind: kind, Text: text, Markdown: true}
}

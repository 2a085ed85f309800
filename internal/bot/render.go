package bot

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/expense_bot/internal/core/domain"
	"github.com/SscSPs/expense_bot/internal/utils"
)

const dateLayout = "2006-01-02"

const (
	usageShared = "❌ Usage: /shared <amount> <payer> <desc> <payee1> [<payee2>...]"
	usageAdd    = "❌ Usage: /add <amount> <category>"

	textChooseMode     = "How should this be split?"
	textCleared        = "✅ All your shared expenses cleared."
	textNoShared       = "No shared expenses found."
	textNoBalances     = "No balances to show."
	textNoMonthly      = "No expenses found for the current month."
	textInvalidButton  = "❌ This button is no longer valid."
	textSomethingWrong = "⚠️ Something went wrong, please try again."
)

const textStart = `*👋 Welcome to Expense Tracker Bot!*
📲 *Track & Share your Expenses Easily*

Here's what I can help you with:

💵 *Personal Expenses*
` + "`/add 150 lunch`" + ` - Quickly add your own spending

👥 *Shared Expenses*
` + "`/shared 600 jai dinner swaraj`" + ` - Split or owe with others

📈 *Smart Summaries*
• ` + "`/daily`" + ` - _Today's summary_
• ` + "`/weekly`" + ` - _Last 7 days_
• ` + "`/15days`" + ` - _Last 15 days_
• ` + "`/monthly`" + ` - _This month's report_

💰 *Settle Balances*
• ` + "`/settle`" + ` - _Who owes whom?_

📋 *Shared History*
• ` + "`/show`" + ` - _All shared entries_

🛠 *Help*
• ` + "`/help`" + ` - _All commands with examples_

_✨ Start tracking now and take control of your money!_`

const textHelp = `🤖 *Expense Tracker Help*

➕ /add <amount> <category>
👥 /shared <amount> <payer> <description> <payee1> [<payee2> ...]
📋 /show - View shared history
💰 /settle - View balances
📅 /daily - Show today's expenses
📈 /weekly - Last 7 days
🗓️ /15days - Last 15 days
📆 /monthly - This month
❓ /help - Show this help

Example: ` + "`/shared 100 jai lunch swaraj`" + `
Several payees: ` + "`/shared 90 jai lunch raj, swaraj`"

var (
	buttonSplit     = "➗ Split Equally"
	buttonOwe       = "💯 Full Owe"
	buttonSettleNow = Button{Text: "✅ Settle Now", Payload: TagSettleNow}
	buttonClearAll  = Button{Text: "🧹 Clear All", Payload: TagClearAll}
	buttonBack      = Button{Text: "↩️ Back", Payload: TagShowShared}
	buttonClose     = Button{Text: "❌ Close", Payload: TagClose}
)

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "`", "\\`", "[", "\\[")

// escapeMarkdown escapes user text for Telegram's legacy Markdown parse mode.
func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// Renderer formats domain values into chat text.
type Renderer struct {
	Currency string
}

// NewRenderer creates a renderer prefixing amounts with currency.
func NewRenderer(currency string) Renderer {
	return Renderer{Currency: currency}
}

// Money formats an amount with two decimals.
func (r Renderer) Money(d decimal.Decimal) string {
	return utils.FormatMoney(r.Currency, d)
}

func (r Renderer) Recorded(p domain.SharedExpenseProposal, entries []domain.SharedLedgerEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "✅ Recorded shared expense for *%s*:\n• Paid by *%s*\n", escapeMarkdown(p.Description), escapeMarkdown(p.Payer))
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		verb := "owes"
		if e.Split {
			verb = "split"
		}
		lines = append(lines, fmt.Sprintf("*%s* %s %s", escapeMarkdown(e.Payee), verb, r.Money(e.Amount)))
	}
	b.WriteString(strings.Join(lines, "\n"))
	return b.String()
}

// History lists entries in the order given.
func (r Renderer) History(entries []domain.SharedLedgerEntry) string {
	lines := []string{"*📋 Shared Expense History:*"}
	for _, e := range entries {
		verb := "owes for"
		if e.Split {
			verb = "split for"
		}
		lines = append(lines, fmt.Sprintf("• *%s* paid %s ➝ *%s* %s *%s* (`%s`)",
			escapeMarkdown(e.Payer), r.Money(e.Amount), escapeMarkdown(e.Payee), verb,
			escapeMarkdown(e.Description), e.CreatedAt.Format(dateLayout)))
	}
	return strings.Join(lines, "\n")
}

func (r Renderer) Balances(net domain.NetBalance) string {
	lines := []string{"*💰 Balance Summary:*"}
	for _, b := range net.Balances() {
		var state string
		switch {
		case b.Amount.IsPositive():
			state = "gets " + r.Money(b.Amount)
		case b.Amount.IsNegative():
			state = "owes " + r.Money(b.Amount.Abs())
		default:
			state = "settled"
		}
		lines = append(lines, fmt.Sprintf("*%s*: %s", escapeMarkdown(b.Person), state))
	}
	return strings.Join(lines, "\n")
}

func (r Renderer) Added(e domain.PersonalExpense) string {
	return fmt.Sprintf("✅ Added %s%s for *%s*", r.Currency, e.Amount.String(), escapeMarkdown(e.Category))
}

// Recent lists expenses oldest first followed by their total.
func (r Renderer) Recent(expenses []domain.PersonalExpense, days int) string {
	total := decimal.Zero
	lines := []string{"*Category-wise Expenses:*", "```"}
	for _, e := range expenses {
		total = total.Add(e.Amount)
		lines = append(lines, fmt.Sprintf("[%s] %-18s: %s", e.CreatedAt.Format(dateLayout), e.Category, r.Money(e.Amount)))
	}
	lines = append(lines, "", fmt.Sprintf("Total in last %d day(s): %s", days, r.Money(total)), "```")
	return strings.Join(lines, "\n")
}

func (r Renderer) NoRecent(days int) string {
	return fmt.Sprintf("No expenses found in last %d day(s).", days)
}

func (r Renderer) Monthly(totals []domain.CategoryTotal) string {
	total := decimal.Zero
	lines := []string{"*Category-wise Expenses for this month:*"}
	for _, t := range totals {
		total = total.Add(t.Total)
		lines = append(lines, fmt.Sprintf("`%-12s` : %s", t.Category, r.Money(t.Total)))
	}
	lines = append(lines, "", "*Total this month:* "+r.Money(total))
	return strings.Join(lines, "\n")
}

// Package bot turns chat commands and button presses into replies.
// It keeps no conversation state: everything a later step needs travels in button payloads.
package bot

import "strings"

// Command is a slash command typed by a user.
type Command struct {
	UserID int64
	ChatID int64
	Name   string // without the leading slash or @botname suffix
	Args   []string
}

// ButtonPress is a press on an inline button previously sent by the bot.
type ButtonPress struct {
	UserID     int64
	ChatID     int64
	MessageID  int
	CallbackID string
	Payload    string
}

// ReplyKind tells the transport how to deliver a Reply.
type ReplyKind string

const (
	ReplyNone   ReplyKind = ""
	ReplySend   ReplyKind = "send"
	ReplyEdit   ReplyKind = "edit"
	ReplyDelete ReplyKind = "delete"
	ReplyAlert  ReplyKind = "alert"
)

// Button is one inline keyboard button.
type Button struct {
	Text    string `json:"text"`
	Payload string `json:"callback_data"`
}

// Reply is the single message operation produced for an input.
type Reply struct {
	Kind     ReplyKind
	Text     string
	Markdown bool
	Buttons  [][]Button
}

// ParseCommand splits a message like "/shared@expense_bot 90 jai lunch raj" into a Command.
// ok is false for text that is not a command.
func ParseCommand(userID, chatID int64, text string) (Command, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 || !strings.HasPrefix(fields[0], "/") {
		return Command{}, false
	}
	name := strings.TrimPrefix(fields[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	if name == "" {
		return Command{}, false
	}
	return Command{
		UserID: userID,
		ChatID: chatID,
		Name:   strings.ToLower(name),
		Args:   fields[1:],
	}, true
}

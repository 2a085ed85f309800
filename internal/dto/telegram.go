package dto

// Update is the subset of a Telegram Bot API update the webhook understands.
type Update struct {
	UpdateID      int64          `json:"update_id"`
	Message       *Message       `json:"message,omitempty"`
	CallbackQuery *CallbackQuery `json:"callback_query,omitempty"`
}

// Message is an incoming chat message.
type Message struct {
	MessageID int           `json:"message_id"`
	From      *TelegramUser `json:"from,omitempty"`
	Chat      Chat          `json:"chat"`
	Text      string        `json:"text"`
}

// TelegramUser identifies the sender. Its ID is the ledger owner id.
type TelegramUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	Username  string `json:"username,omitempty"`
}

type Chat struct {
	ID   int64  `json:"id"`
	Type string `json:"type"`
}

// CallbackQuery is a press on an inline keyboard button.
type CallbackQuery struct {
	ID      string       `json:"id"`
	From    TelegramUser `json:"from"`
	Message *Message     `json:"message,omitempty"`
	Data    string       `json:"data"`
}

// InlineButton is one inline keyboard button.
type InlineButton struct {
	Text         string `json:"text"`
	CallbackData string `json:"callback_data"`
}

type InlineKeyboardMarkup struct {
	InlineKeyboard [][]InlineButton `json:"inline_keyboard"`
}

// Bot API methods a webhook response may carry.
const (
	MethodSendMessage         = "sendMessage"
	MethodEditMessageText     = "editMessageText"
	MethodDeleteMessage       = "deleteMessage"
	MethodAnswerCallbackQuery = "answerCallbackQuery"
)

// WebhookReply is a Bot API method call returned in the webhook response body.
type WebhookReply struct {
	Method          string                `json:"method"`
	ChatID          int64                 `json:"chat_id,omitempty"`
	MessageID       int                   `json:"message_id,omitempty"`
	Text            string                `json:"text,omitempty"`
	ParseMode       string                `json:"parse_mode,omitempty"`
	ReplyMarkup     *InlineKeyboardMarkup `json:"reply_markup,omitempty"`
	CallbackQueryID string                `json:"callback_query_id,omitempty"`
	ShowAlert       bool                  `json:"show_alert,omitempty"`
}

package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"

	"github.com/SscSPs/expense_bot/internal/bot"
	"github.com/SscSPs/expense_bot/internal/dto"
	"github.com/SscSPs/expense_bot/internal/middleware"
)

const (
	secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"
	textRateLimited   = "⏳ Too many requests. Please try again later."
)

// callbackAnswerer acknowledges a button press outside the webhook response.
type callbackAnswerer interface {
	AnswerCallback(callbackID string) error
}

// webhookHandler adapts Telegram webhook updates to the bot dispatcher.
type webhookHandler struct {
	dispatcher  *bot.Dispatcher
	secret      string
	userLimiter *limiter.Limiter
	answerer    callbackAnswerer
}

func newWebhookHandler(dispatcher *bot.Dispatcher, secret string, userLimiter *limiter.Limiter, answerer callbackAnswerer) *webhookHandler {
	return &webhookHandler{
		dispatcher:  dispatcher,
		secret:      secret,
		userLimiter: userLimiter,
		answerer:    answerer,
	}
}

// registerWebhookRoutes registers the Telegram webhook endpoint.
// answerer may be nil, in which case only alerts answer a button press.
func registerWebhookRoutes(r *gin.Engine, dispatcher *bot.Dispatcher, secret string, userLimiter *limiter.Limiter, answerer callbackAnswerer) {
	h := newWebhookHandler(dispatcher, secret, userLimiter, answerer)
	r.POST("/webhook/:secret", h.handleUpdate)
}

// handleUpdate answers one update with a Bot API method call in the response body.
// Processed updates always get 200 so Telegram does not redeliver them.
func (h *webhookHandler) handleUpdate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	if !h.authorized(c) {
		logger.Warn("Rejected webhook call with bad secret")
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	var update dto.Update
	if err := c.ShouldBindJSON(&update); err != nil {
		logger.Warn("Failed to bind webhook update", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid update"})
		return
	}
	logger = logger.With(slog.Int64("update_id", update.UpdateID))
	ctx := middleware.WithLogger(c.Request.Context(), logger)

	switch {
	case update.CallbackQuery != nil:
		q := update.CallbackQuery
		if q.Message == nil {
			c.Status(http.StatusOK)
			return
		}
		if !h.allow(c, q.From.ID) {
			c.JSON(http.StatusOK, dto.WebhookReply{
				Method: dto.MethodAnswerCallbackQuery, CallbackQueryID: q.ID, Text: textRateLimited, ShowAlert: true,
			})
			return
		}
		press := bot.ButtonPress{
			UserID:     q.From.ID,
			ChatID:     q.Message.Chat.ID,
			MessageID:  q.Message.MessageID,
			CallbackID: q.ID,
			Payload:    q.Data,
		}
		reply := h.dispatcher.HandleButton(ctx, press)
		if reply.Kind != bot.ReplyAlert {
			h.answerAsync(logger, press.CallbackID)
		}
		h.respond(c, reply, press.ChatID, press.MessageID, press.CallbackID)

	case update.Message != nil:
		msg := update.Message
		userID := msg.Chat.ID
		if msg.From != nil {
			userID = msg.From.ID
		}
		cmd, ok := bot.ParseCommand(userID, msg.Chat.ID, msg.Text)
		if !ok {
			c.Status(http.StatusOK)
			return
		}
		if !h.allow(c, userID) {
			c.JSON(http.StatusOK, dto.WebhookReply{Method: dto.MethodSendMessage, ChatID: msg.Chat.ID, Text: textRateLimited})
			return
		}
		h.respond(c, h.dispatcher.HandleCommand(ctx, cmd), msg.Chat.ID, msg.MessageID, "")

	default:
		c.Status(http.StatusOK)
	}
}

func (h *webhookHandler) authorized(c *gin.Context) bool {
	if h.secret == "" {
		return false
	}
	if subtle.ConstantTimeCompare([]byte(c.Param("secret")), []byte(h.secret)) != 1 {
		return false
	}
	if header := c.GetHeader(secretTokenHeader); header != "" {
		return subtle.ConstantTimeCompare([]byte(header), []byte(h.secret)) == 1
	}
	return true
}

// allow applies the per chat user rate limit. Limiter failures let the update through.
func (h *webhookHandler) allow(c *gin.Context, userID int64) bool {
	if h.userLimiter == nil {
		return true
	}
	key := "tg:" + strconv.FormatInt(userID, 10)
	limit, err := h.userLimiter.Get(c.Request.Context(), key)
	if err != nil {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Failed to get rate limit context", slog.String("error", err.Error()))
		return true
	}
	if limit.Reached {
		middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Chat user rate limit exceeded", slog.Int64("user_id", userID), slog.Int64("limit", limit.Limit))
		return false
	}
	return true
}

// answerAsync acknowledges a press whose webhook reply is an edit or delete.
// The response body carries one method only, so the ack goes out separately.
func (h *webhookHandler) answerAsync(logger *slog.Logger, callbackID string) {
	if h.answerer == nil {
		return
	}
	go func() {
		if err := h.answerer.AnswerCallback(callbackID); err != nil {
			logger.Warn("Failed to answer callback query", slog.String("callback_id", callbackID), slog.String("error", err.Error()))
		}
	}()
}

func (h *webhookHandler) respond(c *gin.Context, reply bot.Reply, chatID int64, messageID int, callbackID string) {
	if reply.Kind == bot.ReplyNone {
		c.Status(http.StatusOK)
		return
	}
	c.JSON(http.StatusOK, toWebhookReply(reply, chatID, messageID, callbackID))
}

// toWebhookReply maps a bot reply onto the Bot API method that delivers it.
func toWebhookReply(reply bot.Reply, chatID int64, messageID int, callbackID string) dto.WebhookReply {
	out := dto.WebhookReply{ChatID: chatID, Text: reply.Text}
	if reply.Markdown {
		out.ParseMode = "Markdown"
	}
	if len(reply.Buttons) > 0 {
		markup := &dto.InlineKeyboardMarkup{InlineKeyboard: make([][]dto.InlineButton, len(reply.Buttons))}
		for i, row := range reply.Buttons {
			markup.InlineKeyboard[i] = make([]dto.InlineButton, len(row))
			for j, b := range row {
				markup.InlineKeyboard[i][j] = dto.InlineButton{Text: b.Text, CallbackData: b.Payload}
			}
		}
		out.ReplyMarkup = markup
	}

	switch reply.Kind {
	case bot.ReplyEdit:
		out.Method = dto.MethodEditMessageText
		out.MessageID = messageID
	case bot.ReplyDelete:
		out = dto.WebhookReply{Method: dto.MethodDeleteMessage, ChatID: chatID, MessageID: messageID}
	case bot.ReplyAlert:
		out = dto.WebhookReply{Method: dto.MethodAnswerCallbackQuery, CallbackQueryID: callbackID, Text: reply.Text, ShowAlert: true}
	default:
		out.Method = dto.MethodSendMessage
	}
	return out
}

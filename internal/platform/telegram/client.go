// Package telegram sends the Bot API calls that cannot ride on a webhook response.
package telegram

import (
	"fmt"
	"net/http"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const defaultTimeout = 5 * time.Second

// Client wraps a BotAPI without the getMe round trip NewBotAPI performs on startup.
type Client struct {
	api *tgbotapi.BotAPI
}

// NewClient creates a client for token. An empty endpoint selects the public Bot API;
// otherwise it must be a format string with two %s verbs for token and method.
func NewClient(token, endpoint string) *Client {
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	api := &tgbotapi.BotAPI{
		Token:  token,
		Buffer: 100,
		Client: &http.Client{Timeout: defaultTimeout},
	}
	api.SetAPIEndpoint(endpoint)
	return &Client{api: api}
}

// AnswerCallback acknowledges a button press so the client stops its loading indicator.
func (c *Client) AnswerCallback(callbackID string) error {
	if _, err := c.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		return fmt.Errorf("answerCallbackQuery: %w", err)
	}
	return nil
}

// Package notifier delivers alert messages to chat destinations.
// Delivery is best-effort: callers log failures and move on.
package notifier

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Notifier defines the chat delivery interface
//
//go:generate mockgen -source=notifier.go -destination=../mocks/notifier.go -package=mocks -mock_names=Notifier=MockNotifier,MessageSender=MockMessageSender
type Notifier interface {
	// Send delivers a text message to a chat destination
	Send(ctx context.Context, chatID int64, text string) error
}

// MessageSender is the subset of the Telegram bot client the notifier uses
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram delivers messages through the Telegram bot API
type Telegram struct {
	sender MessageSender
}

// NewTelegram creates a Telegram notifier on top of a bot client
func NewTelegram(sender MessageSender) *Telegram {
	return &Telegram{sender: sender}
}

// Send delivers a text message to a Telegram chat
func (t *Telegram) Send(ctx context.Context, chatID int64, text string) error {
	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

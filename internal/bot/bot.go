// Package bot implements the Telegram command surface for managing
// monitored addresses.
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/blockpulse/whale-sentry/internal/domain"
	"github.com/blockpulse/whale-sentry/internal/logger"
	"github.com/blockpulse/whale-sentry/internal/registry"
)

const helpText = `🐋 <b>Whale Sentry</b>

Monitors wallet addresses and alerts on incoming token transfers.

/watch &lt;address&gt; [threshold_usd] — start monitoring an address
/unwatch &lt;address&gt; — stop monitoring an address
/list — show your monitored addresses
/threshold &lt;address&gt; &lt;usd&gt; — change the trade trigger threshold
/help — show this message`

// Service handles Telegram bot commands
type Service struct {
	bot      *bot.Bot
	registry *registry.Registry
}

// New creates the bot service and registers its command handlers
func New(token string, reg *registry.Registry) (*Service, error) {
	s := &Service{registry: reg}

	b, err := bot.New(token, bot.WithDefaultHandler(s.handleDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	s.bot = b

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypePrefix, s.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypePrefix, s.handleHelp)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/watch", bot.MatchTypePrefix, s.handleWatch)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/unwatch", bot.MatchTypePrefix, s.handleUnwatch)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/list", bot.MatchTypePrefix, s.handleList)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/threshold", bot.MatchTypePrefix, s.handleThreshold)

	return s, nil
}

// Bot returns the underlying Telegram client, shared with the notifier
func (s *Service) Bot() *bot.Bot {
	return s.bot
}

// Run starts long polling for updates; blocks until the context is cancelled
func (s *Service) Run(ctx context.Context) {
	logger.Info("starting telegram bot")
	s.bot.Start(ctx)
}

func (s *Service) handleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || !strings.HasPrefix(update.Message.Text, "/") {
		return
	}
	s.reply(ctx, update, "Unknown command. Use /help to see what I can do.")
}

func (s *Service) handleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	s.reply(ctx, update, helpText)
}

// handleWatch registers an address: /watch <address> [threshold_usd]
func (s *Service) handleWatch(ctx context.Context, b *bot.Bot, update *models.Update) {
	args := commandArgs(update)
	if len(args) < 1 {
		s.reply(ctx, update, "Usage: /watch <address> [threshold_usd]")
		return
	}

	threshold := decimal.Zero
	if len(args) > 1 {
		parsed, err := decimal.NewFromString(args[1])
		if err != nil || !parsed.IsPositive() {
			s.reply(ctx, update, "Threshold must be a positive number.")
			return
		}
		threshold = parsed
	}

	record, err := s.registry.Watch(ctx, args[0], update.Message.Chat.ID, threshold)
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		s.reply(ctx, update, "That doesn't look like a valid address.")
	case errors.Is(err, domain.ErrAddressExists):
		s.reply(ctx, update, "That address is already being monitored.")
	case err != nil:
		logger.ErrorCtx(ctx, errors.New("watch command failed"), zap.Error(err))
		s.reply(ctx, update, "Something went wrong, please try again.")
	default:
		s.reply(ctx, update, fmt.Sprintf(
			"👀 Watching <code>%s</code>\nTrade trigger threshold: $%s",
			record.Address, record.ThresholdUSD.StringFixed(2)))
	}
}

// handleUnwatch removes an address: /unwatch <address>
func (s *Service) handleUnwatch(ctx context.Context, b *bot.Bot, update *models.Update) {
	args := commandArgs(update)
	if len(args) < 1 {
		s.reply(ctx, update, "Usage: /unwatch <address>")
		return
	}

	err := s.registry.Unwatch(ctx, args[0], update.Message.Chat.ID)
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		s.reply(ctx, update, "That doesn't look like a valid address.")
	case errors.Is(err, domain.ErrAddressNotFound):
		s.reply(ctx, update, "That address is not being monitored.")
	case err != nil:
		logger.ErrorCtx(ctx, errors.New("unwatch command failed"), zap.Error(err))
		s.reply(ctx, update, "Something went wrong, please try again.")
	default:
		s.reply(ctx, update, fmt.Sprintf("Stopped watching <code>%s</code>", domain.NormalizeAddress(args[0])))
	}
}

// handleList shows the chat's monitored addresses: /list
func (s *Service) handleList(ctx context.Context, b *bot.Bot, update *models.Update) {
	records, err := s.registry.List(ctx, update.Message.Chat.ID)
	if err != nil {
		logger.ErrorCtx(ctx, errors.New("list command failed"), zap.Error(err))
		s.reply(ctx, update, "Something went wrong, please try again.")
		return
	}

	if len(records) == 0 {
		s.reply(ctx, update, "No addresses monitored yet. Use /watch <address> to add one.")
		return
	}

	var sb strings.Builder
	sb.WriteString("<b>Monitored addresses</b>\n")
	for _, r := range records {
		fmt.Fprintf(&sb, "\n<code>%s</code>\nthreshold $%s", r.Address, r.ThresholdUSD.StringFixed(2))
		if !r.Active {
			sb.WriteString(" (paused)")
		}
		sb.WriteString("\n")
	}
	s.reply(ctx, update, sb.String())
}

// handleThreshold updates the trigger threshold: /threshold <address> <usd>
func (s *Service) handleThreshold(ctx context.Context, b *bot.Bot, update *models.Update) {
	args := commandArgs(update)
	if len(args) < 2 {
		s.reply(ctx, update, "Usage: /threshold <address> <usd>")
		return
	}

	threshold, err := decimal.NewFromString(args[1])
	if err != nil || !threshold.IsPositive() {
		s.reply(ctx, update, "Threshold must be a positive number.")
		return
	}

	err = s.registry.SetThreshold(ctx, args[0], update.Message.Chat.ID, threshold)
	switch {
	case errors.Is(err, domain.ErrInvalidAddress):
		s.reply(ctx, update, "That doesn't look like a valid address.")
	case errors.Is(err, domain.ErrAddressNotFound):
		s.reply(ctx, update, "That address is not being monitored.")
	case err != nil:
		logger.ErrorCtx(ctx, errors.New("threshold command failed"), zap.Error(err))
		s.reply(ctx, update, "Something went wrong, please try again.")
	default:
		s.reply(ctx, update, fmt.Sprintf(
			"Threshold for <code>%s</code> set to $%s",
			domain.NormalizeAddress(args[0]), threshold.StringFixed(2)))
	}
}

// reply sends a response to the chat the update came from
func (s *Service) reply(ctx context.Context, update *models.Update, text string) {
	if update.Message == nil {
		return
	}
	_, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    update.Message.Chat.ID,
		Text:      text,
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		logger.ErrorCtx(ctx, errors.New("failed to send bot reply"),
			zap.Int64("chatID", update.Message.Chat.ID),
			zap.Error(err))
	}
}

// commandArgs splits a command message into its arguments, excluding the
// command itself
func commandArgs(update *models.Update) []string {
	if update.Message == nil {
		return nil
	}
	fields := strings.Fields(update.Message.Text)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

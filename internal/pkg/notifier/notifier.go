// Package notifier delivers operational alerts (low stock, ledger drift) to
// the people running the branches.
package notifier

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Notifier sends a plain-text alert.
type Notifier interface {
	Notify(ctx context.Context, message string) error
}

// sender is the part of *tgbotapi.BotAPI the notifier uses.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type Telegram struct {
	bot    sender
	chatID int64
}

// NewTelegram connects to the bot API with token. It fails when the token is
// rejected.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to connect telegram bot: %w", err)
	}
	slog.Info("telegram notifier ready", "bot", bot.Self.UserName, "chat_id", chatID)
	return &Telegram{bot: bot, chatID: chatID}, nil
}

func (t *Telegram) Notify(ctx context.Context, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := tgbotapi.NewMessage(t.chatID, message)
	msg.DisableWebPagePreview = true
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

// Log writes alerts to the application log. It is used when no bot is
// configured.
type Log struct{}

func (Log) Notify(ctx context.Context, message string) error {
	slog.WarnContext(ctx, "alert", "message", message)
	return nil
}

// New returns a Telegram notifier when token and chatID are set and the bot
// is reachable, and the log notifier otherwise.
func New(token string, chatID int64) Notifier {
	if token == "" || chatID == 0 {
		return Log{}
	}
	t, err := NewTelegram(token, chatID)
	if err != nil {
		slog.Warn("telegram unavailable, alerts go to the log", "error", err)
		return Log{}
	}
	return t
}

// Package notifier sends operational notices to a Telegram chat. It is
// optional: with no token configured every call is a no-op.
package notifier

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"storeapi/internal/config"
)

// Notifier delivers short admin notices. A nil *TelegramNotifier is a valid
// disabled notifier.
type Notifier interface {
	Notify(text string)
}

type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramNotifier creates a notifier from config. Returns (nil, nil)
// when the notifier is disabled or no token is set.
func NewTelegramNotifier(cfg *config.Config, logger *zap.Logger) (*TelegramNotifier, error) {
	if !cfg.Notifier.Enabled || cfg.Notifier.TelegramBotToken == "" {
		logger.Info("Telegram notifier is disabled")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(cfg.Notifier.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram notifier authorized", zap.String("username", botAPI.Self.UserName))

	return &TelegramNotifier{api: botAPI, chatID: cfg.Notifier.ChatID, logger: logger}, nil
}

// Notify sends the text to the configured chat. Delivery failures are
// logged and swallowed; a notification must never fail an API request.
func (n *TelegramNotifier) Notify(text string) {
	if n == nil {
		return
	}

	go func() {
		msg := tgbotapi.NewMessage(n.chatID, text)
		if _, err := n.api.Send(msg); err != nil {
			n.logger.Warn("Failed to send Telegram notification", zap.Error(err))
		}
	}()
}

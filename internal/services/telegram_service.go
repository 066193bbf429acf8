package services

import (
	"context"
	"fmt"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"walkaway/internal/models"
)

type tgSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier posts a plain-text lead summary to the operator's chat.
type TelegramNotifier struct {
	bot    tgSender
	chatID int64
}

// NewTelegramNotifier connects to the Bot API. With an empty token or zero
// chat id it returns a notifier that skips every lead.
func NewTelegramNotifier(token string, chatID int64, client *http.Client) (*TelegramNotifier, error) {
	if token == "" || chatID == 0 {
		return &TelegramNotifier{}, nil
	}
	if client == nil {
		client = http.DefaultClient
	}
	bot, err := tgbotapi.NewBotAPIWithClient(token, tgbotapi.APIEndpoint, client)
	if err != nil {
		return &TelegramNotifier{}, fmt.Errorf("telegram bot init: %w", err)
	}
	return &TelegramNotifier{bot: bot, chatID: chatID}, nil
}

func (n *TelegramNotifier) Name() string { return "telegram" }

func (n *TelegramNotifier) Notify(ctx context.Context, lead models.LeadRecord) error {
	if n.bot == nil || n.chatID == 0 {
		return fmt.Errorf("%w: telegram token or chat id not set", ErrChannelSkipped)
	}
	msg := tgbotapi.NewMessage(n.chatID, operatorSummary(lead))
	msg.DisableWebPagePreview = true
	return sendWithContext(ctx, func() error {
		if _, err := n.bot.Send(msg); err != nil {
			return fmt.Errorf("telegram sendMessage failed: %w", err)
		}
		return nil
	})
}

package notifier

import (
	"context"
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"wellbot/internal/models"
)

// TelegramTransport delivers alerts to a counselor's Telegram chat.
// The bot also answers /start and /help so counselors can discover the
// chat ID to configure.
type TelegramTransport struct {
	api    *tgbotapi.BotAPI
	chatID int64
	logger *zap.Logger
}

// NewTelegramTransport returns nil, nil when no token is configured:
// the telegram channel is optional and its absence is not an error.
func NewTelegramTransport(token string, chatID int64, logger *zap.Logger) (*TelegramTransport, error) {
	if token == "" || chatID == 0 {
		logger.Info("Telegram alerts disabled (token or chat ID not configured)")
		return nil, nil
	}

	botAPI, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot API: %w", err)
	}

	logger.Info("Telegram alert bot authorized", zap.String("username", botAPI.Self.UserName))

	return &TelegramTransport{
		api:    botAPI,
		chatID: chatID,
		logger: logger,
	}, nil
}

func (t *TelegramTransport) Name() string {
	return "telegram"
}

func (t *TelegramTransport) Recipient() string {
	return strconv.FormatInt(t.chatID, 10)
}

func (t *TelegramTransport) Send(record models.AlertRecord) error {
	msg := tgbotapi.NewMessage(t.chatID, "🚨 "+alertBody(record))
	if _, err := t.api.Send(msg); err != nil {
		return fmt.Errorf("failed to send Telegram alert: %w", err)
	}
	return nil
}

// Start begins listening for bot commands. It blocks until the context is
// cancelled and is safe to call on a nil transport.
func (t *TelegramTransport) Start(ctx context.Context) error {
	if t == nil {
		return nil
	}

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.api.GetUpdatesChan(u)

	t.logger.Info("Telegram alert bot started, waiting for updates...")

	for {
		select {
		case <-ctx.Done():
			t.logger.Info("Telegram alert bot shutting down...")
			t.api.StopReceivingUpdates()
			return nil
		case update := <-updates:
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			t.handleCommand(update.Message)
		}
	}
}

func (t *TelegramTransport) handleCommand(message *tgbotapi.Message) {
	switch message.Command() {
	case "start":
		t.reply(message.Chat.ID, fmt.Sprintf(
			"WellBot crisis alert bot.\nThis chat ID is %d - set it as alerts.telegram.chat_id to receive crisis alerts here.",
			message.Chat.ID))
	case "help":
		t.reply(message.Chat.ID,
			"This bot forwards crisis alerts from the WellBot chat service.\n/start - show this chat's ID\n/help - this message")
	}
}

func (t *TelegramTransport) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := t.api.Send(msg); err != nil {
		t.logger.Error("Failed to send Telegram reply", zap.Error(err))
	}
}

// Package notify отправляет служебные уведомления админам в Telegram.
package notify

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"vaultory_backend/internal/config"
	"vaultory_backend/internal/model"
)

type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramNotifier(cfg config.TelegramConfig) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken())
	if err != nil {
		return nil, fmt.Errorf("telegram bot init: %w", err)
	}

	return &TelegramNotifier{
		api:    api,
		chatID: cfg.AdminChatID(),
	}, nil
}

// NotifyWithdrawal отправляет админам сообщение о новой заявке на вывод
func (n *TelegramNotifier) NotifyWithdrawal(_ context.Context, req *model.WithdrawalRequest, item *model.InventoryItem) error {
	text := fmt.Sprintf(
		"Новая заявка на вывод #%d\nПредмет: %s (%s)\nПользователь: %d\nКонтакт: %s",
		req.ID, item.Name, item.Rarity, req.UserID, req.Contact,
	)

	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		log.WithError(err).WithField("request_id", req.ID).Error("Ошибка отправки сообщения")
		return err
	}

	return nil
}

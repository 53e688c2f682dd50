package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// TelegramSender адаптер доставки сообщений поверх go-telegram/bot,
// реализует service.MessageSender
type TelegramSender struct {
	bot    *bot.Bot
	logger *zap.Logger
}

func NewTelegramSender(botInstance *bot.Bot, logger *zap.Logger) *TelegramSender {
	return &TelegramSender{bot: botInstance, logger: logger}
}

// Send отправляет текст в чат и возвращает id сообщения
func (s *TelegramSender) Send(ctx context.Context, chatID int64, text string) (int, error) {
	msg, err := s.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		return 0, err
	}
	return msg.ID, nil
}

// Delete удаляет сообщение, лучшая попытка
func (s *TelegramSender) Delete(ctx context.Context, chatID int64, messageID int) error {
	_, err := s.bot.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	return err
}

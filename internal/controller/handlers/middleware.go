package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// notStartedText ответ на команды расписания до начала семестра
const notStartedText = "📅 Учебный семестр ещё не начался.\nПока занятий нет 😌"

// requireAdmin проверяет что команду прислал администратор
func (h *Handlers) requireAdmin(ctx context.Context, b *bot.Bot, update *models.Update) bool {
	if update.Message == nil || update.Message.From == nil {
		return false
	}

	if !h.cfg.IsAdmin(update.Message.From.ID) {
		h.sendText(ctx, b, update.Message.Chat.ID, "❌ Эта команда доступна только администраторам.")
		return false
	}

	return true
}

// sendText отправляет текст и логирует неудачу
func (h *Handlers) sendText(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// sendError отправляет стандартное сообщение об ошибке
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64) {
	h.sendText(ctx, b, chatID, "❌ Произошла ошибка. Попробуйте позже.")
}

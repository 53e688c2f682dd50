package service

import (
	"context"

	"github.com/mxt223/schedule_bot/internal/formatting"
	"github.com/mxt223/schedule_bot/internal/model"
	"go.uber.org/zap"
)

// PreferenceStore настройки напоминаний по чатам
// (реализуется repository.PreferenceRepository)
type PreferenceStore interface {
	IsEnabled(ctx context.Context, chatID int64) (bool, error)
	SetEnabled(ctx context.Context, chatID int64, enabled bool) error
}

// MessageSender канал доставки сообщений (телеграм-адаптер в controller)
type MessageSender interface {
	Send(ctx context.Context, chatID int64, text string) (messageID int, err error)
	Delete(ctx context.Context, chatID int64, messageID int) error
}

// Dispatcher доставляет сработавшее напоминание в предметный чат и в чат
// расписания. Настройки читаются в момент отправки, не из кэша.
type Dispatcher struct {
	prefs          PreferenceStore
	sender         MessageSender
	scheduleChatID int64
	logger         *zap.Logger
}

func NewDispatcher(prefs PreferenceStore, sender MessageSender, scheduleChatID int64, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		prefs:          prefs,
		sender:         sender,
		scheduleChatID: scheduleChatID,
		logger:         logger,
	}
}

// DispatchReminder отправляет напоминание о паре за minutes минут до начала.
// Если предметный чат совпадает с чатом расписания, сообщение уходит один раз.
// Ошибки доставки логируются и не повторяются: напоминание считается
// израсходованным в любом случае.
func (d *Dispatcher) DispatchReminder(ctx context.Context, lesson *model.Lesson, minutes int) {
	subjectEnabled := d.enabled(ctx, lesson.ChatID)
	scheduleEnabled := d.enabled(ctx, d.scheduleChatID)

	if !subjectEnabled && !scheduleEnabled {
		return
	}

	text := formatting.FormatReminder(lesson, minutes)

	if subjectEnabled {
		d.send(ctx, lesson.ChatID, text)
	}

	if lesson.ChatID != d.scheduleChatID && scheduleEnabled {
		d.send(ctx, d.scheduleChatID, text)
	}
}

// enabled читает актуальную настройку чата.
// Ошибка чтения трактуется как "включено": лучше лишнее напоминание,
// чем молча пропущенная пара.
func (d *Dispatcher) enabled(ctx context.Context, chatID int64) bool {
	enabled, err := d.prefs.IsEnabled(ctx, chatID)
	if err != nil {
		d.logger.Warn("Failed to read reminder setting, assuming enabled",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
		return true
	}
	return enabled
}

func (d *Dispatcher) send(ctx context.Context, chatID int64, text string) {
	if _, err := d.sender.Send(ctx, chatID, text); err != nil {
		d.logger.Error("Failed to send reminder",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

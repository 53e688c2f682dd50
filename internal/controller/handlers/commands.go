package handlers

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mxt223/schedule_bot/internal/chart"
	"github.com/mxt223/schedule_bot/internal/formatting"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	text := "Привет 👋\n" +
		"Я бот расписания группы МХТ-223.\n\n" +
		"Доступные команды:\n" +
		"/today - Расписание на сегодня\n" +
		"/tomorrow - Расписание на завтра\n" +
		"/next - Следующая пара\n" +
		"/week - Расписание на неделю\n" +
		"/analytics - Нагрузка на неделю\n" +
		"/help - Справка"

	h.sendText(ctx, b, update.Message.Chat.ID, text)
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка по командам:\n\n" +
		"/today - Расписание на сегодня\n" +
		"/tomorrow - Расписание на завтра\n" +
		"/next - Следующая пара сегодня\n" +
		"/week [номер] - Расписание недели (по умолчанию текущей)\n" +
		"/analytics - Нагрузка на текущую неделю\n" +
		"/status - Статус бота\n" +
		"/enable - Включить напоминания в этом чате\n" +
		"/disable - Отключить напоминания в этом чате\n\n" +
		"Для администраторов:\n" +
		"/lessons - Все занятия каталога\n" +
		"/addlesson - Добавить занятие\n" +
		"/editlesson - Изменить занятие\n" +
		"/dellesson - Удалить занятие\n" +
		"/rebuild - Пересобрать напоминания"

	h.sendText(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleToday обрабатывает команду /today
func (h *Handlers) HandleToday(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if !h.schedule.SemesterStarted() {
		h.sendText(ctx, b, update.Message.Chat.ID, notStartedText)
		return
	}

	lessons, err := h.schedule.TodayLessons(ctx)
	if err != nil {
		h.logger.Error("Failed to load today schedule", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID)
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID, formatting.FormatTodaySchedule(lessons, h.schedule.PairStartTime))
}

// HandleTomorrow обрабатывает команду /tomorrow
func (h *Handlers) HandleTomorrow(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if !h.schedule.SemesterStarted() {
		h.sendText(ctx, b, update.Message.Chat.ID, notStartedText)
		return
	}

	lessons, err := h.schedule.TomorrowLessons(ctx)
	if err != nil {
		h.logger.Error("Failed to load tomorrow schedule", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID)
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID, formatting.FormatTomorrowSchedule(lessons, h.schedule.PairStartTime))
}

// HandleNext обрабатывает команду /next — ближайшая пара сегодня
func (h *Handlers) HandleNext(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	if !h.schedule.SemesterStarted() {
		h.sendText(ctx, b, update.Message.Chat.ID, notStartedText)
		return
	}

	lesson, err := h.schedule.NextLesson(ctx)
	if err != nil {
		h.logger.Error("Failed to find next lesson", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID)
		return
	}

	if lesson == nil {
		h.sendText(ctx, b, update.Message.Chat.ID, "✅ На сегодня пары закончились 🎉")
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID,
		"⏭ Следующая пара:\n\n"+formatting.FormatLessonLine(lesson, h.schedule.PairStartTime))
}

// HandleWeek обрабатывает команду /week [номер недели]
func (h *Handlers) HandleWeek(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	week := h.schedule.CurrentWeek()
	args := strings.Fields(update.Message.Text)
	if len(args) > 1 {
		parsed, err := strconv.Atoi(args[1])
		if err != nil {
			h.sendText(ctx, b, update.Message.Chat.ID, "❌ Номер недели должен быть числом: /week 6")
			return
		}
		week = parsed
	}

	days, err := h.schedule.WeekLessons(ctx, week)
	if err != nil {
		h.logger.Error("Failed to load week schedule", zap.Int("week", week), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID)
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID, formatting.FormatWeekSchedule(week, days, h.schedule.PairStartTime))
}

// HandleAnalytics обрабатывает команду /analytics — текстовая сводка и диаграмма
func (h *Handlers) HandleAnalytics(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	load, err := h.analytics.CurrentWeekLoad(ctx)
	if err != nil {
		h.logger.Error("Failed to compute week load", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID)
		return
	}

	h.sendText(ctx, b, update.Message.Chat.ID, formatting.FormatWeekLoad(load))

	imageData, err := chart.RenderWorkload(load)
	if err != nil {
		h.logger.Error("Failed to render workload chart", zap.Error(err))
		return
	}

	_, err = b.SendPhoto(ctx, &bot.SendPhotoParams{
		ChatID: update.Message.Chat.ID,
		Photo:  &models.InputFileUpload{Filename: "workload.png", Data: bytes.NewReader(imageData)},
	})
	if err != nil {
		h.logger.Error("Failed to send workload chart", zap.Error(err))
	}
}

// HandleStatus обрабатывает команду /status
func (h *Handlers) HandleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	started := "❌"
	if h.schedule.SemesterStarted() {
		started = "✅"
	}

	text := fmt.Sprintf(
		"🤖 Статус бота\n\n"+
			"📅 Сегодня: %s\n"+
			"🗓 Учебная неделя: %d\n"+
			"🎓 Семестр начался: %s\n"+
			"⏰ Ожидающих напоминаний: %d",
		h.schedule.Today().Format("2006-01-02"),
		h.schedule.CurrentWeek(),
		started,
		h.reminders.PendingCount(),
	)

	h.sendText(ctx, b, update.Message.Chat.ID, text)
}

// HandleEnable обрабатывает команду /enable — включить напоминания в чате
func (h *Handlers) HandleEnable(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setReminders(ctx, b, update, true, "🔔 Напоминания включены для этого чата ✅")
}

// HandleDisable обрабатывает команду /disable — отключить напоминания в чате
func (h *Handlers) HandleDisable(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.setReminders(ctx, b, update, false, "🔕 Напоминания отключены для этого чата ❌")
}

func (h *Handlers) setReminders(ctx context.Context, b *bot.Bot, update *models.Update, enabled bool, reply string) {
	if update.Message == nil {
		return
	}

	chatID := update.Message.Chat.ID
	if err := h.prefs.SetEnabled(ctx, chatID, enabled); err != nil {
		h.logger.Error("Failed to update reminder setting",
			zap.Int64("chat_id", chatID),
			zap.Bool("enabled", enabled),
			zap.Error(err))
		h.sendError(ctx, b, chatID)
		return
	}

	h.sendText(ctx, b, chatID, reply)
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mxt223/schedule_bot/internal/formatting"
	"github.com/mxt223/schedule_bot/internal/model"
	"go.uber.org/zap"
)

const addLessonUsage = "Формат:\n/addlesson день|пара|тип|недели|chat_id|предмет|аудитория|преподаватель\n\n" +
	"Пример:\n/addlesson monday|1|lecture|4-8|-1001234567890|Стратегический менеджмент|ауд. 101|Иванова А.А.\n\n" +
	"Недели: диапазон 4-8 или перечисление 4,6,8"

const editLessonUsage = "Формат:\n/editlesson id поле=значение;поле=значение\n\n" +
	"Поля: day, pair, subject, type, weeks, room, teacher, chat\n" +
	"Пример:\n/editlesson 12 room=ауд. 202;weeks=10-15"

// HandleAddLesson обрабатывает команду /addlesson
func (h *Handlers) HandleAddLesson(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/addlesson"))
	if args == "" {
		h.sendText(ctx, b, chatID, addLessonUsage)
		return
	}

	lesson, err := parseLessonArgs(args)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ "+err.Error()+"\n\n"+addLessonUsage)
		return
	}

	id, err := h.schedule.AddLesson(ctx, lesson)
	if err != nil {
		var validationErr *model.ValidationError
		if errors.As(err, &validationErr) {
			h.sendText(ctx, b, chatID, "❌ "+validationErr.Error())
			return
		}
		h.logger.Error("Failed to add lesson", zap.Error(err))
		h.sendError(ctx, b, chatID)
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Занятие добавлено, id %d.\nНапоминания обновятся при ближайшем пересборе или по /rebuild.", id))
}

// HandleEditLesson обрабатывает команду /editlesson
func (h *Handlers) HandleEditLesson(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/editlesson"))
	idStr, fields, ok := strings.Cut(args, " ")
	if !ok {
		h.sendText(ctx, b, chatID, editLessonUsage)
		return
	}

	id, err := strconv.ParseInt(strings.TrimSpace(idStr), 10, 64)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ id должен быть числом.\n\n"+editLessonUsage)
		return
	}

	patch, err := parseLessonPatch(fields)
	if err != nil {
		h.sendText(ctx, b, chatID, "❌ "+err.Error()+"\n\n"+editLessonUsage)
		return
	}

	updated, err := h.schedule.UpdateLesson(ctx, id, patch)
	if err != nil {
		h.logger.Error("Failed to update lesson", zap.Int64("lesson_id", id), zap.Error(err))
		h.sendError(ctx, b, chatID)
		return
	}

	if !updated {
		h.sendText(ctx, b, chatID, fmt.Sprintf("❌ Занятие %d не найдено (или нет изменённых полей).", id))
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("✅ Занятие %d обновлено.", id))
}

// HandleDeleteLesson обрабатывает команду /dellesson
func (h *Handlers) HandleDeleteLesson(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	args := strings.TrimSpace(strings.TrimPrefix(update.Message.Text, "/dellesson"))
	id, err := strconv.ParseInt(args, 10, 64)
	if err != nil {
		h.sendText(ctx, b, chatID, "Формат: /dellesson id")
		return
	}

	deleted, err := h.schedule.DeleteLesson(ctx, id)
	if err != nil {
		h.logger.Error("Failed to delete lesson", zap.Int64("lesson_id", id), zap.Error(err))
		h.sendError(ctx, b, chatID)
		return
	}

	if !deleted {
		h.sendText(ctx, b, chatID, fmt.Sprintf("❌ Занятие %d не найдено.", id))
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("🗑 Занятие %d удалено.", id))
}

// HandleListLessons обрабатывает команду /lessons — весь каталог с id
func (h *Handlers) HandleListLessons(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	lessons, err := h.schedule.AllLessons(ctx)
	if err != nil {
		h.logger.Error("Failed to list lessons", zap.Error(err))
		h.sendError(ctx, b, chatID)
		return
	}

	if len(lessons) == 0 {
		h.sendText(ctx, b, chatID, "Каталог пуст.")
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Все занятия:\n\n")
	for _, lesson := range lessons {
		fmt.Fprintf(&sb, "#%d %s, %d пара — %s (%s), недели %d-%d, %s\n",
			lesson.ID,
			formatting.WeekdayTitle(lesson.DayOfWeek),
			lesson.PairNumber,
			lesson.Subject,
			formatting.FormatLessonType(lesson.LessonType),
			lesson.Weeks.Start,
			lesson.Weeks.End,
			lesson.Room,
		)
	}

	h.sendText(ctx, b, chatID, sb.String())
}

// HandleRebuild обрабатывает команду /rebuild — ручной пересбор напоминаний
func (h *Handlers) HandleRebuild(ctx context.Context, b *bot.Bot, update *models.Update) {
	if !h.requireAdmin(ctx, b, update) {
		return
	}
	chatID := update.Message.Chat.ID

	if err := h.reminders.RebuildToday(ctx); err != nil {
		h.logger.Error("Manual rebuild failed", zap.Error(err))
		h.sendText(ctx, b, chatID, "❌ Пересбор не удался, напоминания сняты. Подробности в логах.")
		return
	}

	h.sendText(ctx, b, chatID, fmt.Sprintf("🔁 Напоминания пересобраны, ожидает: %d.", h.reminders.PendingCount()))
}

// parseLessonArgs разбирает аргументы /addlesson
func parseLessonArgs(args string) (*model.Lesson, error) {
	parts := strings.Split(args, "|")
	if len(parts) != 8 {
		return nil, fmt.Errorf("нужно 8 полей через «|», получено %d", len(parts))
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	pair, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("номер пары должен быть числом, получено %q", parts[1])
	}

	weeks, err := parseWeeks(parts[3])
	if err != nil {
		return nil, err
	}

	chatID, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("chat_id должен быть числом, получено %q", parts[4])
	}

	return &model.Lesson{
		DayOfWeek:  model.Weekday(strings.ToLower(parts[0])),
		PairNumber: pair,
		LessonType: model.LessonType(strings.ToLower(parts[2])),
		Weeks:      weeks,
		ChatID:     chatID,
		Subject:    parts[5],
		Room:       parts[6],
		Teacher:    parts[7],
	}, nil
}

// parseLessonPatch разбирает пары поле=значение для /editlesson
func parseLessonPatch(fields string) (*model.LessonPatch, error) {
	patch := &model.LessonPatch{}

	for _, field := range strings.Split(fields, ";") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}

		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return nil, fmt.Errorf("ожидается поле=значение, получено %q", field)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)

		switch key {
		case "day":
			day := model.Weekday(strings.ToLower(value))
			if !day.Valid() {
				return nil, fmt.Errorf("неизвестный день %q", value)
			}
			patch.DayOfWeek = &day
		case "pair":
			pair, err := strconv.Atoi(value)
			if err != nil {
				return nil, fmt.Errorf("номер пары должен быть числом, получено %q", value)
			}
			patch.PairNumber = &pair
		case "subject":
			patch.Subject = &value
		case "type":
			lessonType := model.LessonType(strings.ToLower(value))
			if !lessonType.Valid() {
				return nil, fmt.Errorf("неизвестный тип %q", value)
			}
			patch.LessonType = &lessonType
		case "weeks":
			weeks, err := parseWeeks(value)
			if err != nil {
				return nil, err
			}
			patch.WeekStart = &weeks.Start
			patch.WeekEnd = &weeks.End
		case "room":
			patch.Room = &value
		case "teacher":
			patch.Teacher = &value
		case "chat":
			chatID, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("chat_id должен быть числом, получено %q", value)
			}
			patch.ChatID = &chatID
		default:
			return nil, fmt.Errorf("неизвестное поле %q", key)
		}
	}

	return patch, nil
}

// parseWeeks понимает диапазон "4-8" и перечисление "4,6,8".
// Перечисление сворачивается в диапазон по min/max.
func parseWeeks(s string) (model.WeekRange, error) {
	s = strings.TrimSpace(s)

	if startStr, endStr, ok := strings.Cut(s, "-"); ok {
		start, err1 := strconv.Atoi(strings.TrimSpace(startStr))
		end, err2 := strconv.Atoi(strings.TrimSpace(endStr))
		if err1 != nil || err2 != nil {
			return model.WeekRange{}, fmt.Errorf("недели должны быть числами: %q", s)
		}
		return model.WeekRange{Start: start, End: end}, nil
	}

	var weeks []int
	for _, part := range strings.Split(s, ",") {
		week, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return model.WeekRange{}, fmt.Errorf("недели должны быть числами: %q", s)
		}
		weeks = append(weeks, week)
	}

	weekRange, err := model.WeekRangeFromList(weeks)
	if err != nil {
		return model.WeekRange{}, fmt.Errorf("пустой список недель")
	}
	return weekRange, nil
}

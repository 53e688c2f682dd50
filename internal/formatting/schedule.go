package formatting

import (
	"fmt"
	"strings"

	"github.com/mxt223/schedule_bot/internal/config"
	"github.com/mxt223/schedule_bot/internal/model"
)

var weekdayTitles = map[model.Weekday]string{
	model.Monday:    "Понедельник",
	model.Tuesday:   "Вторник",
	model.Wednesday: "Среда",
	model.Thursday:  "Четверг",
	model.Friday:    "Пятница",
}

// WeekdayTitle русское название учебного дня
func WeekdayTitle(day model.Weekday) string {
	if title, ok := weekdayTitles[day]; ok {
		return title
	}
	return string(day)
}

// FormatLessonType русское название типа занятия
func FormatLessonType(t model.LessonType) string {
	if t == model.Lecture {
		return "Лекция"
	}
	return "Семинар"
}

// FormatReminder текст напоминания о паре за minutes минут до начала
func FormatReminder(lesson *model.Lesson, minutes int) string {
	emoji := "🚨"
	switch minutes {
	case 30:
		emoji = "🕒"
	case 15:
		emoji = "⏰"
	}

	return fmt.Sprintf(
		"%s До пары осталось %d минут!\n\n"+
			"📘 %s\n"+
			"🎓 %s\n"+
			"👩‍🏫 %s\n"+
			"🏫 %s",
		emoji,
		minutes,
		lesson.Subject,
		FormatLessonType(lesson.LessonType),
		lesson.Teacher,
		lesson.Room,
	)
}

// PairTimeFunc время начала пары по её номеру, false если пары нет в сетке
type PairTimeFunc func(pairNumber int) (config.TimeOfDay, bool)

// FormatLessonLine одна строка расписания для занятия
func FormatLessonLine(lesson *model.Lesson, pairTime PairTimeFunc) string {
	timeStr := "—"
	if t, ok := pairTime(lesson.PairNumber); ok {
		timeStr = t.String()
	}

	return fmt.Sprintf(
		"⏰ %d пара (%s)\n"+
			"📘 %s\n"+
			"🎓 %s\n"+
			"👩‍🏫 %s\n"+
			"🏫 %s\n",
		lesson.PairNumber,
		timeStr,
		lesson.Subject,
		FormatLessonType(lesson.LessonType),
		lesson.Teacher,
		lesson.Room,
	)
}

// FormatDaySchedule расписание на день с заголовком.
// Для пустого дня возвращает emptyText.
func FormatDaySchedule(header string, lessons []*model.Lesson, pairTime PairTimeFunc, emptyText string) string {
	if len(lessons) == 0 {
		return emptyText
	}

	lines := []string{header + "\n"}
	for _, lesson := range lessons {
		lines = append(lines, FormatLessonLine(lesson, pairTime)+"——————————————\n")
	}

	return strings.Join(lines, "\n")
}

// FormatTodaySchedule расписание на сегодня
func FormatTodaySchedule(lessons []*model.Lesson, pairTime PairTimeFunc) string {
	return FormatDaySchedule("📅 Расписание на сегодня:", lessons, pairTime, "📅 Сегодня занятий нет 🎉")
}

// FormatTomorrowSchedule расписание на завтра
func FormatTomorrowSchedule(lessons []*model.Lesson, pairTime PairTimeFunc) string {
	return FormatDaySchedule("🌙 Расписание на завтра:", lessons, pairTime, "🌙 Завтра занятий нет 🎉")
}

// FormatWeekSchedule расписание всей недели по дням
func FormatWeekSchedule(week int, days map[model.Weekday][]*model.Lesson, pairTime PairTimeFunc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🗓 Расписание на %d неделю:\n", week)

	for _, day := range model.Weekdays {
		fmt.Fprintf(&b, "\n%s\n", WeekdayTitle(day))

		lessons := days[day]
		if len(lessons) == 0 {
			b.WriteString("— занятий нет\n")
			continue
		}
		for _, lesson := range lessons {
			b.WriteString(FormatLessonLine(lesson, pairTime))
		}
	}

	return b.String()
}

// FormatWeekLoad сводка нагрузки на неделю
func FormatWeekLoad(load *model.WeekLoad) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 Нагрузка на %d неделю:\n\n", load.Week)
	fmt.Fprintf(&b, "📘 Лекций: %d\n", load.Lectures)
	fmt.Fprintf(&b, "📒 Семинаров: %d\n", load.Seminars)
	fmt.Fprintf(&b, "⏱ Всего часов: %d\n\n", load.TotalHours)

	for _, day := range model.Weekdays {
		fmt.Fprintf(&b, "%s — %d ч.\n", WeekdayTitle(day), load.DayHours[day])
	}

	if load.HardestDay != "" {
		fmt.Fprintf(&b, "\n🔥 Самый загруженный день: %s\n", WeekdayTitle(load.HardestDay))
	}
	if load.EasiestDay != "" {
		fmt.Fprintf(&b, "🌿 Самый лёгкий день: %s\n", WeekdayTitle(load.EasiestDay))
	}

	return b.String()
}

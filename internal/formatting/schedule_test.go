package formatting

import (
	"strings"
	"testing"

	"github.com/mxt223/schedule_bot/internal/config"
	"github.com/mxt223/schedule_bot/internal/model"
	"github.com/stretchr/testify/assert"
)

func testPairTime(pairNumber int) (config.TimeOfDay, bool) {
	times := map[int]config.TimeOfDay{
		1: {Hour: 8, Minute: 0},
		2: {Hour: 9, Minute: 30},
	}
	t, ok := times[pairNumber]
	return t, ok
}

func testLesson() *model.Lesson {
	return &model.Lesson{
		ID:         1,
		DayOfWeek:  model.Monday,
		PairNumber: 1,
		Subject:    "Стратегический менеджмент",
		LessonType: model.Lecture,
		Weeks:      model.WeekRange{Start: 4, End: 8},
		Room:       "ауд. 101",
		Teacher:    "Иванова А.А.",
		ChatID:     -100500,
	}
}

func TestFormatReminder(t *testing.T) {
	lesson := testLesson()

	tests := []struct {
		minutes   int
		wantEmoji string
	}{
		{minutes: 30, wantEmoji: "🕒"},
		{minutes: 15, wantEmoji: "⏰"},
		{minutes: 5, wantEmoji: "🚨"},
	}

	for _, tt := range tests {
		text := FormatReminder(lesson, tt.minutes)
		assert.True(t, strings.HasPrefix(text, tt.wantEmoji), "minutes=%d: %s", tt.minutes, text)
		assert.Contains(t, text, "Стратегический менеджмент")
		assert.Contains(t, text, "Лекция")
		assert.Contains(t, text, "Иванова А.А.")
	}
}

func TestFormatLessonLine(t *testing.T) {
	line := FormatLessonLine(testLesson(), testPairTime)
	assert.Contains(t, line, "1 пара (08:00)")
	assert.Contains(t, line, "ауд. 101")

	// пары нет в сетке — вместо времени прочерк
	lesson := testLesson()
	lesson.PairNumber = 5
	line = FormatLessonLine(lesson, testPairTime)
	assert.Contains(t, line, "5 пара (—)")
}

func TestFormatTodaySchedule(t *testing.T) {
	text := FormatTodaySchedule([]*model.Lesson{testLesson()}, testPairTime)
	assert.Contains(t, text, "Расписание на сегодня")
	assert.Contains(t, text, "Стратегический менеджмент")

	empty := FormatTodaySchedule(nil, testPairTime)
	assert.Equal(t, "📅 Сегодня занятий нет 🎉", empty)
}

func TestFormatTomorrowSchedule(t *testing.T) {
	empty := FormatTomorrowSchedule(nil, testPairTime)
	assert.Equal(t, "🌙 Завтра занятий нет 🎉", empty)
}

func TestFormatWeekSchedule(t *testing.T) {
	days := map[model.Weekday][]*model.Lesson{
		model.Monday:    {testLesson()},
		model.Tuesday:   {},
		model.Wednesday: {},
		model.Thursday:  {},
		model.Friday:    {},
	}

	text := FormatWeekSchedule(6, days, testPairTime)
	assert.Contains(t, text, "Расписание на 6 неделю")
	assert.Contains(t, text, "Понедельник")
	assert.Contains(t, text, "Стратегический менеджмент")
	// пустые дни всё равно перечислены
	assert.Contains(t, text, "Пятница")
	assert.Contains(t, text, "— занятий нет")
}

func TestFormatWeekLoad(t *testing.T) {
	load := &model.WeekLoad{
		Week:       6,
		Lectures:   3,
		Seminars:   2,
		TotalHours: 10,
		DayHours: map[model.Weekday]int{
			model.Monday:    6,
			model.Tuesday:   0,
			model.Wednesday: 2,
			model.Thursday:  0,
			model.Friday:    2,
		},
		HardestDay: model.Monday,
		EasiestDay: model.Tuesday,
	}

	text := FormatWeekLoad(load)
	assert.Contains(t, text, "Нагрузка на 6 неделю")
	assert.Contains(t, text, "Лекций: 3")
	assert.Contains(t, text, "Семинаров: 2")
	assert.Contains(t, text, "Всего часов: 10")
	assert.Contains(t, text, "Самый загруженный день: Понедельник")
	assert.Contains(t, text, "Самый лёгкий день: Вторник")
}

func TestWeekdayTitle(t *testing.T) {
	assert.Equal(t, "Среда", WeekdayTitle(model.Wednesday))
	assert.Equal(t, "someday", WeekdayTitle(model.Weekday("someday")))
}

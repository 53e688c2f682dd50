package service

import (
	"context"
	"testing"
	"time"

	"github.com/mxt223/schedule_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// reminderTestEnv собранный сервис напоминаний на фейках
type reminderTestEnv struct {
	store      *fakeLessonStore
	timer      *fakeTimer
	dispatcher *fakeReminderDispatcher
	reminders  *ReminderService
}

func newReminderEnv(t *testing.T, now time.Time, lessons []*model.Lesson) *reminderTestEnv {
	t.Helper()
	loc := testLocation()
	semesterStart := time.Date(2026, 2, 2, 0, 0, 0, 0, loc)

	store := &fakeLessonStore{lessons: lessons}
	clk, _ := newTestClock(now)
	schedule := newTestSchedule(store, clk, semesterStart, 4)

	timer := &fakeTimer{}
	dispatcher := &fakeReminderDispatcher{}
	reminders := NewReminderService(schedule, dispatcher, timer, clk, []int{30, 15, 5}, zap.NewNop())

	return &reminderTestEnv{
		store:      store,
		timer:      timer,
		dispatcher: dispatcher,
		reminders:  reminders,
	}
}

func TestReminderService_RebuildBeforeSemester(t *testing.T) {
	loc := testLocation()
	// 15 января — до начала семестра
	env := newReminderEnv(t,
		time.Date(2026, 1, 15, 7, 0, 0, 0, loc),
		[]*model.Lesson{lessonFixture(1, model.Thursday, 1, "Стратегия", 1, 20)},
	)

	require.NoError(t, env.reminders.RebuildToday(context.Background()))
	assert.Equal(t, 0, env.reminders.PendingCount())
}

func TestReminderService_FireTimesPerThreshold(t *testing.T) {
	loc := testLocation()
	// понедельник 2 февраля, 07:00 — до первой пары час
	env := newReminderEnv(t,
		time.Date(2026, 2, 2, 7, 0, 0, 0, loc),
		[]*model.Lesson{lessonFixture(1, model.Monday, 1, "Стратегия", 4, 8)},
	)

	require.NoError(t, env.reminders.RebuildToday(context.Background()))

	want := []time.Time{
		time.Date(2026, 2, 2, 7, 30, 0, 0, loc),
		time.Date(2026, 2, 2, 7, 45, 0, 0, loc),
		time.Date(2026, 2, 2, 7, 55, 0, 0, loc),
	}
	assert.Equal(t, want, env.reminders.PendingFireTimes())
}

func TestReminderService_PastThresholdsSkipped(t *testing.T) {
	loc := testLocation()
	// пересбор в 07:50: пороги 30 и 15 минут уже прошли
	env := newReminderEnv(t,
		time.Date(2026, 2, 2, 7, 50, 0, 0, loc),
		[]*model.Lesson{lessonFixture(1, model.Monday, 1, "Стратегия", 4, 8)},
	)

	require.NoError(t, env.reminders.RebuildToday(context.Background()))

	want := []time.Time{time.Date(2026, 2, 2, 7, 55, 0, 0, loc)}
	assert.Equal(t, want, env.reminders.PendingFireTimes())
}

func TestReminderService_RebuildIsIdempotent(t *testing.T) {
	loc := testLocation()
	env := newReminderEnv(t,
		time.Date(2026, 2, 2, 7, 0, 0, 0, loc),
		[]*model.Lesson{
			lessonFixture(1, model.Monday, 1, "Стратегия", 4, 8),
			lessonFixture(2, model.Monday, 2, "Экономика", 4, 8),
		},
	)

	require.NoError(t, env.reminders.RebuildToday(context.Background()))
	first := env.reminders.PendingFireTimes()

	require.NoError(t, env.reminders.RebuildToday(context.Background()))
	second := env.reminders.PendingFireTimes()

	// без изменений каталога набор срабатываний не меняется: ни дублей, ни потерь
	assert.Equal(t, first, second)
	assert.Equal(t, 6, env.reminders.PendingCount())
}

func TestReminderService_MissingPairTimeSkipsLessonOnly(t *testing.T) {
	loc := testLocation()
	env := newReminderEnv(t,
		time.Date(2026, 2, 2, 6, 0, 0, 0, loc),
		[]*model.Lesson{
			lessonFixture(1, model.Monday, 1, "Стратегия", 4, 8),
			lessonFixture(2, model.Monday, 5, "Факультатив", 4, 8), // пары 5 нет в сетке
		},
	)

	require.NoError(t, env.reminders.RebuildToday(context.Background()))

	// три порога для первой пары, факультатив пропущен без ошибки
	assert.Equal(t, 3, env.reminders.PendingCount())
}

func TestReminderService_CatalogErrorClearsEverything(t *testing.T) {
	loc := testLocation()
	env := newReminderEnv(t,
		time.Date(2026, 2, 2, 7, 0, 0, 0, loc),
		[]*model.Lesson{lessonFixture(1, model.Monday, 1, "Стратегия", 4, 8)},
	)

	require.NoError(t, env.reminders.RebuildToday(context.Background()))
	require.Equal(t, 3, env.reminders.PendingCount())

	// каталог недоступен: старый набор снимается целиком, смешанного состояния нет
	env.store.mu.Lock()
	env.store.err = assert.AnError
	env.store.mu.Unlock()

	require.Error(t, env.reminders.RebuildToday(context.Background()))
	assert.Equal(t, 0, env.reminders.PendingCount())
}

func TestReminderService_FireDispatchesOnce(t *testing.T) {
	loc := testLocation()
	now := time.Date(2026, 2, 2, 7, 0, 0, 0, loc)
	env := newReminderEnv(t, now,
		[]*model.Lesson{lessonFixture(1, model.Monday, 1, "Стратегия", 4, 8)},
	)

	require.NoError(t, env.reminders.RebuildToday(context.Background()))

	fireAt := time.Date(2026, 2, 2, 7, 30, 0, 0, loc)
	env.timer.fireDue(fireAt)
	env.timer.fireDue(fireAt) // повторное срабатывание ничего не доставляет

	assert.Equal(t, 1, env.dispatcher.count())
	assert.Equal(t, deliveredReminder{lessonID: 1, minutes: 30}, env.dispatcher.delivered[0])
	assert.Equal(t, 2, env.reminders.PendingCount())
}

func TestReminderService_CancelledTaskDoesNotDispatch(t *testing.T) {
	loc := testLocation()
	env := newReminderEnv(t,
		time.Date(2026, 2, 2, 7, 0, 0, 0, loc),
		[]*model.Lesson{lessonFixture(1, model.Monday, 1, "Стратегия", 4, 8)},
	)

	require.NoError(t, env.reminders.RebuildToday(context.Background()))

	// каталог опустел, пересбор снял все задачи
	env.store.mu.Lock()
	env.store.lessons = nil
	env.store.mu.Unlock()
	require.NoError(t, env.reminders.RebuildToday(context.Background()))
	assert.Equal(t, 0, env.reminders.PendingCount())

	// таймер из первого набора всё же сработал — доставка не происходит
	env.timer.fireDue(time.Date(2026, 2, 2, 8, 0, 0, 0, loc))
	assert.Equal(t, 0, env.dispatcher.count())
}

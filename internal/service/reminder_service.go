package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mxt223/schedule_bot/internal/model"
	"github.com/mxt223/schedule_bot/internal/timeutil"
	"go.uber.org/zap"
)

// ReminderDispatcher доставка сработавшего напоминания (service.Dispatcher)
type ReminderDispatcher interface {
	DispatchReminder(ctx context.Context, lesson *model.Lesson, minutes int)
}

// reminderTask одно ожидающее напоминание: пара, порог и момент срабатывания
type reminderTask struct {
	lesson  *model.Lesson
	minutes int
	fireAt  time.Time
	handle  timeutil.TimerHandle
}

// ReminderService владеет набором ожидающих напоминаний на текущий день.
// Набор меняется только через RebuildToday; mutex сериализует пересборы
// между собой и с срабатываниями таймеров.
type ReminderService struct {
	schedule   *ScheduleService
	dispatcher ReminderDispatcher
	timer      timeutil.Timer
	clock      *timeutil.Clock
	thresholds []int // минуты до начала пары
	logger     *zap.Logger

	mu    sync.Mutex
	tasks map[uuid.UUID]*reminderTask
}

func NewReminderService(
	schedule *ScheduleService,
	dispatcher ReminderDispatcher,
	timer timeutil.Timer,
	clock *timeutil.Clock,
	thresholds []int,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		schedule:   schedule,
		dispatcher: dispatcher,
		timer:      timer,
		clock:      clock,
		thresholds: thresholds,
		logger:     logger,
		tasks:      make(map[uuid.UUID]*reminderTask),
	}
}

// RebuildToday снимает все ожидающие напоминания и регистрирует новые по
// сегодняшнему расписанию. До начала семестра набор просто очищается.
// Повторный вызов без изменений каталога даёт тот же набор срабатываний.
func (s *ReminderService) RebuildToday(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	today := s.clock.Today()
	if !s.schedule.Weeks().SemesterStarted(today) {
		s.cancelAllLocked()
		s.logger.Info("Semester not started, reminders cleared")
		return nil
	}

	// Сначала запрашиваем занятия: если каталог недоступен, снимаем старый
	// набор целиком — день без напоминаний лучше смешанного состояния.
	lessons, err := s.schedule.TodayLessons(ctx)
	if err != nil {
		s.cancelAllLocked()
		return fmt.Errorf("rebuild reminders: %w", err)
	}

	s.cancelAllLocked()

	now := s.clock.Now()
	skippedPairs := 0

	for _, lesson := range lessons {
		startAt, err := s.schedule.LessonStartAt(today, lesson.PairNumber)
		if err != nil {
			// пары нет в сетке звонков — пропускаем занятие, остальные собираем
			s.logger.Warn("Skipping lesson without pair start time",
				zap.Int64("lesson_id", lesson.ID),
				zap.Int("pair_number", lesson.PairNumber),
				zap.String("subject", lesson.Subject))
			skippedPairs++
			continue
		}

		for _, minutes := range s.thresholds {
			fireAt := startAt.Add(-time.Duration(minutes) * time.Minute)
			if !fireAt.After(now) {
				// момент уже прошёл, задним числом не напоминаем
				continue
			}
			s.registerLocked(ctx, lesson, minutes, fireAt)
		}
	}

	s.logger.Info("Reminders rebuilt",
		zap.Int("lessons", len(lessons)),
		zap.Int("skipped_pairs", skippedPairs),
		zap.Int("pending", len(s.tasks)))

	return nil
}

// registerLocked регистрирует задачу, вызывается под mutex
func (s *ReminderService) registerLocked(ctx context.Context, lesson *model.Lesson, minutes int, fireAt time.Time) {
	id := uuid.New()
	task := &reminderTask{
		lesson:  lesson,
		minutes: minutes,
		fireAt:  fireAt,
	}
	s.tasks[id] = task
	task.handle = s.timer.Schedule(fireAt, func() {
		s.fire(ctx, id)
	})
}

// fire выполняется при срабатывании таймера. Задача удаляет себя из набора
// под mutex до отправки: снятая пересбором задача ничего не найдёт и молча
// выйдет, а нашедшая — отправится ровно один раз.
func (s *ReminderService) fire(ctx context.Context, id uuid.UUID) {
	s.mu.Lock()
	task, ok := s.tasks[id]
	if ok {
		delete(s.tasks, id)
	}
	s.mu.Unlock()

	if !ok {
		return
	}

	s.dispatcher.DispatchReminder(ctx, task.lesson, task.minutes)
}

// cancelAllLocked останавливает таймеры и очищает набор, вызывается под mutex.
// Задача, чей таймер уже сработал, не прерывается: её fire увидит пустой
// набор и не отправит ничего повторно.
func (s *ReminderService) cancelAllLocked() {
	for id, task := range s.tasks {
		if task.handle != nil {
			task.handle.Stop()
		}
		delete(s.tasks, id)
	}
}

// PendingCount количество ожидающих напоминаний
func (s *ReminderService) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// PendingFireTimes отсортированные моменты будущих срабатываний
func (s *ReminderService) PendingFireTimes() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	times := make([]time.Time, 0, len(s.tasks))
	for _, task := range s.tasks {
		times = append(times, task.fireAt)
	}
	sort.Slice(times, func(i, j int) bool { return times[i].Before(times[j]) })
	return times
}

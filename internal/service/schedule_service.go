package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/mxt223/schedule_bot/internal/config"
	"github.com/mxt223/schedule_bot/internal/model"
	"github.com/mxt223/schedule_bot/internal/timeutil"
	"go.uber.org/zap"
)

// LessonStore каталог занятий (реализуется repository.LessonRepository)
type LessonStore interface {
	Create(ctx context.Context, lesson *model.Lesson) error
	GetByDayAndWeek(ctx context.Context, day model.Weekday, week int) ([]*model.Lesson, error)
	GetAll(ctx context.Context) ([]*model.Lesson, error)
	Update(ctx context.Context, id int64, patch *model.LessonPatch) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// ScheduleService отвечает на вопросы "какие пары сегодня/завтра/на неделе"
// и проводит административные изменения каталога
type ScheduleService struct {
	lessons   LessonStore
	weeks     *WeekResolver
	clock     *timeutil.Clock
	pairTimes map[int]config.TimeOfDay
	logger    *zap.Logger
}

func NewScheduleService(
	lessons LessonStore,
	weeks *WeekResolver,
	clock *timeutil.Clock,
	pairTimes map[int]config.TimeOfDay,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		lessons:   lessons,
		weeks:     weeks,
		clock:     clock,
		pairTimes: pairTimes,
		logger:    logger,
	}
}

// Weeks возвращает резолвер учебных недель
func (s *ScheduleService) Weeks() *WeekResolver {
	return s.weeks
}

// TodayLessons занятия на сегодня, по возрастанию номера пары
func (s *ScheduleService) TodayLessons(ctx context.Context) ([]*model.Lesson, error) {
	return s.lessonsForDate(ctx, s.clock.Today())
}

// TomorrowLessons занятия на завтра. Номер недели считается от завтрашней
// даты: если завтра начинается новая неделя, ищем по ней, а не по сегодняшней.
func (s *ScheduleService) TomorrowLessons(ctx context.Context) ([]*model.Lesson, error) {
	return s.lessonsForDate(ctx, s.clock.Today().AddDate(0, 0, 1))
}

func (s *ScheduleService) lessonsForDate(ctx context.Context, date time.Time) ([]*model.Lesson, error) {
	day, ok := model.WeekdayFromTime(date)
	if !ok {
		// выходной
		return nil, nil
	}

	week := s.weeks.WeekNumber(date)
	lessons, err := s.lessons.GetByDayAndWeek(ctx, day, week)
	if err != nil {
		return nil, fmt.Errorf("lessons for %s week %d: %w", day, week, err)
	}

	sortByPair(lessons)
	return lessons, nil
}

// WeekLessons расписание всей недели. В карте присутствуют все пять
// учебных дней, день без занятий даёт пустой срез.
func (s *ScheduleService) WeekLessons(ctx context.Context, week int) (map[model.Weekday][]*model.Lesson, error) {
	result := make(map[model.Weekday][]*model.Lesson, len(model.Weekdays))

	for _, day := range model.Weekdays {
		lessons, err := s.lessons.GetByDayAndWeek(ctx, day, week)
		if err != nil {
			return nil, fmt.Errorf("lessons for %s week %d: %w", day, week, err)
		}
		sortByPair(lessons)
		if lessons == nil {
			lessons = []*model.Lesson{}
		}
		result[day] = lessons
	}

	return result, nil
}

// Today текущая дата в поясе группы
func (s *ScheduleService) Today() time.Time {
	return s.clock.Today()
}

// SemesterStarted true если семестр уже идёт
func (s *ScheduleService) SemesterStarted() bool {
	return s.weeks.SemesterStarted(s.clock.Today())
}

// CurrentWeek номер текущей учебной недели
func (s *ScheduleService) CurrentWeek() int {
	return s.weeks.WeekNumber(s.clock.Today())
}

// NextLesson ближайшая сегодняшняя пара, которая ещё не началась.
// nil без ошибки — пар больше нет.
func (s *ScheduleService) NextLesson(ctx context.Context) (*model.Lesson, error) {
	lessons, err := s.TodayLessons(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	for _, lesson := range lessons {
		startAt, err := s.LessonStartAt(s.clock.Today(), lesson.PairNumber)
		if err != nil {
			continue
		}
		if startAt.After(now) {
			return lesson, nil
		}
	}

	return nil, nil
}

// LessonStartAt момент начала пары в указанный день.
// Ошибка если номер пары отсутствует в сетке звонков.
func (s *ScheduleService) LessonStartAt(day time.Time, pairNumber int) (time.Time, error) {
	start, ok := s.pairTimes[pairNumber]
	if !ok {
		return time.Time{}, fmt.Errorf("no start time configured for pair %d", pairNumber)
	}
	return start.At(day), nil
}

// PairStartTime время начала пары в сетке звонков
func (s *ScheduleService) PairStartTime(pairNumber int) (config.TimeOfDay, bool) {
	t, ok := s.pairTimes[pairNumber]
	return t, ok
}

// AddLesson валидирует и добавляет занятие, возвращает присвоенный id
func (s *ScheduleService) AddLesson(ctx context.Context, lesson *model.Lesson) (int64, error) {
	if err := lesson.Validate(); err != nil {
		return 0, err
	}

	if err := s.lessons.Create(ctx, lesson); err != nil {
		return 0, err
	}

	s.logger.Info("Lesson added",
		zap.Int64("lesson_id", lesson.ID),
		zap.String("subject", lesson.Subject),
		zap.String("day_of_week", string(lesson.DayOfWeek)))

	return lesson.ID, nil
}

// UpdateLesson частично обновляет занятие, false если id не найден
func (s *ScheduleService) UpdateLesson(ctx context.Context, id int64, patch *model.LessonPatch) (bool, error) {
	return s.lessons.Update(ctx, id, patch)
}

// DeleteLesson удаляет занятие, false если id не найден
func (s *ScheduleService) DeleteLesson(ctx context.Context, id int64) (bool, error) {
	return s.lessons.Delete(ctx, id)
}

// AllLessons весь каталог
func (s *ScheduleService) AllLessons(ctx context.Context) ([]*model.Lesson, error) {
	return s.lessons.GetAll(ctx)
}

func sortByPair(lessons []*model.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].PairNumber < lessons[j].PairNumber
	})
}

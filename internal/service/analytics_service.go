package service

import (
	"context"
	"fmt"

	"github.com/mxt223/schedule_bot/internal/model"
	"go.uber.org/zap"
)

// hoursPerPair пара длится два академических часа
const hoursPerPair = 2

// AnalyticsService считает нагрузку по учебной неделе
type AnalyticsService struct {
	schedule *ScheduleService
	logger   *zap.Logger
}

func NewAnalyticsService(schedule *ScheduleService, logger *zap.Logger) *AnalyticsService {
	return &AnalyticsService{schedule: schedule, logger: logger}
}

// CurrentWeekLoad нагрузка на текущую учебную неделю
func (s *AnalyticsService) CurrentWeekLoad(ctx context.Context) (*model.WeekLoad, error) {
	return s.WeekLoad(ctx, s.schedule.CurrentWeek())
}

// WeekLoad нагрузка на указанную неделю: часы по дням, лекции и семинары,
// самый тяжёлый и самый лёгкий день
func (s *AnalyticsService) WeekLoad(ctx context.Context, week int) (*model.WeekLoad, error) {
	days, err := s.schedule.WeekLessons(ctx, week)
	if err != nil {
		return nil, fmt.Errorf("week load: %w", err)
	}

	load := &model.WeekLoad{
		Week:     week,
		DayHours: make(map[model.Weekday]int, len(model.Weekdays)),
	}

	totalPairs := 0
	for _, day := range model.Weekdays {
		lessons := days[day]
		load.DayHours[day] = len(lessons) * hoursPerPair

		for _, lesson := range lessons {
			totalPairs++
			if lesson.LessonType == model.Lecture {
				load.Lectures++
			} else {
				load.Seminars++
			}
		}
	}
	load.TotalHours = totalPairs * hoursPerPair

	for _, day := range model.Weekdays {
		if load.HardestDay == "" || load.DayHours[day] > load.DayHours[load.HardestDay] {
			load.HardestDay = day
		}
		if load.EasiestDay == "" || load.DayHours[day] < load.DayHours[load.EasiestDay] {
			load.EasiestDay = day
		}
	}

	return load, nil
}

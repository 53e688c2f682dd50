package app

import (
	"context"
	"time"

	"github.com/mxt223/schedule_bot/internal/config"
	"github.com/mxt223/schedule_bot/internal/timeutil"
	"go.uber.org/zap"
)

// DailyJob задача, выполняемая раз в день по будням в заданное время
type DailyJob struct {
	Name string
	At   config.TimeOfDay
	Run  func(ctx context.Context)
}

// Scheduler управляет фоновыми ежедневными задачами
type Scheduler struct {
	clock    *timeutil.Clock
	jobs     []DailyJob
	logger   *zap.Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(clock *timeutil.Clock, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		clock:    clock,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// AddJob регистрирует задачу, вызывать до Start
func (s *Scheduler) AddJob(name string, at config.TimeOfDay, run func(ctx context.Context)) {
	s.jobs = append(s.jobs, DailyJob{Name: name, At: at, Run: run})
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Int("jobs", len(s.jobs)))

	for _, job := range s.jobs {
		go s.runJobLoop(ctx, job)
	}
}

// Stop останавливает фоновые задачи
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping background scheduler")
	close(s.stopChan)
}

// runJobLoop спит до следующего времени запуска и выполняет задачу
func (s *Scheduler) runJobLoop(ctx context.Context, job DailyJob) {
	for {
		next := nextWeekdayRun(s.clock.Now(), job.At)
		s.logger.Info("Daily job scheduled",
			zap.String("job", job.Name),
			zap.Time("next_run", next))

		timer := time.NewTimer(next.Sub(s.clock.Now()))

		select {
		case <-timer.C:
			s.safeRun(ctx, job)
		case <-s.stopChan:
			timer.Stop()
			s.logger.Info("Daily job stopped", zap.String("job", job.Name))
			return
		case <-ctx.Done():
			timer.Stop()
			s.logger.Info("Daily job cancelled", zap.String("job", job.Name))
			return
		}
	}
}

// safeRun выполняет задачу, не позволяя панике уронить процесс
func (s *Scheduler) safeRun(ctx context.Context, job DailyJob) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Daily job panicked",
				zap.String("job", job.Name),
				zap.Any("panic", r))
		}
	}()

	s.logger.Info("Running daily job", zap.String("job", job.Name))
	job.Run(ctx)
}

// nextWeekdayRun ближайший будний момент времени at строго после now
func nextWeekdayRun(now time.Time, at config.TimeOfDay) time.Time {
	next := at.At(now)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	for next.Weekday() == time.Saturday || next.Weekday() == time.Sunday {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

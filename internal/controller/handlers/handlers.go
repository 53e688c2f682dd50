package handlers

import (
	"github.com/mxt223/schedule_bot/internal/config"
	"github.com/mxt223/schedule_bot/internal/service"
	"go.uber.org/zap"
)

// Handlers обработчики команд бота
type Handlers struct {
	cfg       *config.Config
	schedule  *service.ScheduleService
	reminders *service.ReminderService
	analytics *service.AnalyticsService
	prefs     service.PreferenceStore
	logger    *zap.Logger
}

func NewHandlers(
	cfg *config.Config,
	schedule *service.ScheduleService,
	reminders *service.ReminderService,
	analytics *service.AnalyticsService,
	prefs service.PreferenceStore,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		cfg:       cfg,
		schedule:  schedule,
		reminders: reminders,
		analytics: analytics,
		prefs:     prefs,
		logger:    logger,
	}
}

package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mxt223/schedule_bot/internal/config"
	"github.com/mxt223/schedule_bot/internal/controller/handlers"
	"github.com/mxt223/schedule_bot/internal/service"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	cfg *config.Config,
	scheduleService *service.ScheduleService,
	reminderService *service.ReminderService,
	analyticsService *service.AnalyticsService,
	prefs service.PreferenceStore,
	logger *zap.Logger,
) *BotController {
	cmdHandlers := handlers.NewHandlers(
		cfg,
		scheduleService,
		reminderService,
		analyticsService,
		prefs,
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: cmdHandlers,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики команд
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Команды для всех
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/today", bot.MatchTypeExact, c.handlers.HandleToday)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/tomorrow", bot.MatchTypeExact, c.handlers.HandleTomorrow)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/next", bot.MatchTypeExact, c.handlers.HandleNext)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/week", bot.MatchTypePrefix, c.handlers.HandleWeek)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/analytics", bot.MatchTypeExact, c.handlers.HandleAnalytics)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, c.handlers.HandleStatus)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/enable", bot.MatchTypeExact, c.handlers.HandleEnable)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/disable", bot.MatchTypeExact, c.handlers.HandleDisable)

	// Команды администраторов
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/addlesson", bot.MatchTypePrefix, c.handlers.HandleAddLesson)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/editlesson", bot.MatchTypePrefix, c.handlers.HandleEditLesson)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/dellesson", bot.MatchTypePrefix, c.handlers.HandleDeleteLesson)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/lessons", bot.MatchTypeExact, c.handlers.HandleListLessons)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/rebuild", bot.MatchTypeExact, c.handlers.HandleRebuild)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "today", Description: "📅 Расписание на сегодня"},
		{Command: "tomorrow", Description: "🌙 Расписание на завтра"},
		{Command: "next", Description: "⏭ Следующая пара"},
		{Command: "week", Description: "🗓 Расписание на неделю"},
		{Command: "analytics", Description: "📊 Нагрузка на неделю"},
		{Command: "status", Description: "🤖 Статус бота"},
		{Command: "enable", Description: "🔔 Включить напоминания"},
		{Command: "disable", Description: "🔕 Отключить напоминания"},
		{Command: "help", Description: "❓ Справка по командам"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})
	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("Bot commands registered", zap.Int("count", len(commands)))
	return nil
}

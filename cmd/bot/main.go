package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mxt223/schedule_bot/internal/app"
	"github.com/mxt223/schedule_bot/internal/config"
	"github.com/mxt223/schedule_bot/internal/controller"
	"github.com/mxt223/schedule_bot/internal/repository"
	"github.com/mxt223/schedule_bot/internal/service"
	"github.com/mxt223/schedule_bot/internal/timeutil"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting schedule bot",
		zap.String("environment", cfg.Environment),
		zap.String("timezone", cfg.Timezone),
		zap.Time("semester_start", cfg.SemesterStart),
		zap.Int("base_week", cfg.BaseWeek))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База данных
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to create connection pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to apply migrations", zap.Error(err))
	}
	migrator.Close()

	// Часы группы
	clock, err := timeutil.NewClock(cfg.Timezone)
	if err != nil {
		logger.Fatal("Failed to load timezone", zap.Error(err))
	}

	// Репозитории
	lessonRepo := repository.NewLessonRepository(pool, logger)
	prefRepo := repository.NewPreferenceRepository(pool, logger)
	messageLogRepo := repository.NewMessageLogRepository(pool, logger)

	// Телеграм
	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}
	sender := controller.NewTelegramSender(botInstance, logger)

	// Сервисы
	weeks := service.NewWeekResolver(cfg.SemesterStart, cfg.BaseWeek)
	scheduleService := service.NewScheduleService(lessonRepo, weeks, clock, cfg.PairStartTimes, logger)
	dispatcher := service.NewDispatcher(prefRepo, sender, cfg.ScheduleChatID, logger)
	reminderService := service.NewReminderService(
		scheduleService,
		dispatcher,
		timeutil.NewWallTimer(clock),
		clock,
		cfg.ReminderMinutes,
		logger,
	)
	analyticsService := service.NewAnalyticsService(scheduleService, logger)
	broadcastService := service.NewBroadcastService(scheduleService, sender, messageLogRepo, cfg.AllChats(), logger)

	// Обработчики команд
	botController := controller.NewBotController(
		botInstance,
		cfg,
		scheduleService,
		reminderService,
		analyticsService,
		prefRepo,
		logger,
	)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	// Напоминания на сегодня собираем сразу при старте
	if err := reminderService.RebuildToday(ctx); err != nil {
		logger.Error("Startup reminder rebuild failed", zap.Error(err))
	}

	// Ежедневные задачи
	scheduler := app.NewScheduler(clock, logger)
	scheduler.AddJob("morning_broadcast", cfg.MorningAt, broadcastService.SendMorning)
	scheduler.AddJob("evening_broadcast", cfg.EveningAt, broadcastService.SendEvening)
	scheduler.AddJob("reminder_rebuild", cfg.RebuildAt, func(ctx context.Context) {
		if err := reminderService.RebuildToday(ctx); err != nil {
			logger.Error("Daily reminder rebuild failed", zap.Error(err))
		}
	})
	scheduler.Start(ctx)
	defer scheduler.Stop()

	logger.Info("Bot started successfully")
	botInstance.Start(ctx)

	logger.Info("Bot stopped")
}

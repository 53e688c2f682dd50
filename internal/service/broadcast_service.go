package service

import (
	"context"

	"github.com/mxt223/schedule_bot/internal/formatting"
	"go.uber.org/zap"
)

// MessageLog хранит id последних утренних сообщений
// (реализуется repository.MessageLogRepository)
type MessageLog interface {
	LastMessageID(ctx context.Context, chatID int64) (int, error)
	SetLastMessageID(ctx context.Context, chatID int64, messageID int) error
}

// BroadcastService рассылает утренние и вечерние сообщения во все чаты группы
type BroadcastService struct {
	schedule   *ScheduleService
	sender     MessageSender
	messageLog MessageLog
	chats      []int64
	logger     *zap.Logger
}

func NewBroadcastService(
	schedule *ScheduleService,
	sender MessageSender,
	messageLog MessageLog,
	chats []int64,
	logger *zap.Logger,
) *BroadcastService {
	return &BroadcastService{
		schedule:   schedule,
		sender:     sender,
		messageLog: messageLog,
		chats:      chats,
		logger:     logger,
	}
}

// SendMorning утреннее приветствие. Прошлое утреннее сообщение в каждом чате
// удаляется (по возможности), id нового запоминается.
func (s *BroadcastService) SendMorning(ctx context.Context) {
	if !s.schedule.Weeks().SemesterStarted(s.schedule.clock.Today()) {
		return
	}

	text := "🌅 Доброе утро!\n\n" +
		"📅 Сегодня учебный день.\n" +
		"Подробное расписание будет отправлено позже ⏰"

	for _, chatID := range s.chats {
		if oldID, err := s.messageLog.LastMessageID(ctx, chatID); err == nil && oldID != 0 {
			// сообщение могли удалить вручную, ошибку игнорируем
			if err := s.sender.Delete(ctx, chatID, oldID); err != nil {
				s.logger.Debug("Failed to delete previous morning message",
					zap.Int64("chat_id", chatID),
					zap.Error(err))
			}
		}

		messageID, err := s.sender.Send(ctx, chatID, text)
		if err != nil {
			s.logger.Error("Failed to send morning message",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
			continue
		}

		if err := s.messageLog.SetLastMessageID(ctx, chatID, messageID); err != nil {
			s.logger.Warn("Failed to record morning message id",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	}
}

// SendEvening вечерняя рассылка расписания на завтра
func (s *BroadcastService) SendEvening(ctx context.Context) {
	if !s.schedule.Weeks().SemesterStarted(s.schedule.clock.Today()) {
		return
	}

	lessons, err := s.schedule.TomorrowLessons(ctx)
	if err != nil {
		s.logger.Error("Failed to load tomorrow schedule for broadcast", zap.Error(err))
		return
	}

	text := formatting.FormatTomorrowSchedule(lessons, s.schedule.PairStartTime)

	for _, chatID := range s.chats {
		if _, err := s.sender.Send(ctx, chatID, text); err != nil {
			s.logger.Error("Failed to send evening schedule",
				zap.Int64("chat_id", chatID),
				zap.Error(err))
		}
	}
}

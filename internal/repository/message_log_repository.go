package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mxt223/schedule_bot/internal/repository/base"
	"go.uber.org/zap"
)

// MessageLogRepository запоминает id последнего утреннего сообщения по чатам,
// чтобы перед новым сообщением удалять предыдущее
type MessageLogRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewMessageLogRepository(pool *pgxpool.Pool, logger *zap.Logger) *MessageLogRepository {
	return &MessageLogRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// LastMessageID возвращает id последнего сообщения в чате, 0 если не было
func (r *MessageLogRepository) LastMessageID(ctx context.Context, chatID int64) (int, error) {
	var messageID int
	err := r.QueryRow(ctx, `SELECT message_id FROM last_messages WHERE chat_id = $1`, chatID).Scan(&messageID)
	if err != nil {
		if base.IsNotFound(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("get last message: %w", err)
	}
	return messageID, nil
}

// SetLastMessageID запоминает id отправленного сообщения
func (r *MessageLogRepository) SetLastMessageID(ctx context.Context, chatID int64, messageID int) error {
	query := `
		INSERT INTO last_messages (chat_id, message_id)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE SET message_id = EXCLUDED.message_id
	`

	if _, err := r.ExecAffected(ctx, query, chatID, messageID); err != nil {
		return fmt.Errorf("set last message: %w", err)
	}
	return nil
}

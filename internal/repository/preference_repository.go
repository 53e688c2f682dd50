package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mxt223/schedule_bot/internal/repository/base"
	"go.uber.org/zap"
)

// PreferenceRepository хранит флаг "напоминания включены" по чатам.
// Для чата без записи напоминания считаются включёнными.
type PreferenceRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewPreferenceRepository(pool *pgxpool.Pool, logger *zap.Logger) *PreferenceRepository {
	return &PreferenceRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// IsEnabled возвращает актуальный флаг для чата, true по умолчанию
func (r *PreferenceRepository) IsEnabled(ctx context.Context, chatID int64) (bool, error) {
	var enabled bool
	err := r.QueryRow(ctx, `SELECT enabled FROM reminder_settings WHERE chat_id = $1`, chatID).Scan(&enabled)
	if err != nil {
		if base.IsNotFound(err) {
			return true, nil
		}
		return true, fmt.Errorf("get reminder setting: %w", err)
	}
	return enabled, nil
}

// SetEnabled включает или выключает напоминания для чата
func (r *PreferenceRepository) SetEnabled(ctx context.Context, chatID int64, enabled bool) error {
	query := `
		INSERT INTO reminder_settings (chat_id, enabled)
		VALUES ($1, $2)
		ON CONFLICT (chat_id) DO UPDATE SET enabled = EXCLUDED.enabled
	`

	if _, err := r.ExecAffected(ctx, query, chatID, enabled); err != nil {
		return fmt.Errorf("set reminder setting: %w", err)
	}

	r.logger.Info("Reminder setting updated",
		zap.Int64("chat_id", chatID),
		zap.Bool("enabled", enabled))

	return nil
}

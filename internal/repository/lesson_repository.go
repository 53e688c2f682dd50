package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mxt223/schedule_bot/internal/model"
	"github.com/mxt223/schedule_bot/internal/repository/base"
	"go.uber.org/zap"
)

// LessonRepository каталог занятий в PostgreSQL
type LessonRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewLessonRepository(pool *pgxpool.Pool, logger *zap.Logger) *LessonRepository {
	return &LessonRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const lessonColumns = `id, day_of_week, pair_number, subject, lesson_type, week_start, week_end, room, teacher, chat_id`

// Create добавляет занятие и возвращает присвоенный id
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (day_of_week, pair_number, subject, lesson_type, week_start, week_end, room, teacher, chat_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`

	err := r.QueryRow(
		ctx, query,
		lesson.DayOfWeek,
		lesson.PairNumber,
		lesson.Subject,
		lesson.LessonType,
		lesson.Weeks.Start,
		lesson.Weeks.End,
		lesson.Room,
		lesson.Teacher,
		lesson.ChatID,
	).Scan(&lesson.ID)

	if err != nil {
		r.logger.Error("Failed to insert lesson",
			zap.String("day_of_week", string(lesson.DayOfWeek)),
			zap.Int("pair_number", lesson.PairNumber),
			zap.String("subject", lesson.Subject),
			zap.Error(err))
		return fmt.Errorf("create lesson: %w", err)
	}

	r.logger.Info("Lesson inserted",
		zap.Int64("lesson_id", lesson.ID),
		zap.String("day_of_week", string(lesson.DayOfWeek)),
		zap.Int("pair_number", lesson.PairNumber),
		zap.String("subject", lesson.Subject))

	return nil
}

// GetByDayAndWeek возвращает занятия дня, активные на указанной неделе.
// Неделя активна если week_start <= week <= week_end. Пустой результат —
// нормальная ситуация (в этот день на этой неделе пар нет).
func (r *LessonRepository) GetByDayAndWeek(ctx context.Context, day model.Weekday, week int) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		WHERE day_of_week = $1
		  AND week_start <= $2
		  AND week_end >= $2
		ORDER BY pair_number
	`

	rows, err := r.Query(ctx, query, day, week)
	if err != nil {
		return nil, fmt.Errorf("get lessons by day and week: %w", err)
	}
	defer rows.Close()

	return scanLessons(rows.Next, rows.Scan)
}

// GetAll возвращает все занятия каталога
func (r *LessonRepository) GetAll(ctx context.Context) ([]*model.Lesson, error) {
	query := `
		SELECT ` + lessonColumns + `
		FROM lessons
		ORDER BY day_of_week, pair_number
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all lessons: %w", err)
	}
	defer rows.Close()

	return scanLessons(rows.Next, rows.Scan)
}

// Update применяет частичное обновление.
// Возвращает false если занятие не найдено или патч пустой.
func (r *LessonRepository) Update(ctx context.Context, id int64, patch *model.LessonPatch) (bool, error) {
	if patch.Empty() {
		return false, nil
	}

	var sets []string
	var args []interface{}

	add := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.DayOfWeek != nil {
		add("day_of_week", *patch.DayOfWeek)
	}
	if patch.PairNumber != nil {
		add("pair_number", *patch.PairNumber)
	}
	if patch.Subject != nil {
		add("subject", *patch.Subject)
	}
	if patch.LessonType != nil {
		add("lesson_type", *patch.LessonType)
	}
	if patch.WeekStart != nil {
		add("week_start", *patch.WeekStart)
	}
	if patch.WeekEnd != nil {
		add("week_end", *patch.WeekEnd)
	}
	if patch.Room != nil {
		add("room", *patch.Room)
	}
	if patch.Teacher != nil {
		add("teacher", *patch.Teacher)
	}
	if patch.ChatID != nil {
		add("chat_id", *patch.ChatID)
	}

	args = append(args, id)
	query := fmt.Sprintf("UPDATE lessons SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args))

	affected, err := r.ExecAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update lesson: %w", err)
	}

	return affected > 0, nil
}

// Delete удаляет занятие, false если id не найден
func (r *LessonRepository) Delete(ctx context.Context, id int64) (bool, error) {
	affected, err := r.ExecAffected(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete lesson: %w", err)
	}
	return affected > 0, nil
}

func scanLessons(next func() bool, scan func(...any) error) ([]*model.Lesson, error) {
	var lessons []*model.Lesson
	for next() {
		var lesson model.Lesson
		err := scan(
			&lesson.ID,
			&lesson.DayOfWeek,
			&lesson.PairNumber,
			&lesson.Subject,
			&lesson.LessonType,
			&lesson.Weeks.Start,
			&lesson.Weeks.End,
			&lesson.Room,
			&lesson.Teacher,
			&lesson.ChatID,
		)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, &lesson)
	}
	return lessons, nil
}

package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// TimeOfDay время суток без даты, парсится из "HH:MM"
type TimeOfDay struct {
	Hour   int
	Minute int
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// At привязывает время суток к дате day (пояс берётся из day)
func (t TimeOfDay) At(day time.Time) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), t.Hour, t.Minute, 0, 0, day.Location())
}

type Config struct {
	TelegramToken string
	DBDSN         string
	Environment   string

	// Администраторы бота (могут менять расписание)
	AdminIDs []int64

	// Академические настройки
	Timezone        string
	SemesterStart   time.Time         // дата начала семестра (полночь в Timezone)
	BaseWeek        int               // номер недели на дату начала семестра
	ReminderMinutes []int             // за сколько минут до пары напоминать
	PairStartTimes  map[int]TimeOfDay // номер пары -> время начала

	// Чаты
	SubjectChats   []int64 // предметные чаты группы
	ScheduleChatID int64   // отдельный чат "только расписание"

	// Ежедневные задачи
	MorningAt TimeOfDay // утреннее приветствие
	EveningAt TimeOfDay // расписание на завтра
	RebuildAt TimeOfDay // пересбор напоминаний

	MigrationsPath string
}

func Load() (*Config, error) {
	// Пытаемся загрузить .env файл (игнорируем ошибку, если файла нет)
	if err := godotenv.Load(".env"); err != nil {
		log.Println("⚠️  No .env file found, using environment variables")
	} else {
		log.Println("✅ Loaded configuration from .env file")
	}

	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_TOKEN"),
		DBDSN:          os.Getenv("DB_DSN"),
		Environment:    getEnv("ENV", "development"),
		Timezone:       getEnv("TIMEZONE", "Asia/Tashkent"),
		BaseWeek:       getEnvInt("BASE_WEEK", 4),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "migrations"),
	}

	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is required but not set")
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}

	start, err := time.ParseInLocation("2006-01-02", getEnv("SEMESTER_START", "2026-02-02"), loc)
	if err != nil {
		return nil, fmt.Errorf("parse SEMESTER_START: %w", err)
	}
	cfg.SemesterStart = start

	cfg.ReminderMinutes, err = parseIntList(getEnv("REMINDER_MINUTES", "30,15,5"))
	if err != nil {
		return nil, fmt.Errorf("parse REMINDER_MINUTES: %w", err)
	}

	cfg.PairStartTimes, err = parsePairTimes(getEnv("PAIR_START_TIMES", "1=08:00,2=09:30,3=11:00"))
	if err != nil {
		return nil, fmt.Errorf("parse PAIR_START_TIMES: %w", err)
	}

	cfg.SubjectChats, err = parseInt64List(os.Getenv("SUBJECT_CHAT_IDS"))
	if err != nil {
		return nil, fmt.Errorf("parse SUBJECT_CHAT_IDS: %w", err)
	}
	if len(cfg.SubjectChats) == 0 {
		return nil, fmt.Errorf("SUBJECT_CHAT_IDS is required but not set")
	}

	cfg.ScheduleChatID, err = strconv.ParseInt(os.Getenv("SCHEDULE_CHAT_ID"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse SCHEDULE_CHAT_ID: %w", err)
	}

	cfg.AdminIDs, err = parseInt64List(os.Getenv("ADMIN_IDS"))
	if err != nil {
		return nil, fmt.Errorf("parse ADMIN_IDS: %w", err)
	}

	if cfg.MorningAt, err = parseTimeOfDay(getEnv("MORNING_AT", "07:00")); err != nil {
		return nil, fmt.Errorf("parse MORNING_AT: %w", err)
	}
	if cfg.EveningAt, err = parseTimeOfDay(getEnv("EVENING_AT", "20:00")); err != nil {
		return nil, fmt.Errorf("parse EVENING_AT: %w", err)
	}
	if cfg.RebuildAt, err = parseTimeOfDay(getEnv("REBUILD_AT", "20:00")); err != nil {
		return nil, fmt.Errorf("parse REBUILD_AT: %w", err)
	}

	log.Printf("Config loaded\n")

	return cfg, nil
}

// IsAdmin проверяет входит ли пользователь в список администраторов
func (c *Config) IsAdmin(userID int64) bool {
	for _, id := range c.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// AllChats предметные чаты плюс чат расписания, без дублей
func (c *Config) AllChats() []int64 {
	chats := make([]int64, 0, len(c.SubjectChats)+1)
	seen := map[int64]bool{}
	for _, id := range append(append([]int64{}, c.SubjectChats...), c.ScheduleChatID) {
		if !seen[id] {
			seen[id] = true
			chats = append(chats, id)
		}
	}
	return chats
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("⚠️  Invalid %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func parseIntList(s string) ([]int, error) {
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid number %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseInt64List(s string) ([]int64, error) {
	var out []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid id %q", part)
		}
		out = append(out, n)
	}
	return out, nil
}

func parseTimeOfDay(s string) (TimeOfDay, error) {
	var t TimeOfDay
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "%d:%d", &t.Hour, &t.Minute); err != nil {
		return t, fmt.Errorf("invalid time %q, want HH:MM", s)
	}
	if t.Hour < 0 || t.Hour > 23 || t.Minute < 0 || t.Minute > 59 {
		return t, fmt.Errorf("time %q out of range", s)
	}
	return t, nil
}

// parsePairTimes разбирает "1=08:00,2=09:30" в сетку начала пар
func parsePairTimes(s string) (map[int]TimeOfDay, error) {
	out := make(map[int]TimeOfDay)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		pair, value, ok := strings.Cut(part, "=")
		if !ok {
			return nil, fmt.Errorf("invalid pair time %q, want N=HH:MM", part)
		}
		n, err := strconv.Atoi(strings.TrimSpace(pair))
		if err != nil {
			return nil, fmt.Errorf("invalid pair number %q", pair)
		}
		t, err := parseTimeOfDay(value)
		if err != nil {
			return nil, err
		}
		out[n] = t
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no pair times configured")
	}
	return out, nil
}

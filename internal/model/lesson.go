package model

import (
	"fmt"
	"time"
)

// Weekday день недели, хранится текстом как в таблице lessons
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
)

// Weekdays учебные дни в порядке недели
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday}

// Valid проверяет что день недели учебный
func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// WeekdayFromTime переводит time.Weekday в учебный день.
// Для субботы и воскресенья возвращает false.
func WeekdayFromTime(t time.Time) (Weekday, bool) {
	switch t.Weekday() {
	case time.Monday:
		return Monday, true
	case time.Tuesday:
		return Tuesday, true
	case time.Wednesday:
		return Wednesday, true
	case time.Thursday:
		return Thursday, true
	case time.Friday:
		return Friday, true
	default:
		return "", false
	}
}

// LessonType тип занятия
type LessonType string

const (
	Lecture LessonType = "lecture"
	Seminar LessonType = "seminar"
)

func (t LessonType) Valid() bool {
	return t == Lecture || t == Seminar
}

// MaxPairNumber максимальный номер пары в сетке расписания
const MaxPairNumber = 6

// WeekRange диапазон учебных недель, обе границы включительно
type WeekRange struct {
	Start int `json:"week_start"`
	End   int `json:"week_end"`
}

// Contains проверяет попадает ли неделя в диапазон
func (r WeekRange) Contains(week int) bool {
	return r.Start <= week && week <= r.End
}

// WeekRangeFromList сворачивает перечисление недель в диапазон [min, max].
// Пропуски внутри списка при этом заполняются: {4, 6, 8} станет [4, 8].
func WeekRangeFromList(weeks []int) (WeekRange, error) {
	if len(weeks) == 0 {
		return WeekRange{}, fmt.Errorf("empty week list")
	}

	r := WeekRange{Start: weeks[0], End: weeks[0]}
	for _, w := range weeks[1:] {
		if w < r.Start {
			r.Start = w
		}
		if w > r.End {
			r.End = w
		}
	}
	return r, nil
}

// Lesson занятие в расписании группы.
// После создания меняется только через частичное обновление по id.
type Lesson struct {
	ID         int64      `json:"id"`
	DayOfWeek  Weekday    `json:"day_of_week"`
	PairNumber int        `json:"pair_number"`
	Subject    string     `json:"subject"`
	LessonType LessonType `json:"lesson_type"`
	Weeks      WeekRange  `json:"weeks"`
	Room       string     `json:"room"`
	Teacher    string     `json:"teacher"`
	ChatID     int64      `json:"chat_id"` // предметный чат, куда идут напоминания
}

// ValidationError ошибка валидации полей занятия
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid lesson field %s: %s", e.Field, e.Reason)
}

// Validate проверяет поля перед вставкой в каталог
func (l *Lesson) Validate() error {
	if !l.DayOfWeek.Valid() {
		return &ValidationError{Field: "day_of_week", Reason: fmt.Sprintf("unknown weekday %q", l.DayOfWeek)}
	}
	if l.PairNumber < 1 || l.PairNumber > MaxPairNumber {
		return &ValidationError{Field: "pair_number", Reason: fmt.Sprintf("must be 1..%d, got %d", MaxPairNumber, l.PairNumber)}
	}
	if l.Subject == "" {
		return &ValidationError{Field: "subject", Reason: "must not be empty"}
	}
	if !l.LessonType.Valid() {
		return &ValidationError{Field: "lesson_type", Reason: fmt.Sprintf("unknown type %q", l.LessonType)}
	}
	if l.Weeks.Start > l.Weeks.End {
		return &ValidationError{Field: "weeks", Reason: fmt.Sprintf("start %d after end %d", l.Weeks.Start, l.Weeks.End)}
	}
	if l.ChatID == 0 {
		return &ValidationError{Field: "chat_id", Reason: "must be set"}
	}
	return nil
}

// LessonPatch частичное обновление занятия: применяются только заполненные поля
type LessonPatch struct {
	DayOfWeek  *Weekday
	PairNumber *int
	Subject    *string
	LessonType *LessonType
	WeekStart  *int
	WeekEnd    *int
	Room       *string
	Teacher    *string
	ChatID     *int64
}

// Empty true если ни одно поле не задано
func (p *LessonPatch) Empty() bool {
	return p.DayOfWeek == nil && p.PairNumber == nil && p.Subject == nil &&
		p.LessonType == nil && p.WeekStart == nil && p.WeekEnd == nil &&
		p.Room == nil && p.Teacher == nil && p.ChatID == nil
}

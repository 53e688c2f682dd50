package service

import "time"

// WeekResolver переводит календарную дату в номер учебной недели.
// Номер растёт на единицу каждые 7 дней от начала семестра; даты до
// семестра дают номера меньше базового (вплоть до отрицательных) —
// это не ошибка, просто на таких неделях нет занятий.
type WeekResolver struct {
	semesterStart time.Time // полночь первого дня семестра
	baseWeek      int       // номер недели, на которой начался семестр
}

func NewWeekResolver(semesterStart time.Time, baseWeek int) *WeekResolver {
	return &WeekResolver{semesterStart: semesterStart, baseWeek: baseWeek}
}

// WeekNumber номер учебной недели для даты
func (r *WeekResolver) WeekNumber(date time.Time) int {
	days := daysBetween(r.semesterStart, date)
	return r.baseWeek + floorDiv(days, 7)
}

// SemesterStarted true если дата не раньше начала семестра
func (r *WeekResolver) SemesterStarted(date time.Time) bool {
	return !date.Before(r.semesterStart)
}

// SemesterStart дата начала семестра
func (r *WeekResolver) SemesterStart() time.Time {
	return r.semesterStart
}

// daysBetween целое число календарных суток от from до to
func daysBetween(from, to time.Time) int {
	fromDay := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	toDay := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(toDay.Sub(fromDay) / (24 * time.Hour))
}

// floorDiv целочисленное деление с округлением к минус бесконечности
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

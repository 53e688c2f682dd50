package timeutil

import (
	"time"

	"github.com/jmhodges/clock"
)

// DefaultTimezone часовой пояс группы, всё расписание живёт в нём
const DefaultTimezone = "Asia/Tashkent"

// Clock источник текущего времени в фиксированном часовом поясе
type Clock struct {
	clk clock.Clock
	loc *time.Location
}

// NewClock создаёт часы на системном времени
func NewClock(timezone string) (*Clock, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, err
	}
	return &Clock{clk: clock.New(), loc: loc}, nil
}

// NewClockAt создаёт часы поверх готового clock.Clock (для тестов — clock.NewFake)
func NewClockAt(clk clock.Clock, loc *time.Location) *Clock {
	return &Clock{clk: clk, loc: loc}
}

// Now текущее время в поясе группы
func (c *Clock) Now() time.Time {
	return c.clk.Now().In(c.loc)
}

// Today полночь текущей даты в поясе группы
func (c *Clock) Today() time.Time {
	now := c.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, c.loc)
}

// Location возвращает пояс группы
func (c *Clock) Location() *time.Location {
	return c.loc
}

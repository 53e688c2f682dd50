package timeutil

import "time"

// TimerHandle одноразовый таймер, который можно остановить до срабатывания.
// Stop возвращает false если колбэк уже запущен или таймер уже остановлен.
type TimerHandle interface {
	Stop() bool
}

// Timer регистрирует одноразовые задачи на момент времени.
// Колбэк вызывается не раньше at и не более одного раза.
type Timer interface {
	Schedule(at time.Time, fn func()) TimerHandle
}

// WallTimer реализация Timer на time.AfterFunc
type WallTimer struct {
	clock *Clock
}

// NewWallTimer создаёт таймер на системных часах
func NewWallTimer(clock *Clock) *WallTimer {
	return &WallTimer{clock: clock}
}

// Schedule взводит таймер на at; прошедший момент срабатывает сразу
func (t *WallTimer) Schedule(at time.Time, fn func()) TimerHandle {
	delay := at.Sub(t.clock.Now())
	if delay < 0 {
		delay = 0
	}
	return time.AfterFunc(delay, fn)
}

package service

import (
	"context"
	"sync"
	"time"

	"github.com/jmhodges/clock"
	"github.com/mxt223/schedule_bot/internal/config"
	"github.com/mxt223/schedule_bot/internal/model"
	"github.com/mxt223/schedule_bot/internal/timeutil"
	"go.uber.org/zap"
)

// fakeLessonStore каталог в памяти с той же семантикой фильтра, что и SQL
type fakeLessonStore struct {
	mu      sync.Mutex
	lessons []*model.Lesson
	nextID  int64
	err     error

	lastDay  model.Weekday
	lastWeek int
}

func (s *fakeLessonStore) Create(_ context.Context, lesson *model.Lesson) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.nextID++
	lesson.ID = s.nextID
	copied := *lesson
	s.lessons = append(s.lessons, &copied)
	return nil
}

func (s *fakeLessonStore) GetByDayAndWeek(_ context.Context, day model.Weekday, week int) ([]*model.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.lastDay = day
	s.lastWeek = week

	var result []*model.Lesson
	for _, lesson := range s.lessons {
		if lesson.DayOfWeek == day && lesson.Weeks.Contains(week) {
			result = append(result, lesson)
		}
	}
	return result, nil
}

func (s *fakeLessonStore) GetAll(_ context.Context) ([]*model.Lesson, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	return append([]*model.Lesson{}, s.lessons...), nil
}

func (s *fakeLessonStore) Update(_ context.Context, id int64, patch *model.LessonPatch) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if patch.Empty() {
		return false, nil
	}
	for _, lesson := range s.lessons {
		if lesson.ID != id {
			continue
		}
		if patch.Subject != nil {
			lesson.Subject = *patch.Subject
		}
		if patch.Room != nil {
			lesson.Room = *patch.Room
		}
		if patch.WeekStart != nil {
			lesson.Weeks.Start = *patch.WeekStart
		}
		if patch.WeekEnd != nil {
			lesson.Weeks.End = *patch.WeekEnd
		}
		return true, nil
	}
	return false, nil
}

func (s *fakeLessonStore) Delete(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, lesson := range s.lessons {
		if lesson.ID == id {
			s.lessons = append(s.lessons[:i], s.lessons[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// fakeTimer собирает зарегистрированные задачи; срабатывание только вручную
type fakeTimer struct {
	mu      sync.Mutex
	entries []*fakeTimerEntry
}

type fakeTimerEntry struct {
	mu      sync.Mutex
	at      time.Time
	fn      func()
	stopped bool
}

func (e *fakeTimerEntry) Stop() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return false
	}
	e.stopped = true
	return true
}

func (t *fakeTimer) Schedule(at time.Time, fn func()) timeutil.TimerHandle {
	t.mu.Lock()
	defer t.mu.Unlock()
	entry := &fakeTimerEntry{at: at, fn: fn}
	t.entries = append(t.entries, entry)
	return entry
}

// fireDue запускает все неостановленные задачи с at <= now
func (t *fakeTimer) fireDue(now time.Time) {
	t.mu.Lock()
	entries := append([]*fakeTimerEntry{}, t.entries...)
	t.mu.Unlock()

	for _, entry := range entries {
		entry.mu.Lock()
		due := !entry.stopped && !entry.at.After(now)
		if due {
			entry.stopped = true
		}
		entry.mu.Unlock()
		if due {
			entry.fn()
		}
	}
}

// fakeReminderDispatcher запоминает доставленные напоминания
type fakeReminderDispatcher struct {
	mu        sync.Mutex
	delivered []deliveredReminder
}

type deliveredReminder struct {
	lessonID int64
	minutes  int
}

func (d *fakeReminderDispatcher) DispatchReminder(_ context.Context, lesson *model.Lesson, minutes int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delivered = append(d.delivered, deliveredReminder{lessonID: lesson.ID, minutes: minutes})
}

func (d *fakeReminderDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.delivered)
}

// fakePrefs настройки напоминаний в памяти
type fakePrefs struct {
	disabled map[int64]bool
	err      error
}

func (p *fakePrefs) IsEnabled(_ context.Context, chatID int64) (bool, error) {
	if p.err != nil {
		return true, p.err
	}
	return !p.disabled[chatID], nil
}

func (p *fakePrefs) SetEnabled(_ context.Context, chatID int64, enabled bool) error {
	if p.disabled == nil {
		p.disabled = map[int64]bool{}
	}
	p.disabled[chatID] = !enabled
	return nil
}

// fakeSender канал доставки в памяти
type fakeSender struct {
	mu      sync.Mutex
	sent    []sentMessage
	deleted []sentMessage
	nextID  int
	sendErr error
}

type sentMessage struct {
	chatID    int64
	text      string
	messageID int
}

func (s *fakeSender) Send(_ context.Context, chatID int64, text string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return 0, s.sendErr
	}
	s.nextID++
	s.sent = append(s.sent, sentMessage{chatID: chatID, text: text, messageID: s.nextID})
	return s.nextID, nil
}

func (s *fakeSender) Delete(_ context.Context, chatID int64, messageID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deleted = append(s.deleted, sentMessage{chatID: chatID, messageID: messageID})
	return nil
}

// fakeMessageLog журнал последних сообщений в памяти
type fakeMessageLog struct {
	ids map[int64]int
}

func (l *fakeMessageLog) LastMessageID(_ context.Context, chatID int64) (int, error) {
	return l.ids[chatID], nil
}

func (l *fakeMessageLog) SetLastMessageID(_ context.Context, chatID int64, messageID int) error {
	if l.ids == nil {
		l.ids = map[int64]int{}
	}
	l.ids[chatID] = messageID
	return nil
}

// defaultPairTimes сетка звонков из продакшен-конфигурации
func defaultPairTimes() map[int]config.TimeOfDay {
	return map[int]config.TimeOfDay{
		1: {Hour: 8, Minute: 0},
		2: {Hour: 9, Minute: 30},
		3: {Hour: 11, Minute: 0},
	}
}

// newTestClock фиксированные часы в поясе группы
func newTestClock(t time.Time) (*timeutil.Clock, clock.FakeClock) {
	fake := clock.NewFake()
	fake.Set(t)
	return timeutil.NewClockAt(fake, t.Location()), fake
}

func testLocation() *time.Location {
	loc, err := time.LoadLocation("Asia/Tashkent")
	if err != nil {
		panic(err)
	}
	return loc
}

// newTestSchedule собирает ScheduleService на фейковом каталоге
func newTestSchedule(store *fakeLessonStore, clk *timeutil.Clock, semesterStart time.Time, baseWeek int) *ScheduleService {
	return NewScheduleService(
		store,
		NewWeekResolver(semesterStart, baseWeek),
		clk,
		defaultPairTimes(),
		zap.NewNop(),
	)
}

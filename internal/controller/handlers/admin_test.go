package handlers

import (
	"testing"

	"github.com/mxt223/schedule_bot/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLessonArgs(t *testing.T) {
	lesson, err := parseLessonArgs("monday|1|lecture|4-8|-1001234567890|Стратегический менеджмент|ауд. 101|Иванова А.А.")
	require.NoError(t, err)

	assert.Equal(t, model.Monday, lesson.DayOfWeek)
	assert.Equal(t, 1, lesson.PairNumber)
	assert.Equal(t, model.Lecture, lesson.LessonType)
	assert.Equal(t, model.WeekRange{Start: 4, End: 8}, lesson.Weeks)
	assert.Equal(t, int64(-1001234567890), lesson.ChatID)
	assert.Equal(t, "Стратегический менеджмент", lesson.Subject)
	assert.Equal(t, "ауд. 101", lesson.Room)
	assert.Equal(t, "Иванова А.А.", lesson.Teacher)
}

func TestParseLessonArgs_Errors(t *testing.T) {
	tests := []struct {
		name string
		args string
	}{
		{
			name: "too few fields",
			args: "monday|1|lecture|4-8",
		},
		{
			name: "pair not a number",
			args: "monday|first|lecture|4-8|-100500|Предмет|ауд. 101|Иванова",
		},
		{
			name: "bad weeks",
			args: "monday|1|lecture|четыре|-100500|Предмет|ауд. 101|Иванова",
		},
		{
			name: "bad chat id",
			args: "monday|1|lecture|4-8|chat|Предмет|ауд. 101|Иванова",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLessonArgs(tt.args)
			assert.Error(t, err)
		})
	}
}

func TestParseLessonPatch(t *testing.T) {
	patch, err := parseLessonPatch("room=ауд. 202; weeks=10-15;pair=2")
	require.NoError(t, err)

	require.NotNil(t, patch.Room)
	assert.Equal(t, "ауд. 202", *patch.Room)
	require.NotNil(t, patch.WeekStart)
	require.NotNil(t, patch.WeekEnd)
	assert.Equal(t, 10, *patch.WeekStart)
	assert.Equal(t, 15, *patch.WeekEnd)
	require.NotNil(t, patch.PairNumber)
	assert.Equal(t, 2, *patch.PairNumber)
	assert.Nil(t, patch.Subject)
}

func TestParseLessonPatch_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields string
	}{
		{name: "unknown field", fields: "color=red"},
		{name: "missing equals", fields: "room"},
		{name: "bad day", fields: "day=sunday"},
		{name: "bad type", fields: "type=lab"},
		{name: "bad pair", fields: "pair=two"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseLessonPatch(tt.fields)
			assert.Error(t, err)
		})
	}
}

func TestParseWeeks(t *testing.T) {
	tests := []struct {
		input   string
		want    model.WeekRange
		wantErr bool
	}{
		{input: "4-8", want: model.WeekRange{Start: 4, End: 8}},
		{input: " 4 - 8 ", want: model.WeekRange{Start: 4, End: 8}},
		{input: "4,6,8", want: model.WeekRange{Start: 4, End: 8}},
		{input: "6", want: model.WeekRange{Start: 6, End: 6}},
		{input: "четыре", wantErr: true},
		{input: "4-", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseWeeks(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package model

// WeekLoad сводка нагрузки на учебную неделю
type WeekLoad struct {
	Week       int             `json:"week"`
	Lectures   int             `json:"lectures"`
	Seminars   int             `json:"seminars"`
	TotalHours int             `json:"total_hours"`
	DayHours   map[Weekday]int `json:"day_hours"` // академические часы по дням (пара = 2 часа)
	HardestDay Weekday         `json:"hardest_day"`
	EasiestDay Weekday         `json:"easiest_day"`
}

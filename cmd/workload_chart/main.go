package main

import (
	"fmt"
	"os"

	"github.com/mxt223/schedule_bot/internal/chart"
	"github.com/mxt223/schedule_bot/internal/model"
)

// Утилита для проверки рендера диаграммы нагрузки без запуска бота
func main() {
	load := &model.WeekLoad{
		Week:       6,
		Lectures:   4,
		Seminars:   5,
		TotalHours: 18,
		DayHours: map[model.Weekday]int{
			model.Monday:    6,
			model.Tuesday:   2,
			model.Wednesday: 4,
			model.Thursday:  0,
			model.Friday:    6,
		},
		HardestDay: model.Monday,
		EasiestDay: model.Thursday,
	}

	imageData, err := chart.RenderWorkload(load)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	filename := "workload_chart.png"
	if err := os.WriteFile(filename, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение сохранено в %s (%d байт)\n", filename, len(imageData))
}

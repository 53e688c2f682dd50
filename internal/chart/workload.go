package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/mxt223/schedule_bot/internal/model"
	"golang.org/x/image/font/basicfont"
)

// Константы размеров и отступов
const (
	imageWidth   = 900
	imageHeight  = 500
	headerHeight = 70
	marginX      = 60.0
	marginBottom = 60.0
	barGap       = 30.0
	barRadius    = 6.0
	axisPadding  = 10.0
)

// Цветовая схема
var (
	bgColor       = color.RGBA{245, 246, 248, 255}
	textColor     = color.RGBA{80, 85, 90, 220}
	axisColor     = color.NRGBA{150, 150, 150, 255}
	barColor      = color.RGBA{133, 193, 85, 220}
	barPeakColor  = color.RGBA{255, 99, 71, 200}
	barLabelColor = color.RGBA{20, 24, 28, 230}
)

// подписи дней: basicfont не умеет кириллицу, оставляем латиницу
var dayLabels = map[model.Weekday]string{
	model.Monday:    "Mon",
	model.Tuesday:   "Tue",
	model.Wednesday: "Wed",
	model.Thursday:  "Thu",
	model.Friday:    "Fri",
}

// RenderWorkload рисует столбчатую диаграмму часов по дням недели и
// возвращает PNG
func RenderWorkload(load *model.WeekLoad) ([]byte, error) {
	dc := gg.NewContext(imageWidth, imageHeight)
	dc.SetColor(bgColor)
	dc.Clear()
	dc.SetFontFace(basicfont.Face7x13)

	drawHeader(dc, load)
	drawBars(dc, load)

	return encodeImage(dc)
}

func drawHeader(dc *gg.Context, load *model.WeekLoad) {
	dc.SetColor(textColor)
	title := fmt.Sprintf("Week %d workload: %d h total (%d lectures, %d seminars)",
		load.Week, load.TotalHours, load.Lectures, load.Seminars)
	dc.DrawStringAnchored(title, imageWidth/2, headerHeight/2, 0.5, 0.5)
}

func drawBars(dc *gg.Context, load *model.WeekLoad) {
	maxHours := 0
	for _, day := range model.Weekdays {
		if load.DayHours[day] > maxHours {
			maxHours = load.DayHours[day]
		}
	}
	if maxHours == 0 {
		dc.SetColor(textColor)
		dc.DrawStringAnchored("no lessons this week", imageWidth/2, imageHeight/2, 0.5, 0.5)
		return
	}

	plotHeight := float64(imageHeight) - headerHeight - marginBottom
	plotWidth := float64(imageWidth) - 2*marginX
	barWidth := (plotWidth - barGap*float64(len(model.Weekdays)-1)) / float64(len(model.Weekdays))
	baseY := float64(imageHeight) - marginBottom

	// ось X
	dc.SetColor(axisColor)
	dc.SetLineWidth(1)
	dc.DrawLine(marginX-axisPadding, baseY, float64(imageWidth)-marginX+axisPadding, baseY)
	dc.Stroke()

	for i, day := range model.Weekdays {
		hours := load.DayHours[day]
		x := marginX + float64(i)*(barWidth+barGap)
		barHeight := plotHeight * float64(hours) / float64(maxHours)

		if hours > 0 {
			if day == load.HardestDay {
				dc.SetColor(barPeakColor)
			} else {
				dc.SetColor(barColor)
			}
			dc.DrawRoundedRectangle(x, baseY-barHeight, barWidth, barHeight, barRadius)
			dc.Fill()

			dc.SetColor(barLabelColor)
			dc.DrawStringAnchored(fmt.Sprintf("%d h", hours), x+barWidth/2, baseY-barHeight-12, 0.5, 0.5)
		}

		dc.SetColor(textColor)
		dc.DrawStringAnchored(dayLabels[day], x+barWidth/2, baseY+20, 0.5, 0.5)
	}
}

func encodeImage(dc *gg.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode workload chart: %w", err)
	}
	return buf.Bytes(), nil
}

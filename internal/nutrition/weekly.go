package nutrition

import (
	"time"

	"fridjy/internal/models"
)

// WeekDays is the length of the trailing series, today included.
const WeekDays = 7

// UnderGoalRatio is the share of the goal below which a day counts as under.
const UnderGoalRatio = 0.8

// DayStatus classifies one day's intake against the calorie goal.
type DayStatus string

const (
	DayOver   DayStatus = "over"
	DayUnder  DayStatus = "under"
	DayMet    DayStatus = "met"
	DayNoData DayStatus = "none"
)

// DayPoint is one entry of the weekly series.
type DayPoint struct {
	models.DailyLog
	Status DayStatus `json:"status"`
}

// ClassifyDay compares calories with goal. Zero calories means nothing was
// logged that day.
func ClassifyDay(calories float64, goal int) DayStatus {
	g := float64(goal)
	switch {
	case calories == 0:
		return DayNoData
	case calories > g:
		return DayOver
	case calories < UnderGoalRatio*g:
		return DayUnder
	default:
		return DayMet
	}
}

// WeeklySeries returns the trailing seven UTC calendar days ending on now,
// oldest first. Days without a log are zero-filled.
func WeeklySeries(now time.Time, logs []models.DailyLog, goal int) []DayPoint {
	byDate := make(map[string]models.DailyLog, len(logs))
	for _, l := range logs {
		byDate[l.Date] = l
	}

	today := now.UTC()
	series := make([]DayPoint, 0, WeekDays)
	for i := WeekDays - 1; i >= 0; i-- {
		date := models.FormatDate(today.AddDate(0, 0, -i))
		l, ok := byDate[date]
		if !ok {
			l = models.DailyLog{Date: date}
		}
		series = append(series, DayPoint{DailyLog: l, Status: ClassifyDay(l.Calories, goal)})
	}
	return series
}

package services

import (
	"time"

	"github.com/yukikurage/workboard-api/internal/models"
)

// TaskHours is the total time booked against one task
type TaskHours struct {
	TaskID    string
	TaskTitle string
	Hours     float64
}

// TimeLogSummary is the dashboard view of a set of entries
type TimeLogSummary struct {
	TotalHours float64
	WeekStart  time.Time
	WeekHours  float64
	ByWeekday  [7]float64
	ByTask     []TaskHours
}

// DateOnly drops the clock part of t, keeping the calendar date it names in
// its own location. The result is midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns the Sunday that begins the week containing ref
func WeekStart(ref time.Time) time.Time {
	day := DateOnly(ref)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// TotalHours sums the hours of every entry
func TotalHours(entries []models.TimeLogEntry) float64 {
	var total float64
	for _, entry := range entries {
		total += entry.Hours
	}
	return total
}

// AggregateByTask sums hours per task, listing tasks in order of first
// appearance
func AggregateByTask(entries []models.TimeLogEntry) []TaskHours {
	result := []TaskHours{}
	index := make(map[string]int)

	for _, entry := range entries {
		i, ok := index[entry.TaskID]
		if !ok {
			i = len(result)
			index[entry.TaskID] = i
			result = append(result, TaskHours{TaskID: entry.TaskID, TaskTitle: entry.TaskTitle})
		}
		result[i].Hours += entry.Hours
	}

	return result
}

// AggregateByWeek sums the hours dated within the Sunday-to-Saturday week
// containing ref. Both ends are inclusive.
func AggregateByWeek(entries []models.TimeLogEntry, ref time.Time) float64 {
	var total float64
	for _, entry := range entries {
		if inWeek(entry.Date, ref) {
			total += entry.Hours
		}
	}
	return total
}

// AggregateByWeekday splits the week containing ref into per-day totals,
// indexed by time.Weekday
func AggregateByWeekday(entries []models.TimeLogEntry, ref time.Time) [7]float64 {
	var days [7]float64
	for _, entry := range entries {
		if inWeek(entry.Date, ref) {
			days[DateOnly(entry.Date).Weekday()] += entry.Hours
		}
	}
	return days
}

// Summarize builds every aggregate at once
func Summarize(entries []models.TimeLogEntry, ref time.Time) *TimeLogSummary {
	return &TimeLogSummary{
		TotalHours: TotalHours(entries),
		WeekStart:  WeekStart(ref),
		WeekHours:  AggregateByWeek(entries, ref),
		ByWeekday:  AggregateByWeekday(entries, ref),
		ByTask:     AggregateByTask(entries),
	}
}

func inWeek(date, ref time.Time) bool {
	start := WeekStart(ref)
	day := DateOnly(date)
	return !day.Before(start) && day.Before(start.AddDate(0, 0, 7))
}

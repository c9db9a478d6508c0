package dto

import (
	"time"

	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/services"
)

// TimeLogDTO represents a time log entry in API responses
type TimeLogDTO struct {
	ID          string  `json:"id"`
	TaskID      string  `json:"task_id"`
	TaskTitle   string  `json:"task_title"`
	Date        string  `json:"date"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	User        UserDTO `json:"user"`
}

// TaskHoursDTO is the time booked against one task
type TaskHoursDTO struct {
	TaskID    string  `json:"task_id"`
	TaskTitle string  `json:"task_title"`
	Hours     float64 `json:"hours"`
}

// WeekdayHoursDTO is the time booked on one day of a week
type WeekdayHoursDTO struct {
	Day   string  `json:"day"`
	Date  string  `json:"date"`
	Hours float64 `json:"hours"`
}

// WeekDTO is the Sunday-to-Saturday week around a reference date
type WeekDTO struct {
	Start string            `json:"start"`
	End   string            `json:"end"`
	Hours float64           `json:"hours"`
	Days  []WeekdayHoursDTO `json:"days"`
}

// TimeLogSummaryDTO represents the time tracking dashboard
type TimeLogSummaryDTO struct {
	TotalHours float64        `json:"total_hours"`
	Week       WeekDTO        `json:"week"`
	ByTask     []TaskHoursDTO `json:"by_task"`
}

// ToTimeLogDTO converts a TimeLogEntry model to TimeLogDTO
func ToTimeLogDTO(entry models.TimeLogEntry) TimeLogDTO {
	return TimeLogDTO{
		ID:          entry.ID,
		TaskID:      entry.TaskID,
		TaskTitle:   entry.TaskTitle,
		Date:        entry.Date.Format(constants.DateLayout),
		Hours:       entry.Hours,
		Description: entry.Description,
		User:        ToUserDTO(entry.User),
	}
}

// ToTimeLogDTOs converts a slice of entries
func ToTimeLogDTOs(entries []models.TimeLogEntry) []TimeLogDTO {
	dtos := make([]TimeLogDTO, len(entries))
	for i, entry := range entries {
		dtos[i] = ToTimeLogDTO(entry)
	}
	return dtos
}

// ToTaskHoursDTOs converts per-task totals
func ToTaskHoursDTOs(totals []services.TaskHours) []TaskHoursDTO {
	dtos := make([]TaskHoursDTO, len(totals))
	for i, total := range totals {
		dtos[i] = TaskHoursDTO{
			TaskID:    total.TaskID,
			TaskTitle: total.TaskTitle,
			Hours:     total.Hours,
		}
	}
	return dtos
}

// ToWeekDTO converts weekly totals starting at the given Sunday
func ToWeekDTO(start time.Time, hours float64, byWeekday [7]float64) WeekDTO {
	week := WeekDTO{
		Start: start.Format(constants.DateLayout),
		End:   start.AddDate(0, 0, 6).Format(constants.DateLayout),
		Hours: hours,
		Days:  make([]WeekdayHoursDTO, 0, len(byWeekday)),
	}

	for i, h := range byWeekday {
		date := start.AddDate(0, 0, i)
		week.Days = append(week.Days, WeekdayHoursDTO{
			Day:   date.Weekday().String(),
			Date:  date.Format(constants.DateLayout),
			Hours: h,
		})
	}

	return week
}

// ToTimeLogSummaryDTO converts a summary
func ToTimeLogSummaryDTO(summary *services.TimeLogSummary) TimeLogSummaryDTO {
	return TimeLogSummaryDTO{
		TotalHours: summary.TotalHours,
		Week:       ToWeekDTO(summary.WeekStart, summary.WeekHours, summary.ByWeekday),
		ByTask:     ToTaskHoursDTOs(summary.ByTask),
	}
}

package models

import "time"

// TimeLogEntry records hours a user spent on a task on a given day.
type TimeLogEntry struct {
	ID          string    `json:"id"`
	TaskID      string    `json:"task_id"`
	TaskTitle   string    `json:"task_title"`
	Date        time.Time `json:"date"`
	Hours       float64   `json:"hours"`
	Description string    `json:"description"`
	User        UserRef   `json:"user"`
}

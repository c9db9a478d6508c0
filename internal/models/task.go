package models

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusInReview   TaskStatus = "in-review"
	TaskStatusDone       TaskStatus = "done"
)

// TaskStatuses lists the board columns in display order.
var TaskStatuses = []TaskStatus{
	TaskStatusTodo,
	TaskStatusInProgress,
	TaskStatusInReview,
	TaskStatusDone,
}

// Valid reports whether s is one of the four board columns.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusInReview, TaskStatusDone:
		return true
	}
	return false
}

// Title returns the column heading for the status.
func (s TaskStatus) Title() string {
	switch s {
	case TaskStatusTodo:
		return "To Do"
	case TaskStatusInProgress:
		return "In Progress"
	case TaskStatusInReview:
		return "In Review"
	case TaskStatusDone:
		return "Done"
	}
	return string(s)
}

type TaskPriority string

const (
	PriorityHighest TaskPriority = "highest"
	PriorityHigh    TaskPriority = "high"
	PriorityMedium  TaskPriority = "medium"
	PriorityLow     TaskPriority = "low"
	PriorityLowest  TaskPriority = "lowest"
)

// Rank orders priorities highest=5 down to lowest=1. Unknown values rank 0.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHighest:
		return 5
	case PriorityHigh:
		return 4
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 2
	case PriorityLowest:
		return 1
	}
	return 0
}

func (p TaskPriority) Valid() bool {
	return p.Rank() > 0
}

type IssueType string

const (
	IssueTypeTask  IssueType = "task"
	IssueTypeBug   IssueType = "bug"
	IssueTypeStory IssueType = "story"
	IssueTypeEpic  IssueType = "epic"
)

func (t IssueType) Valid() bool {
	switch t {
	case IssueTypeTask, IssueTypeBug, IssueTypeStory, IssueTypeEpic:
		return true
	}
	return false
}

type Task struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description,omitempty"`
	IssueType     IssueType    `json:"issue_type"`
	Status        TaskStatus   `json:"status"`
	Priority      TaskPriority `json:"priority"`
	Assignee      *UserRef     `json:"assignee,omitempty"`
	Reporter      *UserRef     `json:"reporter,omitempty"`
	DueDate       *time.Time   `json:"due_date,omitempty"`
	Tags          []string     `json:"tags"`
	EstimateHours *float64     `json:"estimate_hours,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Clone returns a deep copy so callers can never alias store state.
func (t Task) Clone() Task {
	c := t
	if t.Assignee != nil {
		a := *t.Assignee
		c.Assignee = &a
	}
	if t.Reporter != nil {
		r := *t.Reporter
		c.Reporter = &r
	}
	if t.DueDate != nil {
		d := *t.DueDate
		c.DueDate = &d
	}
	if t.EstimateHours != nil {
		e := *t.EstimateHours
		c.EstimateHours = &e
	}
	c.Tags = append([]string(nil), t.Tags...)
	return c
}

// HasTag reports whether the task carries tag.
func (t Task) HasTag(tag string) bool {
	for _, existing := range t.Tags {
		if existing == tag {
			return true
		}
	}
	return false
}

// Project returns the project key the ID was allocated under ("WEB" for
// "WEB-12").
func (t Task) Project() string {
	i := strings.LastIndex(t.ID, "-")
	if i <= 0 {
		return ""
	}
	return t.ID[:i]
}

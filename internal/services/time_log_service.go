package services

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/repository"
)

var (
	ErrTimeLogNotFound = errors.New("time log entry not found")
	ErrTaskRequired    = validationError("a task must be selected")
	ErrInvalidHours    = validationError("hours must be a positive number")
	ErrDateRequired    = validationError("date is required")
	ErrUnknownTask     = validationError("selected task does not exist")
)

// TaskLookup resolves the task a time log entry is booked against.
// TaskService satisfies it.
type TaskLookup interface {
	GetTask(taskID string) (*models.Task, error)
}

// TimeLogService handles time tracking business logic
type TimeLogService struct {
	repo  repository.TimeLogRepository
	tasks TaskLookup
	newID func() string
}

// NewTimeLogService creates a new TimeLogService. With a nil TaskLookup,
// entries are accepted for any non-empty task ID.
func NewTimeLogService(repo repository.TimeLogRepository, tasks TaskLookup) *TimeLogService {
	return &TimeLogService{
		repo:  repo,
		tasks: tasks,
		newID: uuid.NewString,
	}
}

// TimeLogInput represents input for logging time
type TimeLogInput struct {
	TaskID      string
	Date        time.Time
	Hours       float64
	Description string
	User        models.UserRef
}

// UpdateTimeLogInput represents input for editing an entry. Nil fields are
// left untouched.
type UpdateTimeLogInput struct {
	TaskID      *string
	Date        *time.Time
	Hours       *float64
	Description *string
}

// ListTimeLogsInput represents filters for listing entries
type ListTimeLogsInput struct {
	TaskID    *string
	UserID    *string
	TextQuery string
}

// AddEntry validates input and appends a new entry with a fresh ID
func (s *TimeLogService) AddEntry(input TimeLogInput) (*models.TimeLogEntry, error) {
	taskID := strings.TrimSpace(input.TaskID)
	if taskID == "" {
		return nil, ErrTaskRequired
	}
	if input.Date.IsZero() {
		return nil, ErrDateRequired
	}
	if !validHours(input.Hours) {
		return nil, ErrInvalidHours
	}

	title, err := s.taskTitle(taskID)
	if err != nil {
		return nil, err
	}

	entry := &models.TimeLogEntry{
		ID:          s.newID(),
		TaskID:      taskID,
		TaskTitle:   title,
		Date:        DateOnly(input.Date),
		Hours:       input.Hours,
		Description: input.Description,
		User:        input.User,
	}

	if err := s.repo.Create(entry); err != nil {
		return nil, fmt.Errorf("failed to create time log entry: %w", err)
	}

	return entry, nil
}

// GetEntry returns a single entry
func (s *TimeLogService) GetEntry(entryID string) (*models.TimeLogEntry, error) {
	entry, err := s.repo.FindByID(entryID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrTimeLogNotFound
		}
		return nil, fmt.Errorf("failed to find time log entry: %w", err)
	}
	return entry, nil
}

// UpdateEntry edits an existing entry in place. Its ID and author never
// change, and the edit is applied atomically.
func (s *TimeLogService) UpdateEntry(entryID string, input UpdateTimeLogInput) (*models.TimeLogEntry, error) {
	var taskID, title string
	if input.TaskID != nil {
		taskID = strings.TrimSpace(*input.TaskID)
		if taskID == "" {
			return nil, ErrTaskRequired
		}
	}
	if input.Date != nil && input.Date.IsZero() {
		return nil, ErrDateRequired
	}
	if input.Hours != nil && !validHours(*input.Hours) {
		return nil, ErrInvalidHours
	}

	if taskID != "" {
		if _, err := s.GetEntry(entryID); err != nil {
			return nil, err
		}
		var err error
		if title, err = s.taskTitle(taskID); err != nil {
			return nil, err
		}
	}

	entry, err := s.repo.Patch(entryID, func(entry *models.TimeLogEntry) error {
		if taskID != "" && taskID != entry.TaskID {
			entry.TaskID = taskID
			entry.TaskTitle = title
		}
		if input.Date != nil {
			entry.Date = DateOnly(*input.Date)
		}
		if input.Hours != nil {
			entry.Hours = *input.Hours
		}
		if input.Description != nil {
			entry.Description = *input.Description
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrTimeLogNotFound
		}
		return nil, fmt.Errorf("failed to update time log entry: %w", err)
	}

	return entry, nil
}

// DeleteEntry removes an entry. Deleting an unknown ID is not an error.
func (s *TimeLogService) DeleteEntry(entryID string) error {
	if err := s.repo.Delete(entryID); err != nil {
		return fmt.Errorf("failed to delete time log entry: %w", err)
	}
	return nil
}

// ListEntries returns the entries matching every provided filter, in
// insertion order
func (s *TimeLogService) ListEntries(input ListTimeLogsInput) ([]models.TimeLogEntry, error) {
	entries, err := s.repo.List(repository.TimeLogFilter{
		TaskID:    input.TaskID,
		UserID:    input.UserID,
		TextQuery: input.TextQuery,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list time log entries: %w", err)
	}
	return entries, nil
}

// Summary aggregates the entries matching input around the week containing ref
func (s *TimeLogService) Summary(input ListTimeLogsInput, ref time.Time) (*TimeLogSummary, error) {
	entries, err := s.ListEntries(input)
	if err != nil {
		return nil, err
	}
	return Summarize(entries, ref), nil
}

func (s *TimeLogService) taskTitle(taskID string) (string, error) {
	if s.tasks == nil {
		return "", nil
	}

	task, err := s.tasks.GetTask(taskID)
	if err != nil {
		if errors.Is(err, ErrTaskNotFound) {
			return "", ErrUnknownTask
		}
		return "", err
	}
	return task.Title, nil
}

// ParseHours parses user-entered hours such as "2.5"
func ParseHours(raw string) (float64, error) {
	hours, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !validHours(hours) {
		return 0, ErrInvalidHours
	}
	return hours, nil
}

func validHours(hours float64) bool {
	return hours > 0 && isFinite(hours)
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

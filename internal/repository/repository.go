package repository

import (
	"errors"

	"github.com/yukikurage/workboard-api/internal/models"
)

var (
	// ErrRecordNotFound is returned when a lookup matches nothing.
	ErrRecordNotFound = errors.New("record not found")
	// ErrDuplicateKey is returned when creating a record whose ID is taken.
	ErrDuplicateKey = errors.New("duplicate key")
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create stores a new task; the ID must be unused
	Create(task *models.Task) error

	// FindByID finds a task by ID
	FindByID(id string) (*models.Task, error)

	// List retrieves tasks matching filter in insertion order
	List(filter TaskFilter) ([]models.Task, error)

	// Patch applies fn to a copy of the stored task under the write lock and
	// stores the result. When fn fails the stored task is left unchanged.
	Patch(id string, fn func(task *models.Task) error) (*models.Task, error)

	// UpdateStatus changes only the status of a task
	UpdateStatus(id string, status models.TaskStatus) error

	// MaxSequence returns the highest number used with the given ID prefix
	MaxSequence(prefix string) int

	// CountByStatus counts tasks per status
	CountByStatus() map[models.TaskStatus]int
}

// TaskFilter holds filtering options for listing tasks. All set fields must
// match.
type TaskFilter struct {
	Project    *string
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	TextQuery  string
	AssigneeID *string
	Tag        *string
}

// TimeLogRepository defines the interface for time log data access
type TimeLogRepository interface {
	// Create stores a new entry; the ID must be unused
	Create(entry *models.TimeLogEntry) error

	// FindByID finds an entry by ID
	FindByID(id string) (*models.TimeLogEntry, error)

	// List retrieves entries matching filter in insertion order
	List(filter TimeLogFilter) ([]models.TimeLogEntry, error)

	// Patch applies fn to a copy of the stored entry under the write lock and
	// stores the result. When fn fails the stored entry is left unchanged.
	Patch(id string, fn func(entry *models.TimeLogEntry) error) (*models.TimeLogEntry, error)

	// Delete removes an entry; deleting a missing entry is not an error
	Delete(id string) error

	// Count returns the number of stored entries
	Count() int
}

// TimeLogFilter holds filtering options for listing time log entries
type TimeLogFilter struct {
	TaskID    *string
	UserID    *string
	TextQuery string
}

// UserRepository defines the interface for user reference data
type UserRepository interface {
	// FindByID finds a user by ID
	FindByID(id string) (*models.UserRef, error)

	// List returns all users in registration order
	List() ([]models.UserRef, error)
}

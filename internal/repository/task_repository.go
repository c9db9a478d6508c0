package repository

import (
	"strconv"
	"strings"
	"sync"

	"github.com/yukikurage/workboard-api/internal/models"
)

// MemoryTaskRepository is an in-memory implementation of TaskRepository.
// Tasks keep their insertion order; callers only ever see copies.
type MemoryTaskRepository struct {
	mu    sync.RWMutex
	tasks []models.Task
	index map[string]int
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository() TaskRepository {
	return &MemoryTaskRepository{
		index: make(map[string]int),
	}
}

// Create creates a new task
func (r *MemoryTaskRepository) Create(task *models.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[task.ID]; exists {
		return ErrDuplicateKey
	}

	r.index[task.ID] = len(r.tasks)
	r.tasks = append(r.tasks, task.Clone())
	return nil
}

// FindByID finds a task by ID
func (r *MemoryTaskRepository) FindByID(id string) (*models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	task := r.tasks[i].Clone()
	return &task, nil
}

// List retrieves tasks with filtering
func (r *MemoryTaskRepository) List(filter TaskFilter) ([]models.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	text := newTextMatcher(filter.TextQuery)
	tasks := make([]models.Task, 0, len(r.tasks))

	for _, task := range r.tasks {
		if filter.Project != nil && task.Project() != *filter.Project {
			continue
		}
		if filter.Status != nil && task.Status != *filter.Status {
			continue
		}
		if filter.Priority != nil && task.Priority != *filter.Priority {
			continue
		}
		if filter.AssigneeID != nil && (task.Assignee == nil || task.Assignee.ID != *filter.AssigneeID) {
			continue
		}
		if filter.Tag != nil && !task.HasTag(*filter.Tag) {
			continue
		}
		if !text.match(task.ID, task.Title, task.Description) {
			continue
		}
		tasks = append(tasks, task.Clone())
	}

	return tasks, nil
}

// Patch edits a task atomically. fn must not change the ID.
func (r *MemoryTaskRepository) Patch(id string, fn func(task *models.Task) error) (*models.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrRecordNotFound
	}

	task := r.tasks[i].Clone()
	if err := fn(&task); err != nil {
		return nil, err
	}
	task.ID = id

	r.tasks[i] = task.Clone()
	return &task, nil
}

// UpdateStatus changes the status of a single task in place
func (r *MemoryTaskRepository) UpdateStatus(id string, status models.TaskStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return ErrRecordNotFound
	}

	r.tasks[i].Status = status
	return nil
}

// MaxSequence returns the highest numeric suffix among IDs of the form
// "<prefix>-<n>", or 0 when none exist
func (r *MemoryTaskRepository) MaxSequence(prefix string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	highest := 0
	for _, task := range r.tasks {
		suffix, ok := strings.CutPrefix(task.ID, prefix+"-")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(suffix)
		if err != nil {
			continue
		}
		if n > highest {
			highest = n
		}
	}
	return highest
}

// CountByStatus counts tasks per status; every status is present
func (r *MemoryTaskRepository) CountByStatus() map[models.TaskStatus]int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	counts := make(map[models.TaskStatus]int, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		counts[status] = 0
	}
	for _, task := range r.tasks {
		counts[task.Status]++
	}
	return counts
}

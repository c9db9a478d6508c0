package services

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/repository"
)

var (
	ErrTaskNotFound       = errors.New("task not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrTitleRequired      = validationError("title is required")
	ErrTitleEmpty         = validationError("title cannot be empty")
	ErrProjectKeyRequired = validationError("project key is required")
	ErrInvalidProjectKey  = validationError("project key must start with a letter and contain only letters and digits")
	ErrInvalidStatus      = validationError("status must be one of todo, in-progress, in-review, done")
	ErrInvalidPriority    = validationError("priority must be one of highest, high, medium, low, lowest")
	ErrInvalidSortKey     = validationError("sort must be one of priority, dueDate, createdDate")
	ErrUnknownAssignee    = validationError("assignee does not exist")
	ErrInvalidEstimate    = validationError("estimate must be a non-negative number")
	ErrInvalidIssueType   = validationError("issue type must be one of task, bug, story, epic")
)

var projectKeyPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)

// SortKey selects the ordering applied by SortTasks.
type SortKey string

const (
	SortByPriority    SortKey = "priority"
	SortByDueDate     SortKey = "dueDate"
	SortByCreatedDate SortKey = "createdDate"
)

func (k SortKey) Valid() bool {
	switch k {
	case SortByPriority, SortByDueDate, SortByCreatedDate:
		return true
	}
	return false
}

// TaskService handles task business logic
type TaskService struct {
	taskRepo repository.TaskRepository
	userRepo repository.UserRepository
	now      func() time.Time

	// createMu serializes ID allocation in CreateTask
	createMu sync.Mutex
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, userRepo repository.UserRepository) *TaskService {
	return &TaskService{
		taskRepo: taskRepo,
		userRepo: userRepo,
		now:      time.Now,
	}
}

// ListTasksInput represents filters for listing tasks
type ListTasksInput struct {
	Project    *string
	Status     *models.TaskStatus
	Priority   *models.TaskPriority
	TextQuery  string
	AssigneeID *string
	Tag        *string
	Sort       SortKey
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	ProjectKey    string
	Title         string
	Description   string
	IssueType     models.IssueType
	Reporter      *models.UserRef
	Status        models.TaskStatus
	Priority      models.TaskPriority
	AssigneeID    string
	DueDate       *time.Time
	Tags          []string
	EstimateHours *float64
}

// UpdateTaskInput represents input for updating a task. Nil fields are left
// untouched; an empty AssigneeID unassigns the task.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	IssueType     *models.IssueType
	Status        *models.TaskStatus
	Priority      *models.TaskPriority
	AssigneeID    *string
	DueDate       *time.Time
	ClearDueDate  bool
	Tags          []string
	EstimateHours *float64
	ClearEstimate bool
}

// ListTasks returns the tasks matching every provided filter, in insertion
// order unless a sort key is given
func (s *TaskService) ListTasks(input ListTasksInput) ([]models.Task, error) {
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if input.Sort != "" && !input.Sort.Valid() {
		return nil, ErrInvalidSortKey
	}

	var project *string
	if input.Project != nil {
		key := strings.ToUpper(strings.TrimSpace(*input.Project))
		project = &key
	}

	tasks, err := s.taskRepo.List(repository.TaskFilter{
		Project:    project,
		Status:     input.Status,
		Priority:   input.Priority,
		TextQuery:  input.TextQuery,
		AssigneeID: input.AssigneeID,
		Tag:        input.Tag,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}

	if input.Sort == "" {
		return tasks, nil
	}
	return SortTasks(tasks, input.Sort)
}

// GetTask returns a single task
func (s *TaskService) GetTask(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	return task, nil
}

// MoveTask puts a task into another board column. Any column may move to any
// other; moving an unknown task does nothing.
func (s *TaskService) MoveTask(taskID string, status models.TaskStatus) error {
	if !status.Valid() {
		return ErrInvalidStatus
	}

	if err := s.taskRepo.UpdateStatus(taskID, status); err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("failed to move task: %w", err)
	}

	return nil
}

// CreateTask validates input and stores a new task under the next free
// "<PROJECT>-<n>" ID
func (s *TaskService) CreateTask(input CreateTaskInput) (*models.Task, error) {
	key := strings.ToUpper(strings.TrimSpace(input.ProjectKey))
	if key == "" {
		return nil, ErrProjectKeyRequired
	}
	if !projectKeyPattern.MatchString(key) {
		return nil, ErrInvalidProjectKey
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	if input.IssueType == "" {
		input.IssueType = models.IssueTypeTask
	}
	if !input.IssueType.Valid() {
		return nil, ErrInvalidIssueType
	}

	if input.Status == "" {
		input.Status = models.TaskStatusTodo
	}
	if !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	if input.Priority == "" {
		input.Priority = models.PriorityMedium
	}
	if !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}

	if input.EstimateHours != nil && !validEstimate(*input.EstimateHours) {
		return nil, ErrInvalidEstimate
	}

	task := &models.Task{
		Title:         title,
		Description:   input.Description,
		IssueType:     input.IssueType,
		Status:        input.Status,
		Priority:      input.Priority,
		DueDate:       input.DueDate,
		Tags:          normalizeTags(input.Tags),
		EstimateHours: input.EstimateHours,
		CreatedAt:     s.now(),
	}

	if input.AssigneeID != "" {
		assignee, err := s.resolveAssignee(input.AssigneeID)
		if err != nil {
			return nil, err
		}
		task.Assignee = assignee
	}
	if input.Reporter != nil {
		reporter := *input.Reporter
		task.Reporter = &reporter
	}

	s.createMu.Lock()
	defer s.createMu.Unlock()

	task.ID = fmt.Sprintf("%s-%d", key, s.taskRepo.MaxSequence(key)+1)
	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask edits the fields of an existing task. The edit is applied
// atomically, so a concurrent MoveTask is never overwritten by a stale copy.
func (s *TaskService) UpdateTask(taskID string, input UpdateTaskInput) (*models.Task, error) {
	var title string
	if input.Title != nil {
		title = strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrTitleEmpty
		}
	}
	if input.IssueType != nil && !input.IssueType.Valid() {
		return nil, ErrInvalidIssueType
	}
	if input.Status != nil && !input.Status.Valid() {
		return nil, ErrInvalidStatus
	}
	if input.Priority != nil && !input.Priority.Valid() {
		return nil, ErrInvalidPriority
	}
	if !input.ClearEstimate && input.EstimateHours != nil && !validEstimate(*input.EstimateHours) {
		return nil, ErrInvalidEstimate
	}

	var assignee *models.UserRef
	if input.AssigneeID != nil && *input.AssigneeID != "" {
		var err error
		if assignee, err = s.resolveAssignee(*input.AssigneeID); err != nil {
			return nil, err
		}
	}

	task, err := s.taskRepo.Patch(taskID, func(task *models.Task) error {
		if input.Title != nil {
			task.Title = title
		}
		if input.Description != nil {
			task.Description = *input.Description
		}
		if input.IssueType != nil {
			task.IssueType = *input.IssueType
		}
		if input.Status != nil {
			task.Status = *input.Status
		}
		if input.Priority != nil {
			task.Priority = *input.Priority
		}
		if input.AssigneeID != nil {
			task.Assignee = assignee
		}
		if input.ClearDueDate {
			task.DueDate = nil
		} else if input.DueDate != nil {
			task.DueDate = input.DueDate
		}
		if input.Tags != nil {
			task.Tags = normalizeTags(input.Tags)
		}
		if input.ClearEstimate {
			task.EstimateHours = nil
		} else if input.EstimateHours != nil {
			task.EstimateHours = input.EstimateHours
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// StatusCounts returns how many tasks sit in each board column
func (s *TaskService) StatusCounts() map[models.TaskStatus]int {
	return s.taskRepo.CountByStatus()
}

// ProjectProgress counts finished and total tasks per project, in the order
// each project first appears on the board
func (s *TaskService) ProjectProgress() ([]ProjectProgress, error) {
	tasks, err := s.taskRepo.List(repository.TaskFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return AggregateByProject(tasks), nil
}

// ListUsers returns the people tasks can be assigned to
func (s *TaskService) ListUsers() ([]models.UserRef, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns a single user
func (s *TaskService) GetUser(userID string) (*models.UserRef, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

func (s *TaskService) resolveAssignee(userID string) (*models.UserRef, error) {
	user, err := s.GetUser(userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUnknownAssignee
		}
		return nil, err
	}
	return user, nil
}

// SortTasks returns a sorted copy of tasks. Ties keep their incoming order.
//
//	priority:    highest first
//	dueDate:     earliest first, tasks without a due date last
//	createdDate: most recent first
func SortTasks(tasks []models.Task, key SortKey) ([]models.Task, error) {
	if !key.Valid() {
		return nil, ErrInvalidSortKey
	}

	sorted := make([]models.Task, len(tasks))
	copy(sorted, tasks)

	var less func(a, b models.Task) bool
	switch key {
	case SortByPriority:
		less = func(a, b models.Task) bool {
			return a.Priority.Rank() > b.Priority.Rank()
		}
	case SortByDueDate:
		less = func(a, b models.Task) bool {
			if a.DueDate == nil || b.DueDate == nil {
				return a.DueDate != nil && b.DueDate == nil
			}
			return a.DueDate.Before(*b.DueDate)
		}
	case SortByCreatedDate:
		less = func(a, b models.Task) bool {
			return a.CreatedAt.After(b.CreatedAt)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})

	return sorted, nil
}

// ProjectProgress is the completion of one project
type ProjectProgress struct {
	Project        string
	TasksCompleted int
	TasksTotal     int
}

// Percent returns the share of done tasks, rounded down
func (p ProjectProgress) Percent() int {
	if p.TasksTotal == 0 {
		return 0
	}
	return p.TasksCompleted * 100 / p.TasksTotal
}

// AggregateByProject groups tasks by the project key of their ID. Tasks in
// the done column count as completed.
func AggregateByProject(tasks []models.Task) []ProjectProgress {
	progress := []ProjectProgress{}
	index := make(map[string]int)

	for _, task := range tasks {
		project := task.Project()
		i, ok := index[project]
		if !ok {
			i = len(progress)
			index[project] = i
			progress = append(progress, ProjectProgress{Project: project})
		}
		progress[i].TasksTotal++
		if task.Status == models.TaskStatusDone {
			progress[i].TasksCompleted++
		}
	}

	return progress
}

// GroupByStatus buckets tasks into board columns. Every column is present,
// even when empty, and keeps the incoming task order.
func GroupByStatus(tasks []models.Task) map[models.TaskStatus][]models.Task {
	columns := make(map[models.TaskStatus][]models.Task, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		columns[status] = []models.Task{}
	}

	for _, task := range tasks {
		if _, ok := columns[task.Status]; !ok {
			continue
		}
		columns[task.Status] = append(columns[task.Status], task)
	}

	return columns
}

func validEstimate(hours float64) bool {
	return hours >= 0 && isFinite(hours)
}

// normalizeTags trims tags and removes blanks and duplicates
func normalizeTags(tags []string) []string {
	trimmed := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag = strings.TrimSpace(tag); tag != "" {
			trimmed = append(trimmed, tag)
		}
	}
	return uniqueStrings(trimmed)
}

// uniqueStrings removes duplicate values from a slice of strings
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}

	return result
}

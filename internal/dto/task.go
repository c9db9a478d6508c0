package dto

import (
	"time"

	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/services"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID            string              `json:"id"`
	Project       string              `json:"project"`
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	IssueType     models.IssueType    `json:"issue_type"`
	Status        models.TaskStatus   `json:"status"`
	Priority      models.TaskPriority `json:"priority"`
	Assignee      *UserDTO            `json:"assignee"`
	Reporter      *UserDTO            `json:"reporter"`
	DueDate       *string             `json:"due_date"`
	Tags          []string            `json:"tags"`
	EstimateHours *float64            `json:"estimate_hours,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
}

// BoardColumnDTO is one status column of the board
type BoardColumnDTO struct {
	Status models.TaskStatus `json:"status"`
	Title  string            `json:"title"`
	Count  int               `json:"count"`
	Tasks  []TaskDTO         `json:"tasks"`
}

// BoardDTO represents the task board, columns in workflow order
type BoardDTO struct {
	Columns []BoardColumnDTO `json:"columns"`
}

// StatusCountDTO is one slice of the status breakdown chart
type StatusCountDTO struct {
	Status models.TaskStatus `json:"status"`
	Title  string            `json:"title"`
	Count  int               `json:"count"`
}

// ProjectProgressDTO is one row of the project progress list
type ProjectProgressDTO struct {
	Project        string `json:"project"`
	TasksCompleted int    `json:"tasks_completed"`
	TasksTotal     int    `json:"tasks_total"`
	Progress       int    `json:"progress"`
}

// Conversion functions

// ToUserDTO converts a UserRef model to UserDTO
func ToUserDTO(user models.UserRef) UserDTO {
	return UserDTO{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		AvatarURL:   user.AvatarURL,
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.UserRef) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:            task.ID,
		Project:       task.Project(),
		Title:         task.Title,
		Description:   task.Description,
		IssueType:     task.IssueType,
		Status:        task.Status,
		Priority:      task.Priority,
		Tags:          task.Tags,
		EstimateHours: task.EstimateHours,
		CreatedAt:     task.CreatedAt,
	}

	if dto.Tags == nil {
		dto.Tags = []string{}
	}

	if task.Assignee != nil {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	if task.Reporter != nil {
		reporter := ToUserDTO(*task.Reporter)
		dto.Reporter = &reporter
	}

	if task.DueDate != nil {
		due := task.DueDate.Format(constants.DateLayout)
		dto.DueDate = &due
	}

	return dto
}

// ToTaskDTOs converts a slice of tasks
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	dtos := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		dtos[i] = ToTaskDTO(task)
	}
	return dtos
}

// ToBoardDTO converts grouped tasks to the board layout
func ToBoardDTO(columns map[models.TaskStatus][]models.Task) BoardDTO {
	board := BoardDTO{Columns: make([]BoardColumnDTO, 0, len(models.TaskStatuses))}

	for _, status := range models.TaskStatuses {
		tasks := columns[status]
		board.Columns = append(board.Columns, BoardColumnDTO{
			Status: status,
			Title:  status.Title(),
			Count:  len(tasks),
			Tasks:  ToTaskDTOs(tasks),
		})
	}

	return board
}

// ToStatusCountDTOs converts per-status counts, in workflow order
func ToStatusCountDTOs(counts map[models.TaskStatus]int) []StatusCountDTO {
	dtos := make([]StatusCountDTO, 0, len(models.TaskStatuses))
	for _, status := range models.TaskStatuses {
		dtos = append(dtos, StatusCountDTO{
			Status: status,
			Title:  status.Title(),
			Count:  counts[status],
		})
	}
	return dtos
}

// ToProjectProgressDTOs converts per-project progress
func ToProjectProgressDTOs(progress []services.ProjectProgress) []ProjectProgressDTO {
	dtos := make([]ProjectProgressDTO, len(progress))
	for i, p := range progress {
		dtos[i] = ProjectProgressDTO{
			Project:        p.Project,
			TasksCompleted: p.TasksCompleted,
			TasksTotal:     p.TasksTotal,
			Progress:       p.Percent(),
		}
	}
	return dtos
}

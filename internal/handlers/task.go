package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/dto"
	apierrors "github.com/yukikurage/workboard-api/internal/errors"
	"github.com/yukikurage/workboard-api/internal/middleware"
	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/services"
	"github.com/yukikurage/workboard-api/internal/utils"
)

type TaskHandler struct {
	tasks *services.TaskService
}

func NewTaskHandler(tasks *services.TaskService) *TaskHandler {
	return &TaskHandler{
		tasks: tasks,
	}
}

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	ProjectKey    string   `json:"project_key"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	IssueType     string   `json:"issue_type"`
	Status        string   `json:"status"`
	Priority      string   `json:"priority"`
	AssigneeID    string   `json:"assignee_id"`
	DueDate       string   `json:"due_date"`
	Tags          []string `json:"tags"`
	EstimateHours *float64 `json:"estimate_hours"`
}

// MoveTaskRequest is the body of POST /api/board/moves
type MoveTaskRequest struct {
	TaskID string `json:"task_id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// listInput reads the task filters shared by the list and board endpoints.
// assignee_id=me selects the acting user.
func (h *TaskHandler) listInput(c *gin.Context) services.ListTasksInput {
	input := services.ListTasksInput{
		Project:    optionalQuery(c, "project"),
		TextQuery:  c.Query("q"),
		AssigneeID: optionalQuery(c, "assignee_id"),
		Tag:        optionalQuery(c, "tag"),
		Sort:       services.SortKey(c.Query("sort")),
	}

	if status := optionalQuery(c, "status"); status != nil {
		s := models.TaskStatus(*status)
		input.Status = &s
	}
	if priority := optionalQuery(c, "priority"); priority != nil {
		p := models.TaskPriority(*priority)
		input.Priority = &p
	}
	if input.AssigneeID != nil && *input.AssigneeID == "me" {
		if userID, ok := middleware.GetUserID(c); ok {
			input.AssigneeID = &userID
		}
	}

	return input
}

// ListTasks returns the tasks matching the query filters, paginated
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.tasks.ListTasks(h.listInput(c))
	if err != nil {
		respondError(c, err, "fetch tasks")
		return
	}

	params := utils.GetPaginationParams(c)

	c.JSON(http.StatusOK, gin.H{
		"tasks":      dto.ToTaskDTOs(utils.Paginate(tasks, params)),
		"pagination": utils.NewPaginationResponse(params, len(tasks)),
	})
}

// GetTask returns a specific task
// Task is already loaded by RequireTask middleware
func (h *TaskHandler) GetTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(task))
}

// CreateTask creates a new task under the next free ID of its project
func (h *TaskHandler) CreateTask(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.CreateTaskInput{
		ProjectKey:    req.ProjectKey,
		Title:         req.Title,
		Description:   req.Description,
		IssueType:     models.IssueType(req.IssueType),
		Status:        models.TaskStatus(req.Status),
		Priority:      models.TaskPriority(req.Priority),
		AssigneeID:    req.AssigneeID,
		Tags:          req.Tags,
		EstimateHours: req.EstimateHours,
	}

	if user, ok := middleware.GetUser(c); ok {
		input.Reporter = &user
	}

	if strings.TrimSpace(req.DueDate) != "" {
		due, err := parseDate(req.DueDate)
		if err != nil {
			apierrors.InvalidFormat(c, "due_date", constants.DateLayout)
			return
		}
		input.DueDate = &due
	}

	task, err := h.tasks.CreateTask(input)
	if err != nil {
		respondError(c, err, "create task")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask updates the fields present in the body. A null due_date,
// estimate_hours or assignee_id clears that field.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	task, ok := middleware.GetTask(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	// Parse raw JSON to detect which fields were sent
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := updateTaskInput(rawReq)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	updated, err := h.tasks.UpdateTask(task.ID, input)
	if err != nil {
		respondError(c, err, "update task")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*updated))
}

func updateTaskInput(raw map[string]any) (services.UpdateTaskInput, error) {
	var input services.UpdateTaskInput
	var err error

	if input.Title, err = patchString(raw, "title"); err != nil {
		return input, err
	}
	if input.Description, err = patchString(raw, "description"); err != nil {
		return input, err
	}
	if input.AssigneeID, err = patchString(raw, "assignee_id"); err != nil {
		return input, err
	}

	issueType, err := patchString(raw, "issue_type")
	if err != nil {
		return input, err
	}
	if issueType != nil {
		t := models.IssueType(*issueType)
		input.IssueType = &t
	}

	status, err := patchString(raw, "status")
	if err != nil {
		return input, err
	}
	if status != nil {
		s := models.TaskStatus(*status)
		input.Status = &s
	}

	priority, err := patchString(raw, "priority")
	if err != nil {
		return input, err
	}
	if priority != nil {
		p := models.TaskPriority(*priority)
		input.Priority = &p
	}

	if input.DueDate, input.ClearDueDate, err = patchDate(raw, "due_date"); err != nil {
		return input, err
	}
	if input.EstimateHours, input.ClearEstimate, err = patchNumber(raw, "estimate_hours"); err != nil {
		return input, err
	}
	if input.Tags, err = patchStrings(raw, "tags"); err != nil {
		return input, err
	}

	return input, nil
}

// GetStats returns the number of tasks in each status
func (h *TaskHandler) GetStats(c *gin.Context) {
	counts := h.tasks.StatusCounts()

	total := 0
	for _, n := range counts {
		total += n
	}

	c.JSON(http.StatusOK, gin.H{
		"total":     total,
		"by_status": dto.ToStatusCountDTOs(counts),
	})
}

// GetProjects returns the completion of every project on the board
func (h *TaskHandler) GetProjects(c *gin.Context) {
	progress, err := h.tasks.ProjectProgress()
	if err != nil {
		respondError(c, err, "fetch projects")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"projects": dto.ToProjectProgressDTOs(progress),
	})
}

// GetBoard returns the filtered tasks grouped into status columns
func (h *TaskHandler) GetBoard(c *gin.Context) {
	input := h.listInput(c)
	input.Status = nil

	tasks, err := h.tasks.ListTasks(input)
	if err != nil {
		respondError(c, err, "fetch board")
		return
	}

	c.JSON(http.StatusOK, dto.ToBoardDTO(services.GroupByStatus(tasks)))
}

// MoveTask moves a task to another column. Unknown tasks are ignored.
func (h *TaskHandler) MoveTask(c *gin.Context) {
	var req MoveTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.tasks.MoveTask(req.TaskID, models.TaskStatus(req.Status)); err != nil {
		respondError(c, err, "move task")
		return
	}

	c.Status(http.StatusNoContent)
}

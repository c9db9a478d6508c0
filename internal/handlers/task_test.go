package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/dto"
	apierrors "github.com/yukikurage/workboard-api/internal/errors"
	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/seed"
	"github.com/yukikurage/workboard-api/internal/services"
	"github.com/yukikurage/workboard-api/internal/utils"
)

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	tasks   *services.TaskService
	handler *TaskHandler
	user    models.UserRef
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	deps := newTestDependencies(suite.T())
	suite.tasks = deps.Tasks
	suite.handler = NewTaskHandler(deps.Tasks)
	suite.user = seed.Users()[0]
}

// setTaskContext simulates RequireTask middleware
func (suite *TaskHandlerTestSuite) setTaskContext(c *gin.Context, taskID string) {
	task, err := suite.tasks.GetTask(taskID)
	suite.Require().NoError(err)
	c.Set(constants.ContextKeyTask, *task)
	c.Params = gin.Params{{Key: "id", Value: taskID}}
}

type taskListResponse struct {
	Tasks      []dto.TaskDTO            `json:"tasks"`
	Pagination utils.PaginationResponse `json:"pagination"`
}

func (suite *TaskHandlerTestSuite) listTasks(query string) taskListResponse {
	c, w := createUserContext("GET", "/api/tasks?"+query, nil, suite.user)
	suite.handler.ListTasks(c)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var response taskListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	return response
}

func taskDTOIDs(tasks []dto.TaskDTO) []string {
	ids := make([]string, len(tasks))
	for i, task := range tasks {
		ids[i] = task.ID
	}
	return ids
}

// TestListTasks_Success tests listing without filters
func (suite *TaskHandlerTestSuite) TestListTasks_Success() {
	response := suite.listTasks("")

	suite.Len(response.Tasks, 8)
	suite.Equal(8, response.Pagination.Total)
	suite.Equal("JIRA-123", response.Tasks[0].ID)
	suite.Equal("2023-03-20", *response.Tasks[0].DueDate)
	suite.Equal("María López", response.Tasks[0].Assignee.DisplayName)
}

// TestListTasks_Filters tests status, text and assignee filters
func (suite *TaskHandlerTestSuite) TestListTasks_Filters() {
	suite.Equal([]string{"JIRA-123", "JIRA-124"}, taskDTOIDs(suite.listTasks("status=todo").Tasks))
	suite.Equal([]string{"JIRA-126"}, taskDTOIDs(suite.listTasks("q=B%C3%9ASQUEDA").Tasks))
	suite.Equal([]string{"JIRA-123", "JIRA-127", "JIRA-130"}, taskDTOIDs(suite.listTasks("assignee_id=me").Tasks))
	suite.Equal([]string{"JIRA-124", "JIRA-126", "JIRA-129"}, taskDTOIDs(suite.listTasks("tag=frontend").Tasks))
}

// TestListTasks_SortedAndPaginated tests sorting combined with pagination
func (suite *TaskHandlerTestSuite) TestListTasks_SortedAndPaginated() {
	response := suite.listTasks("sort=dueDate&page=2&limit=3")

	suite.Equal([]string{"JIRA-127", "JIRA-125", "JIRA-124"}, taskDTOIDs(response.Tasks))
	suite.Equal(utils.PaginationResponse{Page: 2, Limit: 3, Total: 8}, response.Pagination)
}

// TestListTasks_InvalidSort tests an unknown sort key
func (suite *TaskHandlerTestSuite) TestListTasks_InvalidSort() {
	c, w := createUserContext("GET", "/api/tasks?sort=title", nil, suite.user)
	suite.handler.ListTasks(c)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal(apierrors.ErrCodeInvalidInput, decodeAPIError(suite.T(), w).Code)
}

// TestGetTask_Success tests retrieving a task loaded by middleware
func (suite *TaskHandlerTestSuite) TestGetTask_Success() {
	c, w := createUserContext("GET", "/api/tasks/JIRA-125", nil, suite.user)
	suite.setTaskContext(c, "JIRA-125")

	suite.handler.GetTask(c)

	suite.Equal(http.StatusOK, w.Code)
	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("JIRA-125", response.ID)
	suite.Equal(models.PriorityHighest, response.Priority)
	suite.Equal(8.0, *response.EstimateHours)
}

// TestGetTask_NotFoundInContext tests when task is not in context
func (suite *TaskHandlerTestSuite) TestGetTask_NotFoundInContext() {
	c, w := createUserContext("GET", "/api/tasks/JIRA-125", nil, suite.user)

	suite.handler.GetTask(c)

	suite.Equal(http.StatusInternalServerError, w.Code)
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	body := mustJSON(suite.T(), map[string]any{
		"project_key": "MOBILE",
		"title":       "Pantalla de login",
		"assignee_id": "user-3",
		"due_date":    "2023-07-01",
		"tags":        []string{"mobile"},
	})

	c, w := createUserContext("POST", "/api/tasks", body, suite.user)
	suite.handler.CreateTask(c)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("MOBILE-1", response.ID)
	suite.Equal(models.TaskStatusTodo, response.Status)
	suite.Equal(models.PriorityMedium, response.Priority)
	suite.Equal("Ana García", response.Assignee.DisplayName)
	suite.Equal("2023-07-01", *response.DueDate)
	suite.Equal("MOBILE", response.Project)
	suite.Equal(models.IssueTypeTask, response.IssueType)
	suite.Require().NotNil(response.Reporter)
	suite.Equal(suite.user.ID, response.Reporter.ID)

	_, err := suite.tasks.GetTask("MOBILE-1")
	suite.NoError(err)
}

// TestCreateTask_IssueType tests an explicit issue type
func (suite *TaskHandlerTestSuite) TestCreateTask_IssueType() {
	body := mustJSON(suite.T(), map[string]any{"project_key": "API", "title": "Timeout en login", "issue_type": "bug"})

	c, w := createUserContext("POST", "/api/tasks", body, suite.user)
	suite.handler.CreateTask(c)

	suite.Equal(http.StatusCreated, w.Code, w.Body.String())
	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(models.IssueTypeBug, response.IssueType)

	body = mustJSON(suite.T(), map[string]any{"project_key": "API", "title": "x", "issue_type": "incident"})
	c, w = createUserContext("POST", "/api/tasks", body, suite.user)
	suite.handler.CreateTask(c)
	suite.Equal(http.StatusBadRequest, w.Code)
}

// TestListTasks_Project tests the project filter
func (suite *TaskHandlerTestSuite) TestListTasks_Project() {
	_, err := suite.tasks.CreateTask(services.CreateTaskInput{ProjectKey: "WEB", Title: "Landing page"})
	suite.Require().NoError(err)

	suite.Equal([]string{"WEB-1"}, taskDTOIDs(suite.listTasks("project=WEB").Tasks))
	suite.Len(suite.listTasks("project=JIRA").Tasks, 8)
	suite.Empty(suite.listTasks("project=MOBILE").Tasks)
}

// TestGetProjects tests the per-project progress list
func (suite *TaskHandlerTestSuite) TestGetProjects() {
	_, err := suite.tasks.CreateTask(services.CreateTaskInput{ProjectKey: "WEB", Title: "Landing page"})
	suite.Require().NoError(err)

	c, w := createUserContext("GET", "/api/projects", nil, suite.user)
	suite.handler.GetProjects(c)

	suite.Equal(http.StatusOK, w.Code)
	var response struct {
		Projects []dto.ProjectProgressDTO `json:"projects"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal([]dto.ProjectProgressDTO{
		{Project: "JIRA", TasksCompleted: 2, TasksTotal: 8, Progress: 25},
		{Project: "WEB", TasksCompleted: 0, TasksTotal: 1, Progress: 0},
	}, response.Projects)
}

// TestCreateTask_InvalidRequest tests validation failures
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidRequest() {
	cases := []struct {
		name string
		body map[string]any
		code string
	}{
		{"missing title", map[string]any{"project_key": "API"}, apierrors.ErrCodeInvalidInput},
		{"missing project", map[string]any{"title": "Docs"}, apierrors.ErrCodeInvalidInput},
		{"bad priority", map[string]any{"project_key": "API", "title": "Docs", "priority": "urgent"}, apierrors.ErrCodeInvalidInput},
		{"bad due date", map[string]any{"project_key": "API", "title": "Docs", "due_date": "01/07/2023"}, apierrors.ErrCodeInvalidFormat},
	}

	for _, tc := range cases {
		suite.Run(tc.name, func() {
			c, w := createUserContext("POST", "/api/tasks", mustJSON(suite.T(), tc.body), suite.user)
			suite.handler.CreateTask(c)

			suite.Equal(http.StatusBadRequest, w.Code)
			suite.Equal(tc.code, decodeAPIError(suite.T(), w).Code)
		})
	}

	suite.Len(suite.listTasks("").Tasks, 8)
}

// TestUpdateTask_Success tests partial update with null clearing
func (suite *TaskHandlerTestSuite) TestUpdateTask_Success() {
	body := []byte(`{"title": "Optimizar consultas", "due_date": null, "estimate_hours": 10, "tags": ["backend"]}`)

	c, w := createUserContext("PATCH", "/api/tasks/JIRA-125", body, suite.user)
	suite.setTaskContext(c, "JIRA-125")
	suite.handler.UpdateTask(c)

	suite.Equal(http.StatusOK, w.Code, w.Body.String())
	var response dto.TaskDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal("Optimizar consultas", response.Title)
	suite.Nil(response.DueDate)
	suite.Equal(10.0, *response.EstimateHours)
	suite.Equal([]string{"backend"}, response.Tags)
	suite.Equal("Mejorar el rendimiento de las consultas del módulo de reportes", response.Description)
}

// TestUpdateTask_InvalidRequest tests malformed and invalid patches
func (suite *TaskHandlerTestSuite) TestUpdateTask_InvalidRequest() {
	for _, body := range []string{
		`{"title": 42}`,
		`{"due_date": "tomorrow"}`,
		`{"tags": "backend"}`,
		`{"status": "archived"}`,
		`{"assignee_id": "user-9"}`,
		`not json`,
	} {
		c, w := createUserContext("PATCH", "/api/tasks/JIRA-125", []byte(body), suite.user)
		suite.setTaskContext(c, "JIRA-125")
		suite.handler.UpdateTask(c)

		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
}

// TestGetStats tests the per-status breakdown
func (suite *TaskHandlerTestSuite) TestGetStats() {
	c, w := createUserContext("GET", "/api/tasks/stats", nil, suite.user)
	suite.handler.GetStats(c)

	suite.Equal(http.StatusOK, w.Code)
	var response struct {
		Total    int                  `json:"total"`
		ByStatus []dto.StatusCountDTO `json:"by_status"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Equal(8, response.Total)
	suite.Require().Len(response.ByStatus, 4)
	suite.Equal("In Review", response.ByStatus[2].Title)
	suite.Equal(2, response.ByStatus[2].Count)
}

func (suite *TaskHandlerTestSuite) getBoard(query string) dto.BoardDTO {
	c, w := createUserContext("GET", "/api/board?"+query, nil, suite.user)
	suite.handler.GetBoard(c)
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var board dto.BoardDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &board))
	return board
}

// TestGetBoard tests that every column is always present
func (suite *TaskHandlerTestSuite) TestGetBoard() {
	board := suite.getBoard("")
	suite.Require().Len(board.Columns, 4)
	for i, status := range models.TaskStatuses {
		suite.Equal(status, board.Columns[i].Status)
		suite.Equal(2, board.Columns[i].Count)
	}

	board = suite.getBoard("q=no-such-task")
	suite.Require().Len(board.Columns, 4)
	for _, column := range board.Columns {
		suite.NotNil(column.Tasks)
		suite.Empty(column.Tasks)
	}
}

// TestMoveTask_Success tests moving a card between columns
func (suite *TaskHandlerTestSuite) TestMoveTask_Success() {
	body := mustJSON(suite.T(), MoveTaskRequest{TaskID: "JIRA-126", Status: "done"})
	c, w := createUserContext("POST", "/api/board/moves", body, suite.user)
	suite.handler.MoveTask(c)
	c.Writer.WriteHeaderNow() // flush the status as gin's engine does after the handler chain

	suite.Equal(http.StatusNoContent, w.Code)

	board := suite.getBoard("")
	suite.Equal(1, board.Columns[1].Count)
	suite.Equal([]string{"JIRA-126", "JIRA-129", "JIRA-130"}, taskDTOIDs(board.Columns[3].Tasks))
}

// TestMoveTask_UnknownTask tests that unknown tasks are silently ignored
func (suite *TaskHandlerTestSuite) TestMoveTask_UnknownTask() {
	body := mustJSON(suite.T(), MoveTaskRequest{TaskID: "JIRA-999", Status: "done"})
	c, w := createUserContext("POST", "/api/board/moves", body, suite.user)
	suite.handler.MoveTask(c)
	c.Writer.WriteHeaderNow() // flush the status as gin's engine does after the handler chain

	suite.Equal(http.StatusNoContent, w.Code)
	suite.Equal(2, suite.getBoard("").Columns[3].Count)
}

// TestMoveTask_InvalidRequest tests bad statuses and missing fields
func (suite *TaskHandlerTestSuite) TestMoveTask_InvalidRequest() {
	for _, body := range []string{
		`{"task_id": "JIRA-126", "status": "archived"}`,
		`{"task_id": "JIRA-126"}`,
		`{"status": "done"}`,
	} {
		c, w := createUserContext("POST", "/api/board/moves", []byte(body), suite.user)
		suite.handler.MoveTask(c)

		suite.Equal(http.StatusBadRequest, w.Code, body)
	}
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}

func TestUpdateTaskInput(t *testing.T) {
	input, err := updateTaskInput(map[string]any{
		"assignee_id":    nil,
		"estimate_hours": nil,
		"priority":       "low",
		"issue_type":     "story",
	})
	assert.NoError(t, err)
	assert.Equal(t, "", *input.AssigneeID)
	assert.True(t, input.ClearEstimate)
	assert.Equal(t, models.PriorityLow, *input.Priority)
	assert.Equal(t, models.IssueTypeStory, *input.IssueType)
	assert.Nil(t, input.Title)
	assert.Nil(t, input.Tags)
	assert.False(t, input.ClearDueDate)
}

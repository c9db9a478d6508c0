package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workboard-api/internal/catalog"
	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/middleware"
	"github.com/yukikurage/workboard-api/internal/services"
)

// Dependencies wires the router to its services
type Dependencies struct {
	Tasks         *services.TaskService
	TimeLogs      *services.TimeLogService
	Catalog       *catalog.Catalog
	Resolver      *catalog.Resolver
	SessionStore  sessions.Store
	DefaultUserID string
}

// NewRouter builds the HTTP API
func NewRouter(deps Dependencies) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	r.Use(sessions.Sessions(constants.SessionCookieName, deps.SessionStore))
	r.Use(middleware.CurrentUser(deps.Tasks, deps.DefaultUserID))

	taskHandler := NewTaskHandler(deps.Tasks)
	timeLogHandler := NewTimeLogHandler(deps.TimeLogs)
	reportHandler := NewReportHandler(deps.Catalog, deps.Resolver)
	sessionHandler := NewSessionHandler(deps.Tasks)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Workboard API is running",
		})
	})

	// Report links shared outside the API
	r.GET("/reports/:id", reportHandler.OpenReport)

	api := r.Group("/api")
	{
		reports := api.Group("/reports")
		{
			reports.GET("", reportHandler.ListReports)
			reports.GET("/resolve", reportHandler.ResolveURL)
			reports.GET("/:id", reportHandler.GetReport)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/stats", taskHandler.GetStats)
			tasks.GET("/:id", middleware.RequireTask(deps.Tasks), taskHandler.GetTask)
			tasks.PATCH("/:id", middleware.RequireTask(deps.Tasks), taskHandler.UpdateTask)
		}

		board := api.Group("/board")
		{
			board.GET("", taskHandler.GetBoard)
			board.POST("/moves", taskHandler.MoveTask)
		}

		api.GET("/projects", taskHandler.GetProjects)
		api.GET("/users", sessionHandler.ListUsers)
		api.GET("/session/user", sessionHandler.GetCurrentUser)
		api.PUT("/session/user", sessionHandler.SetCurrentUser)

		timeLogs := api.Group("/time-logs")
		{
			timeLogs.GET("", timeLogHandler.ListTimeLogs)
			timeLogs.POST("", timeLogHandler.CreateTimeLog)
			timeLogs.GET("/summary", timeLogHandler.GetSummary)
			timeLogs.GET("/by-task", timeLogHandler.GetByTask)
			timeLogs.GET("/week", timeLogHandler.GetWeek)
			timeLogs.GET("/export", timeLogHandler.Export)
			timeLogs.PATCH("/:id", timeLogHandler.UpdateTimeLog)
			timeLogs.DELETE("/:id", timeLogHandler.DeleteTimeLog)
		}
	}

	return r
}

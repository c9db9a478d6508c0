// Package seed holds the sample workspace the server starts with.
package seed

import (
	"fmt"
	"time"

	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/repository"
)

func avatar(n int) string {
	return fmt.Sprintf("https://i.pravatar.cc/48?u=%d", n)
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(year int, month time.Month, d int) *time.Time {
	t := day(year, month, d)
	return &t
}

func hours(h float64) *float64 {
	return &h
}

// Users returns the team members tasks can be assigned to
func Users() []models.UserRef {
	return []models.UserRef{
		{ID: "user-1", DisplayName: "María López", AvatarURL: avatar(1)},
		{ID: "user-2", DisplayName: "Juan Pérez", AvatarURL: avatar(2)},
		{ID: "user-3", DisplayName: "Ana García", AvatarURL: avatar(3)},
		{ID: "user-4", DisplayName: "Carlos Ruiz", AvatarURL: avatar(4)},
	}
}

// Tasks returns the sample board, two tasks per column
func Tasks() []models.Task {
	users := Users()
	assignee := func(i int) *models.UserRef {
		u := users[i]
		return &u
	}

	return []models.Task{
		{
			ID:          "JIRA-123",
			Title:       "Implementar autenticación con OAuth",
			IssueType:   models.IssueTypeStory,
			Reporter:    assignee(3),
			Description: "Integrar el inicio de sesión con proveedores OAuth 2.0",
			Status:      models.TaskStatusTodo,
			Priority:    models.PriorityHigh,
			Assignee:    assignee(0),
			DueDate:     datePtr(2023, time.March, 20),
			Tags:        []string{"backend", "security"},
			CreatedAt:   day(2023, time.March, 1),
		},
		{
			ID:          "JIRA-124",
			Title:       "Diseñar nueva página de inicio",
			IssueType:   models.IssueTypeTask,
			Reporter:    assignee(1),
			Description: "Crear mockups para la nueva página de inicio",
			Status:      models.TaskStatusTodo,
			Priority:    models.PriorityMedium,
			Assignee:    assignee(1),
			DueDate:     datePtr(2023, time.March, 18),
			Tags:        []string{"design", "frontend"},
			CreatedAt:   day(2023, time.March, 2),
		},
		{
			ID:            "JIRA-125",
			Title:         "Optimizar consultas SQL en módulo de reportes",
			IssueType:     models.IssueTypeTask,
			Reporter:      assignee(2),
			Description:   "Mejorar el rendimiento de las consultas del módulo de reportes",
			Status:        models.TaskStatusInProgress,
			Priority:      models.PriorityHighest,
			Assignee:      assignee(2),
			DueDate:       datePtr(2023, time.March, 15),
			Tags:          []string{"backend", "performance"},
			EstimateHours: hours(8),
			CreatedAt:     day(2023, time.March, 3),
		},
		{
			ID:            "JIRA-126",
			Title:         "Corregir bug en el filtro de búsqueda",
			IssueType:     models.IssueTypeBug,
			Reporter:      assignee(3),
			Status:        models.TaskStatusInProgress,
			Priority:      models.PriorityHigh,
			Assignee:      assignee(3),
			DueDate:       datePtr(2023, time.March, 12),
			Tags:          []string{"bug", "frontend"},
			EstimateHours: hours(3),
			CreatedAt:     day(2023, time.March, 4),
		},
		{
			ID:            "JIRA-127",
			Title:         "Añadir tests unitarios para el API",
			IssueType:     models.IssueTypeTask,
			Reporter:      assignee(1),
			Description:   "Aumentar la cobertura de tests del API",
			Status:        models.TaskStatusInReview,
			Priority:      models.PriorityMedium,
			Assignee:      assignee(0),
			DueDate:       datePtr(2023, time.March, 14),
			Tags:          []string{"testing", "backend"},
			EstimateHours: hours(5),
			CreatedAt:     day(2023, time.March, 5),
		},
		{
			ID:            "JIRA-128",
			Title:         "Actualizar documentación del API",
			IssueType:     models.IssueTypeTask,
			Reporter:      assignee(2),
			Description:   "Documentar los nuevos endpoints",
			Status:        models.TaskStatusInReview,
			Priority:      models.PriorityLow,
			Assignee:      assignee(1),
			DueDate:       datePtr(2023, time.March, 22),
			Tags:          []string{"documentation"},
			EstimateHours: hours(2),
			CreatedAt:     day(2023, time.March, 6),
		},
		{
			ID:            "JIRA-129",
			Title:         "Implementar nueva funcionalidad de exportación a PDF",
			IssueType:     models.IssueTypeStory,
			Reporter:      assignee(3),
			Status:        models.TaskStatusDone,
			Priority:      models.PriorityHigh,
			Assignee:      assignee(2),
			DueDate:       datePtr(2023, time.March, 10),
			Tags:          []string{"feature", "frontend"},
			EstimateHours: hours(6),
			CreatedAt:     day(2023, time.March, 7),
		},
		{
			ID:            "JIRA-130",
			Title:         "Migrar base de datos a la nueva versión",
			IssueType:     models.IssueTypeEpic,
			Reporter:      assignee(1),
			Description:   "Actualizar el motor de base de datos y migrar los datos",
			Status:        models.TaskStatusDone,
			Priority:      models.PriorityHighest,
			Assignee:      assignee(0),
			DueDate:       datePtr(2023, time.March, 8),
			Tags:          []string{"database", "migration"},
			EstimateHours: hours(12),
			CreatedAt:     day(2023, time.March, 8),
		},
	}
}

// TimeLogs returns the sample time tracking entries
func TimeLogs() []models.TimeLogEntry {
	users := Users()

	return []models.TimeLogEntry{
		{ID: "1", TaskID: "JIRA-123", TaskTitle: "Implementar autenticación con OAuth",
			Date: day(2023, time.June, 15), Hours: 2.5, Description: "Configuración inicial del proveedor OAuth", User: users[0]},
		{ID: "2", TaskID: "JIRA-123", TaskTitle: "Implementar autenticación con OAuth",
			Date: day(2023, time.June, 16), Hours: 3, Description: "Endpoints de autenticación", User: users[0]},
		{ID: "3", TaskID: "JIRA-125", TaskTitle: "Optimizar consultas SQL en módulo de reportes",
			Date: day(2023, time.June, 15), Hours: 1.5, Description: "Análisis de consultas lentas", User: users[2]},
		{ID: "4", TaskID: "JIRA-126", TaskTitle: "Corregir bug en el filtro de búsqueda",
			Date: day(2023, time.June, 14), Hours: 4, Description: "Reproducción y corrección del bug", User: users[3]},
	}
}

// Load fills the repositories with the sample workspace
func Load(tasks repository.TaskRepository, timeLogs repository.TimeLogRepository) error {
	for _, task := range Tasks() {
		if err := tasks.Create(&task); err != nil {
			return fmt.Errorf("failed to seed task %s: %w", task.ID, err)
		}
	}

	for _, entry := range TimeLogs() {
		if err := timeLogs.Create(&entry); err != nil {
			return fmt.Errorf("failed to seed time log %s: %w", entry.ID, err)
		}
	}

	return nil
}

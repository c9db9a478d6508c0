package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/dto"
	apierrors "github.com/yukikurage/workboard-api/internal/errors"
	"github.com/yukikurage/workboard-api/internal/export"
	"github.com/yukikurage/workboard-api/internal/middleware"
	"github.com/yukikurage/workboard-api/internal/services"
)

type TimeLogHandler struct {
	timeLogs *services.TimeLogService
}

func NewTimeLogHandler(timeLogs *services.TimeLogService) *TimeLogHandler {
	return &TimeLogHandler{
		timeLogs: timeLogs,
	}
}

// CreateTimeLogRequest is the body of POST /api/time-logs. Hours may be sent
// as a number or as the text typed into the form.
type CreateTimeLogRequest struct {
	TaskID      string          `json:"task_id"`
	Date        string          `json:"date"`
	Hours       json.RawMessage `json:"hours"`
	Description string          `json:"description"`
}

func (h *TimeLogHandler) listInput(c *gin.Context) services.ListTimeLogsInput {
	input := services.ListTimeLogsInput{
		TaskID:    optionalQuery(c, "task_id"),
		UserID:    optionalQuery(c, "user_id"),
		TextQuery: c.Query("q"),
	}

	if input.UserID != nil && *input.UserID == "me" {
		if userID, ok := middleware.GetUserID(c); ok {
			input.UserID = &userID
		}
	}

	return input
}

// ListTimeLogs returns the entries matching the query filters
func (h *TimeLogHandler) ListTimeLogs(c *gin.Context) {
	entries, err := h.timeLogs.ListEntries(h.listInput(c))
	if err != nil {
		respondError(c, err, "fetch time logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entries":     dto.ToTimeLogDTOs(entries),
		"total_hours": services.TotalHours(entries),
	})
}

// CreateTimeLog logs time for the acting user
func (h *TimeLogHandler) CreateTimeLog(c *gin.Context) {
	var req CreateTimeLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input := services.TimeLogInput{
		TaskID:      req.TaskID,
		Description: req.Description,
	}

	if strings.TrimSpace(req.Date) != "" {
		date, err := parseDate(req.Date)
		if err != nil {
			apierrors.InvalidFormat(c, "date", constants.DateLayout)
			return
		}
		input.Date = date
	}

	hours, err := parseHoursField(req.Hours)
	if err != nil {
		respondError(c, err, "create time log")
		return
	}
	input.Hours = hours

	if user, ok := middleware.GetUser(c); ok {
		input.User = user
	}

	entry, err := h.timeLogs.AddEntry(input)
	if err != nil {
		respondError(c, err, "create time log")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTimeLogDTO(*entry))
}

// UpdateTimeLog edits the fields present in the body
func (h *TimeLogHandler) UpdateTimeLog(c *gin.Context) {
	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	input, err := updateTimeLogInput(rawReq)
	if err != nil {
		apierrors.BadRequest(c, err.Error())
		return
	}

	entry, err := h.timeLogs.UpdateEntry(c.Param("id"), input)
	if err != nil {
		respondError(c, err, "update time log")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeLogDTO(*entry))
}

func updateTimeLogInput(raw map[string]any) (services.UpdateTimeLogInput, error) {
	var input services.UpdateTimeLogInput
	var err error

	if input.TaskID, err = patchString(raw, "task_id"); err != nil {
		return input, err
	}
	if input.Description, err = patchString(raw, "description"); err != nil {
		return input, err
	}

	date, cleared, err := patchDate(raw, "date")
	if err != nil {
		return input, err
	}
	if cleared {
		return input, services.ErrDateRequired
	}
	input.Date = date

	if value, ok := raw["hours"]; ok {
		var hours float64
		switch v := value.(type) {
		case float64:
			hours = v
		case string:
			if hours, err = services.ParseHours(v); err != nil {
				return input, err
			}
		default:
			return input, services.ErrInvalidHours
		}
		input.Hours = &hours
	}

	return input, nil
}

// parseHoursField accepts a JSON number or a numeric string
func parseHoursField(raw json.RawMessage) (float64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, services.ErrInvalidHours
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		return services.ParseHours(text)
	}

	var hours float64
	if err := json.Unmarshal(raw, &hours); err != nil {
		return 0, services.ErrInvalidHours
	}
	return hours, nil
}

// DeleteTimeLog removes an entry. Unknown IDs also answer 204.
func (h *TimeLogHandler) DeleteTimeLog(c *gin.Context) {
	if err := h.timeLogs.DeleteEntry(c.Param("id")); err != nil {
		respondError(c, err, "delete time log")
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSummary returns the dashboard totals for the week around ?date=
func (h *TimeLogHandler) GetSummary(c *gin.Context) {
	ref, ok := referenceDate(c)
	if !ok {
		return
	}

	summary, err := h.timeLogs.Summary(h.listInput(c), ref)
	if err != nil {
		respondError(c, err, "summarize time logs")
		return
	}

	c.JSON(http.StatusOK, dto.ToTimeLogSummaryDTO(summary))
}

// GetByTask returns the hours booked per task
func (h *TimeLogHandler) GetByTask(c *gin.Context) {
	entries, err := h.timeLogs.ListEntries(h.listInput(c))
	if err != nil {
		respondError(c, err, "fetch time logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": dto.ToTaskHoursDTOs(services.AggregateByTask(entries)),
	})
}

// GetWeek returns the hours of the week around ?date=, split by weekday
func (h *TimeLogHandler) GetWeek(c *gin.Context) {
	ref, ok := referenceDate(c)
	if !ok {
		return
	}

	entries, err := h.timeLogs.ListEntries(h.listInput(c))
	if err != nil {
		respondError(c, err, "fetch time logs")
		return
	}

	c.JSON(http.StatusOK, dto.ToWeekDTO(
		services.WeekStart(ref),
		services.AggregateByWeek(entries, ref),
		services.AggregateByWeekday(entries, ref),
	))
}

// Export streams the filtered entries as a downloadable timesheet
func (h *TimeLogHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		apierrors.BadRequestWithDetails(c, "Unsupported export format", gin.H{
			"supported": []export.Format{export.FormatXLSX, export.FormatCSV},
		})
		return
	}

	entries, err := h.timeLogs.ListEntries(h.listInput(c))
	if err != nil {
		respondError(c, err, "fetch time logs")
		return
	}

	exporter, err := export.NewExporter(format)
	if err != nil {
		respondError(c, err, "export time logs")
		return
	}

	var buf bytes.Buffer
	if err := exporter.Export(&buf, export.NewTimesheet(entries)); err != nil {
		respondError(c, err, "export time logs")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+format.Filename(time.Now())+`"`)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

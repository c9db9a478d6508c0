package handlers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/workboard-api/internal/catalog"
	"github.com/yukikurage/workboard-api/internal/constants"
	apierrors "github.com/yukikurage/workboard-api/internal/errors"
	"github.com/yukikurage/workboard-api/internal/logging"
	"github.com/yukikurage/workboard-api/internal/services"
)

// respondError maps service errors onto API errors. Anything unexpected is
// logged and reported as "Failed to <action>".
func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrValidation):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, "Task not found")
	case errors.Is(err, services.ErrTimeLogNotFound):
		apierrors.NotFound(c, "Time log entry not found")
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "User not found")
	case errors.Is(err, catalog.ErrReportNotFound):
		apierrors.NotFound(c, "Report not found")
	default:
		logging.Logger.WithError(err).WithField("path", c.Request.URL.Path).Errorf("failed to %s", action)
		apierrors.InternalError(c, "Failed to "+action)
	}
}

func parseDate(raw string) (time.Time, error) {
	return time.Parse(constants.DateLayout, strings.TrimSpace(raw))
}

// referenceDate reads the optional ?date= parameter, defaulting to today
func referenceDate(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now(), true
	}

	date, err := parseDate(raw)
	if err != nil {
		apierrors.InvalidFormat(c, "date", constants.DateLayout)
		return time.Time{}, false
	}
	return date, true
}

// optionalQuery returns a pointer to the query value, or nil when absent or blank
func optionalQuery(c *gin.Context, key string) *string {
	value := strings.TrimSpace(c.Query(key))
	if value == "" {
		return nil
	}
	return &value
}

// patchString reads an optional string field from a raw JSON patch. A JSON
// null yields an empty string.
func patchString(raw map[string]any, key string) (*string, error) {
	value, ok := raw[key]
	if !ok {
		return nil, nil
	}
	if value == nil {
		empty := ""
		return &empty, nil
	}
	s, ok := value.(string)
	if !ok {
		return nil, fmt.Errorf("%s must be a string", key)
	}
	return &s, nil
}

// patchNumber reads an optional number field from a raw JSON patch. The
// second result reports an explicit null.
func patchNumber(raw map[string]any, key string) (*float64, bool, error) {
	value, ok := raw[key]
	if !ok {
		return nil, false, nil
	}
	if value == nil {
		return nil, true, nil
	}
	f, ok := value.(float64)
	if !ok {
		return nil, false, fmt.Errorf("%s must be a number", key)
	}
	return &f, false, nil
}

// patchDate reads an optional YYYY-MM-DD field from a raw JSON patch. The
// second result reports an explicit null.
func patchDate(raw map[string]any, key string) (*time.Time, bool, error) {
	s, err := patchString(raw, key)
	if err != nil || s == nil {
		return nil, false, err
	}
	if *s == "" {
		return nil, true, nil
	}
	date, err := parseDate(*s)
	if err != nil {
		return nil, false, fmt.Errorf("%s must use the format %s", key, constants.DateLayout)
	}
	return &date, false, nil
}

func patchStrings(raw map[string]any, key string) ([]string, error) {
	value, ok := raw[key]
	if !ok {
		return nil, nil
	}
	if value == nil {
		return []string{}, nil
	}
	items, ok := value.([]any)
	if !ok {
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("%s must be an array of strings", key)
		}
		result = append(result, s)
	}
	return result, nil
}

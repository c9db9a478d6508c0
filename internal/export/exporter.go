// Package export writes time tracking data as downloadable timesheets.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/yukikurage/workboard-api/internal/models"
	"github.com/yukikurage/workboard-api/internal/services"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ParseFormat accepts a format name case-insensitively. Empty means xlsx.
func ParseFormat(name string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(name))) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
}

func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Filename names a download generated at t
func (f Format) Filename(t time.Time) string {
	return fmt.Sprintf("timesheet_%s.%s", t.Format("2006-01-02_15-04-05"), f)
}

// Timesheet is the data behind one export
type Timesheet struct {
	Entries []models.TimeLogEntry
	Totals  []services.TaskHours
}

// NewTimesheet builds a timesheet with per-task totals for entries
func NewTimesheet(entries []models.TimeLogEntry) Timesheet {
	return Timesheet{
		Entries: entries,
		Totals:  services.AggregateByTask(entries),
	}
}

// TimesheetExporter renders a timesheet to w
type TimesheetExporter interface {
	Export(w io.Writer, sheet Timesheet) error
}

// NewExporter returns the exporter for format
func NewExporter(format Format) (TimesheetExporter, error) {
	switch format {
	case FormatXLSX:
		return NewExcelExporter(), nil
	case FormatCSV:
		return NewCSVExporter(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
}

var entryHeader = []string{"#", "Date", "Task", "Task Title", "User", "Hours", "Description"}

var totalsHeader = []string{"Task", "Task Title", "Hours"}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}

package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/services"
)

// CSVExporter writes the entry list, a blank line, then per-task totals
type CSVExporter struct{}

func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

func (e *CSVExporter) Export(w io.Writer, sheet Timesheet) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(entryHeader); err != nil {
		return err
	}

	for i, entry := range sheet.Entries {
		row := []string{
			fmt.Sprintf("%d", i+1),
			entry.Date.Format(constants.DateLayout),
			entry.TaskID,
			entry.TaskTitle,
			entry.User.DisplayName,
			formatHours(entry.Hours),
			entry.Description,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	if err := writer.Write(nil); err != nil {
		return err
	}
	if err := writer.Write(totalsHeader); err != nil {
		return err
	}

	for _, total := range sheet.Totals {
		if err := writer.Write([]string{total.TaskID, total.TaskTitle, formatHours(total.Hours)}); err != nil {
			return err
		}
	}

	if err := writer.Write([]string{"Total", "", formatHours(services.TotalHours(sheet.Entries))}); err != nil {
		return err
	}

	writer.Flush()
	return writer.Error()
}

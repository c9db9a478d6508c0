package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/workboard-api/internal/constants"
	"github.com/yukikurage/workboard-api/internal/services"
)

const (
	entriesSheet = "Time Log"
	totalsSheet  = "By Task"
)

// ExcelExporter writes a workbook with an entry sheet and a per-task sheet
type ExcelExporter struct{}

func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

func (e *ExcelExporter) Export(w io.Writer, sheet Timesheet) error {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	totalStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Font: &excelize.Font{Bold: true},
	})
	if err != nil {
		return fmt.Errorf("failed to create total style: %w", err)
	}

	if err := e.createEntriesSheet(f, sheet, headerStyle, totalStyle); err != nil {
		return fmt.Errorf("failed to create entries sheet: %w", err)
	}
	if err := e.createTotalsSheet(f, sheet, headerStyle, totalStyle); err != nil {
		return fmt.Errorf("failed to create totals sheet: %w", err)
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to remove default sheet: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func (e *ExcelExporter) createEntriesSheet(f *excelize.File, sheet Timesheet, headerStyle, totalStyle int) error {
	index, err := f.NewSheet(entriesSheet)
	if err != nil {
		return err
	}
	f.SetActiveSheet(index)

	if err := writeRow(f, entriesSheet, 1, toCells(entryHeader)); err != nil {
		return err
	}
	if err := f.SetCellStyle(entriesSheet, cellName(1, 1), cellName(len(entryHeader), 1), headerStyle); err != nil {
		return err
	}

	row := 2
	for i, entry := range sheet.Entries {
		cells := []interface{}{
			i + 1,
			entry.Date.Format(constants.DateLayout),
			entry.TaskID,
			entry.TaskTitle,
			entry.User.DisplayName,
			entry.Hours,
			entry.Description,
		}
		if err := writeRow(f, entriesSheet, row, cells); err != nil {
			return err
		}
		row++
	}

	if err := writeRow(f, entriesSheet, row, []interface{}{"Total", "", "", "", "", services.TotalHours(sheet.Entries)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(entriesSheet, cellName(1, row), cellName(len(entryHeader), row), totalStyle); err != nil {
		return err
	}

	if err := f.SetPanes(entriesSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	f.SetColWidth(entriesSheet, "A", "A", 5)
	f.SetColWidth(entriesSheet, "B", "C", 12)
	f.SetColWidth(entriesSheet, "D", "D", 45)
	f.SetColWidth(entriesSheet, "E", "E", 20)
	f.SetColWidth(entriesSheet, "F", "F", 8)
	f.SetColWidth(entriesSheet, "G", "G", 45)

	return nil
}

func (e *ExcelExporter) createTotalsSheet(f *excelize.File, sheet Timesheet, headerStyle, totalStyle int) error {
	if _, err := f.NewSheet(totalsSheet); err != nil {
		return err
	}

	if err := writeRow(f, totalsSheet, 1, toCells(totalsHeader)); err != nil {
		return err
	}
	if err := f.SetCellStyle(totalsSheet, cellName(1, 1), cellName(len(totalsHeader), 1), headerStyle); err != nil {
		return err
	}

	row := 2
	for _, total := range sheet.Totals {
		if err := writeRow(f, totalsSheet, row, []interface{}{total.TaskID, total.TaskTitle, total.Hours}); err != nil {
			return err
		}
		row++
	}

	if err := writeRow(f, totalsSheet, row, []interface{}{"Total", "", services.TotalHours(sheet.Entries)}); err != nil {
		return err
	}
	if err := f.SetCellStyle(totalsSheet, cellName(1, row), cellName(len(totalsHeader), row), totalStyle); err != nil {
		return err
	}

	f.SetColWidth(totalsSheet, "A", "A", 12)
	f.SetColWidth(totalsSheet, "B", "B", 45)
	f.SetColWidth(totalsSheet, "C", "C", 8)

	return nil
}

func writeRow(f *excelize.File, sheetName string, row int, cells []interface{}) error {
	return f.SetSheetRow(sheetName, cellName(1, row), &cells)
}

func toCells(values []string) []interface{} {
	cells := make([]interface{}, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// Package export renders issue lists as spreadsheet downloads.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
)

// IssueRow is one line of the export, already resolved to display names.
type IssueRow struct {
	ID          string
	Machine     string
	Description string
	Urgency     string
	Status      string
	ReportedBy  string
	AssignedTo  string
	Resolution  string
	CreatedAt   time.Time
	AcceptedAt  *time.Time
	ClosedAt    *time.Time
}

const sheetName = "Issues"

var headers = []string{
	"ID", "Machine", "Description", "Urgency", "Status",
	"Reported By", "Assigned To", "Resolution",
	"Created At", "Accepted At", "Closed At",
}

// WriteIssuesXLSX writes the rows as an xlsx workbook.
func WriteIssuesXLSX(w io.Writer, rows []IssueRow) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheetName)

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("failed to compute header cell: %w", err)
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	for i, row := range rows {
		values := []interface{}{
			row.ID,
			row.Machine,
			row.Description,
			row.Urgency,
			row.Status,
			row.ReportedBy,
			row.AssignedTo,
			row.Resolution,
			formatTime(&row.CreatedAt),
			formatTime(row.AcceptedAt),
			formatTime(row.ClosedAt),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to compute cell: %w", err)
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return fmt.Errorf("failed to write row %d: %w", i+1, err)
			}
		}
	}

	if err := f.SetColWidth(sheetName, "A", "K", 18); err != nil {
		return fmt.Errorf("failed to set column width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	return nil
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

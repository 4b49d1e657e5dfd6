package export

import (
	"fmt"
	"time"

	"DocRegistry/models"

	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var columns = []any{"id", "subject", "notes", "date", "time", "owner"}

// Filename is the download name for an export taken at now.
func Filename(kind models.DocumentKind, now time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", kind, now.Format("20060102_150405"))
}

// Workbook renders docs into a single-sheet xlsx named after kind.
func Workbook(kind models.DocumentKind, docs []models.Document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := kind.Title()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name sheet: %w", err)
	}

	header := columns
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for i, d := range docs {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{d.ID, d.Subject, d.Notes, d.DateString(), d.TimeString(), d.OwnerName}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write row %d: %w", d.ID, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}

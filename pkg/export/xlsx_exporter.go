package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const xlsxSheet = "Attendance"

// XLSXExporter renders datasets into a single-sheet workbook.
type XLSXExporter struct{}

// NewXLSXExporter constructs an XLSX exporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// ContentType reports the MIME type of rendered documents.
func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Extension reports the file extension of rendered documents.
func (e *XLSXExporter) Extension() string { return "xlsx" }

// Render writes the title on the first row, the table below it and the summary last.
func (e *XLSXExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("xlsx requires at least one header")
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(xlsxSheet)
	if err != nil {
		return nil, fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("drop default sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("create header style: %w", err)
	}

	row := 1
	if data.Title != "" {
		if err := f.SetCellValue(xlsxSheet, "A1", data.Title); err != nil {
			return nil, fmt.Errorf("write title: %w", err)
		}
		row = 3
	}

	lastCol, err := excelize.ColumnNumberToName(len(data.Headers))
	if err != nil {
		return nil, fmt.Errorf("resolve columns: %w", err)
	}

	if err := writeRow(f, row, data.Headers); err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(xlsxSheet, fmt.Sprintf("A%d", row), fmt.Sprintf("%s%d", lastCol, row), headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	row++

	for _, r := range data.Rows {
		if err := writeRow(f, row, data.record(r)); err != nil {
			return nil, err
		}
		row++
	}

	if len(data.Summary) > 0 {
		row++
		for _, line := range data.Summary {
			if err := writeRow(f, row, []string{line.Label, line.Value}); err != nil {
				return nil, err
			}
			row++
		}
	}

	if err := f.SetColWidth(xlsxSheet, "A", lastCol, 22); err != nil {
		return nil, fmt.Errorf("size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("render xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, row int, values []string) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("resolve cell: %w", err)
	}
	if err := f.SetSheetRow(xlsxSheet, cell, &values); err != nil {
		return fmt.Errorf("write xlsx row %d: %w", row, err)
	}
	return nil
}

package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter renders Dataset records into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// ContentType reports the MIME type of rendered documents.
func (e *CSVExporter) ContentType() string { return "text/csv" }

// Extension reports the file extension of rendered documents.
func (e *CSVExporter) Extension() string { return "csv" }

// Render produces CSV encoded bytes for the dataset. Summary lines follow the table
// after one blank record.
func (e *CSVExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("csv requires at least one header")
	}
	buf := &bytes.Buffer{}
	writer := csv.NewWriter(buf)
	if err := writer.Write(data.Headers); err != nil {
		return nil, fmt.Errorf("write csv headers: %w", err)
	}
	for _, row := range data.Rows {
		if err := writer.Write(data.record(row)); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	if len(data.Summary) > 0 {
		if err := writer.Write([]string{}); err != nil {
			return nil, fmt.Errorf("write csv separator: %w", err)
		}
		for _, line := range data.Summary {
			if err := writer.Write([]string{line.Label, line.Value}); err != nil {
				return nil, fmt.Errorf("write csv summary: %w", err)
			}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

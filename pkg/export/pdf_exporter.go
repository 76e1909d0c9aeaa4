package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a basic tabular PDF.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// ContentType reports the MIME type of rendered documents.
func (e *PDFExporter) ContentType() string { return "application/pdf" }

// Extension reports the file extension of rendered documents.
func (e *PDFExporter) Extension() string { return "pdf" }

// Render creates a PDF document with the dataset title, the table body and the summary.
func (e *PDFExporter) Render(data Dataset) ([]byte, error) {
	if len(data.Headers) == 0 {
		return nil, fmt.Errorf("pdf requires at least one header")
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.CellFormat(0, 8, fmt.Sprintf("%d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()
	// Core fonts are cp1252; names carry accents.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if data.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(strings.ToUpper(data.Title)), "", 1, "C", false, 0, "")
		pdf.Ln(5)
	}

	colWidth := 190.0 / float64(len(data.Headers))
	writeHeader := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, header := range data.Headers {
			pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	writeHeader()

	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	for _, row := range data.Rows {
		if pdf.GetY()+7 > pageHeight-bottom-10 {
			pdf.AddPage()
			writeHeader()
		}
		for _, value := range data.record(row) {
			pdf.CellFormat(colWidth, 7, tr(value), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(data.Summary) > 0 {
		pdf.Ln(6)
		for _, line := range data.Summary {
			pdf.SetFont("Arial", "B", 10)
			pdf.CellFormat(70, 7, tr(line.Label), "", 0, "", false, 0, "")
			pdf.SetFont("Arial", "", 10)
			pdf.CellFormat(0, 7, tr(line.Value), "", 1, "", false, 0, "")
		}
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

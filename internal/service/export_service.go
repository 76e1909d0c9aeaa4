package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/attendance"
	"github.com/noah-isme/attendance-api/internal/dto"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
	"github.com/noah-isme/attendance-api/pkg/export"
)

type rosterSource interface {
	Roster(ctx context.Context, q RosterQuery) ([]dto.RosterEntry, error)
}

type renderer interface {
	ContentType() string
	Extension() string
	Render(data export.Dataset) ([]byte, error)
}

var exportHeaders = []string{"Last Name", "First Name", "Department", "Level", "Status"}

// ExportFile is a rendered roster ready to be streamed to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ExportService renders daily rosters as CSV, PDF or XLSX files.
type ExportService struct {
	roster    rosterSource
	renderers map[string]renderer
	metrics   *MetricsService
	maxRows   int
	logger    *zap.Logger
}

// NewExportService wires the exporters of pkg/export.
func NewExportService(roster rosterSource, metrics *MetricsService, maxRows int, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		roster: roster,
		renderers: map[string]renderer{
			"csv":  export.NewCSVExporter(),
			"pdf":  export.NewPDFExporter(),
			"xlsx": export.NewXLSXExporter(),
		},
		metrics: metrics,
		maxRows: maxRows,
		logger:  logger,
	}
}

// Roster renders the roster selected by q in format.
func (s *ExportService) Roster(ctx context.Context, format string, q RosterQuery) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = "csv"
	}
	r, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	start := time.Now()
	entries, err := s.roster.Roster(ctx, q)
	if err != nil {
		return nil, err
	}
	if s.maxRows > 0 && len(entries) > s.maxRows {
		return nil, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("export exceeds %d rows, narrow the selection", s.maxRows))
	}

	parsed, err := parseDay(q.Date)
	if err != nil {
		return nil, err
	}
	day := attendance.FormatDay(parsed)
	body, err := r.Render(rosterDataset(day, entries))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.metrics.ObserveReport("export_"+format, time.Since(start))

	filename := fmt.Sprintf("attendance-%s-%s.%s", day, uuid.NewString()[:8], r.Extension())
	s.logger.Info("roster exported",
		zap.String("format", format),
		zap.String("date", day),
		zap.Int("rows", len(entries)))

	return &ExportFile{Filename: filename, ContentType: r.ContentType(), Body: body}, nil
}

func rosterDataset(day string, entries []dto.RosterEntry) export.Dataset {
	rows := make([]map[string]string, 0, len(entries))
	aggregated := make([]attendance.Entry, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, map[string]string{
			"Last Name":  e.LastName,
			"First Name": e.FirstName,
			"Department": e.DepartmentCode,
			"Level":      e.LevelCode,
			"Status":     string(e.Status),
		})
		aggregated = append(aggregated, attendance.Entry{
			DepartmentCode: e.DepartmentCode,
			LevelCode:      e.LevelCode,
			Status:         e.Status,
		})
	}

	global, departments, levels := attendance.Aggregate(aggregated)
	summary := []export.SummaryLine{summaryLine("Global", global)}
	for _, code := range sortedKeys(departments) {
		summary = append(summary, summaryLine("Department "+code, departments[code]))
	}
	for _, code := range sortedKeys(levels) {
		summary = append(summary, summaryLine("Level "+code, levels[code]))
	}

	return export.Dataset{
		Title:   "Attendance " + day,
		Headers: exportHeaders,
		Rows:    rows,
		Summary: summary,
	}
}

func summaryLine(label string, b attendance.RateBlock) export.SummaryLine {
	return export.SummaryLine{
		Label: label,
		Value: fmt.Sprintf("%d/%d present (%d%%)", b.Present, b.Total, b.PresenceRate),
	}
}

func sortedKeys(m map[string]attendance.RateBlock) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

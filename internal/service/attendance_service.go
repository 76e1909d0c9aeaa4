package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/attendance"
	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

type attendanceRepository interface {
	Upsert(ctx context.Context, studentID int64, day time.Time, status models.AttendanceStatus) (*models.Attendance, error)
	Roster(ctx context.Context, filter models.RosterFilter) ([]models.RosterRow, error)
}

type levelResolver interface {
	Department(ctx context.Context, code string) (*models.Department, error)
	Level(ctx context.Context, code, departmentCode string) (*models.Level, error)
	LevelByID(ctx context.Context, id int64) (*models.Level, error)
}

// MarkAttendanceRequest marks one student present or absent for one day.
type MarkAttendanceRequest struct {
	StudentID int64  `json:"studentId" validate:"required,gt=0"`
	IsPresent *bool  `json:"isPresent" validate:"required"`
	Date      string `json:"date" validate:"required"`
}

// RosterQuery selects the students of a roster. Date is required.
type RosterQuery struct {
	Date           string
	LevelID        int64
	LevelCode      string
	DepartmentCode string
}

// AttendanceService writes marks and resolves daily rosters.
type AttendanceService struct {
	repo      attendanceRepository
	levels    levelResolver
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAttendanceService constructs the attendance service.
func NewAttendanceService(repo attendanceRepository, levels levelResolver, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AttendanceService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{repo: repo, levels: levels, cache: cache, metrics: metrics, validator: validate, logger: logger}
}

// Mark records the presence of a student for the UTC day of req.Date. Repeated marks
// for the same student and day overwrite the stored status.
func (s *AttendanceService) Mark(ctx context.Context, req MarkAttendanceRequest) (*dto.RosterEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid attendance payload")
	}
	day, err := parseDay(req.Date)
	if err != nil {
		return nil, err
	}

	status := models.StatusFromPresence(*req.IsPresent)
	record, err := s.repo.Upsert(ctx, req.StudentID, day, status)
	if err != nil {
		return nil, storeError(err, "failed to mark attendance", "student not found", "")
	}

	dayKey := attendance.FormatDay(day)
	s.metrics.RecordAttendanceMark(string(status))
	s.cache.InvalidateDay(ctx, dayKey)
	s.logger.Info("attendance marked",
		zap.Int64("student_id", req.StudentID),
		zap.String("date", dayKey),
		zap.String("status", string(record.Status)))

	rows, err := s.repo.Roster(ctx, models.RosterFilter{Date: day, StudentID: req.StudentID})
	if err != nil {
		return nil, appErrors.Storage(err, "failed to load attendance")
	}
	if len(rows) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	entry := dto.NewRosterEntry(rows[0], dayKey)
	return &entry, nil
}

// Roster lists the selected students with their resolved status for the day.
func (s *AttendanceService) Roster(ctx context.Context, q RosterQuery) ([]dto.RosterEntry, error) {
	day, err := parseDay(q.Date)
	if err != nil {
		return nil, err
	}

	filter := models.RosterFilter{Date: day, DepartmentCode: strings.TrimSpace(q.DepartmentCode)}
	switch {
	case q.LevelID > 0:
		level, err := s.levels.LevelByID(ctx, q.LevelID)
		if err != nil {
			return nil, err
		}
		filter.LevelID = level.ID
	case strings.TrimSpace(q.LevelCode) != "":
		level, err := s.levels.Level(ctx, strings.TrimSpace(q.LevelCode), filter.DepartmentCode)
		if err != nil {
			return nil, err
		}
		filter.LevelCode = level.Code
	case filter.DepartmentCode != "":
		if _, err := s.levels.Department(ctx, filter.DepartmentCode); err != nil {
			return nil, err
		}
	}

	rows, err := s.repo.Roster(ctx, filter)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to load roster")
	}

	dayKey := attendance.FormatDay(day)
	entries := make([]dto.RosterEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, dto.NewRosterEntry(row, dayKey))
	}
	return entries, nil
}

func parseDay(raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, appErrors.Clone(appErrors.ErrValidation, "date is required")
	}
	day, err := attendance.ParseDay(raw)
	if err != nil {
		return time.Time{}, appErrors.Validation(err, "invalid date, expected YYYY-MM-DD")
	}
	return day, nil
}

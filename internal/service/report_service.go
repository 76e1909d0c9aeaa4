package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/noah-isme/attendance-api/internal/attendance"
	"github.com/noah-isme/attendance-api/internal/dto"
	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

const monthLayout = "2006-01"

type reportAttendanceRepository interface {
	Roster(ctx context.Context, filter models.RosterFilter) ([]models.RosterRow, error)
	CountPresent(ctx context.Context, filter models.PopulationFilter, start, end time.Time) (int, error)
	DailyCounts(ctx context.Context, filter models.PopulationFilter, start, end time.Time) ([]models.DailyCount, error)
}

type studentCounter interface {
	Count(ctx context.Context, filter models.PopulationFilter) (int, error)
}

type reportCatalog interface {
	Department(ctx context.Context, code string) (*models.Department, error)
	Level(ctx context.Context, code, departmentCode string) (*models.Level, error)
	DepartmentCount(ctx context.Context) (int, error)
	LevelCount(ctx context.Context) (int, error)
}

// ReportQuery selects a daily report. Department and level narrow the population.
type ReportQuery struct {
	Date           string
	DepartmentCode string
	LevelCode      string
}

// PeriodQuery selects the period statistics of a department and level.
type PeriodQuery struct {
	DepartmentCode string
	LevelCode      string
	Type           string
	Date           string
	StartDate      string
	EndDate        string
}

// OverviewQuery selects the monthly overview of a department and level.
type OverviewQuery struct {
	DepartmentCode string
	LevelCode      string
	Month          string
}

// ReportServiceParams groups constructor dependencies.
type ReportServiceParams struct {
	Attendance reportAttendanceRepository
	Students   studentCounter
	Catalog    reportCatalog
	Cache      *CacheService
	Metrics    *MetricsService
	Logger     *zap.Logger
	CacheTTL   time.Duration
}

// ReportService computes daily reports, period rates and monthly overviews.
type ReportService struct {
	attendance reportAttendanceRepository
	students   studentCounter
	catalog    reportCatalog
	cache      *CacheService
	metrics    *MetricsService
	logger     *zap.Logger
	ttl        time.Duration
	now        func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(params ReportServiceParams) *ReportService {
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		attendance: params.Attendance,
		students:   params.Students,
		catalog:    params.Catalog,
		cache:      params.Cache,
		metrics:    params.Metrics,
		logger:     logger,
		ttl:        params.CacheTTL,
		now:        time.Now,
	}
}

// Daily assembles the report of one day and indicates cache utilisation.
func (s *ReportService) Daily(ctx context.Context, q ReportQuery) (*attendance.Report, bool, error) {
	day, err := parseDay(q.Date)
	if err != nil {
		return nil, false, err
	}
	population, err := s.population(ctx, q.DepartmentCode, q.LevelCode, false)
	if err != nil {
		return nil, false, err
	}

	dayKey := attendance.FormatDay(day)
	key := cacheKey(cacheReportPrefix, dayKey, population.DepartmentCode, population.LevelCode)
	var cached attendance.Report
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	start := time.Now()
	rows, err := s.attendance.Roster(ctx, models.RosterFilter{
		Date:           day,
		DepartmentCode: population.DepartmentCode,
		LevelCode:      population.LevelCode,
	})
	if err != nil {
		return nil, false, appErrors.Storage(err, "failed to load attendance")
	}

	entries := make([]attendance.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, attendance.Entry{
			DepartmentCode: row.DepartmentCode,
			LevelCode:      row.LevelCode,
			Status:         attendance.Resolve(row.RecordStatus),
		})
	}
	report := attendance.Assemble(day, entries)
	s.metrics.ObserveReport("daily", time.Since(start))

	s.cache.Set(ctx, key, report, s.ttl)
	return &report, false, nil
}

// Period computes the presence rate of a department and level over a window.
func (s *ReportService) Period(ctx context.Context, q PeriodQuery) ([]attendance.PeriodStat, bool, error) {
	population, err := s.population(ctx, q.DepartmentCode, q.LevelCode, true)
	if err != nil {
		return nil, false, err
	}

	kind := attendance.PeriodKind(strings.ToLower(strings.TrimSpace(q.Type)))
	if kind == "" {
		return nil, false, appErrors.Clone(appErrors.ErrValidation, "type is required")
	}
	window, err := s.window(kind, q)
	if err != nil {
		return nil, false, err
	}

	key := cacheKey(cacheStatsPrefix, population.DepartmentCode, population.LevelCode, string(kind),
		attendance.FormatDay(window.Start), attendance.FormatDay(window.End))
	var cached []attendance.PeriodStat
	if s.cache.Get(ctx, key, &cached) {
		return cached, true, nil
	}

	start := time.Now()
	students, err := s.students.Count(ctx, population)
	if err != nil {
		return nil, false, appErrors.Storage(err, "failed to count students")
	}
	presences, err := s.attendance.CountPresent(ctx, population, window.Start, window.End)
	if err != nil {
		return nil, false, appErrors.Storage(err, "failed to count presences")
	}
	stats := []attendance.PeriodStat{attendance.PeriodRate(kind, window, students, presences)}
	s.metrics.ObserveReport("period", time.Since(start))

	s.cache.Set(ctx, key, stats, s.ttl)
	return stats, false, nil
}

// Overview summarises one month: global totals, the recorded presence rate of the
// department and level, and a per-weekday breakdown.
func (s *ReportService) Overview(ctx context.Context, q OverviewQuery) (*dto.MonthlyOverview, bool, error) {
	population, err := s.population(ctx, q.DepartmentCode, q.LevelCode, true)
	if err != nil {
		return nil, false, err
	}

	month := s.now().UTC()
	if raw := strings.TrimSpace(q.Month); raw != "" {
		month, err = time.Parse(monthLayout, raw)
		if err != nil {
			return nil, false, appErrors.Validation(err, "invalid month, expected YYYY-MM")
		}
	}
	window := attendance.MonthOf(month)
	monthKey := window.Start.Format(monthLayout)

	key := cacheKey(cacheOverviewPrefix, population.DepartmentCode, population.LevelCode, monthKey)
	var cached dto.MonthlyOverview
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	start := time.Now()
	overview := &dto.MonthlyOverview{
		Month:          monthKey,
		DepartmentCode: population.DepartmentCode,
		LevelCode:      population.LevelCode,
	}
	var counts []models.DailyCount

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		total, err := s.students.Count(gctx, models.PopulationFilter{})
		if err != nil {
			return appErrors.Storage(err, "failed to count students")
		}
		overview.TotalStudents = total
		return nil
	})
	g.Go(func() error {
		total, err := s.catalog.DepartmentCount(gctx)
		overview.TotalDepartments = total
		return err
	})
	g.Go(func() error {
		total, err := s.catalog.LevelCount(gctx)
		overview.TotalLevels = total
		return err
	})
	g.Go(func() error {
		var err error
		counts, err = s.attendance.DailyCounts(gctx, population, window.Start, window.End)
		if err != nil {
			return appErrors.Storage(err, "failed to load daily attendance")
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, false, err
	}

	byDay := make(map[string]models.DailyCount, len(counts))
	present, recorded := 0, 0
	for _, c := range counts {
		byDay[attendance.FormatDay(c.Date)] = c
		present += c.Present
		recorded += c.Present + c.Absent
	}
	overview.AttendanceRate = attendance.Percent(present, recorded)

	weekdays := window.Weekdays()
	overview.DailyStats = make([]dto.DayStat, 0, len(weekdays))
	for _, d := range weekdays {
		dayKey := attendance.FormatDay(d)
		c := byDay[dayKey]
		overview.DailyStats = append(overview.DailyStats, dto.DayStat{
			Date:         dayKey,
			Label:        d.Format("02/01"),
			Present:      c.Present,
			Absent:       c.Absent,
			PresenceRate: attendance.Percent(c.Present, c.Present+c.Absent),
		})
	}
	s.metrics.ObserveReport("overview", time.Since(start))

	s.cache.Set(ctx, key, overview, s.ttl)
	return overview, false, nil
}

// population validates the department and level codes. When required is set both
// codes must be present; the level must always belong to the department when both
// are given.
func (s *ReportService) population(ctx context.Context, departmentCode, levelCode string, required bool) (models.PopulationFilter, error) {
	filter := models.PopulationFilter{
		DepartmentCode: strings.TrimSpace(departmentCode),
		LevelCode:      strings.TrimSpace(levelCode),
	}
	if required && (filter.DepartmentCode == "" || filter.LevelCode == "") {
		return filter, appErrors.Clone(appErrors.ErrValidation, "departmentCode and levelCode are required")
	}
	if filter.DepartmentCode != "" {
		if _, err := s.catalog.Department(ctx, filter.DepartmentCode); err != nil {
			return filter, err
		}
	}
	if filter.LevelCode != "" {
		if _, err := s.catalog.Level(ctx, filter.LevelCode, filter.DepartmentCode); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func (s *ReportService) window(kind attendance.PeriodKind, q PeriodQuery) (attendance.Window, error) {
	ref := s.now()
	if strings.TrimSpace(q.Date) != "" {
		day, err := parseDay(q.Date)
		if err != nil {
			return attendance.Window{}, err
		}
		ref = day
	}

	var start, end time.Time
	if kind == attendance.PeriodCustom {
		var err error
		if start, err = parseDay(q.StartDate); err != nil {
			return attendance.Window{}, err
		}
		if end, err = parseDay(q.EndDate); err != nil {
			return attendance.Window{}, err
		}
	}

	window, err := attendance.ResolveWindow(kind, ref, start, end)
	if err != nil {
		return attendance.Window{}, appErrors.Validation(err, err.Error())
	}
	return window, nil
}

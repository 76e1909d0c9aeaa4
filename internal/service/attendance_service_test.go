package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/attendance"
	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

type mockAttendanceRepo struct {
	students map[int64]models.StudentDetail
	records  map[string]models.AttendanceStatus
	filters  []models.RosterFilter
	err      error
}

func newMockAttendanceRepo() *mockAttendanceRepo {
	return &mockAttendanceRepo{
		students: map[int64]models.StudentDetail{
			1: detail(1, "Awa", "Diop", "INFO", "L1-INFO"),
			2: detail(2, "Moussa", "Fall", "INFO", "L2-INFO"),
			3: detail(3, "Fatou", "Sow", "GEST", "L1-GEST"),
		},
		records: make(map[string]models.AttendanceStatus),
	}
}

func recordKey(id int64, day time.Time) string {
	return fmt.Sprintf("%d#%s", id, attendance.FormatDay(day))
}

func (m *mockAttendanceRepo) Upsert(ctx context.Context, studentID int64, day time.Time, status models.AttendanceStatus) (*models.Attendance, error) {
	if m.err != nil {
		return nil, m.err
	}
	if _, ok := m.students[studentID]; !ok {
		return nil, &pq.Error{Code: "23503"}
	}
	m.records[recordKey(studentID, day)] = status
	return &models.Attendance{ID: 7, StudentID: studentID, Date: day, Status: status}, nil
}

func (m *mockAttendanceRepo) Roster(ctx context.Context, filter models.RosterFilter) ([]models.RosterRow, error) {
	m.filters = append(m.filters, filter)
	if m.err != nil {
		return nil, m.err
	}
	var rows []models.RosterRow
	for id := int64(1); id <= int64(len(m.students)); id++ {
		s, ok := m.students[id]
		if !ok {
			continue
		}
		if filter.StudentID != 0 && filter.StudentID != id {
			continue
		}
		if filter.DepartmentCode != "" && s.DepartmentCode != filter.DepartmentCode {
			continue
		}
		if filter.LevelCode != "" && s.LevelCode != filter.LevelCode {
			continue
		}
		row := models.RosterRow{StudentDetail: s}
		if status, ok := m.records[recordKey(id, filter.Date)]; ok {
			row.RecordStatus = statusPtr(status)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (m *mockAttendanceRepo) CountPresent(ctx context.Context, filter models.PopulationFilter, start, end time.Time) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return 0, nil
}

func (m *mockAttendanceRepo) DailyCounts(ctx context.Context, filter models.PopulationFilter, start, end time.Time) ([]models.DailyCount, error) {
	if m.err != nil {
		return nil, m.err
	}
	return nil, nil
}

func newAttendanceServiceForTest(repo *mockAttendanceRepo, cache *CacheService) *AttendanceService {
	return NewAttendanceService(repo, NewCatalogService(newFakeCatalogRepo(), nil), cache, NewMetricsService(), nil, nil)
}

func TestAttendanceServiceMarkOverwrites(t *testing.T) {
	repo := newMockAttendanceRepo()
	svc := newAttendanceServiceForTest(repo, nil)
	ctx := context.Background()

	entry, err := svc.Mark(ctx, MarkAttendanceRequest{StudentID: 1, IsPresent: boolPtr(true), Date: "2024-03-04T22:15:00Z"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, entry.Status)
	assert.True(t, entry.IsPresent)
	assert.Equal(t, "2024-03-04", entry.Date)

	entry, err = svc.Mark(ctx, MarkAttendanceRequest{StudentID: 1, IsPresent: boolPtr(false), Date: "2024-03-04"})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusAbsent, entry.Status)
	assert.Len(t, repo.records, 1)
}

func TestAttendanceServiceMarkValidation(t *testing.T) {
	svc := newAttendanceServiceForTest(newMockAttendanceRepo(), nil)
	ctx := context.Background()

	_, err := svc.Mark(ctx, MarkAttendanceRequest{StudentID: 1, Date: "2024-03-04"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Mark(ctx, MarkAttendanceRequest{StudentID: 1, IsPresent: boolPtr(true), Date: "04/03/2024"})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Mark(ctx, MarkAttendanceRequest{StudentID: 42, IsPresent: boolPtr(true), Date: "2024-03-04"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestAttendanceServiceMarkInvalidatesDay(t *testing.T) {
	cacheRepo := newMemoryCacheRepo()
	cache := newTestCache(cacheRepo)
	svc := newAttendanceServiceForTest(newMockAttendanceRepo(), cache)
	ctx := context.Background()

	cache.Set(ctx, cacheKey(cacheReportPrefix, "2024-03-04", "", ""), 1, 0)
	cache.Set(ctx, cacheKey(cacheReportPrefix, "2024-03-05", "", ""), 1, 0)

	_, err := svc.Mark(ctx, MarkAttendanceRequest{StudentID: 2, IsPresent: boolPtr(true), Date: "2024-03-04"})
	require.NoError(t, err)

	assert.False(t, cacheRepo.has("report:2024-03-04:_:_"))
	assert.True(t, cacheRepo.has("report:2024-03-05:_:_"))
}

func TestAttendanceServiceRosterResolvesStatus(t *testing.T) {
	repo := newMockAttendanceRepo()
	svc := newAttendanceServiceForTest(repo, nil)
	ctx := context.Background()

	_, err := svc.Mark(ctx, MarkAttendanceRequest{StudentID: 1, IsPresent: boolPtr(true), Date: "2024-03-04"})
	require.NoError(t, err)

	entries, err := svc.Roster(ctx, RosterQuery{Date: "2024-03-04", DepartmentCode: "INFO"})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, attendance.StatusPresent, entries[0].Status)
	assert.Equal(t, attendance.StatusUnmarked, entries[1].Status)
	assert.False(t, entries[1].IsPresent)

	entries, err = svc.Roster(ctx, RosterQuery{Date: "2024-03-05", LevelID: 10})
	require.NoError(t, err)
	require.Len(t, repo.filters, 3)
	assert.Equal(t, int64(10), repo.filters[2].LevelID)
	assert.Len(t, entries, 3)
}

func TestAttendanceServiceRosterErrors(t *testing.T) {
	svc := newAttendanceServiceForTest(newMockAttendanceRepo(), nil)
	ctx := context.Background()

	_, err := svc.Roster(ctx, RosterQuery{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)

	_, err = svc.Roster(ctx, RosterQuery{Date: "2024-03-04", DepartmentCode: "NOPE"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Roster(ctx, RosterQuery{Date: "2024-03-04", LevelCode: "L1-GEST", DepartmentCode: "INFO"})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	_, err = svc.Roster(ctx, RosterQuery{Date: "2024-03-04", LevelID: 999})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

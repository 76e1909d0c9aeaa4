package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/attendance-api/internal/models"
)

var attendanceCols = []string{"id", "student_id", "date", "status", "created_at", "updated_at"}

func TestAttendanceRepositoryUpsertIsSingleStatement(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	day := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	now := time.Now().UTC()

	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status")).
		WithArgs(int64(3), "2024-03-05", models.AttendanceStatusPresent, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(attendanceCols).AddRow(int64(1), int64(3), day, "PRESENT", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status")).
		WithArgs(int64(3), "2024-03-05", models.AttendanceStatusAbsent, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows(attendanceCols).AddRow(int64(1), int64(3), day, "ABSENT", now, now))

	first, err := repo.Upsert(context.Background(), 3, day, models.AttendanceStatusPresent)
	require.NoError(t, err)
	second, err := repo.Upsert(context.Background(), 3, day, models.AttendanceStatusAbsent)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.AttendanceStatusAbsent, second.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryUpsertWrapsErrors(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	cause := errors.New("connection refused")
	mock.ExpectQuery("INSERT INTO attendances").WillReturnError(cause)

	_, err := repo.Upsert(context.Background(), 3, time.Now(), models.AttendanceStatusPresent)
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))
}

func TestAttendanceRepositoryRoster(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	cols := append(append([]string{}, studentDetailCols...), "attendance_id", "record_status")
	present := append(studentDetailValues(1, "Inès", "Alaoui", "GI", "GI2"), int64(5), "PRESENT")
	unmarked := append(studentDetailValues(2, "Omar", "Bennani", "GI", "GI2"), nil, nil)

	mock.ExpectQuery("(?s)" + regexp.QuoteMeta("LEFT JOIN attendances a ON a.student_id = s.id AND a.date = $1") + ".*" +
		regexp.QuoteMeta("WHERE l.code = $2 ORDER BY s.last_name ASC")).
		WithArgs("2024-03-05", "GI2").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(present...).AddRow(unmarked...))

	rows, err := repo.Roster(context.Background(), models.RosterFilter{
		Date:      time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		LevelCode: "GI2",
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].RecordStatus)
	assert.Equal(t, models.AttendanceStatusPresent, *rows[0].RecordStatus)
	assert.Nil(t, rows[1].RecordStatus)
	assert.Nil(t, rows[1].AttendanceID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryCountPresentInclusiveWindow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE a.status = $1 AND a.date >= $2 AND a.date <= $3 AND d.code = $4 AND l.code = $5")).
		WithArgs(models.AttendanceStatusPresent, "2024-03-04", "2024-03-10", "GI", "GI2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(10))

	total, err := repo.CountPresent(context.Background(),
		models.PopulationFilter{DepartmentCode: "GI", LevelCode: "GI2"},
		time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 10, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAttendanceRepositoryDailyCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAttendanceRepository(db)

	d1 := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	d2 := time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(regexp.QuoteMeta("GROUP BY a.date ORDER BY a.date")).
		WithArgs("2024-03-01", "2024-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"date", "present", "absent"}).AddRow(d1, 8, 2).AddRow(d2, 9, 1))

	counts, err := repo.DailyCounts(context.Background(), models.PopulationFilter{},
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, 8, counts[0].Present)
	assert.Equal(t, 1, counts[1].Absent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

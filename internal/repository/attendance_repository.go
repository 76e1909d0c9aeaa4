package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
)

// AttendanceRepository persists one attendance record per student and day.
type AttendanceRepository struct {
	db *sqlx.DB
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *sqlx.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Upsert creates the record of (studentID, day) or overwrites its status in a single
// statement. Uniqueness is enforced by the (student_id, date) constraint.
func (r *AttendanceRepository) Upsert(ctx context.Context, studentID int64, day time.Time, status models.AttendanceStatus) (*models.Attendance, error) {
	const query = `INSERT INTO attendances (student_id, date, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (student_id, date) DO UPDATE SET status = EXCLUDED.status, updated_at = EXCLUDED.updated_at
RETURNING id, student_id, date, status, created_at, updated_at`

	var record models.Attendance
	if err := r.db.QueryRowxContext(ctx, query, studentID, sqlDate(day), status, time.Now().UTC()).StructScan(&record); err != nil {
		return nil, fmt.Errorf("upsert attendance: %w", err)
	}
	return &record, nil
}

// Roster returns every student matching the filter with its optional record for the
// filter's day, ordered by last then first name.
func (r *AttendanceRepository) Roster(ctx context.Context, filter models.RosterFilter) ([]models.RosterRow, error) {
	where := &whereBuilder{args: []interface{}{sqlDate(filter.Date)}}
	where.population(models.PopulationFilter{DepartmentCode: filter.DepartmentCode, LevelCode: filter.LevelCode})
	if filter.LevelID > 0 {
		where.add("s.level_id = $%d", filter.LevelID)
	}
	if filter.StudentID > 0 {
		where.add("s.id = $%d", filter.StudentID)
	}

	query := fmt.Sprintf(`SELECT %s,
a.id AS attendance_id, a.status AS record_status
%s
LEFT JOIN attendances a ON a.student_id = s.id AND a.date = $1
%s ORDER BY s.last_name ASC, s.first_name ASC, s.id ASC`, studentDetailColumns, studentDetailFrom, where.clause())

	var rows []models.RosterRow
	if err := r.db.SelectContext(ctx, &rows, query, where.args...); err != nil {
		return nil, fmt.Errorf("list roster: %w", err)
	}
	return rows, nil
}

// CountPresent counts PRESENT records of the filtered students dated within [start, end].
func (r *AttendanceRepository) CountPresent(ctx context.Context, filter models.PopulationFilter, start, end time.Time) (int, error) {
	where := &whereBuilder{}
	where.add("a.status = $%d", models.AttendanceStatusPresent)
	where.add("a.date >= $%d", sqlDate(start))
	where.add("a.date <= $%d", sqlDate(end))
	where.population(filter)

	query := fmt.Sprintf(`SELECT COUNT(*) FROM attendances a
JOIN students s ON s.id = a.student_id
JOIN departments d ON d.id = s.department_id
JOIN levels l ON l.id = s.level_id
%s`, where.clause())

	var total int
	if err := r.db.GetContext(ctx, &total, query, where.args...); err != nil {
		return 0, fmt.Errorf("count present attendance: %w", err)
	}
	return total, nil
}

// DailyCounts groups the filtered records within [start, end] by day.
func (r *AttendanceRepository) DailyCounts(ctx context.Context, filter models.PopulationFilter, start, end time.Time) ([]models.DailyCount, error) {
	where := &whereBuilder{}
	where.add("a.date >= $%d", sqlDate(start))
	where.add("a.date <= $%d", sqlDate(end))
	where.population(filter)

	query := fmt.Sprintf(`SELECT a.date,
COUNT(*) FILTER (WHERE a.status = 'PRESENT') AS present,
COUNT(*) FILTER (WHERE a.status = 'ABSENT') AS absent
FROM attendances a
JOIN students s ON s.id = a.student_id
JOIN departments d ON d.id = s.department_id
JOIN levels l ON l.id = s.level_id
%s GROUP BY a.date ORDER BY a.date`, where.clause())

	var counts []models.DailyCount
	if err := r.db.SelectContext(ctx, &counts, query, where.args...); err != nil {
		return nil, fmt.Errorf("daily attendance counts: %w", err)
	}
	return counts, nil
}

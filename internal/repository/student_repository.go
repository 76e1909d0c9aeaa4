package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
)

const (
	defaultStudentPageSize = 100
	maxStudentPageSize     = 500
)

// likeEscaper quotes LIKE wildcards so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters ordered by last then first name.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	where := &whereBuilder{}
	where.population(models.PopulationFilter{DepartmentCode: filter.DepartmentCode, LevelCode: filter.LevelCode})
	if filter.LevelID > 0 {
		where.add("s.level_id = $%d", filter.LevelID)
	}
	if filter.Search != "" {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(filter.Search)) + "%"
		where.args = append(where.args, pattern)
		n := len(where.args)
		where.conditions = append(where.conditions,
			fmt.Sprintf(`(LOWER(s.first_name) LIKE $%d ESCAPE '\' OR LOWER(s.last_name) LIKE $%d ESCAPE '\' OR LOWER(COALESCE(s.email, '')) LIKE $%d ESCAPE '\')`, n, n, n))
	}

	if filter.All {
		query := fmt.Sprintf(`SELECT %s
%s %s ORDER BY s.last_name ASC, s.first_name ASC, s.id ASC`, studentDetailColumns, studentDetailFrom, where.clause())
		var students []models.StudentDetail
		if err := r.db.SelectContext(ctx, &students, query, where.args...); err != nil {
			return nil, 0, fmt.Errorf("list students: %w", err)
		}
		return students, len(students), nil
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = defaultStudentPageSize
	}
	if size > maxStudentPageSize {
		size = maxStudentPageSize
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s
%s %s ORDER BY s.last_name ASC, s.first_name ASC, s.id ASC LIMIT %d OFFSET %d`, studentDetailColumns, studentDetailFrom, where.clause(), size, offset)

	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, where.args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s %s", studentDetailFrom, where.clause())
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, where.args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// Count returns the number of students matching the population filter.
func (r *StudentRepository) Count(ctx context.Context, filter models.PopulationFilter) (int, error) {
	where := &whereBuilder{}
	where.population(filter)
	query := fmt.Sprintf("SELECT COUNT(*) %s %s", studentDetailFrom, where.clause())
	var total int
	if err := r.db.GetContext(ctx, &total, query, where.args...); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

// FindByID fetches a student detail by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id int64) (*models.StudentDetail, error) {
	query := fmt.Sprintf("SELECT %s\n%s WHERE s.id = $1", studentDetailColumns, studentDetailFrom)
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Create inserts a new student record and fills its generated fields.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	now := time.Now().UTC()
	const query = `INSERT INTO students (first_name, last_name, email, address, department_id, level_id, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $7)
RETURNING id, created_at, updated_at`
	row := r.db.QueryRowxContext(ctx, query,
		student.FirstName, student.LastName, student.Email, student.Address, student.DepartmentID, student.LevelID, now)
	if err := row.Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Delete removes the student's attendance records and then the student in one
// transaction. It returns the deleted student, or sql.ErrNoRows when it does not exist.
func (r *StudentRepository) Delete(ctx context.Context, id int64) (*models.StudentDetail, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin delete student: %w", err)
	}
	commit := false
	defer func() {
		if !commit {
			_ = tx.Rollback()
		}
	}()

	query := fmt.Sprintf("SELECT %s\n%s WHERE s.id = $1 FOR UPDATE OF s", studentDetailColumns, studentDetailFrom)
	var detail models.StudentDetail
	if err := tx.GetContext(ctx, &detail, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("lock student: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM attendances WHERE student_id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete student attendances: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete student: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit delete student: %w", err)
	}
	commit = true
	return &detail, nil
}

package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/attendance-api/internal/models"
)

// CatalogRepository reads the department and level reference data.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository constructs a CatalogRepository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

const levelColumns = `l.id, l.code, l.name, l.department_id, d.code AS department_code, l.created_at, l.updated_at`

// ListDepartments returns every department ordered by code.
func (r *CatalogRepository) ListDepartments(ctx context.Context) ([]models.Department, error) {
	const query = `SELECT id, code, name, created_at, updated_at FROM departments ORDER BY code`
	var departments []models.Department
	if err := r.db.SelectContext(ctx, &departments, query); err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	return departments, nil
}

// FindDepartmentByCode returns sql.ErrNoRows when the code is unknown.
func (r *CatalogRepository) FindDepartmentByCode(ctx context.Context, code string) (*models.Department, error) {
	const query = `SELECT id, code, name, created_at, updated_at FROM departments WHERE code = $1`
	var department models.Department
	if err := r.db.GetContext(ctx, &department, query, code); err != nil {
		return nil, err
	}
	return &department, nil
}

// ListLevels returns levels ordered by id, optionally restricted to one department.
func (r *CatalogRepository) ListLevels(ctx context.Context, departmentCode string) ([]models.Level, error) {
	where := &whereBuilder{}
	if departmentCode != "" {
		where.add("d.code = $%d", departmentCode)
	}
	query := fmt.Sprintf(`SELECT %s FROM levels l JOIN departments d ON d.id = l.department_id %s ORDER BY l.id`, levelColumns, where.clause())

	var levels []models.Level
	if err := r.db.SelectContext(ctx, &levels, query, where.args...); err != nil {
		return nil, fmt.Errorf("list levels: %w", err)
	}
	return levels, nil
}

// FindLevelByCode returns sql.ErrNoRows when the code is unknown.
func (r *CatalogRepository) FindLevelByCode(ctx context.Context, code string) (*models.Level, error) {
	query := fmt.Sprintf(`SELECT %s FROM levels l JOIN departments d ON d.id = l.department_id WHERE l.code = $1`, levelColumns)
	var level models.Level
	if err := r.db.GetContext(ctx, &level, query, code); err != nil {
		return nil, err
	}
	return &level, nil
}

// FindLevelByID returns sql.ErrNoRows when the id is unknown.
func (r *CatalogRepository) FindLevelByID(ctx context.Context, id int64) (*models.Level, error) {
	query := fmt.Sprintf(`SELECT %s FROM levels l JOIN departments d ON d.id = l.department_id WHERE l.id = $1`, levelColumns)
	var level models.Level
	if err := r.db.GetContext(ctx, &level, query, id); err != nil {
		return nil, err
	}
	return &level, nil
}

// CountDepartments counts every department.
func (r *CatalogRepository) CountDepartments(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM departments`); err != nil {
		return 0, fmt.Errorf("count departments: %w", err)
	}
	return total, nil
}

// CountLevels counts every level.
func (r *CatalogRepository) CountLevels(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM levels`); err != nil {
		return 0, fmt.Errorf("count levels: %w", err)
	}
	return total, nil
}

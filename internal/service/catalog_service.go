package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

type catalogRepository interface {
	ListDepartments(ctx context.Context) ([]models.Department, error)
	FindDepartmentByCode(ctx context.Context, code string) (*models.Department, error)
	ListLevels(ctx context.Context, departmentCode string) ([]models.Level, error)
	FindLevelByCode(ctx context.Context, code string) (*models.Level, error)
	FindLevelByID(ctx context.Context, id int64) (*models.Level, error)
	CountDepartments(ctx context.Context) (int, error)
	CountLevels(ctx context.Context) (int, error)
}

// CatalogService exposes the department and level reference data.
type CatalogService struct {
	repo   catalogRepository
	logger *zap.Logger
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(repo catalogRepository, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{repo: repo, logger: logger}
}

// Departments returns every department with its levels.
func (s *CatalogService) Departments(ctx context.Context) ([]models.Department, error) {
	departments, err := s.repo.ListDepartments(ctx)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list departments")
	}
	levels, err := s.repo.ListLevels(ctx, "")
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list levels")
	}

	byDepartment := make(map[int64][]models.Level, len(departments))
	for _, level := range levels {
		byDepartment[level.DepartmentID] = append(byDepartment[level.DepartmentID], level)
	}
	for i := range departments {
		departments[i].Levels = byDepartment[departments[i].ID]
	}
	return departments, nil
}

// Levels returns the levels of a department, or every level when code is empty.
func (s *CatalogService) Levels(ctx context.Context, departmentCode string) ([]models.Level, error) {
	departmentCode = strings.TrimSpace(departmentCode)
	if departmentCode != "" {
		if _, err := s.Department(ctx, departmentCode); err != nil {
			return nil, err
		}
	}
	levels, err := s.repo.ListLevels(ctx, departmentCode)
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list levels")
	}
	return levels, nil
}

// Department resolves a department by code.
func (s *CatalogService) Department(ctx context.Context, code string) (*models.Department, error) {
	department, err := s.repo.FindDepartmentByCode(ctx, code)
	if err != nil {
		return nil, storeError(err, "failed to load department", "department not found", "")
	}
	return department, nil
}

// Level resolves a level by code. When departmentCode is set the level must belong
// to that department.
func (s *CatalogService) Level(ctx context.Context, code, departmentCode string) (*models.Level, error) {
	level, err := s.repo.FindLevelByCode(ctx, code)
	if err != nil {
		return nil, storeError(err, "failed to load level", "level not found", "")
	}
	if departmentCode != "" && level.DepartmentCode != departmentCode {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "level not found in department")
	}
	return level, nil
}

// LevelByID resolves a level by id.
func (s *CatalogService) LevelByID(ctx context.Context, id int64) (*models.Level, error) {
	level, err := s.repo.FindLevelByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load level", "level not found", "")
	}
	return level, nil
}

// Placement resolves the department and level a student is assigned to.
func (s *CatalogService) Placement(ctx context.Context, departmentCode, levelCode string) (*models.Department, *models.Level, error) {
	department, err := s.Department(ctx, departmentCode)
	if err != nil {
		return nil, nil, err
	}
	level, err := s.Level(ctx, levelCode, department.Code)
	if err != nil {
		return nil, nil, err
	}
	return department, level, nil
}

// DepartmentCount counts every department.
func (s *CatalogService) DepartmentCount(ctx context.Context) (int, error) {
	total, err := s.repo.CountDepartments(ctx)
	if err != nil {
		return 0, appErrors.Storage(err, "failed to count departments")
	}
	return total, nil
}

// LevelCount counts every level.
func (s *CatalogService) LevelCount(ctx context.Context) (int, error) {
	total, err := s.repo.CountLevels(ctx)
	if err != nil {
		return 0, appErrors.Storage(err, "failed to count levels")
	}
	return total, nil
}

package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

type studentRepository interface {
	List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error)
	Count(ctx context.Context, filter models.PopulationFilter) (int, error)
	FindByID(ctx context.Context, id int64) (*models.StudentDetail, error)
	Create(ctx context.Context, student *models.Student) error
	Delete(ctx context.Context, id int64) (*models.StudentDetail, error)
}

type placementResolver interface {
	Placement(ctx context.Context, departmentCode, levelCode string) (*models.Department, *models.Level, error)
	Level(ctx context.Context, code, departmentCode string) (*models.Level, error)
}

// CreateStudentRequest holds payload for creating students.
type CreateStudentRequest struct {
	FirstName      string  `json:"firstName" validate:"required,max=100"`
	LastName       string  `json:"lastName" validate:"required,max=100"`
	Email          *string `json:"email" validate:"omitempty,email,max=255"`
	Address        *string `json:"address" validate:"omitempty,max=255"`
	DepartmentCode string  `json:"departmentCode" validate:"required"`
	LevelCode      string  `json:"levelCode" validate:"required"`
}

func (r *CreateStudentRequest) normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.DepartmentCode = strings.TrimSpace(r.DepartmentCode)
	r.LevelCode = strings.TrimSpace(r.LevelCode)
	r.Email = trimOptional(r.Email)
	r.Address = trimOptional(r.Address)
}

func trimOptional(v *string) *string {
	if v == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*v)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// StudentService handles student use-cases.
type StudentService struct {
	repo      studentRepository
	catalog   placementResolver
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(repo studentRepository, catalog placementResolver, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{repo: repo, catalog: catalog, cache: cache, validator: validate, logger: logger}
}

// List returns students and pagination metadata.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, *models.Pagination, error) {
	students, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Storage(err, "failed to list students")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = 100
	}
	if size > 500 {
		size = 500
	}
	return students, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Search matches students by first name, last name or email.
func (s *StudentService) Search(ctx context.Context, query string) ([]models.StudentDetail, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "search query is required")
	}
	students, _, err := s.repo.List(ctx, models.StudentFilter{Search: query, All: true})
	if err != nil {
		return nil, appErrors.Storage(err, "failed to search students")
	}
	return students, nil
}

// ByLevel lists the students of a level.
func (s *StudentService) ByLevel(ctx context.Context, levelCode string) ([]models.StudentDetail, error) {
	levelCode = strings.TrimSpace(levelCode)
	if levelCode == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "level code is required")
	}
	if _, err := s.catalog.Level(ctx, levelCode, ""); err != nil {
		return nil, err
	}
	students, _, err := s.repo.List(ctx, models.StudentFilter{LevelCode: levelCode, All: true})
	if err != nil {
		return nil, appErrors.Storage(err, "failed to list students by level")
	}
	return students, nil
}

// Count returns the number of students of a department and level.
func (s *StudentService) Count(ctx context.Context, filter models.PopulationFilter) (int, error) {
	if strings.TrimSpace(filter.DepartmentCode) == "" || strings.TrimSpace(filter.LevelCode) == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "departmentCode and levelCode are required")
	}
	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		return 0, appErrors.Storage(err, "failed to count students")
	}
	return total, nil
}

// Get returns detailed student information.
func (s *StudentService) Get(ctx context.Context, id int64) (*models.StudentDetail, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load student", "student not found", "")
	}
	return student, nil
}

// Create registers a new student in an existing department and level.
func (s *StudentService) Create(ctx context.Context, req CreateStudentRequest) (*models.StudentDetail, error) {
	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Validation(err, "invalid student payload")
	}

	department, level, err := s.catalog.Placement(ctx, req.DepartmentCode, req.LevelCode)
	if err != nil {
		return nil, err
	}

	student := &models.Student{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Address:      req.Address,
		DepartmentID: department.ID,
		LevelID:      level.ID,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, storeError(err, "failed to create student", "department or level not found", "email already used")
	}

	s.cache.InvalidateAll(ctx)
	s.logger.Info("student created",
		zap.Int64("student_id", student.ID),
		zap.String("department", department.Code),
		zap.String("level", level.Code))

	return &models.StudentDetail{
		Student:        *student,
		DepartmentCode: department.Code,
		DepartmentName: department.Name,
		LevelCode:      level.Code,
		LevelName:      level.Name,
	}, nil
}

// Delete removes a student together with its attendance records.
func (s *StudentService) Delete(ctx context.Context, id int64) (*models.StudentDetail, error) {
	if id <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid student id")
	}
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to delete student", "student not found", "")
	}

	s.cache.InvalidateAll(ctx)
	s.logger.Info("student deleted", zap.Int64("student_id", id))
	return deleted, nil
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"path"
	"sync"
	"time"

	"github.com/noah-isme/attendance-api/internal/models"
	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

type memoryCacheRepo struct {
	mu      sync.Mutex
	items   map[string][]byte
	getErr  error
	deleted []string
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{items: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return m.getErr
	}
	raw, ok := m.items[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.items[key] = raw
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleted = append(m.deleted, pattern)
	removed := 0
	for key := range m.items {
		if ok, _ := path.Match(pattern, key); ok {
			delete(m.items, key)
			removed++
		}
	}
	return removed, nil
}

func (m *memoryCacheRepo) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.items[key]
	return ok
}

func newTestCache(repo *memoryCacheRepo) *CacheService {
	return NewCacheService(repo, nil, time.Minute, nil, true)
}

type fakeCatalogRepo struct {
	departments []models.Department
	levels      []models.Level
	err         error
}

func newFakeCatalogRepo() *fakeCatalogRepo {
	return &fakeCatalogRepo{
		departments: []models.Department{
			{ID: 1, Code: "INFO", Name: "Informatique"},
			{ID: 2, Code: "GEST", Name: "Gestion"},
		},
		levels: []models.Level{
			{ID: 10, Code: "L1-INFO", Name: "Licence 1", DepartmentID: 1, DepartmentCode: "INFO"},
			{ID: 11, Code: "L2-INFO", Name: "Licence 2", DepartmentID: 1, DepartmentCode: "INFO"},
			{ID: 20, Code: "L1-GEST", Name: "Licence 1", DepartmentID: 2, DepartmentCode: "GEST"},
		},
	}
}

func (f *fakeCatalogRepo) ListDepartments(ctx context.Context) ([]models.Department, error) {
	if f.err != nil {
		return nil, f.err
	}
	return append([]models.Department(nil), f.departments...), nil
}

func (f *fakeCatalogRepo) FindDepartmentByCode(ctx context.Context, code string) (*models.Department, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, d := range f.departments {
		if d.Code == code {
			d := d
			return &d, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCatalogRepo) ListLevels(ctx context.Context, departmentCode string) ([]models.Level, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Level
	for _, l := range f.levels {
		if departmentCode == "" || l.DepartmentCode == departmentCode {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeCatalogRepo) FindLevelByCode(ctx context.Context, code string) (*models.Level, error) {
	return f.findLevel(func(l models.Level) bool { return l.Code == code })
}

func (f *fakeCatalogRepo) FindLevelByID(ctx context.Context, id int64) (*models.Level, error) {
	return f.findLevel(func(l models.Level) bool { return l.ID == id })
}

func (f *fakeCatalogRepo) findLevel(match func(models.Level) bool) (*models.Level, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, l := range f.levels {
		if match(l) {
			l := l
			return &l, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeCatalogRepo) CountDepartments(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.departments), nil
}

func (f *fakeCatalogRepo) CountLevels(ctx context.Context) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	return len(f.levels), nil
}

var errDatabaseDown = errors.New("database down")

func statusPtr(s models.AttendanceStatus) *models.AttendanceStatus {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func detail(id int64, first, last, dept, level string) models.StudentDetail {
	return models.StudentDetail{
		Student:        models.Student{ID: id, FirstName: first, LastName: last},
		DepartmentCode: dept,
		LevelCode:      level,
	}
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

func TestCatalogServiceDepartmentsGroupsLevels(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo(), nil)

	departments, err := svc.Departments(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Len(t, departments[0].Levels, 2)
	assert.Len(t, departments[1].Levels, 1)
	assert.Equal(t, "L1-GEST", departments[1].Levels[0].Code)
}

func TestCatalogServiceLevelsUnknownDepartment(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo(), nil)

	_, err := svc.Levels(context.Background(), "NOPE")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)

	levels, err := svc.Levels(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, levels, 3)
}

func TestCatalogServiceLevelMustBelongToDepartment(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo(), nil)

	level, err := svc.Level(context.Background(), "L1-INFO", "INFO")
	require.NoError(t, err)
	assert.Equal(t, int64(10), level.ID)

	_, err = svc.Level(context.Background(), "L1-INFO", "GEST")
	require.Error(t, err)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCatalogServicePlacement(t *testing.T) {
	svc := NewCatalogService(newFakeCatalogRepo(), nil)

	department, level, err := svc.Placement(context.Background(), "GEST", "L1-GEST")
	require.NoError(t, err)
	assert.Equal(t, int64(2), department.ID)
	assert.Equal(t, int64(20), level.ID)

	_, _, err = svc.Placement(context.Background(), "GEST", "L2-INFO")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestCatalogServiceStorageFailure(t *testing.T) {
	repo := newFakeCatalogRepo()
	repo.err = errDatabaseDown
	svc := NewCatalogService(repo, nil)

	_, err := svc.DepartmentCount(context.Background())
	assert.ErrorIs(t, err, appErrors.ErrStorage)

	_, err = svc.Department(context.Background(), "INFO")
	assert.ErrorIs(t, err, appErrors.ErrStorage)
}

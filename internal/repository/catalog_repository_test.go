package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var levelCols = []string{"id", "code", "name", "department_id", "department_code", "created_at", "updated_at"}

func TestCatalogRepositoryListDepartments(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM departments ORDER BY code")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "created_at", "updated_at"}).
			AddRow(int64(1), "2AP", "Classes Préparatoires", now, now).
			AddRow(int64(4), "GI", "Génie Informatique", now, now))

	departments, err := repo.ListDepartments(context.Background())
	require.NoError(t, err)
	require.Len(t, departments, 2)
	assert.Equal(t, "GI", departments[1].Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryListLevelsByDepartment(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("WHERE d.code = $1 ORDER BY l.id")).
		WithArgs("GI").
		WillReturnRows(sqlmock.NewRows(levelCols).
			AddRow(int64(9), "GI1", "Première Année GI", int64(4), "GI", now, now))

	levels, err := repo.ListLevels(context.Background(), "GI")
	require.NoError(t, err)
	require.Len(t, levels, 1)
	assert.Equal(t, "GI", levels[0].DepartmentCode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryFindLevelByCodeNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE l.code = $1")).
		WithArgs("XX9").
		WillReturnRows(sqlmock.NewRows(levelCols))

	_, err := repo.FindLevelByCode(context.Background(), "XX9")
	assert.True(t, errors.Is(err, sql.ErrNoRows))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCatalogRepositoryCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCatalogRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM departments")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM levels")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(23))

	departments, err := repo.CountDepartments(context.Background())
	require.NoError(t, err)
	levels, err := repo.CountLevels(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, departments)
	assert.Equal(t, 23, levels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package repository

import (
	"database/sql/driver"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

var studentDetailCols = []string{"id", "first_name", "last_name", "email", "address", "department_id", "level_id", "created_at", "updated_at",
	"department_code", "department_name", "level_code", "level_name"}

func studentDetailValues(id int64, first, last, dept, level string) []driver.Value {
	now := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	return []driver.Value{id, first, last, nil, nil, int64(4), int64(10), now, now, dept, dept + " name", level, level + " name"}
}

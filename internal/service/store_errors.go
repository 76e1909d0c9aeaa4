package service

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	appErrors "github.com/noah-isme/attendance-api/pkg/errors"
)

const (
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// storeError maps a repository failure onto the error taxonomy. Missing rows and
// foreign key violations become notFound; unique violations become conflict; every
// other failure is a storage error.
func storeError(err error, action, notFound, conflict string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return appErrors.Clone(appErrors.ErrNotFound, notFound)
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pqForeignKeyViolation:
			return appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, notFound)
		case pqUniqueViolation:
			if conflict != "" {
				return appErrors.Wrap(err, appErrors.ErrConflict.Code, appErrors.ErrConflict.Status, conflict)
			}
		}
	}
	return appErrors.Storage(err, action)
}

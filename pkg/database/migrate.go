package database

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sync"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

var gooseOnce sync.Once
var gooseErr error

// Commands accepted by Migrate.
const (
	CommandUp      = "up"
	CommandDown    = "down"
	CommandStatus  = "status"
	CommandVersion = "version"
	CommandReset   = "reset"
	CommandRedo    = "redo"
)

// Migrate runs a goose command against the embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, command string, logger *zap.Logger, args ...string) error {
	switch command {
	case CommandUp, CommandDown, CommandStatus, CommandVersion, CommandReset, CommandRedo:
	default:
		return fmt.Errorf("unsupported migration command %q", command)
	}

	gooseOnce.Do(func() {
		goose.SetBaseFS(migrationsFS)
		gooseErr = goose.SetDialect("postgres")
	})
	if gooseErr != nil {
		return fmt.Errorf("configure goose: %w", gooseErr)
	}
	if logger != nil {
		goose.SetLogger(gooseLogger{logger.Sugar()})
	}

	if err := goose.RunContext(ctx, command, db, migrationsDir, args...); err != nil {
		return fmt.Errorf("migrating database (%s): %w", command, err)
	}
	return nil
}

type gooseLogger struct {
	s *zap.SugaredLogger
}

func (l gooseLogger) Printf(format string, v ...interface{}) { l.s.Infof(format, v...) }

func (l gooseLogger) Fatalf(format string, v ...interface{}) { l.s.Fatalf(format, v...) }

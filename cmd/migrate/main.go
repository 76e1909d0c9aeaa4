package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"go.uber.org/zap"

	"github.com/noah-isme/attendance-api/pkg/config"
	"github.com/noah-isme/attendance-api/pkg/database"
	"github.com/noah-isme/attendance-api/pkg/logger"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: migrate [up|down|status|version|reset|redo] [args]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	command := database.CommandUp
	var args []string
	if flag.NArg() > 0 {
		command = flag.Arg(0)
		args = flag.Args()[1:]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr, command, args); err != nil {
		logr.Fatal("migration failed", zap.String("command", command), zap.Error(err))
	}
	logr.Info("migration finished", zap.String("command", command))
}

func run(cfg *config.Config, logr *zap.Logger, command string, args []string) error {
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	return database.Migrate(context.Background(), db.DB, command, logr, args...)
}

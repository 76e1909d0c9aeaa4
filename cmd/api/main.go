package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/noah-isme/attendance-api/api/swagger"
	"github.com/noah-isme/attendance-api/internal/handler"
	"github.com/noah-isme/attendance-api/internal/middleware"
	"github.com/noah-isme/attendance-api/internal/repository"
	"github.com/noah-isme/attendance-api/internal/service"
	"github.com/noah-isme/attendance-api/pkg/cache"
	"github.com/noah-isme/attendance-api/pkg/config"
	"github.com/noah-isme/attendance-api/pkg/database"
	"github.com/noah-isme/attendance-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/attendance-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/attendance-api/pkg/middleware/requestid"
)

// @title Attendance API
// @version 1.0.0
// @description Daily student attendance, reports and dashboard statistics
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db.DB, database.CommandUp, logr); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	metrics := service.NewMetricsService()
	checks := map[string]handler.Pinger{"postgres": handler.PingFunc(db.PingContext)}

	var cacheRepo service.CacheRepository
	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			// Reports are still served from Postgres without Redis.
			logr.Warn("redis unavailable, caching disabled", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(client, "attendance:", logr)
			defer repo.Close() //nolint:errcheck
			cacheRepo = repo
			checks["redis"] = repo
		}
	}
	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.ReportTTL, logr, cacheRepo != nil)

	validate := validator.New()
	catalogRepo := repository.NewCatalogRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	attendanceRepo := repository.NewAttendanceRepository(db)

	catalogSvc := service.NewCatalogService(catalogRepo, logr)
	studentSvc := service.NewStudentService(studentRepo, catalogSvc, cacheSvc, validate, logr)
	attendanceSvc := service.NewAttendanceService(attendanceRepo, catalogSvc, cacheSvc, metrics, validate, logr)
	reportSvc := service.NewReportService(service.ReportServiceParams{
		Attendance: attendanceRepo,
		Students:   studentRepo,
		Catalog:    catalogSvc,
		Cache:      cacheSvc,
		Metrics:    metrics,
		Logger:     logr,
		CacheTTL:   cfg.Cache.ReportTTL,
	})
	exportSvc := service.NewExportService(attendanceSvc, metrics, cfg.Export.MaxRows, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metrics))

	ops := handler.NewMetricsHandler(metrics, checks)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	var auth gin.HandlerFunc
	if cfg.Auth.Enabled {
		auth = middleware.JWT(service.NewTokenVerifier(cfg.Auth.Secret, cfg.Auth.Issuer))
	}
	handler.Register(r.Group(cfg.APIPrefix), handler.Handlers{
		Catalog:    handler.NewCatalogHandler(catalogSvc),
		Students:   handler.NewStudentHandler(studentSvc),
		Attendance: handler.NewAttendanceHandler(attendanceSvc),
		Dashboard:  handler.NewDashboardHandler(reportSvc),
		Reports:    handler.NewReportHandler(exportSvc),
	}, auth)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logr.Info("server exited")
	return nil
}

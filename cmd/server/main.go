// Package main is the entry point of the faculty hub API server.
//
// The layering follows Clean Architecture / DDD-lite:
//   - Domain: business rules with no external dependencies
//   - Application: command and query handlers (CQRS)
//   - Infrastructure: PostgreSQL, Redis, the event bus
//   - Interface: the HTTP API
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/faculty-hub/faculty-hub/config"
	"github.com/faculty-hub/faculty-hub/internal/application/command"
	"github.com/faculty-hub/faculty-hub/internal/application/query"
	"github.com/faculty-hub/faculty-hub/internal/infrastructure/messaging"
	"github.com/faculty-hub/faculty-hub/internal/infrastructure/persistence/postgres"
	"github.com/faculty-hub/faculty-hub/internal/infrastructure/persistence/redis"
	httpserver "github.com/faculty-hub/faculty-hub/internal/interface/http"
	"github.com/faculty-hub/faculty-hub/pkg/logger"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. CONFIGURATION
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 2. LOGGING
	// ─────────────────────────────────────────────────────────────────────────
	log := logger.New(logger.Options{
		Output:    os.Stdout,
		Level:     logger.ParseLevel(cfg.Logging.Level),
		AddCaller: cfg.Logging.AddCaller,
	})
	log.Info("starting faculty hub",
		logger.String("env", string(cfg.App.Environment)),
		logger.String("version", cfg.App.Version),
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 3. POSTGRESQL
	// ─────────────────────────────────────────────────────────────────────────
	log.Info("connecting to database")
	dbConn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.DatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		log.Info("closing database connection")
		dbConn.Close()
	}()

	// ─────────────────────────────────────────────────────────────────────────
	// 4. MIGRATIONS
	// ─────────────────────────────────────────────────────────────────────────
	if cfg.Database.AutoMigrate {
		log.Info("running database migrations")
		migrator := postgres.NewMigrator(dbConn)
		if err := migrator.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 5. REDIS (optional progress cache)
	// ─────────────────────────────────────────────────────────────────────────
	var reportCache query.ReportCache
	var progressCache *redis.ProgressCache

	if !cfg.Redis.Disabled {
		log.Info("connecting to Redis")
		redisCfg := redis.DefaultConfig()
		redisCfg.Host = cfg.Redis.Host
		redisCfg.Port = cfg.Redis.Port
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisCfg.PoolSize = cfg.Redis.PoolSize
		redisCfg.DialTimeout = cfg.Redis.DialTimeout
		redisCfg.ReadTimeout = cfg.Redis.ReadTimeout
		redisCfg.WriteTimeout = cfg.Redis.WriteTimeout

		cache, err := redis.NewCache(ctx, redisCfg)
		if err != nil {
			log.Warn("Redis unavailable, progress caching disabled", logger.Err(err))
		} else {
			defer cache.Close()
			progressCache = redis.NewProgressCache(cache)
			reportCache = progressCache
			log.Info("Redis connection established")
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 6. REPOSITORIES
	// ─────────────────────────────────────────────────────────────────────────
	personRepo := postgres.NewPersonRepository(dbConn)
	studentRepo := postgres.NewStudentRepository(dbConn)
	professorRepo := postgres.NewProfessorRepository(dbConn)
	catalogRepo := postgres.NewCatalogRepository(dbConn)
	enrollmentRepo := postgres.NewEnrollmentRepository(dbConn)
	gradebookRepo := postgres.NewGradebookRepository(dbConn)
	examRepo := postgres.NewExamRepository(dbConn)

	// ─────────────────────────────────────────────────────────────────────────
	// 7. EVENT BUS AND SUBSCRIBERS
	// ─────────────────────────────────────────────────────────────────────────
	eventBus := messaging.NewInMemoryEventBus(messaging.Config{
		WorkerPoolSize: cfg.EventBus.WorkerPoolSize,
	})
	defer func() {
		log.Info("closing event bus")
		_ = eventBus.Close()
	}()

	if err := messaging.NewAuditLogger(nil).Register(eventBus); err != nil {
		return fmt.Errorf("failed to register audit logger: %w", err)
	}
	if progressCache != nil {
		invalidator := messaging.NewProgressInvalidator(progressCache, nil)
		if err := invalidator.Register(eventBus); err != nil {
			return fmt.Errorf("failed to register cache invalidator: %w", err)
		}
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 8. APPLICATION LAYER
	// ─────────────────────────────────────────────────────────────────────────
	deps := httpserver.Dependencies{
		RegisterPerson:       command.NewRegisterPersonHandler(personRepo, studentRepo, eventBus),
		EnrollStudent:        command.NewEnrollStudentHandler(studentRepo, catalogRepo, enrollmentRepo, eventBus),
		ReplaceEnrollment:    command.NewReplaceEnrollmentHandler(studentRepo, catalogRepo, enrollmentRepo, eventBus),
		ClearEnrollment:      command.NewClearEnrollmentHandler(studentRepo, enrollmentRepo, eventBus),
		CreateExam:           command.NewCreateExamHandler(professorRepo, catalogRepo, examRepo, eventBus),
		UpdateExam:           command.NewUpdateExamHandler(examRepo, eventBus),
		CancelExam:           command.NewCancelExamHandler(examRepo, eventBus),
		RegisterForExam:      command.NewRegisterForExamHandler(studentRepo, examRepo, eventBus),
		RecordExamResult:     command.NewRecordExamResultHandler(examRepo, eventBus),
		WithdrawRegistration: command.NewWithdrawRegistrationHandler(examRepo, eventBus),
		RecordGrade:          command.NewRecordGradeHandler(studentRepo, professorRepo, catalogRepo, gradebookRepo, eventBus),
		SetupProfessor:       command.NewSetupProfessorHandler(personRepo, professorRepo, eventBus),

		GetProgress:          query.NewGetProgressHandler(personRepo, studentRepo, catalogRepo, enrollmentRepo, gradebookRepo, reportCache),
		GetCurrentEnrollment: query.NewGetCurrentEnrollmentHandler(studentRepo, catalogRepo, enrollmentRepo),
		ListExams:            query.NewListExamsHandler(examRepo),
		ListRegistrations:    query.NewListRegistrationsHandler(studentRepo, examRepo),
		ListSubjectGrades:    query.NewListSubjectGradesHandler(catalogRepo, gradebookRepo),
		GetProfessorProfile:  query.NewGetProfessorProfileHandler(personRepo, professorRepo, examRepo),

		HealthChecker: dbConn,
		Logger:        log,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// 9. HTTP SERVER
	// ─────────────────────────────────────────────────────────────────────────
	serverCfg := httpserver.DefaultConfig()
	serverCfg.Host = cfg.HTTP.Host
	serverCfg.Port = cfg.HTTP.Port
	serverCfg.ReadTimeout = cfg.HTTP.ReadTimeout
	serverCfg.WriteTimeout = cfg.HTTP.WriteTimeout
	serverCfg.IdleTimeout = cfg.HTTP.IdleTimeout
	serverCfg.EnableCORS = cfg.HTTP.EnableCORS
	serverCfg.AllowedOrigins = cfg.HTTP.AllowedOrigins

	server := httpserver.NewServer(serverCfg, deps)
	errCh := server.StartAsync()

	// ─────────────────────────────────────────────────────────────────────────
	// 10. GRACEFUL SHUTDOWN
	// ─────────────────────────────────────────────────────────────────────────
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("received shutdown signal", logger.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("http server shutdown failed", logger.Err(err))
	}

	log.Info("shutdown complete")
	return nil
}

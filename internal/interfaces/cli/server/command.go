package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/application/assignment/usecases"
	escusecases "caseflow/internal/application/escalation/usecases"
	"caseflow/internal/infrastructure/auth"
	infracache "caseflow/internal/infrastructure/cache"
	"caseflow/internal/infrastructure/config"
	"caseflow/internal/infrastructure/database"
	"caseflow/internal/infrastructure/migration"
	"caseflow/internal/infrastructure/notification"
	"caseflow/internal/infrastructure/pubsub"
	"caseflow/internal/infrastructure/repository"
	httpRouter "caseflow/internal/interfaces/http"
	"caseflow/internal/interfaces/http/handlers"
	"caseflow/internal/interfaces/http/middleware"
	"caseflow/internal/shared/biztime"
	"caseflow/internal/shared/db"
	"caseflow/internal/shared/logger"
)

var (
	env         string
	autoMigrate bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP API server",
		Long:  `Start the Caseflow HTTP API server with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Automatically run database migrations on startup (not recommended for production)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting server", "environment", env, "auto_migrate", autoMigrate)

	if err := biztime.Init(cfg.Biztime.Timezone); err != nil {
		return fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	gin.SetMode(mapEnvToGinMode(env))
	gin.DefaultWriter = io.Discard

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment")
		}
		migrationManager := migration.NewManager(env)
		if err := migrationManager.Migrate(database.Get(), migration.AutoMigrateModels()...); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}

	// Repositories
	staffRepo := repository.NewStaffRepository(database.Get())
	unitRepo := repository.NewUnitRepository(database.Get())
	assignmentRepo := repository.NewAssignmentRepository(database.Get())
	queueRepo := repository.NewQueueRepository(database.Get())
	escalationRepo := repository.NewEscalationRepository(database.Get())

	// Infrastructure services
	resolver, err := notification.NewAddressPatternResolver(cfg.Notification.AddressPattern)
	if err != nil {
		return fmt.Errorf("invalid notification address pattern: %w", err)
	}
	notifier := notification.NewSMTPNotifier(&cfg.Notification, resolver, log)
	eventBus := pubsub.NewRedisCapacityEventBus(redisClient, log)
	viewCache := infracache.NewRedisStaffViewCache(redisClient, cfg.Assignment.ViewCacheTTLSeconds)

	// Domain services
	slaTable := services.NewSLATable(cfg.SLA)
	slaTracker := services.NewSLATracker(slaTable, assignmentRepo, escalationRepo, unitRepo, notifier, log).
		WithTransactor(db.NewGormTransactor(database.Get()))
	capacityTracker := services.NewCapacityTracker(staffRepo, unitRepo, log)
	assigner := services.NewAssigner(staffRepo, assignmentRepo, slaTracker, log)

	// Use cases
	autoAssignUC := usecases.NewAutoAssignUseCase(assignmentRepo, queueRepo, capacityTracker, assigner, log)
	manualOverrideUC := usecases.NewManualOverrideUseCase(assignmentRepo, queueRepo, staffRepo, assigner, notifier, log)
	completeUC := usecases.NewCompleteAssignmentUseCase(assignmentRepo, staffRepo, eventBus, viewCache, log)
	reassignUC := usecases.NewReassignAssignmentUseCase(assignmentRepo, staffRepo, eventBus, log)
	getAssignmentUC := usecases.NewGetAssignmentUseCase(assignmentRepo, slaTracker, log)
	listAssignmentsUC := usecases.NewListAssignmentsUseCase(assignmentRepo, slaTracker, log)
	myAssignmentsUC := usecases.NewGetMyAssignmentsUseCase(assignmentRepo, slaTracker, log)
	listQueueUC := usecases.NewListQueueUseCase(queueRepo, log)
	queuePositionUC := usecases.NewGetQueuePositionUseCase(queueRepo, log)
	removeQueueEntryUC := usecases.NewRemoveQueueEntryUseCase(queueRepo, log)
	reportUC := escusecases.NewEscalationReportUseCase(escalationRepo, log)
	acknowledgeUC := escusecases.NewAcknowledgeEscalationUseCase(escalationRepo, log)
	resolveUC := escusecases.NewResolveEscalationUseCase(escalationRepo, log)

	// HTTP surface
	assignmentHandler := handlers.NewAssignmentHandler(
		autoAssignUC, manualOverrideUC, completeUC, reassignUC,
		getAssignmentUC, listAssignmentsUC, myAssignmentsUC,
	)
	queueHandler := handlers.NewQueueHandler(listQueueUC, queuePositionUC, removeQueueEntryUC)
	escalationHandler := handlers.NewEscalationHandler(reportUC, acknowledgeUC, resolveUC)

	jwtService := auth.NewJWTService(&cfg.Auth.JWT)
	authMiddleware := middleware.NewAuthMiddleware(jwtService, log)

	router := httpRouter.NewRouter(assignmentHandler, queueHandler, escalationHandler, authMiddleware, log)
	router.SetupRoutes()

	srv := &http.Server{
		Addr:         cfg.Server.GetAddr(),
		Handler:      router.GetEngine(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "address", cfg.Server.GetAddr())

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalw("failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
		return err
	}

	log.Infow("server exited gracefully")
	return nil
}

func mapEnvToGinMode(environment string) string {
	switch environment {
	case "production", "prod":
		return "release"
	case "test", "testing":
		return "test"
	default:
		return "debug"
	}
}

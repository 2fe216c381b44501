// The worker consumes capacity-freed events and runs the scheduled jobs: the
// SLA deadline sweep and the nightly queue aging refresh. It is deployed
// separately from the API server; multiple workers coordinate through the
// per-unit drain lease.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/application/assignment/usecases"
	infracache "caseflow/internal/infrastructure/cache"
	"caseflow/internal/infrastructure/config"
	"caseflow/internal/infrastructure/database"
	"caseflow/internal/infrastructure/notification"
	"caseflow/internal/infrastructure/pubsub"
	"caseflow/internal/infrastructure/repository"
	"caseflow/internal/infrastructure/scheduler"
	"caseflow/internal/shared/biztime"
	"caseflow/internal/shared/db"
	"caseflow/internal/shared/goroutine"
	"caseflow/internal/shared/logger"
)

// agingRefreshJob adapts the aging refresh use case to the scheduler's
// batch job contract.
type agingRefreshJob struct {
	uc *usecases.AgingRefreshUseCase
}

func (j *agingRefreshJob) Execute(ctx context.Context) (int, error) {
	result, err := j.uc.Execute(ctx)
	if err != nil {
		return 0, err
	}
	return result.Updated, nil
}

// slaSweepJob adapts the SLA tracker's sweep to the batch job contract.
type slaSweepJob struct {
	tracker *services.SLATracker
}

func (j *slaSweepJob) Execute(ctx context.Context) (int, error) {
	return j.tracker.Sweep(ctx)
}

func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting assignment worker", "environment", env)

	if err := biztime.Init(cfg.Biztime.Timezone); err != nil {
		log.Fatalw("failed to initialize business timezone", "error", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.GetAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalw("failed to connect to redis", "error", err)
	}
	log.Infow("redis connection established", "address", cfg.Redis.GetAddr())

	// Repositories
	staffRepo := repository.NewStaffRepository(database.Get())
	unitRepo := repository.NewUnitRepository(database.Get())
	assignmentRepo := repository.NewAssignmentRepository(database.Get())
	queueRepo := repository.NewQueueRepository(database.Get())
	escalationRepo := repository.NewEscalationRepository(database.Get())

	// Services
	resolver, err := notification.NewAddressPatternResolver(cfg.Notification.AddressPattern)
	if err != nil {
		log.Fatalw("invalid notification address pattern", "error", err)
	}
	notifier := notification.NewSMTPNotifier(&cfg.Notification, resolver, log)
	lease := infracache.NewRedisDrainLease(redisClient, cfg.Assignment.DrainLeaseSeconds, log)
	eventBus := pubsub.NewRedisCapacityEventBus(redisClient, log)

	slaTable := services.NewSLATable(cfg.SLA)
	slaTracker := services.NewSLATracker(slaTable, assignmentRepo, escalationRepo, unitRepo, notifier, log).
		WithTransactor(db.NewGormTransactor(database.Get()))
	capacityTracker := services.NewCapacityTracker(staffRepo, unitRepo, log)
	assigner := services.NewAssigner(staffRepo, assignmentRepo, slaTracker, log)
	drainer := services.NewQueueDrainer(
		queueRepo, capacityTracker, assigner, lease,
		time.Duration(cfg.Assignment.DrainDebounceSeconds)*time.Second,
		cfg.Assignment.DrainBatchSize,
		log,
	)

	viewCache := infracache.NewRedisStaffViewCache(redisClient, cfg.Assignment.ViewCacheTTLSeconds)
	agingRefreshUC := usecases.NewAgingRefreshUseCase(queueRepo, staffRepo, viewCache, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Capacity-freed events feed the drainer's debounced per-unit timers.
	goroutine.SafeGo(log, "capacity-freed-subscriber", func() {
		err := eventBus.SubscribeCapacityFreed(ctx, func(event pubsub.CapacityFreedEvent) {
			drainer.Signal(event.UnitID, event.FreedSkills)
		})
		if err != nil && ctx.Err() == nil {
			log.Errorw("capacity freed subscription terminated", "error", err)
		}
	})

	schedulerManager, err := scheduler.NewSchedulerManager(log)
	if err != nil {
		log.Fatalw("failed to create scheduler manager", "error", err)
	}

	if err := schedulerManager.RegisterSLAJobs(&slaSweepJob{tracker: slaTracker}, cfg.SLA.SweepIntervalSeconds); err != nil {
		log.Fatalw("failed to register sla jobs", "error", err)
	}
	if err := schedulerManager.RegisterQueueJobs(&agingRefreshJob{uc: agingRefreshUC}, cfg.Assignment.AgingRefreshCronHour); err != nil {
		log.Fatalw("failed to register queue jobs", "error", err)
	}

	schedulerManager.Start()

	log.Infow("assignment worker started",
		"sweep_interval_seconds", cfg.SLA.SweepIntervalSeconds,
		"drain_debounce_seconds", cfg.Assignment.DrainDebounceSeconds,
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)

	cancel()
	if err := schedulerManager.Stop(); err != nil {
		log.Errorw("scheduler shutdown failed", "error", err)
	}

	log.Infow("assignment worker stopped")
}

// Package scheduler provides unified scheduler management using gocron v2.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"caseflow/internal/shared/biztime"
	"caseflow/internal/shared/logger"
)

// BatchJob defines the interface for a scheduled batch processing job.
// Each Execute call processes a batch and returns the number of items processed.
type BatchJob interface {
	Execute(ctx context.Context) (int, error)
}

// SchedulerManager manages all scheduled jobs using gocron v2.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	started   bool
	startedMu sync.RWMutex
}

// NewSchedulerManager creates a new SchedulerManager instance.
// It initializes gocron with the business timezone for cron expressions.
func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	scheduler, err := gocron.NewScheduler(
		gocron.WithLocation(biztime.Location()),
	)
	if err != nil {
		return nil, err
	}

	return &SchedulerManager{
		scheduler: scheduler,
		logger:    log,
	}, nil
}

// RegisterSLAJobs registers the SLA deadline sweep. The sweep is singleton
// per instance; cross-instance duplicate suppression comes from the one-time
// warning and escalation flags on the assignment row.
func (m *SchedulerManager) RegisterSLAJobs(sweepJob BatchJob, intervalSeconds int) error {
	interval := time.Duration(intervalSeconds) * time.Second

	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			m.runSLASweep(ctx, sweepJob)
		}),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("sla", "sweep"),
		gocron.WithName("sla-sweep"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered sla jobs", "interval", interval)
	return nil
}

func (m *SchedulerManager) runSLASweep(ctx context.Context, sweepJob BatchJob) {
	m.logger.Debugw("sla sweep started")

	startTime := biztime.NowUTC()

	processed, err := sweepJob.Execute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("sla sweep failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	if processed > 0 {
		m.logger.Infow("sla sweep completed",
			"transitions", processed,
			"duration", time.Since(startTime),
		)
	} else {
		m.logger.Debugw("sla sweep found no transitions",
			"duration", time.Since(startTime),
		)
	}
}

// RegisterQueueJobs registers queue maintenance jobs:
// - Aging bucket refresh: daily at the configured hour, business timezone
func (m *SchedulerManager) RegisterQueueJobs(agingRefreshJob BatchJob, cronHour int) error {
	_, err := m.scheduler.NewJob(
		gocron.CronJob(fmt.Sprintf("0 %d * * *", cronHour), false),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
			defer cancel()
			m.runAgingRefresh(ctx, agingRefreshJob)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithTags("queue", "aging-refresh"),
		gocron.WithName("queue-aging-refresh"),
	)
	if err != nil {
		return err
	}

	m.logger.Infow("registered queue jobs", "aging_refresh_hour", cronHour)
	return nil
}

func (m *SchedulerManager) runAgingRefresh(ctx context.Context, agingRefreshJob BatchJob) {
	m.logger.Debugw("queue aging refresh started")

	startTime := biztime.NowUTC()

	updated, err := agingRefreshJob.Execute(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		m.logger.Errorw("queue aging refresh failed",
			"error", err,
			"duration", time.Since(startTime),
		)
		return
	}

	m.logger.Infow("queue aging refresh completed",
		"updated", updated,
		"duration", time.Since(startTime),
	)
}

// Start starts the scheduler and all registered jobs.
func (m *SchedulerManager) Start() {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if m.started {
		return
	}

	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler manager started", "job_count", len(m.scheduler.Jobs()))
}

// Stop gracefully stops the scheduler.
// It waits for all running jobs to complete before returning.
func (m *SchedulerManager) Stop() error {
	m.startedMu.Lock()
	defer m.startedMu.Unlock()

	if !m.started {
		return nil
	}

	m.logger.Infow("stopping scheduler manager")

	err := m.scheduler.Shutdown()
	m.started = false

	if err != nil {
		m.logger.Errorw("scheduler manager shutdown with error", "error", err)
		return err
	}

	m.logger.Infow("scheduler manager stopped")
	return nil
}

// IsStarted returns whether the scheduler is running.
func (m *SchedulerManager) IsStarted() bool {
	m.startedMu.RLock()
	defer m.startedMu.RUnlock()
	return m.started
}

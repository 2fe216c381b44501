package usecases

import (
	"context"
	"time"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/domain/staff"
	"caseflow/internal/shared/biztime"
	"caseflow/internal/shared/logger"
)

type AgingRefreshResult struct {
	Scanned     int `json:"scanned"`
	Updated     int `json:"updated"`
	Invalidated int `json:"invalidated"`
}

type AgingRefreshExecutor interface {
	Execute(ctx context.Context) (*AgingRefreshResult, error)
}

// AgingRefreshUseCase is the daily job that re-derives every queue entry's
// aging bucket from whole business days pending, then drops the cached
// per-staff dashboard views that filter on those buckets. Per-entry and
// per-staff failures are logged and skipped so one bad row never stalls
// the refresh.
type AgingRefreshUseCase struct {
	queueRepo assignment.QueueRepository
	staffRepo staff.Repository
	viewCache services.StaffViewCache
	logger    logger.Interface
	nowFn     func() time.Time
}

func NewAgingRefreshUseCase(
	queueRepo assignment.QueueRepository,
	staffRepo staff.Repository,
	viewCache services.StaffViewCache,
	logger logger.Interface,
) *AgingRefreshUseCase {
	return &AgingRefreshUseCase{
		queueRepo: queueRepo,
		staffRepo: staffRepo,
		viewCache: viewCache,
		logger:    logger,
		nowFn:     biztime.NowUTC,
	}
}

// WithNow overrides the clock, for deterministic tests.
func (uc *AgingRefreshUseCase) WithNow(nowFn func() time.Time) *AgingRefreshUseCase {
	uc.nowFn = nowFn
	return uc
}

func (uc *AgingRefreshUseCase) Execute(ctx context.Context) (*AgingRefreshResult, error) {
	now := uc.nowFn()

	entries, err := uc.queueRepo.ListAll(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list queue for aging refresh", "error", err)
		return nil, err
	}

	updated := 0
	for _, e := range entries {
		days := biztime.DaysSince(e.CreatedAt(), now)
		bucket := vo.AgingBucketForDays(days)
		if !e.SetAgingBucket(bucket) {
			continue
		}
		if err := uc.queueRepo.Update(ctx, e); err != nil {
			uc.logger.Errorw("failed to persist aging bucket",
				"queue_entry_id", e.ID(),
				"work_item_id", e.WorkItemID(),
				"error", err)
			continue
		}
		updated++
	}

	invalidated := uc.invalidateStaffViews(ctx)

	uc.logger.Infow("aging refresh finished",
		"scanned", len(entries),
		"updated", updated,
		"invalidated", invalidated)

	return &AgingRefreshResult{
		Scanned:     len(entries),
		Updated:     updated,
		Invalidated: invalidated,
	}, nil
}

// invalidateStaffViews drops every cached per-staff dashboard view. Best
// effort: a failure for one staff member never aborts the rest.
func (uc *AgingRefreshUseCase) invalidateStaffViews(ctx context.Context) int {
	ids, err := uc.staffRepo.ListIDs(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list staff for view invalidation", "error", err)
		return 0
	}

	invalidated := 0
	for _, id := range ids {
		if err := uc.viewCache.InvalidateStaffView(ctx, id); err != nil {
			uc.logger.Warnw("failed to invalidate staff view",
				"staff_id", id,
				"error", err)
			continue
		}
		invalidated++
	}
	return invalidated
}

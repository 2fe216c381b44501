package services

import (
	"context"
	"fmt"
	"time"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/domain/staff"
	"caseflow/internal/shared/config"
	"caseflow/internal/shared/logger"
)

// SLATable resolves the SLA duration for a (priority, work item type) pair.
// The matrix comes from configuration; nothing here hardcodes durations.
type SLATable struct {
	matrix   map[string]map[string]time.Duration
	defaults map[string]time.Duration
}

// NewSLATable builds the lookup from configuration. Priorities missing from
// both the matrix and the defaults fall back to 72 hours so a misconfigured
// deployment still produces deadlines instead of zero-length SLAs.
func NewSLATable(cfg config.SLAConfig) *SLATable {
	t := &SLATable{
		matrix:   make(map[string]map[string]time.Duration),
		defaults: make(map[string]time.Duration),
	}
	for priority, byType := range cfg.Matrix {
		t.matrix[priority] = make(map[string]time.Duration, len(byType))
		for itemType, minutes := range byType {
			t.matrix[priority][itemType] = time.Duration(minutes) * time.Minute
		}
	}
	for priority, minutes := range cfg.DefaultMinutes {
		t.defaults[priority] = time.Duration(minutes) * time.Minute
	}
	return t
}

const fallbackSLADuration = 72 * time.Hour

// Duration returns the SLA duration for the pair.
func (t *SLATable) Duration(priority vo.Priority, itemType vo.WorkItemType) time.Duration {
	if byType, ok := t.matrix[priority.String()]; ok {
		if d, ok := byType[itemType.String()]; ok {
			return d
		}
	}
	if d, ok := t.defaults[priority.String()]; ok {
		return d
	}
	return fallbackSLADuration
}

// SLAStatus is the instantaneous classification of one assignment.
type SLAStatus struct {
	Bucket        vo.SLABucket  `json:"bucket"`
	TimeRemaining time.Duration `json:"time_remaining"`
	ElapsedPct    float64       `json:"elapsed_pct"`
}

// SLATracker computes deadlines at assignment time, classifies live
// assignments into buckets, and escalates breaches. Classification is a pure
// function of (assignment, now) so the periodic sweep and on-demand reads
// agree exactly.
type SLATracker struct {
	table          *SLATable
	assignmentRepo assignment.Repository
	escalationRepo assignment.EscalationRepository
	unitRepo       staff.UnitRepository
	notifier       Notifier
	transactor     Transactor
	logger         logger.Interface
	nowFn          func() time.Time
}

func NewSLATracker(
	table *SLATable,
	assignmentRepo assignment.Repository,
	escalationRepo assignment.EscalationRepository,
	unitRepo staff.UnitRepository,
	notifier Notifier,
	log logger.Interface,
) *SLATracker {
	return &SLATracker{
		table:          table,
		assignmentRepo: assignmentRepo,
		escalationRepo: escalationRepo,
		unitRepo:       unitRepo,
		notifier:       notifier,
		logger:         log,
		nowFn:          time.Now,
	}
}

// WithNow overrides the clock, for deterministic tests.
func (t *SLATracker) WithNow(nowFn func() time.Time) *SLATracker {
	t.nowFn = nowFn
	return t
}

// WithTransactor makes breach escalation commit its two writes atomically.
// Without one, the writes run sequentially on the bare connection.
func (t *SLATracker) WithTransactor(tx Transactor) *SLATracker {
	t.transactor = tx
	return t
}

func (t *SLATracker) inTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if t.transactor == nil {
		return fn(ctx)
	}
	return t.transactor.WithinTransaction(ctx, fn)
}

// DeadlineFor computes the SLA deadline for a new assignment.
func (t *SLATracker) DeadlineFor(priority vo.Priority, itemType vo.WorkItemType, assignedAt time.Time) time.Time {
	return assignedAt.Add(t.table.Duration(priority, itemType))
}

// Classify buckets an assignment against now: green below 75% of the SLA
// window, warning from 75% until the deadline, breached past it.
func (t *SLATracker) Classify(a *assignment.Assignment, now time.Time) SLAStatus {
	total := a.SLADeadline().Sub(a.AssignedAt())
	remaining := a.SLADeadline().Sub(now)

	var elapsedPct float64
	if total > 0 {
		elapsedPct = float64(now.Sub(a.AssignedAt())) / float64(total) * 100
	}

	bucket := vo.SLAGreen
	switch {
	case remaining < 0:
		bucket = vo.SLABreached
	case elapsedPct >= 75:
		bucket = vo.SLAWarning
	}

	return SLAStatus{
		Bucket:        bucket,
		TimeRemaining: remaining,
		ElapsedPct:    elapsedPct,
	}
}

// Sweep classifies every open assignment, sending the one-time warning and
// escalating breaches. Per-assignment failures are logged and skipped; the
// sweep reports how many assignments it processed.
func (t *SLATracker) Sweep(ctx context.Context) (int, error) {
	now := t.nowFn()

	open, err := t.assignmentRepo.ListOpen(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list open assignments: %w", err)
	}

	processed := 0
	for _, a := range open {
		if err := t.sweepOne(ctx, a, now); err != nil {
			t.logger.Errorw("sla sweep failed for assignment",
				"assignment_id", a.ID(),
				"work_item_id", a.WorkItemID(),
				"error", err)
			continue
		}
		processed++
	}

	return processed, nil
}

func (t *SLATracker) sweepOne(ctx context.Context, a *assignment.Assignment, now time.Time) error {
	status := t.Classify(a, now)

	switch status.Bucket {
	case vo.SLAWarning:
		return t.handleWarning(ctx, a, status)
	case vo.SLABreached:
		return t.handleBreach(ctx, a, now)
	default:
		return nil
	}
}

// handleWarning delivers the warning notification exactly once per
// assignment. Re-entering the warning bucket after warning_sent never
// re-notifies.
func (t *SLATracker) handleWarning(ctx context.Context, a *assignment.Assignment, status SLAStatus) error {
	if !a.MarkWarningSent() {
		return nil
	}

	if err := t.assignmentRepo.Update(ctx, a); err != nil {
		return fmt.Errorf("failed to persist warning flag: %w", err)
	}

	t.notifier.Notify(ctx, a.AssigneeID(), TemplateSLAWarning, map[string]any{
		"assignment_id":  a.ID(),
		"work_item_id":   a.WorkItemID(),
		"work_item_type": a.WorkItemType().String(),
		"sla_deadline":   a.SLADeadline().Format(time.RFC3339),
		"time_remaining": status.TimeRemaining.String(),
	})

	t.logger.Infow("sla warning sent",
		"assignment_id", a.ID(),
		"assignee_id", a.AssigneeID())
	return nil
}

// handleBreach escalates exactly once: flags the assignment, records the
// immutable escalation event, and notifies the unit supervisor.
func (t *SLATracker) handleBreach(ctx context.Context, a *assignment.Assignment, now time.Time) error {
	if a.Escalated() {
		return nil
	}

	recipientID, err := t.unitRepo.SupervisorOf(ctx, a.UnitID())
	if err != nil {
		return fmt.Errorf("failed to resolve escalation recipient: %w", err)
	}

	if !a.Escalate(recipientID, now) {
		return nil
	}

	reason := fmt.Sprintf("SLA deadline %s exceeded", a.SLADeadline().Format(time.RFC3339))
	event, err := assignment.NewEscalationEvent(a.ID(), reason, recipientID, now)
	if err != nil {
		return err
	}

	// The escalation flags and the event record must commit together: an
	// escalated flag without its event would silence the breach forever.
	err = t.inTransaction(ctx, func(txCtx context.Context) error {
		if err := t.assignmentRepo.Update(txCtx, a); err != nil {
			return fmt.Errorf("failed to persist escalation flags: %w", err)
		}
		if err := t.escalationRepo.Save(txCtx, event); err != nil {
			return fmt.Errorf("failed to save escalation event: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	t.notifier.Notify(ctx, recipientID, TemplateSLAEscalation, map[string]any{
		"assignment_id":  a.ID(),
		"work_item_id":   a.WorkItemID(),
		"work_item_type": a.WorkItemType().String(),
		"assignee_id":    a.AssigneeID(),
		"sla_deadline":   a.SLADeadline().Format(time.RFC3339),
	})

	t.logger.Warnw("assignment escalated",
		"assignment_id", a.ID(),
		"escalated_to", recipientID)
	return nil
}

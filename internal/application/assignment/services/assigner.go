package services

import (
	"context"
	"fmt"
	"time"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/domain/staff"
	"caseflow/internal/shared/logger"
)

// WorkItem is the routing-relevant view of a work item offered for
// assignment. The caller has already verified the item exists.
type WorkItem struct {
	ID             string
	Type           vo.WorkItemType
	Priority       vo.Priority
	RequiredSkills []string
	TargetUnitID   *uint
}

// Assigner converts capacity decisions into persisted assignments. It is the
// only component allowed to call the atomic slot primitives, both for the
// automatic path and for the queue drainer's conversions.
type Assigner struct {
	staffRepo      staff.Repository
	assignmentRepo assignment.Repository
	slaTracker     *SLATracker
	logger         logger.Interface
	nowFn          func() time.Time
}

func NewAssigner(
	staffRepo staff.Repository,
	assignmentRepo assignment.Repository,
	slaTracker *SLATracker,
	log logger.Interface,
) *Assigner {
	return &Assigner{
		staffRepo:      staffRepo,
		assignmentRepo: assignmentRepo,
		slaTracker:     slaTracker,
		logger:         log,
		nowFn:          time.Now,
	}
}

// WithNow overrides the clock, for deterministic tests.
func (s *Assigner) WithNow(nowFn func() time.Time) *Assigner {
	s.nowFn = nowFn
	return s
}

// TryAssign attempts to bind the work item to the staff member. It claims a
// WIP slot with the guarded atomic increment; a false return means the slot
// race was lost (or capacity was exhausted) and the caller should try the
// next candidate or queue the item. A failed save releases the claimed slot.
func (s *Assigner) TryAssign(ctx context.Context, item WorkItem, staffID, unitID uint) (*assignment.Assignment, bool, error) {
	acquired, err := s.staffRepo.TryAcquireSlot(ctx, staffID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to acquire slot: %w", err)
	}
	if !acquired {
		return nil, false, nil
	}

	a, err := s.buildAndSave(ctx, item, staffID, unitID, nil)
	if err != nil {
		if _, releaseErr := s.staffRepo.ReleaseSlot(ctx, staffID); releaseErr != nil {
			s.logger.Errorw("failed to release slot after save failure",
				"staff_id", staffID, "error", releaseErr)
		}
		return nil, false, err
	}
	return a, true, nil
}

// AssignOverride binds the work item without the capacity guard, stamping
// the supervised-override audit fields. Manual override only: the slot
// counter is incremented unconditionally and may exceed the individual
// limit.
func (s *Assigner) AssignOverride(ctx context.Context, item WorkItem, staffID, unitID, actingUserID uint, reason string) (*assignment.Assignment, error) {
	if err := s.staffRepo.AcquireSlotUnchecked(ctx, staffID); err != nil {
		return nil, fmt.Errorf("failed to acquire slot: %w", err)
	}

	a, err := s.buildAndSave(ctx, item, staffID, unitID, func(a *assignment.Assignment) error {
		return a.MarkOverride(actingUserID, reason)
	})
	if err != nil {
		if _, releaseErr := s.staffRepo.ReleaseSlot(ctx, staffID); releaseErr != nil {
			s.logger.Errorw("failed to release slot after save failure",
				"staff_id", staffID, "error", releaseErr)
		}
		return nil, err
	}
	return a, nil
}

func (s *Assigner) buildAndSave(ctx context.Context, item WorkItem, staffID, unitID uint, decorate func(*assignment.Assignment) error) (*assignment.Assignment, error) {
	assignedAt := s.nowFn()
	deadline := s.slaTracker.DeadlineFor(item.Priority, item.Type, assignedAt)

	a, err := assignment.NewAssignment(item.ID, item.Type, staffID, unitID, item.Priority, assignedAt, deadline)
	if err != nil {
		return nil, err
	}
	if decorate != nil {
		if err := decorate(a); err != nil {
			return nil, err
		}
	}

	if err := s.assignmentRepo.Save(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save assignment: %w", err)
	}

	s.logger.Infow("assignment created",
		"assignment_id", a.ID(),
		"work_item_id", item.ID,
		"assignee_id", staffID,
		"sla_deadline", deadline.Format(time.RFC3339))
	return a, nil
}

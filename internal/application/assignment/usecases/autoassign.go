package usecases

import (
	"context"
	"time"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type AutoAssignCommand struct {
	WorkItemID     string
	WorkItemType   string
	Priority       string
	RequiredSkills []string
	TargetUnitID   *uint
	Notes          string
}

// AssignedResult describes a successful direct assignment.
type AssignedResult struct {
	AssignmentID uint   `json:"assignment_id"`
	WorkItemID   string `json:"work_item_id"`
	AssigneeID   uint   `json:"assignee_id"`
	UnitID       uint   `json:"unit_id"`
	SLADeadline  string `json:"sla_deadline"`
}

// QueuedResult describes a work item parked on the assignment queue.
type QueuedResult struct {
	QueueEntryID uint   `json:"queue_entry_id"`
	WorkItemID   string `json:"work_item_id"`
	Position     int    `json:"position"`
}

const (
	OutcomeAssigned = "assigned"
	OutcomeQueued   = "queued"
)

// AutoAssignResult reports either a direct assignment or a queue placement.
// Exactly one of Assigned/Queued is set, matching Outcome.
type AutoAssignResult struct {
	Outcome  string          `json:"outcome"`
	Assigned *AssignedResult `json:"assigned,omitempty"`
	Queued   *QueuedResult   `json:"queued,omitempty"`
}

type AutoAssignExecutor interface {
	Execute(ctx context.Context, cmd AutoAssignCommand) (*AutoAssignResult, error)
}

// AutoAssignUseCase routes a work item: direct assignment when a candidate
// with capacity exists in the target unit, queue placement otherwise.
// Capacity exhaustion is not an error here; only duplicates and invalid
// input fail.
type AutoAssignUseCase struct {
	assignmentRepo assignment.Repository
	queueRepo      assignment.QueueRepository
	tracker        *services.CapacityTracker
	assigner       *services.Assigner
	logger         logger.Interface
}

func NewAutoAssignUseCase(
	assignmentRepo assignment.Repository,
	queueRepo assignment.QueueRepository,
	tracker *services.CapacityTracker,
	assigner *services.Assigner,
	logger logger.Interface,
) *AutoAssignUseCase {
	return &AutoAssignUseCase{
		assignmentRepo: assignmentRepo,
		queueRepo:      queueRepo,
		tracker:        tracker,
		assigner:       assigner,
		logger:         logger,
	}
}

func (uc *AutoAssignUseCase) Execute(ctx context.Context, cmd AutoAssignCommand) (*AutoAssignResult, error) {
	uc.logger.Infow("executing auto assign use case",
		"work_item_id", cmd.WorkItemID,
		"work_item_type", cmd.WorkItemType,
		"priority", cmd.Priority)

	item, err := uc.parseCommand(cmd)
	if err != nil {
		uc.logger.Errorw("invalid auto assign command", "error", err)
		return nil, err
	}

	hasActive, err := uc.assignmentRepo.HasActiveForWorkItem(ctx, cmd.WorkItemID)
	if err != nil {
		uc.logger.Errorw("failed to check active assignment", "error", err)
		return nil, errors.NewInternalError("failed to check existing assignment")
	}
	if hasActive {
		return nil, errors.NewConflictError("work item already has an active assignment")
	}

	queued, err := uc.queueRepo.HasEntryForWorkItem(ctx, cmd.WorkItemID)
	if err != nil {
		uc.logger.Errorw("failed to check queue", "error", err)
		return nil, errors.NewInternalError("failed to check assignment queue")
	}
	if queued {
		return nil, errors.NewConflictError("work item is already queued for assignment")
	}

	if cmd.TargetUnitID != nil {
		result, err := uc.tryDirectAssign(ctx, item, *cmd.TargetUnitID)
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
		return uc.enqueue(ctx, cmd, item)
	}

	// No target unit: scan every unit for capacity before queueing.
	units, err := uc.tracker.ListUnits(ctx)
	if err != nil {
		uc.logger.Errorw("failed to list units for routing", "error", err)
		return nil, errors.NewInternalError("failed to list organizational units")
	}
	for _, unit := range units {
		result, err := uc.tryDirectAssign(ctx, item, unit.ID())
		if err != nil {
			return nil, err
		}
		if result != nil {
			return result, nil
		}
	}

	return uc.enqueue(ctx, cmd, item)
}

// tryDirectAssign walks the unit's ranked candidates. A nil result with nil
// error means capacity is exhausted and the caller should queue the item.
func (uc *AutoAssignUseCase) tryDirectAssign(ctx context.Context, item services.WorkItem, unitID uint) (*AutoAssignResult, error) {
	unitStatus, err := uc.tracker.CheckUnitCapacity(ctx, unitID)
	if err != nil {
		if errors.IsAppError(err) {
			return nil, err
		}
		uc.logger.Errorw("failed to check unit capacity", "unit_id", unitID, "error", err)
		return nil, errors.NewInternalError("failed to check unit capacity")
	}
	if !unitStatus.HasCapacity {
		return nil, nil
	}

	candidates, err := uc.tracker.FindAvailableStaffInUnit(ctx, unitID, item.RequiredSkills)
	if err != nil {
		uc.logger.Errorw("failed to find candidates", "unit_id", unitID, "error", err)
		return nil, errors.NewInternalError("failed to find assignment candidates")
	}

	for _, c := range candidates {
		a, assigned, err := uc.assigner.TryAssign(ctx, item, c.Profile.ID(), unitID)
		if err != nil {
			if errors.IsDuplicateError(err) {
				// A concurrent router won the insert race on the
				// active-assignment unique key.
				return nil, errors.NewConflictError("work item already has an active assignment")
			}
			uc.logger.Errorw("assignment attempt failed",
				"work_item_id", item.ID,
				"staff_id", c.Profile.ID(),
				"error", err)
			return nil, errors.NewInternalError("failed to create assignment")
		}
		if !assigned {
			// Slot race lost against a concurrent router; next candidate.
			continue
		}
		return &AutoAssignResult{
			Outcome: OutcomeAssigned,
			Assigned: &AssignedResult{
				AssignmentID: a.ID(),
				WorkItemID:   a.WorkItemID(),
				AssigneeID:   a.AssigneeID(),
				UnitID:       a.UnitID(),
				SLADeadline:  a.SLADeadline().Format(time.RFC3339),
			},
		}, nil
	}

	return nil, nil
}

func (uc *AutoAssignUseCase) enqueue(ctx context.Context, cmd AutoAssignCommand, item services.WorkItem) (*AutoAssignResult, error) {
	entry, err := assignment.NewQueueEntry(
		item.ID, item.Type, item.RequiredSkills, item.TargetUnitID, item.Priority, cmd.Notes)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.queueRepo.Save(ctx, entry); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("work item is already queued for assignment")
		}
		uc.logger.Errorw("failed to enqueue work item", "work_item_id", item.ID, "error", err)
		return nil, errors.NewInternalError("failed to enqueue work item")
	}

	position := 0
	if pos, err := uc.queueRepo.GetPosition(ctx, item.ID); err == nil && pos != nil {
		position = *pos
	}

	uc.logger.Infow("work item queued",
		"work_item_id", item.ID,
		"queue_entry_id", entry.ID(),
		"position", position)

	return &AutoAssignResult{
		Outcome: OutcomeQueued,
		Queued: &QueuedResult{
			QueueEntryID: entry.ID(),
			WorkItemID:   item.ID,
			Position:     position,
		},
	}, nil
}

func (uc *AutoAssignUseCase) parseCommand(cmd AutoAssignCommand) (services.WorkItem, error) {
	if cmd.WorkItemID == "" {
		return services.WorkItem{}, errors.NewValidationError("work item ID is required")
	}
	itemType, err := vo.NewWorkItemType(cmd.WorkItemType)
	if err != nil {
		return services.WorkItem{}, errors.NewValidationError(err.Error())
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return services.WorkItem{}, errors.NewValidationError(err.Error())
	}
	if cmd.TargetUnitID != nil && *cmd.TargetUnitID == 0 {
		return services.WorkItem{}, errors.NewValidationError("target unit ID cannot be zero")
	}

	return services.WorkItem{
		ID:             cmd.WorkItemID,
		Type:           itemType,
		Priority:       priority,
		RequiredSkills: cmd.RequiredSkills,
		TargetUnitID:   cmd.TargetUnitID,
	}, nil
}

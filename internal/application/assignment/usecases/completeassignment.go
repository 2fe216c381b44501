package usecases

import (
	"context"
	"time"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/domain/staff"
	"caseflow/internal/shared/authorization"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type CompleteAssignmentCommand struct {
	AssignmentID uint
	// Outcome is "completed" or "cancelled".
	Outcome      string
	ActingUserID uint
	ActingRole   authorization.UserRole
}

type CompleteAssignmentResult struct {
	AssignmentID uint   `json:"assignment_id"`
	WorkItemID   string `json:"work_item_id"`
	Status       string `json:"status"`
	CompletedAt  string `json:"completed_at,omitempty"`
}

type CompleteAssignmentExecutor interface {
	Execute(ctx context.Context, cmd CompleteAssignmentCommand) (*CompleteAssignmentResult, error)
}

// CompleteAssignmentUseCase finalizes an assignment, releases the assignee's
// WIP slot, and publishes the capacity-freed signal that wakes the queue
// drainer. Slot release and signal publication are best-effort after the
// status change commits; failures there are logged, not surfaced.
type CompleteAssignmentUseCase struct {
	assignmentRepo assignment.Repository
	staffRepo      staff.Repository
	publisher      services.CapacityFreedPublisher
	viewCache      services.StaffViewCache
	logger         logger.Interface
}

func NewCompleteAssignmentUseCase(
	assignmentRepo assignment.Repository,
	staffRepo staff.Repository,
	publisher services.CapacityFreedPublisher,
	viewCache services.StaffViewCache,
	logger logger.Interface,
) *CompleteAssignmentUseCase {
	return &CompleteAssignmentUseCase{
		assignmentRepo: assignmentRepo,
		staffRepo:      staffRepo,
		publisher:      publisher,
		viewCache:      viewCache,
		logger:         logger,
	}
}

func (uc *CompleteAssignmentUseCase) Execute(ctx context.Context, cmd CompleteAssignmentCommand) (*CompleteAssignmentResult, error) {
	uc.logger.Infow("executing complete assignment use case",
		"assignment_id", cmd.AssignmentID,
		"outcome", cmd.Outcome,
		"acting_user_id", cmd.ActingUserID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid complete assignment command", "error", err)
		return nil, err
	}

	a, err := uc.assignmentRepo.GetByID(ctx, cmd.AssignmentID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("assignment not found")
		}
		uc.logger.Errorw("failed to load assignment", "assignment_id", cmd.AssignmentID, "error", err)
		return nil, errors.NewInternalError("failed to load assignment")
	}

	if cmd.ActingUserID != a.AssigneeID() && !cmd.ActingRole.CanOverride() {
		return nil, errors.NewForbiddenError("only the assignee or a supervisor may finalize an assignment")
	}
	if !a.IsActive() {
		return nil, errors.NewConflictError("assignment is already finalized")
	}

	switch cmd.Outcome {
	case vo.StatusCompleted.String():
		err = a.Complete()
	case vo.StatusCancelled.String():
		err = a.Cancel()
	}
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.assignmentRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to persist finalized assignment",
			"assignment_id", a.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update assignment")
	}

	uc.releaseAndSignal(ctx, a)

	result := &CompleteAssignmentResult{
		AssignmentID: a.ID(),
		WorkItemID:   a.WorkItemID(),
		Status:       a.Status().String(),
	}
	if a.CompletedAt() != nil {
		result.CompletedAt = a.CompletedAt().Format(time.RFC3339)
	}

	uc.logger.Infow("assignment finalized",
		"assignment_id", a.ID(),
		"status", a.Status().String())
	return result, nil
}

// releaseAndSignal gives the slot back and announces the freed capacity.
// The assignment is already finalized at this point; nothing here can fail
// the request.
func (uc *CompleteAssignmentUseCase) releaseAndSignal(ctx context.Context, a *assignment.Assignment) {
	released, err := uc.staffRepo.ReleaseSlot(ctx, a.AssigneeID())
	if err != nil {
		uc.logger.Errorw("failed to release WIP slot",
			"staff_id", a.AssigneeID(), "assignment_id", a.ID(), "error", err)
		return
	}
	if !released {
		uc.logger.Warnw("WIP slot counter already at zero",
			"staff_id", a.AssigneeID(), "assignment_id", a.ID())
	}

	var freedSkills []string
	if profile, err := uc.staffRepo.GetByID(ctx, a.AssigneeID()); err == nil && profile != nil {
		freedSkills = profile.Skills()
	} else if err != nil {
		uc.logger.Warnw("failed to load assignee skills for capacity signal",
			"staff_id", a.AssigneeID(), "error", err)
	}

	if err := uc.publisher.PublishCapacityFreed(ctx, a.UnitID(), freedSkills); err != nil {
		uc.logger.Errorw("failed to publish capacity-freed signal",
			"unit_id", a.UnitID(), "error", err)
	}

	if err := uc.viewCache.InvalidateStaffView(ctx, a.AssigneeID()); err != nil {
		uc.logger.Warnw("failed to invalidate staff view cache",
			"staff_id", a.AssigneeID(), "error", err)
	}
}

func (uc *CompleteAssignmentUseCase) validateCommand(cmd CompleteAssignmentCommand) error {
	if cmd.AssignmentID == 0 {
		return errors.NewValidationError("assignment ID is required")
	}
	if cmd.ActingUserID == 0 {
		return errors.NewValidationError("acting user ID is required")
	}
	if cmd.Outcome != vo.StatusCompleted.String() && cmd.Outcome != vo.StatusCancelled.String() {
		return errors.NewValidationError("outcome must be completed or cancelled")
	}
	return nil
}

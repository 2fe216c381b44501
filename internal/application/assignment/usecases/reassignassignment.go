package usecases

import (
	"context"
	"fmt"
	"time"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	"caseflow/internal/domain/staff"
	"caseflow/internal/shared/authorization"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type ReassignAssignmentCommand struct {
	AssignmentID  uint
	NewAssigneeID uint
	ActingUserID  uint
	ActingRole    authorization.UserRole
}

type ReassignAssignmentResult struct {
	AssignmentID      uint   `json:"assignment_id"`
	WorkItemID        string `json:"work_item_id"`
	PreviousAssignee  uint   `json:"previous_assignee_id"`
	NewAssigneeID     uint   `json:"new_assignee_id"`
	UnitID            uint   `json:"unit_id"`
	SLADeadline       string `json:"sla_deadline"`
}

type ReassignAssignmentExecutor interface {
	Execute(ctx context.Context, cmd ReassignAssignmentCommand) (*ReassignAssignmentResult, error)
}

// ReassignAssignmentUseCase moves an active assignment to a new assignee.
// The new assignee's slot is claimed through the capacity guard before the
// old one is released, so the work item is never unowned and the new holder
// is never silently over limit. The SLA deadline carries over unchanged.
type ReassignAssignmentUseCase struct {
	assignmentRepo assignment.Repository
	staffRepo      staff.Repository
	publisher      services.CapacityFreedPublisher
	logger         logger.Interface
}

func NewReassignAssignmentUseCase(
	assignmentRepo assignment.Repository,
	staffRepo staff.Repository,
	publisher services.CapacityFreedPublisher,
	logger logger.Interface,
) *ReassignAssignmentUseCase {
	return &ReassignAssignmentUseCase{
		assignmentRepo: assignmentRepo,
		staffRepo:      staffRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

func (uc *ReassignAssignmentUseCase) Execute(ctx context.Context, cmd ReassignAssignmentCommand) (*ReassignAssignmentResult, error) {
	uc.logger.Infow("executing reassign assignment use case",
		"assignment_id", cmd.AssignmentID,
		"new_assignee_id", cmd.NewAssigneeID,
		"acting_user_id", cmd.ActingUserID)

	if err := uc.validateCommand(cmd); err != nil {
		uc.logger.Errorw("invalid reassign command", "error", err)
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
	if !a.IsActive() {
		return nil, errors.NewConflictError("cannot reassign a finalized assignment")
	}
	if a.AssigneeID() == cmd.NewAssigneeID {
		return nil, errors.NewConflictError("assignment already belongs to that assignee")
	}

	newAssignee, err := uc.staffRepo.GetByID(ctx, cmd.NewAssigneeID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewInvalidAssigneeError("new assignee does not exist")
		}
		uc.logger.Errorw("failed to load new assignee", "assignee_id", cmd.NewAssigneeID, "error", err)
		return nil, errors.NewInternalError("failed to load new assignee")
	}
	if !newAssignee.Availability().IsAvailable() {
		return nil, errors.NewInvalidAssigneeError(
			fmt.Sprintf("new assignee is %s and cannot accept assignments", newAssignee.Availability()))
	}

	oldAssigneeID := a.AssigneeID()
	oldUnitID := a.UnitID()

	acquired, err := uc.staffRepo.TryAcquireSlot(ctx, cmd.NewAssigneeID)
	if err != nil {
		uc.logger.Errorw("failed to acquire slot for new assignee",
			"assignee_id", cmd.NewAssigneeID, "error", err)
		return nil, errors.NewInternalError("failed to acquire capacity for new assignee")
	}
	if !acquired {
		return nil, errors.NewConflictError("new assignee has no remaining capacity")
	}

	if err := a.ReassignTo(newAssignee.ID(), newAssignee.UnitID()); err != nil {
		uc.rollbackSlot(ctx, cmd.NewAssigneeID)
		return nil, errors.NewValidationError(err.Error())
	}
	if err := uc.assignmentRepo.Update(ctx, a); err != nil {
		uc.rollbackSlot(ctx, cmd.NewAssigneeID)
		uc.logger.Errorw("failed to persist reassignment", "assignment_id", a.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update assignment")
	}

	// The old assignee's slot frees up exactly like a completion does.
	if released, err := uc.staffRepo.ReleaseSlot(ctx, oldAssigneeID); err != nil {
		uc.logger.Errorw("failed to release previous assignee's slot",
			"staff_id", oldAssigneeID, "error", err)
	} else if !released {
		uc.logger.Warnw("previous assignee's slot counter already at zero",
			"staff_id", oldAssigneeID)
	}

	var freedSkills []string
	if prev, err := uc.staffRepo.GetByID(ctx, oldAssigneeID); err == nil && prev != nil {
		freedSkills = prev.Skills()
	}
	if err := uc.publisher.PublishCapacityFreed(ctx, oldUnitID, freedSkills); err != nil {
		uc.logger.Errorw("failed to publish capacity-freed signal",
			"unit_id", oldUnitID, "error", err)
	}

	uc.logger.Infow("assignment reassigned",
		"assignment_id", a.ID(),
		"previous_assignee_id", oldAssigneeID,
		"new_assignee_id", a.AssigneeID())

	return &ReassignAssignmentResult{
		AssignmentID:     a.ID(),
		WorkItemID:       a.WorkItemID(),
		PreviousAssignee: oldAssigneeID,
		NewAssigneeID:    a.AssigneeID(),
		UnitID:           a.UnitID(),
		SLADeadline:      a.SLADeadline().Format(time.RFC3339),
	}, nil
}

func (uc *ReassignAssignmentUseCase) rollbackSlot(ctx context.Context, staffID uint) {
	if _, err := uc.staffRepo.ReleaseSlot(ctx, staffID); err != nil {
		uc.logger.Errorw("failed to roll back acquired slot", "staff_id", staffID, "error", err)
	}
}

func (uc *ReassignAssignmentUseCase) validateCommand(cmd ReassignAssignmentCommand) error {
	if !cmd.ActingRole.CanOverride() {
		return errors.NewForbiddenError("only supervisors may reassign assignments")
	}
	if cmd.AssignmentID == 0 {
		return errors.NewValidationError("assignment ID is required")
	}
	if cmd.NewAssigneeID == 0 {
		return errors.NewValidationError("new assignee ID is required")
	}
	if cmd.ActingUserID == 0 {
		return errors.NewValidationError("acting user ID is required")
	}
	return nil
}

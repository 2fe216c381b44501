package usecases

import (
	"context"
	"fmt"
	"strings"
	"time"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/domain/staff"
	"caseflow/internal/shared/authorization"
	"caseflow/internal/shared/constants"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type ManualOverrideCommand struct {
	WorkItemID     string
	WorkItemType   string
	Priority       string
	RequiredSkills []string
	AssigneeID     uint
	ActingUserID   uint
	ActingRole     authorization.UserRole
	Reason         string
}

type ManualOverrideResult struct {
	AssignmentID uint   `json:"assignment_id"`
	WorkItemID   string `json:"work_item_id"`
	AssigneeID   uint   `json:"assignee_id"`
	UnitID       uint   `json:"unit_id"`
	SLADeadline  string `json:"sla_deadline"`
	AssignedBy   uint   `json:"assigned_by"`
	// CapacityWarning is set when the override pushed the assignee to or
	// past their WIP limit. Advisory only; the override still succeeds.
	CapacityWarning string `json:"capacity_warning,omitempty"`
}

type ManualOverrideExecutor interface {
	Execute(ctx context.Context, cmd ManualOverrideCommand) (*ManualOverrideResult, error)
}

// ManualOverrideUseCase lets a supervisor bypass automatic routing and bind
// a work item to a chosen assignee. The capacity guard is skipped, but the
// acting user, a substantive reason, and a valid active assignee are all
// mandatory, and the audit fields are stamped on the assignment.
type ManualOverrideUseCase struct {
	assignmentRepo assignment.Repository
	queueRepo      assignment.QueueRepository
	staffRepo      staff.Repository
	assigner       *services.Assigner
	notifier       services.Notifier
	logger         logger.Interface
}

func NewManualOverrideUseCase(
	assignmentRepo assignment.Repository,
	queueRepo assignment.QueueRepository,
	staffRepo staff.Repository,
	assigner *services.Assigner,
	notifier services.Notifier,
	logger logger.Interface,
) *ManualOverrideUseCase {
	return &ManualOverrideUseCase{
		assignmentRepo: assignmentRepo,
		queueRepo:      queueRepo,
		staffRepo:      staffRepo,
		assigner:       assigner,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *ManualOverrideUseCase) Execute(ctx context.Context, cmd ManualOverrideCommand) (*ManualOverrideResult, error) {
	uc.logger.Infow("executing manual override use case",
		"work_item_id", cmd.WorkItemID,
		"assignee_id", cmd.AssigneeID,
		"acting_user_id", cmd.ActingUserID)

	item, err := uc.validateCommand(cmd)
	if err != nil {
		uc.logger.Errorw("invalid manual override command", "error", err)
		return nil, err
	}

	assignee, err := uc.staffRepo.GetByID(ctx, cmd.AssigneeID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewInvalidAssigneeError("assignee does not exist")
		}
		uc.logger.Errorw("failed to load assignee", "assignee_id", cmd.AssigneeID, "error", err)
		return nil, errors.NewInternalError("failed to load assignee")
	}
	if !assignee.Availability().IsAvailable() {
		return nil, errors.NewInvalidAssigneeError(
			fmt.Sprintf("assignee is %s and cannot accept assignments", assignee.Availability()))
	}

	hasActive, err := uc.assignmentRepo.HasActiveForWorkItem(ctx, cmd.WorkItemID)
	if err != nil {
		uc.logger.Errorw("failed to check active assignment", "error", err)
		return nil, errors.NewInternalError("failed to check existing assignment")
	}
	if hasActive {
		return nil, errors.NewConflictError("work item already has an active assignment")
	}

	a, err := uc.assigner.AssignOverride(
		ctx, item, assignee.ID(), assignee.UnitID(), cmd.ActingUserID, cmd.Reason)
	if err != nil {
		if errors.IsDuplicateError(err) {
			// A concurrent path won the insert race on the
			// active-assignment unique key.
			return nil, errors.NewConflictError("work item already has an active assignment")
		}
		uc.logger.Errorw("manual override failed",
			"work_item_id", cmd.WorkItemID,
			"assignee_id", cmd.AssigneeID,
			"error", err)
		return nil, errors.NewInternalError("failed to create override assignment")
	}

	// An override short-circuits the queue: any stale entry for the work
	// item must go, or the drainer would later create a duplicate.
	if err := uc.queueRepo.DeleteByWorkItem(ctx, cmd.WorkItemID); err != nil {
		uc.logger.Errorw("failed to remove stale queue entry",
			"work_item_id", cmd.WorkItemID, "error", err)
	}

	result := &ManualOverrideResult{
		AssignmentID: a.ID(),
		WorkItemID:   a.WorkItemID(),
		AssigneeID:   a.AssigneeID(),
		UnitID:       a.UnitID(),
		SLADeadline:  a.SLADeadline().Format(time.RFC3339),
		AssignedBy:   cmd.ActingUserID,
	}

	if updated, err := uc.staffRepo.GetByID(ctx, assignee.ID()); err == nil {
		if updated.AtOrOverLimit() {
			result.CapacityWarning = fmt.Sprintf("assignee is at %d/%d of their WIP limit",
				updated.CurrentAssignmentCount(), updated.IndividualWIPLimit())
		}
	}

	uc.notifier.Notify(ctx, a.AssigneeID(), services.TemplateManualOverride, map[string]any{
		"assignment_id":  a.ID(),
		"work_item_id":   a.WorkItemID(),
		"work_item_type": a.WorkItemType().String(),
		"assigned_by":    cmd.ActingUserID,
		"sla_deadline":   a.SLADeadline().Format(time.RFC3339),
	})

	uc.logger.Infow("manual override applied",
		"assignment_id", a.ID(),
		"work_item_id", a.WorkItemID(),
		"assignee_id", a.AssigneeID(),
		"acting_user_id", cmd.ActingUserID,
		"capacity_warning", result.CapacityWarning != "")

	return result, nil
}

func (uc *ManualOverrideUseCase) validateCommand(cmd ManualOverrideCommand) (services.WorkItem, error) {
	if !cmd.ActingRole.CanOverride() {
		return services.WorkItem{}, errors.NewForbiddenError("only supervisors may override assignment")
	}
	if cmd.ActingUserID == 0 {
		return services.WorkItem{}, errors.NewValidationError("acting user ID is required")
	}
	if cmd.AssigneeID == 0 {
		return services.WorkItem{}, errors.NewValidationError("assignee ID is required")
	}
	if cmd.WorkItemID == "" {
		return services.WorkItem{}, errors.NewValidationError("work item ID is required")
	}
	if len(strings.TrimSpace(cmd.Reason)) < constants.MinOverrideReasonLength {
		return services.WorkItem{}, errors.NewValidationError(
			fmt.Sprintf("override reason must be at least %d characters", constants.MinOverrideReasonLength))
	}

	itemType, err := vo.NewWorkItemType(cmd.WorkItemType)
	if err != nil {
		return services.WorkItem{}, errors.NewValidationError(err.Error())
	}
	priority, err := vo.NewPriority(cmd.Priority)
	if err != nil {
		return services.WorkItem{}, errors.NewValidationError(err.Error())
	}

	return services.WorkItem{
		ID:             cmd.WorkItemID,
		Type:           itemType,
		Priority:       priority,
		RequiredSkills: cmd.RequiredSkills,
	}, nil
}

package usecases

import (
	"context"
	"time"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type GetAssignmentQuery struct {
	AssignmentID uint
}

type AssignmentDetailResult struct {
	AssignmentID   uint    `json:"assignment_id"`
	WorkItemID     string  `json:"work_item_id"`
	WorkItemType   string  `json:"work_item_type"`
	AssigneeID     uint    `json:"assignee_id"`
	UnitID         uint    `json:"unit_id"`
	Priority       string  `json:"priority"`
	Status         string  `json:"status"`
	AssignedBy     *uint   `json:"assigned_by,omitempty"`
	OverrideReason string  `json:"override_reason,omitempty"`
	AssignedAt     string  `json:"assigned_at"`
	SLADeadline    string  `json:"sla_deadline"`
	SLABucket      string  `json:"sla_bucket"`
	TimeRemaining  string  `json:"time_remaining"`
	ElapsedPct     float64 `json:"elapsed_pct"`
	Escalated      bool    `json:"escalated"`
	EscalatedAt    string  `json:"escalated_at,omitempty"`
	CompletedAt    string  `json:"completed_at,omitempty"`
}

type GetAssignmentExecutor interface {
	Execute(ctx context.Context, query GetAssignmentQuery) (*AssignmentDetailResult, error)
}

// GetAssignmentUseCase returns one assignment with its on-demand SLA
// classification. The classification uses the same pure function as the
// periodic sweep, so both views always agree.
type GetAssignmentUseCase struct {
	assignmentRepo assignment.Repository
	slaTracker     *services.SLATracker
	logger         logger.Interface
	nowFn          func() time.Time
}

func NewGetAssignmentUseCase(
	assignmentRepo assignment.Repository,
	slaTracker *services.SLATracker,
	logger logger.Interface,
) *GetAssignmentUseCase {
	return &GetAssignmentUseCase{
		assignmentRepo: assignmentRepo,
		slaTracker:     slaTracker,
		logger:         logger,
		nowFn:          time.Now,
	}
}

// WithNow overrides the clock, for deterministic tests.
func (uc *GetAssignmentUseCase) WithNow(nowFn func() time.Time) *GetAssignmentUseCase {
	uc.nowFn = nowFn
	return uc
}

func (uc *GetAssignmentUseCase) Execute(ctx context.Context, query GetAssignmentQuery) (*AssignmentDetailResult, error) {
	if query.AssignmentID == 0 {
		return nil, errors.NewValidationError("assignment ID is required")
	}

	a, err := uc.assignmentRepo.GetByID(ctx, query.AssignmentID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("assignment not found")
		}
		uc.logger.Errorw("failed to load assignment", "assignment_id", query.AssignmentID, "error", err)
		return nil, errors.NewInternalError("failed to load assignment")
	}

	status := uc.slaTracker.Classify(a, uc.nowFn())

	result := &AssignmentDetailResult{
		AssignmentID:   a.ID(),
		WorkItemID:     a.WorkItemID(),
		WorkItemType:   a.WorkItemType().String(),
		AssigneeID:     a.AssigneeID(),
		UnitID:         a.UnitID(),
		Priority:       a.Priority().String(),
		Status:         a.Status().String(),
		AssignedBy:     a.AssignedBy(),
		OverrideReason: a.OverrideReason(),
		AssignedAt:     a.AssignedAt().Format(time.RFC3339),
		SLADeadline:    a.SLADeadline().Format(time.RFC3339),
		SLABucket:      status.Bucket.String(),
		TimeRemaining:  status.TimeRemaining.String(),
		ElapsedPct:     status.ElapsedPct,
		Escalated:      a.Escalated(),
	}
	if a.EscalatedAt() != nil {
		result.EscalatedAt = a.EscalatedAt().Format(time.RFC3339)
	}
	if a.CompletedAt() != nil {
		result.CompletedAt = a.CompletedAt().Format(time.RFC3339)
	}

	return result, nil
}

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

type GetMyAssignmentsQuery struct {
	AssigneeID uint
}

// AssignmentItem is one active assignment with its live SLA classification.
type AssignmentItem struct {
	AssignmentID  uint   `json:"assignment_id"`
	WorkItemID    string `json:"work_item_id"`
	WorkItemType  string `json:"work_item_type"`
	Priority      string `json:"priority"`
	Status        string `json:"status"`
	AssignedAt    string `json:"assigned_at"`
	SLADeadline   string `json:"sla_deadline"`
	SLABucket     string `json:"sla_bucket"`
	TimeRemaining string `json:"time_remaining"`
	ElapsedPct    float64 `json:"elapsed_pct"`
}

// AssignmentSummary aggregates the workload view's headline numbers.
type AssignmentSummary struct {
	ActiveCount   int `json:"active_count"`
	AtRiskCount   int `json:"at_risk_count"`
	BreachedCount int `json:"breached_count"`
}

type MyAssignmentsResult struct {
	Assignments []AssignmentItem  `json:"assignments"`
	Summary     AssignmentSummary `json:"summary"`
}

type GetMyAssignmentsExecutor interface {
	Execute(ctx context.Context, query GetMyAssignmentsQuery) (*MyAssignmentsResult, error)
}

// GetMyAssignmentsUseCase builds a staff member's workload dashboard. Every
// item is classified against the same clock reading, so the summary counts
// always agree with the per-item buckets.
type GetMyAssignmentsUseCase struct {
	assignmentRepo assignment.Repository
	slaTracker     *services.SLATracker
	logger         logger.Interface
	nowFn          func() time.Time
}

func NewGetMyAssignmentsUseCase(
	assignmentRepo assignment.Repository,
	slaTracker *services.SLATracker,
	logger logger.Interface,
) *GetMyAssignmentsUseCase {
	return &GetMyAssignmentsUseCase{
		assignmentRepo: assignmentRepo,
		slaTracker:     slaTracker,
		logger:         logger,
		nowFn:          time.Now,
	}
}

// WithNow overrides the clock, for deterministic tests.
func (uc *GetMyAssignmentsUseCase) WithNow(nowFn func() time.Time) *GetMyAssignmentsUseCase {
	uc.nowFn = nowFn
	return uc
}

func (uc *GetMyAssignmentsUseCase) Execute(ctx context.Context, query GetMyAssignmentsQuery) (*MyAssignmentsResult, error) {
	if query.AssigneeID == 0 {
		return nil, errors.NewValidationError("assignee ID is required")
	}

	open, err := uc.assignmentRepo.ListOpenByAssignee(ctx, query.AssigneeID)
	if err != nil {
		uc.logger.Errorw("failed to list open assignments",
			"assignee_id", query.AssigneeID, "error", err)
		return nil, errors.NewInternalError("failed to list assignments")
	}

	now := uc.nowFn()
	items := make([]AssignmentItem, 0, len(open))
	summary := AssignmentSummary{ActiveCount: len(open)}

	for _, a := range open {
		status := uc.slaTracker.Classify(a, now)
		switch status.Bucket {
		case vo.SLAWarning:
			summary.AtRiskCount++
		case vo.SLABreached:
			summary.BreachedCount++
		}

		items = append(items, AssignmentItem{
			AssignmentID:  a.ID(),
			WorkItemID:    a.WorkItemID(),
			WorkItemType:  a.WorkItemType().String(),
			Priority:      a.Priority().String(),
			Status:        a.Status().String(),
			AssignedAt:    a.AssignedAt().Format(time.RFC3339),
			SLADeadline:   a.SLADeadline().Format(time.RFC3339),
			SLABucket:     status.Bucket.String(),
			TimeRemaining: status.TimeRemaining.String(),
			ElapsedPct:    status.ElapsedPct,
		})
	}

	return &MyAssignmentsResult{
		Assignments: items,
		Summary:     summary,
	}, nil
}

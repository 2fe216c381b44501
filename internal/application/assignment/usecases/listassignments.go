package usecases

import (
	"context"
	"time"

	"caseflow/internal/application/assignment/services"
	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
	"caseflow/internal/shared/utils"
)

type ListAssignmentsCommand struct {
	Status       string
	Priority     string
	WorkItemType string
	AssigneeID   *uint
	UnitID       *uint
	Page         int
	PageSize     int
}

type ListAssignmentsResult struct {
	Assignments []AssignmentItem `json:"assignments"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	TotalPages  int              `json:"total_pages"`
}

type ListAssignmentsExecutor interface {
	Execute(ctx context.Context, cmd ListAssignmentsCommand) (*ListAssignmentsResult, error)
}

// ListAssignmentsUseCase serves the supervisor's filtered assignment view,
// with every row carrying its live SLA classification.
type ListAssignmentsUseCase struct {
	assignmentRepo assignment.Repository
	slaTracker     *services.SLATracker
	logger         logger.Interface
	nowFn          func() time.Time
}

func NewListAssignmentsUseCase(
	assignmentRepo assignment.Repository,
	slaTracker *services.SLATracker,
	logger logger.Interface,
) *ListAssignmentsUseCase {
	return &ListAssignmentsUseCase{
		assignmentRepo: assignmentRepo,
		slaTracker:     slaTracker,
		logger:         logger,
		nowFn:          time.Now,
	}
}

// WithNow overrides the clock, for deterministic tests.
func (uc *ListAssignmentsUseCase) WithNow(nowFn func() time.Time) *ListAssignmentsUseCase {
	uc.nowFn = nowFn
	return uc
}

func (uc *ListAssignmentsUseCase) Execute(ctx context.Context, cmd ListAssignmentsCommand) (*ListAssignmentsResult, error) {
	filter, pagination, err := uc.buildFilter(cmd)
	if err != nil {
		uc.logger.Errorw("invalid list assignments command", "error", err)
		return nil, err
	}

	assignments, total, err := uc.assignmentRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list assignments", "error", err)
		return nil, errors.NewInternalError("failed to list assignments")
	}

	now := uc.nowFn()
	items := make([]AssignmentItem, 0, len(assignments))
	for _, a := range assignments {
		status := uc.slaTracker.Classify(a, now)
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

	return &ListAssignmentsResult{
		Assignments: items,
		Total:       total,
		Page:        pagination.Page,
		PageSize:    pagination.PageSize,
		TotalPages:  utils.TotalPages(total, pagination.PageSize),
	}, nil
}

func (uc *ListAssignmentsUseCase) buildFilter(cmd ListAssignmentsCommand) (assignment.Filter, utils.Pagination, error) {
	pagination, err := utils.ValidatePagination(cmd.Page, cmd.PageSize)
	if err != nil {
		return assignment.Filter{}, pagination, err
	}

	filter := assignment.Filter{
		AssigneeID: cmd.AssigneeID,
		UnitID:     cmd.UnitID,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	}

	if cmd.Status != "" {
		s, err := vo.NewAssignmentStatus(cmd.Status)
		if err != nil {
			return assignment.Filter{}, pagination, errors.NewValidationError(err.Error())
		}
		filter.Status = &s
	}
	if cmd.Priority != "" {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return assignment.Filter{}, pagination, errors.NewValidationError(err.Error())
		}
		filter.Priority = &p
	}
	if cmd.WorkItemType != "" {
		t, err := vo.NewWorkItemType(cmd.WorkItemType)
		if err != nil {
			return assignment.Filter{}, pagination, errors.NewValidationError(err.Error())
		}
		filter.WorkItemType = &t
	}

	return filter, pagination, nil
}

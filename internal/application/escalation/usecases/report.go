package usecases

import (
	"context"
	"time"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type EscalationReportQuery struct {
	Start        time.Time
	End          time.Time
	UnitID       *uint
	AssigneeID   *uint
	WorkItemType string
}

// ReportBucket is one aggregation row: a day, a unit, an assignee, or a
// work item type, with its escalation count.
type ReportBucket struct {
	Key   string `json:"key"`
	ID    uint   `json:"id,omitempty"`
	Count int64  `json:"count"`
}

type EscalationReportResult struct {
	Start          string         `json:"start"`
	End            string         `json:"end"`
	Total          int64          `json:"total"`
	TimeSeries     []ReportBucket `json:"time_series"`
	ByUnit         []ReportBucket `json:"by_unit"`
	ByAssignee     []ReportBucket `json:"by_assignee"`
	ByWorkItemType []ReportBucket `json:"by_work_item_type"`
}

type EscalationReportExecutor interface {
	Execute(ctx context.Context, query EscalationReportQuery) (*EscalationReportResult, error)
}

// EscalationReportUseCase aggregates SLA breach events over a date range for
// the supervisor's report: a headline total, a per-day time series, and
// breakdowns by unit, assignee, and work item type.
type EscalationReportUseCase struct {
	escalationRepo assignment.EscalationRepository
	logger         logger.Interface
}

func NewEscalationReportUseCase(
	escalationRepo assignment.EscalationRepository,
	logger logger.Interface,
) *EscalationReportUseCase {
	return &EscalationReportUseCase{
		escalationRepo: escalationRepo,
		logger:         logger,
	}
}

func (uc *EscalationReportUseCase) Execute(ctx context.Context, query EscalationReportQuery) (*EscalationReportResult, error) {
	filter, err := uc.buildFilter(query)
	if err != nil {
		uc.logger.Errorw("invalid escalation report query", "error", err)
		return nil, err
	}

	total, err := uc.escalationRepo.CountInRange(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to count escalations", "error", err)
		return nil, errors.NewInternalError("failed to build escalation report")
	}

	byDay, err := uc.escalationRepo.CountByDay(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to aggregate escalations by day", "error", err)
		return nil, errors.NewInternalError("failed to build escalation report")
	}
	byUnit, err := uc.escalationRepo.CountByUnit(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to aggregate escalations by unit", "error", err)
		return nil, errors.NewInternalError("failed to build escalation report")
	}
	byAssignee, err := uc.escalationRepo.CountByAssignee(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to aggregate escalations by assignee", "error", err)
		return nil, errors.NewInternalError("failed to build escalation report")
	}
	byType, err := uc.escalationRepo.CountByWorkItemType(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to aggregate escalations by work item type", "error", err)
		return nil, errors.NewInternalError("failed to build escalation report")
	}

	return &EscalationReportResult{
		Start:          filter.Start.Format(time.RFC3339),
		End:            filter.End.Format(time.RFC3339),
		Total:          total,
		TimeSeries:     toBuckets(byDay),
		ByUnit:         toBuckets(byUnit),
		ByAssignee:     toBuckets(byAssignee),
		ByWorkItemType: toBuckets(byType),
	}, nil
}

func (uc *EscalationReportUseCase) buildFilter(query EscalationReportQuery) (assignment.EscalationFilter, error) {
	if query.Start.IsZero() || query.End.IsZero() {
		return assignment.EscalationFilter{}, errors.NewValidationError("start and end dates are required")
	}
	if !query.End.After(query.Start) {
		return assignment.EscalationFilter{}, errors.NewValidationError("end date must be after start date")
	}

	filter := assignment.EscalationFilter{
		Start:      query.Start,
		End:        query.End,
		UnitID:     query.UnitID,
		AssigneeID: query.AssigneeID,
	}
	if query.WorkItemType != "" {
		t, err := vo.NewWorkItemType(query.WorkItemType)
		if err != nil {
			return assignment.EscalationFilter{}, errors.NewValidationError(err.Error())
		}
		filter.WorkItemType = &t
	}
	return filter, nil
}

func toBuckets(counts []assignment.EscalationCount) []ReportBucket {
	buckets := make([]ReportBucket, 0, len(counts))
	for _, c := range counts {
		buckets = append(buckets, ReportBucket{
			Key:   c.Key,
			ID:    c.ID,
			Count: c.Count,
		})
	}
	return buckets
}

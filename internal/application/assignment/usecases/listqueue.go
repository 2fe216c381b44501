package usecases

import (
	"context"
	"time"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
	"caseflow/internal/shared/utils"
)

type ListQueueCommand struct {
	Priority     string
	WorkItemType string
	UnitID       *uint
	Page         int
	PageSize     int
}

// QueueEntryItem is one row of the queue listing, in drain order.
type QueueEntryItem struct {
	QueueEntryID   uint     `json:"queue_entry_id"`
	WorkItemID     string   `json:"work_item_id"`
	WorkItemType   string   `json:"work_item_type"`
	Priority       string   `json:"priority"`
	RequiredSkills []string `json:"required_skills"`
	TargetUnitID   *uint    `json:"target_unit_id,omitempty"`
	Position       int      `json:"position"`
	Attempts       int      `json:"attempts"`
	LastAttemptAt  string   `json:"last_attempt_at,omitempty"`
	Notes          string   `json:"notes,omitempty"`
	AgingBucket    string   `json:"aging_bucket"`
	QueuedAt       string   `json:"queued_at"`
}

type ListQueueResult struct {
	Entries    []QueueEntryItem `json:"entries"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalPages int              `json:"total_pages"`
}

type ListQueueExecutor interface {
	Execute(ctx context.Context, cmd ListQueueCommand) (*ListQueueResult, error)
}

// ListQueueUseCase serves the supervisor's queue view: entries in drain
// order with their global positions, attempt history, and aging buckets.
type ListQueueUseCase struct {
	queueRepo assignment.QueueRepository
	logger    logger.Interface
}

func NewListQueueUseCase(queueRepo assignment.QueueRepository, logger logger.Interface) *ListQueueUseCase {
	return &ListQueueUseCase{
		queueRepo: queueRepo,
		logger:    logger,
	}
}

func (uc *ListQueueUseCase) Execute(ctx context.Context, cmd ListQueueCommand) (*ListQueueResult, error) {
	filter, pagination, err := uc.buildFilter(cmd)
	if err != nil {
		uc.logger.Errorw("invalid list queue command", "error", err)
		return nil, err
	}

	entries, total, err := uc.queueRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list queue", "error", err)
		return nil, errors.NewInternalError("failed to list assignment queue")
	}

	items := make([]QueueEntryItem, 0, len(entries))
	for _, e := range entries {
		item := QueueEntryItem{
			QueueEntryID:   e.ID(),
			WorkItemID:     e.WorkItemID(),
			WorkItemType:   e.WorkItemType().String(),
			Priority:       e.Priority().String(),
			RequiredSkills: e.RequiredSkills(),
			TargetUnitID:   e.TargetUnitID(),
			Attempts:       e.Attempts(),
			Notes:          e.Notes(),
			AgingBucket:    e.AgingBucket().String(),
			QueuedAt:       e.CreatedAt().Format(time.RFC3339),
		}
		if e.LastAttemptAt() != nil {
			item.LastAttemptAt = e.LastAttemptAt().Format(time.RFC3339)
		}
		// Positions are global ranks, not page-local indexes, so a filtered
		// view still shows where each entry sits in the full queue.
		if pos, err := uc.queueRepo.GetPosition(ctx, e.WorkItemID()); err == nil && pos != nil {
			item.Position = *pos
		}
		items = append(items, item)
	}

	return &ListQueueResult{
		Entries:    items,
		Total:      total,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
		TotalPages: utils.TotalPages(total, pagination.PageSize),
	}, nil
}

func (uc *ListQueueUseCase) buildFilter(cmd ListQueueCommand) (assignment.QueueFilter, utils.Pagination, error) {
	pagination, err := utils.ValidatePagination(cmd.Page, cmd.PageSize)
	if err != nil {
		return assignment.QueueFilter{}, pagination, err
	}

	filter := assignment.QueueFilter{
		UnitID:   cmd.UnitID,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}

	if cmd.Priority != "" {
		p, err := vo.NewPriority(cmd.Priority)
		if err != nil {
			return assignment.QueueFilter{}, pagination, errors.NewValidationError(err.Error())
		}
		filter.Priority = &p
	}
	if cmd.WorkItemType != "" {
		t, err := vo.NewWorkItemType(cmd.WorkItemType)
		if err != nil {
			return assignment.QueueFilter{}, pagination, errors.NewValidationError(err.Error())
		}
		filter.WorkItemType = &t
	}

	return filter, pagination, nil
}

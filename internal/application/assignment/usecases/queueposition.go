package usecases

import (
	"context"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type GetQueuePositionQuery struct {
	WorkItemID string
}

type QueuePositionResult struct {
	WorkItemID string `json:"work_item_id"`
	Position   int    `json:"position"`
}

type GetQueuePositionExecutor interface {
	Execute(ctx context.Context, query GetQueuePositionQuery) (*QueuePositionResult, error)
}

// GetQueuePositionUseCase answers "where is my item in the queue?" with the
// same ordering the drainer uses, so the reported rank matches drain order.
type GetQueuePositionUseCase struct {
	queueRepo assignment.QueueRepository
	logger    logger.Interface
}

func NewGetQueuePositionUseCase(queueRepo assignment.QueueRepository, logger logger.Interface) *GetQueuePositionUseCase {
	return &GetQueuePositionUseCase{
		queueRepo: queueRepo,
		logger:    logger,
	}
}

func (uc *GetQueuePositionUseCase) Execute(ctx context.Context, query GetQueuePositionQuery) (*QueuePositionResult, error) {
	if query.WorkItemID == "" {
		return nil, errors.NewValidationError("work item ID is required")
	}

	pos, err := uc.queueRepo.GetPosition(ctx, query.WorkItemID)
	if err != nil {
		uc.logger.Errorw("failed to get queue position",
			"work_item_id", query.WorkItemID, "error", err)
		return nil, errors.NewInternalError("failed to get queue position")
	}
	if pos == nil {
		return nil, errors.NewNotFoundError("work item is not queued")
	}

	return &QueuePositionResult{
		WorkItemID: query.WorkItemID,
		Position:   *pos,
	}, nil
}

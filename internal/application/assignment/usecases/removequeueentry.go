package usecases

import (
	"context"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/shared/authorization"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type RemoveQueueEntryCommand struct {
	QueueEntryID uint
	ActingUserID uint
	ActingRole   authorization.UserRole
}

type RemoveQueueEntryResult struct {
	QueueEntryID uint   `json:"queue_entry_id"`
	WorkItemID   string `json:"work_item_id"`
}

type RemoveQueueEntryExecutor interface {
	Execute(ctx context.Context, cmd RemoveQueueEntryCommand) (*RemoveQueueEntryResult, error)
}

// RemoveQueueEntryUseCase administratively drops a queued work item. This is
// the only terminal exit from the queue besides a successful drain.
type RemoveQueueEntryUseCase struct {
	queueRepo assignment.QueueRepository
	logger    logger.Interface
}

func NewRemoveQueueEntryUseCase(queueRepo assignment.QueueRepository, logger logger.Interface) *RemoveQueueEntryUseCase {
	return &RemoveQueueEntryUseCase{
		queueRepo: queueRepo,
		logger:    logger,
	}
}

func (uc *RemoveQueueEntryUseCase) Execute(ctx context.Context, cmd RemoveQueueEntryCommand) (*RemoveQueueEntryResult, error) {
	if !cmd.ActingRole.IsAdmin() {
		return nil, errors.NewForbiddenError("only administrators may remove queue entries")
	}
	if cmd.QueueEntryID == 0 {
		return nil, errors.NewValidationError("queue entry ID is required")
	}

	entry, err := uc.queueRepo.GetByID(ctx, cmd.QueueEntryID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("queue entry not found")
		}
		uc.logger.Errorw("failed to load queue entry", "queue_entry_id", cmd.QueueEntryID, "error", err)
		return nil, errors.NewInternalError("failed to load queue entry")
	}

	if err := uc.queueRepo.Delete(ctx, entry.ID()); err != nil {
		uc.logger.Errorw("failed to delete queue entry", "queue_entry_id", entry.ID(), "error", err)
		return nil, errors.NewInternalError("failed to delete queue entry")
	}

	uc.logger.Infow("queue entry removed",
		"queue_entry_id", entry.ID(),
		"work_item_id", entry.WorkItemID(),
		"acting_user_id", cmd.ActingUserID)

	return &RemoveQueueEntryResult{
		QueueEntryID: entry.ID(),
		WorkItemID:   entry.WorkItemID(),
	}, nil
}

package usecases

import (
	"context"
	"time"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type AcknowledgeEscalationCommand struct {
	EscalationID uint
	ActingUserID uint
	Notes        string
}

type AcknowledgeEscalationResult struct {
	EscalationID   uint   `json:"escalation_id"`
	AssignmentID   uint   `json:"assignment_id"`
	AcknowledgedAt string `json:"acknowledged_at"`
	AcknowledgedBy uint   `json:"acknowledged_by"`
}

type AcknowledgeEscalationExecutor interface {
	Execute(ctx context.Context, cmd AcknowledgeEscalationCommand) (*AcknowledgeEscalationResult, error)
}

// AcknowledgeEscalationUseCase records that a supervisor has seen an
// escalation. The breach record itself never changes; acknowledgement is an
// annotation, and acknowledging twice is a conflict.
type AcknowledgeEscalationUseCase struct {
	escalationRepo assignment.EscalationRepository
	logger         logger.Interface
	nowFn          func() time.Time
}

func NewAcknowledgeEscalationUseCase(
	escalationRepo assignment.EscalationRepository,
	logger logger.Interface,
) *AcknowledgeEscalationUseCase {
	return &AcknowledgeEscalationUseCase{
		escalationRepo: escalationRepo,
		logger:         logger,
		nowFn:          time.Now,
	}
}

// WithNow overrides the clock, for deterministic tests.
func (uc *AcknowledgeEscalationUseCase) WithNow(nowFn func() time.Time) *AcknowledgeEscalationUseCase {
	uc.nowFn = nowFn
	return uc
}

func (uc *AcknowledgeEscalationUseCase) Execute(ctx context.Context, cmd AcknowledgeEscalationCommand) (*AcknowledgeEscalationResult, error) {
	if cmd.EscalationID == 0 {
		return nil, errors.NewValidationError("escalation ID is required")
	}
	if cmd.ActingUserID == 0 {
		return nil, errors.NewValidationError("acting user ID is required")
	}

	event, err := uc.escalationRepo.GetByID(ctx, cmd.EscalationID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("escalation not found")
		}
		uc.logger.Errorw("failed to load escalation", "escalation_id", cmd.EscalationID, "error", err)
		return nil, errors.NewInternalError("failed to load escalation")
	}

	if err := event.Acknowledge(cmd.ActingUserID, cmd.Notes, uc.nowFn()); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}

	if err := uc.escalationRepo.Update(ctx, event); err != nil {
		uc.logger.Errorw("failed to persist acknowledgement", "escalation_id", event.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update escalation")
	}

	uc.logger.Infow("escalation acknowledged",
		"escalation_id", event.ID(),
		"acknowledged_by", cmd.ActingUserID)

	return &AcknowledgeEscalationResult{
		EscalationID:   event.ID(),
		AssignmentID:   event.AssignmentID(),
		AcknowledgedAt: event.AcknowledgedAt().Format(time.RFC3339),
		AcknowledgedBy: cmd.ActingUserID,
	}, nil
}

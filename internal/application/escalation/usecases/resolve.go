package usecases

import (
	"context"
	"strings"
	"time"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/shared/errors"
	"caseflow/internal/shared/logger"
)

type ResolveEscalationCommand struct {
	EscalationID uint
	ActingUserID uint
	Resolution   string
}

type ResolveEscalationResult struct {
	EscalationID uint   `json:"escalation_id"`
	AssignmentID uint   `json:"assignment_id"`
	ResolvedAt   string `json:"resolved_at"`
	ResolvedBy   uint   `json:"resolved_by"`
}

type ResolveEscalationExecutor interface {
	Execute(ctx context.Context, cmd ResolveEscalationCommand) (*ResolveEscalationResult, error)
}

// ResolveEscalationUseCase closes out an escalation with a resolution note.
// Resolving twice is a conflict.
type ResolveEscalationUseCase struct {
	escalationRepo assignment.EscalationRepository
	logger         logger.Interface
	nowFn          func() time.Time
}

func NewResolveEscalationUseCase(
	escalationRepo assignment.EscalationRepository,
	logger logger.Interface,
) *ResolveEscalationUseCase {
	return &ResolveEscalationUseCase{
		escalationRepo: escalationRepo,
		logger:         logger,
		nowFn:          time.Now,
	}
}

// WithNow overrides the clock, for deterministic tests.
func (uc *ResolveEscalationUseCase) WithNow(nowFn func() time.Time) *ResolveEscalationUseCase {
	uc.nowFn = nowFn
	return uc
}

func (uc *ResolveEscalationUseCase) Execute(ctx context.Context, cmd ResolveEscalationCommand) (*ResolveEscalationResult, error) {
	if cmd.EscalationID == 0 {
		return nil, errors.NewValidationError("escalation ID is required")
	}
	if cmd.ActingUserID == 0 {
		return nil, errors.NewValidationError("acting user ID is required")
	}
	if strings.TrimSpace(cmd.Resolution) == "" {
		return nil, errors.NewValidationError("resolution is required")
	}

	event, err := uc.escalationRepo.GetByID(ctx, cmd.EscalationID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, errors.NewNotFoundError("escalation not found")
		}
		uc.logger.Errorw("failed to load escalation", "escalation_id", cmd.EscalationID, "error", err)
		return nil, errors.NewInternalError("failed to load escalation")
	}

	if err := event.Resolve(cmd.ActingUserID, cmd.Resolution, uc.nowFn()); err != nil {
		return nil, errors.NewConflictError(err.Error())
	}

	if err := uc.escalationRepo.Update(ctx, event); err != nil {
		uc.logger.Errorw("failed to persist resolution", "escalation_id", event.ID(), "error", err)
		return nil, errors.NewInternalError("failed to update escalation")
	}

	uc.logger.Infow("escalation resolved",
		"escalation_id", event.ID(),
		"resolved_by", cmd.ActingUserID)

	return &ResolveEscalationResult{
		EscalationID: event.ID(),
		AssignmentID: event.AssignmentID(),
		ResolvedAt:   event.ResolvedAt().Format(time.RFC3339),
		ResolvedBy:   cmd.ActingUserID,
	}, nil
}

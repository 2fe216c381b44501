package mappers

import (
	"caseflow/internal/domain/assignment"
	"caseflow/internal/infrastructure/persistence/models"
)

// EscalationMapper handles the conversion between EscalationEvent domain
// entities and persistence models.
type EscalationMapper interface {
	ToModel(e *assignment.EscalationEvent) *models.EscalationEventModel
	ToDomain(model *models.EscalationEventModel) (*assignment.EscalationEvent, error)
}

type EscalationMapperImpl struct{}

func NewEscalationMapper() EscalationMapper {
	return &EscalationMapperImpl{}
}

func (m *EscalationMapperImpl) ToModel(e *assignment.EscalationEvent) *models.EscalationEventModel {
	return &models.EscalationEventModel{
		ID:             e.ID(),
		AssignmentID:   e.AssignmentID(),
		Reason:         e.Reason(),
		EscalatedTo:    e.EscalatedTo(),
		CreatedAt:      e.CreatedAt().UnixMilli(),
		AcknowledgedAt: timePtrToMillis(e.AcknowledgedAt()),
		AcknowledgedBy: e.AcknowledgedBy(),
		AckNotes:       e.AckNotes(),
		ResolvedAt:     timePtrToMillis(e.ResolvedAt()),
		ResolvedBy:     e.ResolvedBy(),
		Resolution:     e.Resolution(),
	}
}

func (m *EscalationMapperImpl) ToDomain(model *models.EscalationEventModel) (*assignment.EscalationEvent, error) {
	return assignment.ReconstructEscalationEvent(
		model.ID,
		model.AssignmentID,
		model.Reason,
		model.EscalatedTo,
		millisToTime(model.CreatedAt),
		millisPtrToTime(model.AcknowledgedAt),
		model.AcknowledgedBy,
		model.AckNotes,
		millisPtrToTime(model.ResolvedAt),
		model.ResolvedBy,
		model.Resolution,
	)
}

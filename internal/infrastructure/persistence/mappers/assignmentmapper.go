package mappers

import (
	"fmt"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/infrastructure/persistence/models"
)

// AssignmentMapper handles the conversion between Assignment domain entities
// and persistence models.
type AssignmentMapper interface {
	ToModel(a *assignment.Assignment) *models.AssignmentModel
	ToDomain(model *models.AssignmentModel) (*assignment.Assignment, error)
}

type AssignmentMapperImpl struct{}

func NewAssignmentMapper() AssignmentMapper {
	return &AssignmentMapperImpl{}
}

func (m *AssignmentMapperImpl) ToModel(a *assignment.Assignment) *models.AssignmentModel {
	return &models.AssignmentModel{
		ID:             a.ID(),
		WorkItemID:     a.WorkItemID(),
		WorkItemType:   a.WorkItemType().String(),
		AssigneeID:     a.AssigneeID(),
		UnitID:         a.UnitID(),
		Priority:       a.Priority().String(),
		Status:         a.Status().String(),
		AssignedBy:     a.AssignedBy(),
		OverrideReason: a.OverrideReason(),
		AssignedAt:     a.AssignedAt().UnixMilli(),
		SLADeadline:    a.SLADeadline().UnixMilli(),
		WarningSent:    a.WarningSent(),
		Escalated:      a.Escalated(),
		EscalatedAt:    timePtrToMillis(a.EscalatedAt()),
		EscalatedTo:    a.EscalatedTo(),
		CompletedAt:    timePtrToMillis(a.CompletedAt()),
		CreatedAt:      a.CreatedAt().UnixMilli(),
		UpdatedAt:      a.UpdatedAt().UnixMilli(),
	}
}

func (m *AssignmentMapperImpl) ToDomain(model *models.AssignmentModel) (*assignment.Assignment, error) {
	workItemType, err := vo.NewWorkItemType(model.WorkItemType)
	if err != nil {
		return nil, fmt.Errorf("invalid work item type (assignment_id=%d): %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority (assignment_id=%d): %w", model.ID, err)
	}
	status, err := vo.NewAssignmentStatus(model.Status)
	if err != nil {
		return nil, fmt.Errorf("invalid status (assignment_id=%d): %w", model.ID, err)
	}

	return assignment.ReconstructAssignment(
		model.ID,
		model.WorkItemID,
		workItemType,
		model.AssigneeID,
		model.UnitID,
		priority,
		status,
		model.AssignedBy,
		model.OverrideReason,
		millisToTime(model.AssignedAt),
		millisToTime(model.SLADeadline),
		model.WarningSent,
		model.Escalated,
		millisPtrToTime(model.EscalatedAt),
		model.EscalatedTo,
		millisPtrToTime(model.CompletedAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

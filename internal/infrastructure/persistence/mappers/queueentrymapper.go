package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/infrastructure/persistence/models"
)

// QueueEntryMapper handles the conversion between QueueEntry domain entities
// and persistence models. The denormalized priority weight column exists so
// the database can sort in drain order without a CASE expression on every
// query.
type QueueEntryMapper interface {
	ToModel(e *assignment.QueueEntry) *models.QueueEntryModel
	ToDomain(model *models.QueueEntryModel) (*assignment.QueueEntry, error)
}

type QueueEntryMapperImpl struct{}

func NewQueueEntryMapper() QueueEntryMapper {
	return &QueueEntryMapperImpl{}
}

func (m *QueueEntryMapperImpl) ToModel(e *assignment.QueueEntry) *models.QueueEntryModel {
	model := &models.QueueEntryModel{
		ID:             e.ID(),
		WorkItemID:     e.WorkItemID(),
		WorkItemType:   e.WorkItemType().String(),
		TargetUnitID:   e.TargetUnitID(),
		Priority:       e.Priority().String(),
		PriorityWeight: e.Priority().Weight(),
		Attempts:       e.Attempts(),
		LastAttemptAt:  timePtrToMillis(e.LastAttemptAt()),
		Notes:          e.Notes(),
		AgingBucket:    e.AgingBucket().String(),
		CreatedAt:      e.CreatedAt().UnixMilli(),
	}

	if skills := e.RequiredSkills(); len(skills) > 0 {
		skillsJSON, _ := json.Marshal(skills)
		model.RequiredSkills = datatypes.JSON(skillsJSON)
	}

	return model
}

func (m *QueueEntryMapperImpl) ToDomain(model *models.QueueEntryModel) (*assignment.QueueEntry, error) {
	workItemType, err := vo.NewWorkItemType(model.WorkItemType)
	if err != nil {
		return nil, fmt.Errorf("invalid work item type (queue_id=%d): %w", model.ID, err)
	}
	priority, err := vo.NewPriority(model.Priority)
	if err != nil {
		return nil, fmt.Errorf("invalid priority (queue_id=%d): %w", model.ID, err)
	}

	var skills []string
	if len(model.RequiredSkills) > 0 {
		if err := json.Unmarshal(model.RequiredSkills, &skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal required skills (queue_id=%d): %w", model.ID, err)
		}
	}

	return assignment.ReconstructQueueEntry(
		model.ID,
		model.WorkItemID,
		workItemType,
		skills,
		model.TargetUnitID,
		priority,
		model.Attempts,
		millisPtrToTime(model.LastAttemptAt),
		model.Notes,
		vo.AgingBucket(model.AgingBucket),
		millisToTime(model.CreatedAt),
	)
}

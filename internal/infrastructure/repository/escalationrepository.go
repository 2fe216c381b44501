package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/infrastructure/persistence/mappers"
	"caseflow/internal/infrastructure/persistence/models"
	"caseflow/internal/shared/constants"
	"caseflow/internal/shared/db"
	"caseflow/internal/shared/errors"
)

// EscalationRepository stores breach events and serves the report
// aggregations. Unit, assignee, and work item type live on the assignment
// row, so every aggregation joins assignments rather than denormalizing
// them onto the immutable event.
type EscalationRepository struct {
	db     *gorm.DB
	mapper mappers.EscalationMapper
}

func NewEscalationRepository(database *gorm.DB) *EscalationRepository {
	return &EscalationRepository{
		db:     database,
		mapper: mappers.NewEscalationMapper(),
	}
}

func (r *EscalationRepository) Save(ctx context.Context, e *assignment.EscalationEvent) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save escalation event: %w", err)
	}

	return e.SetID(model.ID)
}

func (r *EscalationRepository) Update(ctx context.Context, e *assignment.EscalationEvent) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.EscalationEventModel{}).
		Where("id = ?", model.ID).
		Select("acknowledged_at", "acknowledged_by", "ack_notes",
			"resolved_at", "resolved_by", "resolution").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update escalation event: %w", result.Error)
	}
	return nil
}

func (r *EscalationRepository) GetByID(ctx context.Context, id uint) (*assignment.EscalationEvent, error) {
	var model models.EscalationEventModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("escalation event not found")
		}
		return nil, fmt.Errorf("failed to find escalation event: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *EscalationRepository) CountInRange(ctx context.Context, filter assignment.EscalationFilter) (int64, error) {
	var total int64
	err := r.filteredQuery(ctx, filter).
		Count(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count escalations: %w", err)
	}
	return total, nil
}

func (r *EscalationRepository) CountByDay(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
	var rows []struct {
		Day   string
		Count int64
	}
	err := r.filteredQuery(ctx, filter).
		Select("DATE(FROM_UNIXTIME(e.created_at / 1000)) AS day, COUNT(*) AS count").
		Group("day").
		Order("day ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate escalations by day: %w", err)
	}

	counts := make([]assignment.EscalationCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, assignment.EscalationCount{Key: row.Day, Count: row.Count})
	}
	return counts, nil
}

func (r *EscalationRepository) CountByUnit(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
	var rows []struct {
		UnitID uint
		Count  int64
	}
	err := r.filteredQuery(ctx, filter).
		Select("a.unit_id AS unit_id, COUNT(*) AS count").
		Group("a.unit_id").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate escalations by unit: %w", err)
	}

	counts := make([]assignment.EscalationCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, assignment.EscalationCount{
			Key:   fmt.Sprintf("unit:%d", row.UnitID),
			ID:    row.UnitID,
			Count: row.Count,
		})
	}
	return counts, nil
}

func (r *EscalationRepository) CountByAssignee(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
	var rows []struct {
		AssigneeID uint
		Count      int64
	}
	err := r.filteredQuery(ctx, filter).
		Select("a.assignee_id AS assignee_id, COUNT(*) AS count").
		Group("a.assignee_id").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate escalations by assignee: %w", err)
	}

	counts := make([]assignment.EscalationCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, assignment.EscalationCount{
			Key:   fmt.Sprintf("assignee:%d", row.AssigneeID),
			ID:    row.AssigneeID,
			Count: row.Count,
		})
	}
	return counts, nil
}

func (r *EscalationRepository) CountByWorkItemType(ctx context.Context, filter assignment.EscalationFilter) ([]assignment.EscalationCount, error) {
	var rows []struct {
		WorkItemType string
		Count        int64
	}
	err := r.filteredQuery(ctx, filter).
		Select("a.work_item_type AS work_item_type, COUNT(*) AS count").
		Group("a.work_item_type").
		Order("count DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate escalations by work item type: %w", err)
	}

	counts := make([]assignment.EscalationCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, assignment.EscalationCount{Key: row.WorkItemType, Count: row.Count})
	}
	return counts, nil
}

func (r *EscalationRepository) filteredQuery(ctx context.Context, filter assignment.EscalationFilter) *gorm.DB {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.
		Table(constants.TableEscalationEvents+" AS e").
		Joins(fmt.Sprintf("JOIN %s AS a ON a.id = e.assignment_id", constants.TableAssignments)).
		Where("e.created_at >= ? AND e.created_at < ?",
			filter.Start.UnixMilli(), filter.End.UnixMilli())

	if filter.UnitID != nil {
		query = query.Where("a.unit_id = ?", *filter.UnitID)
	}
	if filter.AssigneeID != nil {
		query = query.Where("a.assignee_id = ?", *filter.AssigneeID)
	}
	if filter.WorkItemType != nil {
		query = query.Where("a.work_item_type = ?", filter.WorkItemType.String())
	}

	return query
}

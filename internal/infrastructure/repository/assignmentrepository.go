package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caseflow/internal/domain/assignment"
	vo "caseflow/internal/domain/assignment/value_objects"
	"caseflow/internal/infrastructure/persistence/mappers"
	"caseflow/internal/infrastructure/persistence/models"
	"caseflow/internal/shared/db"
	"caseflow/internal/shared/errors"
)

// activeStatuses are the statuses that occupy a WIP slot.
var activeStatuses = []string{
	vo.StatusPending.String(),
	vo.StatusAssigned.String(),
	vo.StatusInProgress.String(),
}

type AssignmentRepository struct {
	db     *gorm.DB
	mapper mappers.AssignmentMapper
}

func NewAssignmentRepository(database *gorm.DB) *AssignmentRepository {
	return &AssignmentRepository{
		db:     database,
		mapper: mappers.NewAssignmentMapper(),
	}
}

func (r *AssignmentRepository) Save(ctx context.Context, a *assignment.Assignment) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *AssignmentRepository) Update(ctx context.Context, a *assignment.Assignment) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.AssignmentModel{}).
		Where("id = ?", model.ID).
		Select("work_item_id", "work_item_type", "assignee_id", "unit_id", "priority",
			"status", "assigned_by", "override_reason", "assigned_at", "sla_deadline",
			"warning_sent", "escalated", "escalated_at", "escalated_to", "completed_at").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update assignment: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *AssignmentRepository) GetByID(ctx context.Context, id uint) (*assignment.Assignment, error) {
	var model models.AssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("assignment not found")
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AssignmentRepository) GetActiveByWorkItem(ctx context.Context, workItemID string) (*assignment.Assignment, error) {
	var model models.AssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("work_item_id = ? AND status IN ?", workItemID, activeStatuses).
		First(&model).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("no active assignment for work item")
		}
		return nil, fmt.Errorf("failed to find active assignment: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *AssignmentRepository) HasActiveForWorkItem(ctx context.Context, workItemID string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.
		Model(&models.AssignmentModel{}).
		Where("work_item_id = ? AND status IN ?", workItemID, activeStatuses).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count active assignments: %w", err)
	}
	return count > 0, nil
}

func (r *AssignmentRepository) List(ctx context.Context, filter assignment.Filter) ([]*assignment.Assignment, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.AssignmentModel{})

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.WorkItemType != nil {
		query = query.Where("work_item_type = ?", filter.WorkItemType.String())
	}
	if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.UnitID != nil {
		query = query.Where("unit_id = ?", *filter.UnitID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count assignments: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var modelList []models.AssignmentModel
	if err := query.Order("sla_deadline ASC, id ASC").Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list assignments: %w", err)
	}

	return r.toDomainList(modelList, total)
}

func (r *AssignmentRepository) ListOpen(ctx context.Context) ([]*assignment.Assignment, error) {
	var modelList []models.AssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("status IN ?", activeStatuses).
		Order("sla_deadline ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list open assignments: %w", err)
	}

	result, _, err := r.toDomainList(modelList, 0)
	return result, err
}

func (r *AssignmentRepository) ListOpenByAssignee(ctx context.Context, assigneeID uint) ([]*assignment.Assignment, error) {
	var modelList []models.AssignmentModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("assignee_id = ? AND status IN ?", assigneeID, activeStatuses).
		Order("sla_deadline ASC").
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list assignee's open assignments: %w", err)
	}

	result, _, err := r.toDomainList(modelList, 0)
	return result, err
}

func (r *AssignmentRepository) toDomainList(modelList []models.AssignmentModel, total int64) ([]*assignment.Assignment, int64, error) {
	assignments := make([]*assignment.Assignment, 0, len(modelList))
	for i := range modelList {
		a, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, 0, err
		}
		assignments = append(assignments, a)
	}
	return assignments, total, nil
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caseflow/internal/domain/assignment"
	"caseflow/internal/infrastructure/persistence/mappers"
	"caseflow/internal/infrastructure/persistence/models"
	"caseflow/internal/shared/db"
	"caseflow/internal/shared/errors"
)

// Drain order: priority weight first, then FIFO within a tier, then id as
// the stable tie-break. drainOrder, aheadPredicate, and drainLess are three
// renderings of the same comparison; GetPosition counts with aheadPredicate
// while listings sort with drainOrder, so the rank a client sees always
// matches the order entries drain in.
const drainOrder = "priority_weight DESC, created_at ASC, id ASC"

// aheadPredicate matches rows sorting strictly ahead of the target key.
const aheadPredicate = `priority_weight > ?
	OR (priority_weight = ? AND created_at < ?)
	OR (priority_weight = ? AND created_at = ? AND id < ?)`

// drainKey is the sort key of one queue row.
type drainKey struct {
	PriorityWeight int
	CreatedAt      int64
	ID             uint
}

// drainLess reports whether a sorts strictly ahead of b in drain order.
func drainLess(a, b drainKey) bool {
	if a.PriorityWeight != b.PriorityWeight {
		return a.PriorityWeight > b.PriorityWeight
	}
	if a.CreatedAt != b.CreatedAt {
		return a.CreatedAt < b.CreatedAt
	}
	return a.ID < b.ID
}

func aheadArgs(k drainKey) []interface{} {
	return []interface{}{
		k.PriorityWeight,
		k.PriorityWeight, k.CreatedAt,
		k.PriorityWeight, k.CreatedAt, k.ID,
	}
}

type QueueRepository struct {
	db     *gorm.DB
	mapper mappers.QueueEntryMapper
}

func NewQueueRepository(database *gorm.DB) *QueueRepository {
	return &QueueRepository{
		db:     database,
		mapper: mappers.NewQueueEntryMapper(),
	}
}

func (r *QueueRepository) Save(ctx context.Context, e *assignment.QueueEntry) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save queue entry: %w", err)
	}

	return e.SetID(model.ID)
}

func (r *QueueRepository) Update(ctx context.Context, e *assignment.QueueEntry) error {
	model := r.mapper.ToModel(e)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.QueueEntryModel{}).
		Where("id = ?", model.ID).
		Select("attempts", "last_attempt_at", "notes", "aging_bucket").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update queue entry: %w", result.Error)
	}
	return nil
}

func (r *QueueRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.QueueEntryModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete queue entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("queue entry not found")
	}
	return nil
}

func (r *QueueRepository) DeleteByWorkItem(ctx context.Context, workItemID string) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("work_item_id = ?", workItemID).
		Delete(&models.QueueEntryModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete queue entry: %w", err)
	}
	return nil
}

func (r *QueueRepository) GetByID(ctx context.Context, id uint) (*assignment.QueueEntry, error) {
	var model models.QueueEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("queue entry not found")
		}
		return nil, fmt.Errorf("failed to find queue entry: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *QueueRepository) HasEntryForWorkItem(ctx context.Context, workItemID string) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var count int64
	err := tx.
		Model(&models.QueueEntryModel{}).
		Where("work_item_id = ?", workItemID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to count queue entries: %w", err)
	}
	return count > 0, nil
}

// GetPosition returns the 1-indexed drain rank for a work item: one plus the
// number of entries that sort strictly ahead of it under drainOrder.
func (r *QueueRepository) GetPosition(ctx context.Context, workItemID string) (*int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var model models.QueueEntryModel
	if err := tx.Where("work_item_id = ?", workItemID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find queue entry: %w", err)
	}

	key := drainKey{PriorityWeight: model.PriorityWeight, CreatedAt: model.CreatedAt, ID: model.ID}
	var ahead int64
	err := tx.
		Model(&models.QueueEntryModel{}).
		Where(aheadPredicate, aheadArgs(key)...).
		Count(&ahead).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute queue position: %w", err)
	}

	position := int(ahead) + 1
	return &position, nil
}

func (r *QueueRepository) List(ctx context.Context, filter assignment.QueueFilter) ([]*assignment.QueueEntry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.QueueEntryModel{})

	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}
	if filter.WorkItemType != nil {
		query = query.Where("work_item_type = ?", filter.WorkItemType.String())
	}
	if filter.UnitID != nil {
		query = query.Where("target_unit_id = ?", *filter.UnitID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count queue entries: %w", err)
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	var modelList []models.QueueEntryModel
	if err := query.Order(drainOrder).Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list queue entries: %w", err)
	}

	entries, err := r.toDomainList(modelList)
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// ListMatching returns up to limit entries a capacity-freed signal can
// drain, in drain order. The unit filter happens in SQL; the skill
// intersection reuses the domain predicate so SQL and drainer logic can
// never disagree.
func (r *QueueRepository) ListMatching(ctx context.Context, unitID uint, freedSkills []string, limit int) ([]*assignment.QueueEntry, error) {
	var modelList []models.QueueEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	err := tx.
		Where("target_unit_id IS NULL OR target_unit_id = ?", unitID).
		Order(drainOrder).
		Find(&modelList).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list matching queue entries: %w", err)
	}

	matched := make([]*assignment.QueueEntry, 0, limit)
	for i := range modelList {
		entry, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		if !entry.MatchesSignal(unitID, freedSkills) {
			continue
		}
		matched = append(matched, entry)
		if len(matched) == limit {
			break
		}
	}
	return matched, nil
}

func (r *QueueRepository) ListAll(ctx context.Context) ([]*assignment.QueueEntry, error) {
	var modelList []models.QueueEntryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order(drainOrder).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list queue entries: %w", err)
	}

	return r.toDomainList(modelList)
}

func (r *QueueRepository) toDomainList(modelList []models.QueueEntryModel) ([]*assignment.QueueEntry, error) {
	entries := make([]*assignment.QueueEntry, 0, len(modelList))
	for i := range modelList {
		e, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

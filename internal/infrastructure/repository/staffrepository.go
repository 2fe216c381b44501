package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caseflow/internal/domain/staff"
	vo "caseflow/internal/domain/staff/value_objects"
	"caseflow/internal/infrastructure/persistence/mappers"
	"caseflow/internal/infrastructure/persistence/models"
	"caseflow/internal/shared/db"
	"caseflow/internal/shared/errors"
)

type StaffRepository struct {
	db     *gorm.DB
	mapper mappers.StaffMapper
}

func NewStaffRepository(database *gorm.DB) *StaffRepository {
	return &StaffRepository{
		db:     database,
		mapper: mappers.NewStaffMapper(),
	}
}

func (r *StaffRepository) GetByID(ctx context.Context, staffID uint) (*staff.Profile, error) {
	var model models.StaffProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, staffID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("staff profile not found")
		}
		return nil, fmt.Errorf("failed to find staff profile: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *StaffRepository) GetByIDs(ctx context.Context, staffIDs []uint) ([]*staff.Profile, error) {
	if len(staffIDs) == 0 {
		return []*staff.Profile{}, nil
	}

	var modelList []models.StaffProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("id IN ?", staffIDs).Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to find staff profiles: %w", err)
	}

	profiles := make([]*staff.Profile, 0, len(modelList))
	for i := range modelList {
		p, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *StaffRepository) ListByUnit(ctx context.Context, unitID uint) ([]*staff.Profile, error) {
	var modelList []models.StaffProfileModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("unit_id = ?", unitID).Order("id ASC").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to list unit staff: %w", err)
	}

	profiles := make([]*staff.Profile, 0, len(modelList))
	for i := range modelList {
		p, err := r.mapper.ToDomain(&modelList[i])
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

func (r *StaffRepository) ListIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.StaffProfileModel{}).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff ids: %w", err)
	}
	return ids, nil
}

func (r *StaffRepository) Save(ctx context.Context, profile *staff.Profile) error {
	model := r.mapper.ToModel(profile)
	tx := db.GetTxFromContext(ctx, r.db)

	if model.ID == 0 {
		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to save staff profile: %w", err)
		}
		return profile.SetID(model.ID)
	}

	result := tx.
		Model(&models.StaffProfileModel{}).
		Where("id = ?", model.ID).
		Select("unit_id", "individual_wip_limit", "availability", "skills").
		Updates(model)
	if result.Error != nil {
		return fmt.Errorf("failed to update staff profile: %w", result.Error)
	}
	return nil
}

// TryAcquireSlot claims one WIP slot with a single guarded UPDATE. The
// count < limit and availability checks live inside the WHERE clause, so
// concurrent acquirers can never push the counter past the limit.
func (r *StaffRepository) TryAcquireSlot(ctx context.Context, staffID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.StaffProfileModel{}).
		Where("id = ? AND current_assignment_count < individual_wip_limit AND availability = ?",
			staffID, vo.AvailabilityAvailable.String()).
		UpdateColumn("current_assignment_count", gorm.Expr("current_assignment_count + 1"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to acquire slot: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

// AcquireSlotUnchecked increments the counter without the limit guard. The
// manual override path is its only caller; the counter may legitimately
// exceed the individual limit afterwards.
func (r *StaffRepository) AcquireSlotUnchecked(ctx context.Context, staffID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.StaffProfileModel{}).
		Where("id = ?", staffID).
		UpdateColumn("current_assignment_count", gorm.Expr("current_assignment_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to acquire slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("staff profile not found")
	}
	return nil
}

// ReleaseSlot gives one slot back, guarded against decrementing below zero.
func (r *StaffRepository) ReleaseSlot(ctx context.Context, staffID uint) (bool, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.StaffProfileModel{}).
		Where("id = ? AND current_assignment_count > 0", staffID).
		UpdateColumn("current_assignment_count", gorm.Expr("current_assignment_count - 1"))
	if result.Error != nil {
		return false, fmt.Errorf("failed to release slot: %w", result.Error)
	}

	return result.RowsAffected > 0, nil
}

func (r *StaffRepository) UnitAssignmentCount(ctx context.Context, unitID uint) (int, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var total int64
	err := tx.
		Model(&models.StaffProfileModel{}).
		Where("unit_id = ?", unitID).
		Select("COALESCE(SUM(current_assignment_count), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, fmt.Errorf("failed to sum unit assignment count: %w", err)
	}

	return int(total), nil
}

func (r *StaffRepository) UnitAvailability(ctx context.Context, unitID uint) (staff.UnitAvailabilityBreakdown, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []struct {
		Availability string
		Count        int
	}
	err := tx.
		Model(&models.StaffProfileModel{}).
		Where("unit_id = ?", unitID).
		Select("availability, COUNT(*) AS count").
		Group("availability").
		Scan(&rows).Error
	if err != nil {
		return staff.UnitAvailabilityBreakdown{}, fmt.Errorf("failed to count unit availability: %w", err)
	}

	var breakdown staff.UnitAvailabilityBreakdown
	for _, row := range rows {
		switch vo.Availability(row.Availability) {
		case vo.AvailabilityAvailable:
			breakdown.Available = row.Count
		case vo.AvailabilityOnLeave:
			breakdown.OnLeave = row.Count
		case vo.AvailabilityUnavailable:
			breakdown.Unavailable = row.Count
		}
	}
	return breakdown, nil
}

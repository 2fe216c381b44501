package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"caseflow/internal/domain/staff"
	"caseflow/internal/infrastructure/persistence/mappers"
	"caseflow/internal/infrastructure/persistence/models"
	"caseflow/internal/shared/db"
	"caseflow/internal/shared/errors"
)

type UnitRepository struct {
	db     *gorm.DB
	mapper mappers.StaffMapper
}

func NewUnitRepository(database *gorm.DB) *UnitRepository {
	return &UnitRepository{
		db:     database,
		mapper: mappers.NewStaffMapper(),
	}
}

func (r *UnitRepository) GetByID(ctx context.Context, unitID uint) (*staff.Unit, error) {
	var model models.OrganizationalUnitModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, unitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("organizational unit not found")
		}
		return nil, fmt.Errorf("failed to find unit: %w", err)
	}

	return r.mapper.UnitToDomain(&model)
}

func (r *UnitRepository) List(ctx context.Context) ([]*staff.Unit, error) {
	var unitModels []models.OrganizationalUnitModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Order("id ASC").Find(&unitModels).Error; err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}

	units := make([]*staff.Unit, 0, len(unitModels))
	for i := range unitModels {
		unit, err := r.mapper.UnitToDomain(&unitModels[i])
		if err != nil {
			return nil, err
		}
		units = append(units, unit)
	}
	return units, nil
}

func (r *UnitRepository) SupervisorOf(ctx context.Context, unitID uint) (uint, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var supervisorID uint
	err := tx.
		Model(&models.OrganizationalUnitModel{}).
		Where("id = ?", unitID).
		Select("supervisor_id").
		Scan(&supervisorID).Error
	if err != nil {
		return 0, fmt.Errorf("failed to resolve unit supervisor: %w", err)
	}
	if supervisorID == 0 {
		return 0, errors.NewNotFoundError("organizational unit not found")
	}
	return supervisorID, nil
}

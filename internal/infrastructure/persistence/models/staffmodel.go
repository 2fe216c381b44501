package models

import (
	"gorm.io/datatypes"

	"caseflow/internal/shared/constants"
)

type StaffProfileModel struct {
	ID                     uint           `gorm:"primaryKey"`
	UnitID                 uint           `gorm:"not null;index"`
	IndividualWIPLimit     int            `gorm:"not null"`
	CurrentAssignmentCount int            `gorm:"not null;default:0"`
	Availability           string         `gorm:"size:20;not null;index"`
	Skills                 datatypes.JSON `gorm:"type:json"`
	CreatedAt              int64          `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt              int64          `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (StaffProfileModel) TableName() string {
	return constants.TableStaffProfiles
}

type OrganizationalUnitModel struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:100;not null"`
	WIPLimit     int    `gorm:"not null"`
	SupervisorID uint   `gorm:"not null;index"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt    int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (OrganizationalUnitModel) TableName() string {
	return constants.TableOrganizationalUnits
}

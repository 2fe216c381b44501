package models

import (
	"caseflow/internal/shared/constants"
)

type AssignmentModel struct {
	ID             uint   `gorm:"primaryKey"`
	WorkItemID     string `gorm:"size:64;not null;uniqueIndex:uk_assignments_work_item_active,priority:1"`
	WorkItemType   string `gorm:"size:20;not null;index"`
	AssigneeID     uint   `gorm:"not null;index"`
	UnitID         uint   `gorm:"not null;index"`
	Priority       string `gorm:"size:20;not null;index"`
	Status         string `gorm:"size:20;not null;index"`
	AssignedBy     *uint
	OverrideReason string `gorm:"type:text"`
	AssignedAt     int64  `gorm:"not null"`
	SLADeadline    int64  `gorm:"not null;index"`
	WarningSent    bool   `gorm:"not null;default:false"`
	Escalated      bool   `gorm:"not null;default:false"`
	EscalatedAt    *int64
	EscalatedTo    *uint
	CompletedAt    *int64
	CreatedAt      int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt      int64 `gorm:"autoUpdateTime:milli;not null"`
	// Maintained by MySQL: 1 while the status occupies a slot, NULL once
	// terminal, so the unique key only constrains active rows.
	Active *bool `gorm:"->;type:TINYINT(1) GENERATED ALWAYS AS (CASE WHEN status IN ('completed', 'cancelled') THEN NULL ELSE 1 END) STORED;uniqueIndex:uk_assignments_work_item_active,priority:2"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (AssignmentModel) TableName() string {
	return constants.TableAssignments
}

package models

import (
	"gorm.io/datatypes"

	"caseflow/internal/shared/constants"
)

type QueueEntryModel struct {
	ID             uint           `gorm:"primaryKey"`
	WorkItemID     string         `gorm:"size:64;not null;uniqueIndex"`
	WorkItemType   string         `gorm:"size:20;not null;index"`
	RequiredSkills datatypes.JSON `gorm:"type:json"`
	TargetUnitID   *uint          `gorm:"index"`
	Priority       string         `gorm:"size:20;not null;index"`
	PriorityWeight int            `gorm:"not null;index"`
	Attempts       int            `gorm:"not null;default:0"`
	LastAttemptAt  *int64
	Notes          string `gorm:"type:text"`
	AgingBucket    string `gorm:"size:10;not null"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null;index"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (QueueEntryModel) TableName() string {
	return constants.TableAssignmentQueue
}

package models

import (
	"caseflow/internal/shared/constants"
)

type EscalationEventModel struct {
	ID             uint   `gorm:"primaryKey"`
	AssignmentID   uint   `gorm:"not null;index"`
	Reason         string `gorm:"type:text;not null"`
	EscalatedTo    uint   `gorm:"not null;index"`
	CreatedAt      int64  `gorm:"autoCreateTime:milli;not null;index"`
	AcknowledgedAt *int64
	AcknowledgedBy *uint
	AckNotes       string `gorm:"type:text"`
	ResolvedAt     *int64
	ResolvedBy     *uint
	Resolution     string `gorm:"type:text"`
	UpdatedAt      int64  `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (EscalationEventModel) TableName() string {
	return constants.TableEscalationEvents
}

package migration

import (
	"caseflow/internal/infrastructure/persistence/models"
)

func AutoMigrateModels() []interface{} {
	return []interface{}{
		&models.StaffProfileModel{},
		&models.OrganizationalUnitModel{},
		&models.AssignmentModel{},
		&models.QueueEntryModel{},
		&models.EscalationEventModel{},
	}
}

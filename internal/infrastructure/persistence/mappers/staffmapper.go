package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"caseflow/internal/domain/staff"
	vo "caseflow/internal/domain/staff/value_objects"
	"caseflow/internal/infrastructure/persistence/models"
)

// StaffMapper handles the conversion between staff domain entities and
// persistence models.
type StaffMapper interface {
	ToModel(p *staff.Profile) *models.StaffProfileModel
	ToDomain(model *models.StaffProfileModel) (*staff.Profile, error)
	UnitToDomain(model *models.OrganizationalUnitModel) (*staff.Unit, error)
}

type StaffMapperImpl struct{}

func NewStaffMapper() StaffMapper {
	return &StaffMapperImpl{}
}

func (m *StaffMapperImpl) ToModel(p *staff.Profile) *models.StaffProfileModel {
	model := &models.StaffProfileModel{
		ID:                     p.ID(),
		UnitID:                 p.UnitID(),
		IndividualWIPLimit:     p.IndividualWIPLimit(),
		CurrentAssignmentCount: p.CurrentAssignmentCount(),
		Availability:           p.Availability().String(),
		CreatedAt:              p.CreatedAt().UnixMilli(),
		UpdatedAt:              p.UpdatedAt().UnixMilli(),
	}

	if skills := p.Skills(); len(skills) > 0 {
		skillsJSON, _ := json.Marshal(skills)
		model.Skills = datatypes.JSON(skillsJSON)
	}

	return model
}

func (m *StaffMapperImpl) ToDomain(model *models.StaffProfileModel) (*staff.Profile, error) {
	availability, err := vo.NewAvailability(model.Availability)
	if err != nil {
		return nil, fmt.Errorf("invalid availability (staff_id=%d): %w", model.ID, err)
	}

	var skills []string
	if len(model.Skills) > 0 {
		if err := json.Unmarshal(model.Skills, &skills); err != nil {
			return nil, fmt.Errorf("failed to unmarshal staff skills (staff_id=%d): %w", model.ID, err)
		}
	}

	return staff.ReconstructProfile(
		model.ID,
		model.UnitID,
		model.IndividualWIPLimit,
		model.CurrentAssignmentCount,
		availability,
		skills,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *StaffMapperImpl) UnitToDomain(model *models.OrganizationalUnitModel) (*staff.Unit, error) {
	return staff.ReconstructUnit(
		model.ID,
		model.Name,
		model.WIPLimit,
		model.SupervisorID,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

package staff

import (
	"fmt"
	"math"
	"time"

	vo "caseflow/internal/domain/staff/value_objects"
)

// Profile is a staff member's assignment-relevant state. The assignment
// counter is mutated only through the repository's atomic slot primitives;
// the entity exposes read helpers over a loaded snapshot.
type Profile struct {
	id                     uint
	unitID                 uint
	individualWIPLimit     int
	currentAssignmentCount int
	availability           vo.Availability
	skills                 []string
	createdAt              time.Time
	updatedAt              time.Time
}

func NewProfile(unitID uint, wipLimit int, availability vo.Availability, skills []string) (*Profile, error) {
	if unitID == 0 {
		return nil, fmt.Errorf("unit ID is required")
	}
	if wipLimit <= 0 {
		return nil, fmt.Errorf("individual WIP limit must be positive")
	}
	if !availability.IsValid() {
		return nil, fmt.Errorf("invalid availability status")
	}

	now := time.Now()
	return &Profile{
		unitID:             unitID,
		individualWIPLimit: wipLimit,
		availability:       availability,
		skills:             append([]string{}, skills...),
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

func ReconstructProfile(
	id uint,
	unitID uint,
	wipLimit int,
	currentCount int,
	availability vo.Availability,
	skills []string,
	createdAt, updatedAt time.Time,
) (*Profile, error) {
	if id == 0 {
		return nil, fmt.Errorf("staff ID cannot be zero")
	}
	if wipLimit <= 0 {
		return nil, fmt.Errorf("individual WIP limit must be positive")
	}
	if currentCount < 0 {
		return nil, fmt.Errorf("assignment count cannot be negative")
	}
	if !availability.IsValid() {
		return nil, fmt.Errorf("invalid availability status")
	}
	if skills == nil {
		skills = []string{}
	}

	return &Profile{
		id:                     id,
		unitID:                 unitID,
		individualWIPLimit:     wipLimit,
		currentAssignmentCount: currentCount,
		availability:           availability,
		skills:                 skills,
		createdAt:              createdAt,
		updatedAt:              updatedAt,
	}, nil
}

func (p *Profile) ID() uint {
	return p.id
}

func (p *Profile) UnitID() uint {
	return p.unitID
}

func (p *Profile) IndividualWIPLimit() int {
	return p.individualWIPLimit
}

func (p *Profile) CurrentAssignmentCount() int {
	return p.currentAssignmentCount
}

func (p *Profile) Availability() vo.Availability {
	return p.availability
}

func (p *Profile) Skills() []string {
	skillsCopy := make([]string, len(p.skills))
	copy(skillsCopy, p.skills)
	return skillsCopy
}

func (p *Profile) CreatedAt() time.Time {
	return p.createdAt
}

func (p *Profile) UpdatedAt() time.Time {
	return p.updatedAt
}

func (p *Profile) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("staff ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("staff ID cannot be zero")
	}
	p.id = id
	return nil
}

// AvailableSlots returns how many more items the member can hold, never negative.
func (p *Profile) AvailableSlots() int {
	slots := p.individualWIPLimit - p.currentAssignmentCount
	if slots < 0 {
		return 0
	}
	return slots
}

// HasCapacity reports whether the member can accept one more item: under
// their limit AND available. An over-limit counter (manual override) reads
// as no capacity.
func (p *Profile) HasCapacity() bool {
	return p.currentAssignmentCount < p.individualWIPLimit && p.availability.IsAvailable()
}

// AtOrOverLimit reports whether the counter has reached the individual limit.
func (p *Profile) AtOrOverLimit() bool {
	return p.currentAssignmentCount >= p.individualWIPLimit
}

// UtilizationPct returns the WIP utilization percentage rounded to 2 decimals.
func (p *Profile) UtilizationPct() float64 {
	if p.individualWIPLimit == 0 {
		return 0
	}
	pct := float64(p.currentAssignmentCount) / float64(p.individualWIPLimit) * 100
	return math.Round(pct*100) / 100
}

// HasSkills reports whether the member's skill set is a superset of required.
func (p *Profile) HasSkills(required []string) bool {
	if len(required) == 0 {
		return true
	}
	have := make(map[string]bool, len(p.skills))
	for _, s := range p.skills {
		have[s] = true
	}
	for _, r := range required {
		if !have[r] {
			return false
		}
	}
	return true
}

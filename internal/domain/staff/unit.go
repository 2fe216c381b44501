package staff

import (
	"fmt"
	"math"
	"time"
)

// Unit is an organizational grouping of staff with its own aggregate WIP
// ceiling, enforced in addition to individual limits.
type Unit struct {
	id           uint
	name         string
	unitWIPLimit int
	supervisorID uint
	createdAt    time.Time
	updatedAt    time.Time
}

func ReconstructUnit(id uint, name string, wipLimit int, supervisorID uint, createdAt, updatedAt time.Time) (*Unit, error) {
	if id == 0 {
		return nil, fmt.Errorf("unit ID cannot be zero")
	}
	if name == "" {
		return nil, fmt.Errorf("unit name is required")
	}
	if wipLimit <= 0 {
		return nil, fmt.Errorf("unit WIP limit must be positive")
	}

	return &Unit{
		id:           id,
		name:         name,
		unitWIPLimit: wipLimit,
		supervisorID: supervisorID,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}, nil
}

func (u *Unit) ID() uint {
	return u.id
}

func (u *Unit) Name() string {
	return u.name
}

func (u *Unit) WIPLimit() int {
	return u.unitWIPLimit
}

func (u *Unit) SupervisorID() uint {
	return u.supervisorID
}

func (u *Unit) CreatedAt() time.Time {
	return u.createdAt
}

func (u *Unit) UpdatedAt() time.Time {
	return u.updatedAt
}

// HasCapacity reports whether the aggregate count is under the unit ceiling.
// Individual availability does not factor into the unit-level check.
func (u *Unit) HasCapacity(aggregateCount int) bool {
	return aggregateCount < u.unitWIPLimit
}

// UtilizationPct returns aggregate utilization rounded to 2 decimals.
func (u *Unit) UtilizationPct(aggregateCount int) float64 {
	if u.unitWIPLimit == 0 {
		return 0
	}
	pct := float64(aggregateCount) / float64(u.unitWIPLimit) * 100
	return math.Round(pct*100) / 100
}

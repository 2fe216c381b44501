package services

import (
	"context"
	"sort"

	"caseflow/internal/domain/staff"
	"caseflow/internal/shared/logger"
)

// StaffCapacityStatus is the advisory capacity snapshot for one staff member.
type StaffCapacityStatus struct {
	StaffID        uint    `json:"staff_id"`
	CurrentCount   int     `json:"current_count"`
	Limit          int     `json:"limit"`
	UtilizationPct float64 `json:"utilization_pct"`
	HasCapacity    bool    `json:"has_capacity"`
	AvailableSlots int     `json:"available_slots"`
	Availability   string  `json:"availability"`
}

// UnitCapacityStatus aggregates capacity across a unit's staff.
type UnitCapacityStatus struct {
	UnitID         uint    `json:"unit_id"`
	TotalCount     int     `json:"total_count"`
	Limit          int     `json:"limit"`
	UtilizationPct float64 `json:"utilization_pct"`
	HasCapacity    bool    `json:"has_capacity"`
	Available      int     `json:"available"`
	OnLeave        int     `json:"on_leave"`
	Unavailable    int     `json:"unavailable"`
}

// Candidate pairs a staff profile with its free slot count for ranking.
type Candidate struct {
	Profile        *staff.Profile
	AvailableSlots int
}

// CapacityTracker answers "can this entity accept one more item?" from
// persisted counters. All methods are advisory reads; the state-changing
// increment is the repository's atomic slot primitive, invoked only by the
// assignment-creation path.
type CapacityTracker struct {
	staffRepo staff.Repository
	unitRepo  staff.UnitRepository
	logger    logger.Interface
}

func NewCapacityTracker(
	staffRepo staff.Repository,
	unitRepo staff.UnitRepository,
	log logger.Interface,
) *CapacityTracker {
	return &CapacityTracker{
		staffRepo: staffRepo,
		unitRepo:  unitRepo,
		logger:    log,
	}
}

// CheckStaffCapacity returns the capacity snapshot for one staff member.
func (t *CapacityTracker) CheckStaffCapacity(ctx context.Context, staffID uint) (*StaffCapacityStatus, error) {
	profile, err := t.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return nil, err
	}
	status := staffStatusFromProfile(profile)
	return &status, nil
}

// CheckUnitCapacity aggregates capacity across all staff in the unit. The
// unit-level check is independent of individual availability.
func (t *CapacityTracker) CheckUnitCapacity(ctx context.Context, unitID uint) (*UnitCapacityStatus, error) {
	unit, err := t.unitRepo.GetByID(ctx, unitID)
	if err != nil {
		return nil, err
	}

	total, err := t.staffRepo.UnitAssignmentCount(ctx, unitID)
	if err != nil {
		return nil, err
	}

	breakdown, err := t.staffRepo.UnitAvailability(ctx, unitID)
	if err != nil {
		return nil, err
	}

	return &UnitCapacityStatus{
		UnitID:         unitID,
		TotalCount:     total,
		Limit:          unit.WIPLimit(),
		UtilizationPct: unit.UtilizationPct(total),
		HasCapacity:    unit.HasCapacity(total),
		Available:      breakdown.Available,
		OnLeave:        breakdown.OnLeave,
		Unavailable:    breakdown.Unavailable,
	}, nil
}

// ListUnits returns every organizational unit ordered by id, for routing
// paths that must scan across units.
func (t *CapacityTracker) ListUnits(ctx context.Context) ([]*staff.Unit, error) {
	return t.unitRepo.List(ctx)
}

// CanAcceptAssignment is true iff both the individual and the unit-level
// checks report capacity. Short-circuits on the first failure.
func (t *CapacityTracker) CanAcceptAssignment(ctx context.Context, staffID uint) (bool, error) {
	profile, err := t.staffRepo.GetByID(ctx, staffID)
	if err != nil {
		return false, err
	}
	if !profile.HasCapacity() {
		return false, nil
	}

	unitStatus, err := t.CheckUnitCapacity(ctx, profile.UnitID())
	if err != nil {
		return false, err
	}
	return unitStatus.HasCapacity, nil
}

// FindAvailableStaffInUnit returns capacity-bearing candidates in the unit,
// optionally filtered to those whose skills cover requiredSkills, ordered by
// free slot count descending. Greedy load balancing, not a global optimum.
func (t *CapacityTracker) FindAvailableStaffInUnit(ctx context.Context, unitID uint, requiredSkills []string) ([]Candidate, error) {
	profiles, err := t.staffRepo.ListByUnit(ctx, unitID)
	if err != nil {
		return nil, err
	}

	candidates := make([]Candidate, 0, len(profiles))
	for _, p := range profiles {
		if !p.Availability().IsAvailable() {
			continue
		}
		if !p.HasSkills(requiredSkills) {
			continue
		}
		if !p.HasCapacity() {
			continue
		}
		candidates = append(candidates, Candidate{
			Profile:        p,
			AvailableSlots: p.AvailableSlots(),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].AvailableSlots != candidates[j].AvailableSlots {
			return candidates[i].AvailableSlots > candidates[j].AvailableSlots
		}
		return candidates[i].Profile.ID() < candidates[j].Profile.ID()
	})

	return candidates, nil
}

// CheckMultipleStaffCapacity returns capacity snapshots for a batch of staff
// in one round-trip, keyed by staff id. Unknown ids are simply absent.
func (t *CapacityTracker) CheckMultipleStaffCapacity(ctx context.Context, staffIDs []uint) (map[uint]StaffCapacityStatus, error) {
	if len(staffIDs) == 0 {
		return map[uint]StaffCapacityStatus{}, nil
	}

	profiles, err := t.staffRepo.GetByIDs(ctx, staffIDs)
	if err != nil {
		return nil, err
	}

	result := make(map[uint]StaffCapacityStatus, len(profiles))
	for _, p := range profiles {
		result[p.ID()] = staffStatusFromProfile(p)
	}
	return result, nil
}

func staffStatusFromProfile(p *staff.Profile) StaffCapacityStatus {
	return StaffCapacityStatus{
		StaffID:        p.ID(),
		CurrentCount:   p.CurrentAssignmentCount(),
		Limit:          p.IndividualWIPLimit(),
		UtilizationPct: p.UtilizationPct(),
		HasCapacity:    p.HasCapacity(),
		AvailableSlots: p.AvailableSlots(),
		Availability:   p.Availability().String(),
	}
}

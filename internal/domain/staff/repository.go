package staff

import (
	"context"
)

// UnitAvailabilityBreakdown counts unit members by availability status.
type UnitAvailabilityBreakdown struct {
	Available   int
	OnLeave     int
	Unavailable int
}

// Repository provides access to staff profiles. The slot primitives are the
// single choke point for mutating current_assignment_count: every mutation
// path (automatic assignment, manual override, completion, reassignment)
// must go through them.
type Repository interface {
	GetByID(ctx context.Context, staffID uint) (*Profile, error)
	GetByIDs(ctx context.Context, staffIDs []uint) ([]*Profile, error)
	ListByUnit(ctx context.Context, unitID uint) ([]*Profile, error)
	// ListIDs returns every staff id, for batch jobs that walk the whole
	// staff population.
	ListIDs(ctx context.Context) ([]uint, error)
	Save(ctx context.Context, profile *Profile) error

	// TryAcquireSlot atomically increments the assignment counter iff
	// current_assignment_count < individual_wip_limit AND availability is
	// available. Returns true when the slot was taken. This is a single
	// guarded UPDATE, never read-modify-write.
	TryAcquireSlot(ctx context.Context, staffID uint) (bool, error)

	// AcquireSlotUnchecked increments the counter without the limit guard.
	// Only the manual override path may call it; overrides may deliberately
	// exceed the individual limit.
	AcquireSlotUnchecked(ctx context.Context, staffID uint) error

	// ReleaseSlot atomically decrements the counter, guarded against going
	// negative. Returns true when a slot was actually released.
	ReleaseSlot(ctx context.Context, staffID uint) (bool, error)

	// UnitAssignmentCount returns the aggregate active-assignment count for
	// all staff in the unit.
	UnitAssignmentCount(ctx context.Context, unitID uint) (int, error)

	// UnitAvailability returns the availability breakdown for the unit.
	UnitAvailability(ctx context.Context, unitID uint) (UnitAvailabilityBreakdown, error)
}

// UnitRepository provides access to organizational units.
type UnitRepository interface {
	GetByID(ctx context.Context, unitID uint) (*Unit, error)
	// List returns every unit ordered by id. Routing without a target unit
	// walks this list looking for capacity.
	List(ctx context.Context) ([]*Unit, error)
	// SupervisorOf resolves the escalation recipient for a unit.
	SupervisorOf(ctx context.Context, unitID uint) (uint, error)
}

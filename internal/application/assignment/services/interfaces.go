package services

import (
	"context"
)

// Notifier delivers fire-and-forget notifications to a recipient. Delivery
// failures are the implementation's problem (logged, never returned), so
// business flows cannot be blocked by a notification outage.
type Notifier interface {
	Notify(ctx context.Context, recipientID uint, template string, payload map[string]any)
}

// CapacityFreedPublisher publishes a capacity-freed signal for a unit. The
// queue drainer subscribes to these; other subsystems (bulk availability
// changes) may publish them too.
type CapacityFreedPublisher interface {
	PublishCapacityFreed(ctx context.Context, unitID uint, freedSkills []string) error
}

// StaffViewCache invalidates cached per-staff dashboard views.
type StaffViewCache interface {
	InvalidateStaffView(ctx context.Context, staffID uint) error
}

// Transactor runs a function with all repository writes inside one database
// transaction. An error from the function rolls the writes back.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// DrainLease serializes queue draining per unit across worker instances.
// TryAcquire returns false when another instance holds the unit's lease.
type DrainLease interface {
	TryAcquire(ctx context.Context, unitID uint) (bool, error)
	Release(ctx context.Context, unitID uint)
}

// Notification template names.
const (
	TemplateSLAWarning     = "sla_warning"
	TemplateSLAEscalation  = "sla_escalation"
	TemplateManualOverride = "manual_override"
)

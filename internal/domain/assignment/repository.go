package assignment

import (
	"context"
	"time"

	vo "caseflow/internal/domain/assignment/value_objects"
)

// Filter narrows assignment queries.
type Filter struct {
	Status       *vo.AssignmentStatus
	Priority     *vo.Priority
	WorkItemType *vo.WorkItemType
	AssigneeID   *uint
	UnitID       *uint
	Page         int
	PageSize     int
}

// Repository provides access to assignments.
type Repository interface {
	Save(ctx context.Context, a *Assignment) error
	Update(ctx context.Context, a *Assignment) error
	GetByID(ctx context.Context, id uint) (*Assignment, error)
	// GetActiveByWorkItem returns the single active assignment for a work
	// item, or a not-found error when none exists.
	GetActiveByWorkItem(ctx context.Context, workItemID string) (*Assignment, error)
	// HasActiveForWorkItem reports whether any active assignment exists for
	// the work item.
	HasActiveForWorkItem(ctx context.Context, workItemID string) (bool, error)
	List(ctx context.Context, filter Filter) ([]*Assignment, int64, error)
	// ListOpen returns all active assignments (for the SLA sweep).
	ListOpen(ctx context.Context) ([]*Assignment, error)
	// ListOpenByAssignee returns a staff member's active assignments.
	ListOpenByAssignee(ctx context.Context, assigneeID uint) ([]*Assignment, error)
}

// QueueFilter narrows queue listings.
type QueueFilter struct {
	Priority     *vo.Priority
	WorkItemType *vo.WorkItemType
	UnitID       *uint
	Page         int
	PageSize     int
}

// QueueRepository provides access to the durable assignment queue. Listing
// order is priority weight descending then created_at ascending (FIFO within
// a tier), with id as the stable tie-break; GetPosition uses the identical
// comparison so positions always agree with list indexes.
type QueueRepository interface {
	Save(ctx context.Context, e *QueueEntry) error
	Update(ctx context.Context, e *QueueEntry) error
	Delete(ctx context.Context, id uint) error
	// DeleteByWorkItem removes the work item's queue entry if one exists.
	// Deleting a work item that is not queued is a no-op.
	DeleteByWorkItem(ctx context.Context, workItemID string) error
	GetByID(ctx context.Context, id uint) (*QueueEntry, error)
	// HasEntryForWorkItem reports whether the work item is already queued.
	HasEntryForWorkItem(ctx context.Context, workItemID string) (bool, error)
	// GetPosition returns the 1-indexed queue rank for a work item, or nil
	// when the work item is not queued.
	GetPosition(ctx context.Context, workItemID string) (*int, error)
	List(ctx context.Context, filter QueueFilter) ([]*QueueEntry, int64, error)
	// ListMatching returns up to limit entries matching a capacity-freed
	// signal, in drain order.
	ListMatching(ctx context.Context, unitID uint, freedSkills []string, limit int) ([]*QueueEntry, error)
	// ListAll returns every queued entry (for the aging refresh job).
	ListAll(ctx context.Context) ([]*QueueEntry, error)
}

// EscalationFilter narrows escalation report queries.
type EscalationFilter struct {
	Start        time.Time
	End          time.Time
	UnitID       *uint
	AssigneeID   *uint
	WorkItemType *vo.WorkItemType
}

// EscalationCount is one aggregation row of the escalation report.
type EscalationCount struct {
	Key   string
	ID    uint
	Count int64
}

// EscalationRepository stores breach events and serves report aggregations.
type EscalationRepository interface {
	Save(ctx context.Context, e *EscalationEvent) error
	Update(ctx context.Context, e *EscalationEvent) error
	GetByID(ctx context.Context, id uint) (*EscalationEvent, error)
	CountInRange(ctx context.Context, filter EscalationFilter) (int64, error)
	// CountByDay buckets escalations per business day for the time series.
	CountByDay(ctx context.Context, filter EscalationFilter) ([]EscalationCount, error)
	CountByUnit(ctx context.Context, filter EscalationFilter) ([]EscalationCount, error)
	CountByAssignee(ctx context.Context, filter EscalationFilter) ([]EscalationCount, error)
	CountByWorkItemType(ctx context.Context, filter EscalationFilter) ([]EscalationCount, error)
}

package assignment

import (
	"fmt"
	"time"

	vo "caseflow/internal/domain/assignment/value_objects"
)

// QueueEntry is a work item waiting for capacity. Entries never fail
// terminally on their own: they age until matched or administratively
// removed.
type QueueEntry struct {
	id             uint
	workItemID     string
	workItemType   vo.WorkItemType
	requiredSkills []string
	targetUnitID   *uint
	priority       vo.Priority
	attempts       int
	lastAttemptAt  *time.Time
	notes          string
	agingBucket    vo.AgingBucket
	createdAt      time.Time
}

func NewQueueEntry(
	workItemID string,
	workItemType vo.WorkItemType,
	requiredSkills []string,
	targetUnitID *uint,
	priority vo.Priority,
	notes string,
) (*QueueEntry, error) {
	if workItemID == "" {
		return nil, fmt.Errorf("work item ID is required")
	}
	if !workItemType.IsValid() {
		return nil, fmt.Errorf("invalid work item type")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if targetUnitID != nil && *targetUnitID == 0 {
		return nil, fmt.Errorf("target unit ID cannot be zero")
	}

	return &QueueEntry{
		workItemID:     workItemID,
		workItemType:   workItemType,
		requiredSkills: append([]string{}, requiredSkills...),
		targetUnitID:   targetUnitID,
		priority:       priority,
		notes:          notes,
		agingBucket:    vo.AgingFresh,
		createdAt:      time.Now(),
	}, nil
}

func ReconstructQueueEntry(
	id uint,
	workItemID string,
	workItemType vo.WorkItemType,
	requiredSkills []string,
	targetUnitID *uint,
	priority vo.Priority,
	attempts int,
	lastAttemptAt *time.Time,
	notes string,
	agingBucket vo.AgingBucket,
	createdAt time.Time,
) (*QueueEntry, error) {
	if id == 0 {
		return nil, fmt.Errorf("queue entry ID cannot be zero")
	}
	if workItemID == "" {
		return nil, fmt.Errorf("work item ID is required")
	}
	if !workItemType.IsValid() {
		return nil, fmt.Errorf("invalid work item type")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if requiredSkills == nil {
		requiredSkills = []string{}
	}

	return &QueueEntry{
		id:             id,
		workItemID:     workItemID,
		workItemType:   workItemType,
		requiredSkills: requiredSkills,
		targetUnitID:   targetUnitID,
		priority:       priority,
		attempts:       attempts,
		lastAttemptAt:  lastAttemptAt,
		notes:          notes,
		agingBucket:    agingBucket,
		createdAt:      createdAt,
	}, nil
}

func (e *QueueEntry) ID() uint                      { return e.id }
func (e *QueueEntry) WorkItemID() string            { return e.workItemID }
func (e *QueueEntry) WorkItemType() vo.WorkItemType { return e.workItemType }
func (e *QueueEntry) TargetUnitID() *uint           { return e.targetUnitID }
func (e *QueueEntry) Priority() vo.Priority         { return e.priority }
func (e *QueueEntry) Attempts() int                 { return e.attempts }
func (e *QueueEntry) LastAttemptAt() *time.Time     { return e.lastAttemptAt }
func (e *QueueEntry) Notes() string                 { return e.notes }
func (e *QueueEntry) AgingBucket() vo.AgingBucket   { return e.agingBucket }
func (e *QueueEntry) CreatedAt() time.Time          { return e.createdAt }

func (e *QueueEntry) RequiredSkills() []string {
	skillsCopy := make([]string, len(e.requiredSkills))
	copy(skillsCopy, e.requiredSkills)
	return skillsCopy
}

func (e *QueueEntry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("queue entry ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("queue entry ID cannot be zero")
	}
	e.id = id
	return nil
}

// RecordAttempt increments the drain attempt counter and stamps the time.
// Attempts only ever grow.
func (e *QueueEntry) RecordAttempt(at time.Time) {
	e.attempts++
	e.lastAttemptAt = &at
}

// SetAgingBucket re-derives the aging classification. Returns true when the
// bucket changed.
func (e *QueueEntry) SetAgingBucket(bucket vo.AgingBucket) bool {
	if e.agingBucket == bucket {
		return false
	}
	e.agingBucket = bucket
	return true
}

// MatchesSignal reports whether a capacity-freed signal (unitID, freedSkills)
// can drain this entry: the required skill set must intersect freedSkills,
// and the target unit must be unset or equal to unitID. An empty skill set on
// either side matches everything; signals without skills still wake entries
// with requirements.
func (e *QueueEntry) MatchesSignal(unitID uint, freedSkills []string) bool {
	if e.targetUnitID != nil && *e.targetUnitID != unitID {
		return false
	}
	if len(e.requiredSkills) == 0 || len(freedSkills) == 0 {
		return true
	}
	freed := make(map[string]bool, len(freedSkills))
	for _, s := range freedSkills {
		freed[s] = true
	}
	for _, r := range e.requiredSkills {
		if freed[r] {
			return true
		}
	}
	return false
}

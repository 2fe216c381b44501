package assignment

import (
	"fmt"
	"time"

	vo "caseflow/internal/domain/assignment/value_objects"
)

// Assignment binds one work item to one assignee. At most one active
// assignment may exist per work item id; the repository enforces this with
// a partial-unique guard and the use cases check it before creation.
type Assignment struct {
	id             uint
	workItemID     string
	workItemType   vo.WorkItemType
	assigneeID     uint
	unitID         uint
	priority       vo.Priority
	status         vo.AssignmentStatus
	assignedBy     *uint
	overrideReason string
	assignedAt     time.Time
	slaDeadline    time.Time
	warningSent    bool
	escalated      bool
	escalatedAt    *time.Time
	escalatedTo    *uint
	completedAt    *time.Time
	createdAt      time.Time
	updatedAt      time.Time
}

func NewAssignment(
	workItemID string,
	workItemType vo.WorkItemType,
	assigneeID uint,
	unitID uint,
	priority vo.Priority,
	assignedAt time.Time,
	slaDeadline time.Time,
) (*Assignment, error) {
	if workItemID == "" {
		return nil, fmt.Errorf("work item ID is required")
	}
	if !workItemType.IsValid() {
		return nil, fmt.Errorf("invalid work item type")
	}
	if assigneeID == 0 {
		return nil, fmt.Errorf("assignee ID is required")
	}
	if unitID == 0 {
		return nil, fmt.Errorf("unit ID is required")
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority")
	}
	if !slaDeadline.After(assignedAt) {
		return nil, fmt.Errorf("SLA deadline must be after assignment time")
	}

	now := time.Now()
	return &Assignment{
		workItemID:   workItemID,
		workItemType: workItemType,
		assigneeID:   assigneeID,
		unitID:       unitID,
		priority:     priority,
		status:       vo.StatusAssigned,
		assignedAt:   assignedAt,
		slaDeadline:  slaDeadline,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

func ReconstructAssignment(
	id uint,
	workItemID string,
	workItemType vo.WorkItemType,
	assigneeID uint,
	unitID uint,
	priority vo.Priority,
	status vo.AssignmentStatus,
	assignedBy *uint,
	overrideReason string,
	assignedAt time.Time,
	slaDeadline time.Time,
	warningSent bool,
	escalated bool,
	escalatedAt *time.Time,
	escalatedTo *uint,
	completedAt *time.Time,
	createdAt, updatedAt time.Time,
) (*Assignment, error) {
	if id == 0 {
		return nil, fmt.Errorf("assignment ID cannot be zero")
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
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	return &Assignment{
		id:             id,
		workItemID:     workItemID,
		workItemType:   workItemType,
		assigneeID:     assigneeID,
		unitID:         unitID,
		priority:       priority,
		status:         status,
		assignedBy:     assignedBy,
		overrideReason: overrideReason,
		assignedAt:     assignedAt,
		slaDeadline:    slaDeadline,
		warningSent:    warningSent,
		escalated:      escalated,
		escalatedAt:    escalatedAt,
		escalatedTo:    escalatedTo,
		completedAt:    completedAt,
		createdAt:      createdAt,
		updatedAt:      updatedAt,
	}, nil
}

func (a *Assignment) ID() uint                       { return a.id }
func (a *Assignment) WorkItemID() string             { return a.workItemID }
func (a *Assignment) WorkItemType() vo.WorkItemType  { return a.workItemType }
func (a *Assignment) AssigneeID() uint               { return a.assigneeID }
func (a *Assignment) UnitID() uint                   { return a.unitID }
func (a *Assignment) Priority() vo.Priority          { return a.priority }
func (a *Assignment) Status() vo.AssignmentStatus    { return a.status }
func (a *Assignment) AssignedBy() *uint              { return a.assignedBy }
func (a *Assignment) OverrideReason() string         { return a.overrideReason }
func (a *Assignment) AssignedAt() time.Time          { return a.assignedAt }
func (a *Assignment) SLADeadline() time.Time         { return a.slaDeadline }
func (a *Assignment) WarningSent() bool              { return a.warningSent }
func (a *Assignment) Escalated() bool                { return a.escalated }
func (a *Assignment) EscalatedAt() *time.Time        { return a.escalatedAt }
func (a *Assignment) EscalatedTo() *uint             { return a.escalatedTo }
func (a *Assignment) CompletedAt() *time.Time        { return a.completedAt }
func (a *Assignment) CreatedAt() time.Time           { return a.createdAt }
func (a *Assignment) UpdatedAt() time.Time           { return a.updatedAt }

func (a *Assignment) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assignment ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assignment ID cannot be zero")
	}
	a.id = id
	return nil
}

// MarkOverride stamps the supervised-override audit fields.
func (a *Assignment) MarkOverride(actingUserID uint, reason string) error {
	if actingUserID == 0 {
		return fmt.Errorf("acting user ID is required")
	}
	if reason == "" {
		return fmt.Errorf("override reason is required")
	}
	a.assignedBy = &actingUserID
	a.overrideReason = reason
	a.updatedAt = time.Now()
	return nil
}

func (a *Assignment) IsActive() bool {
	return a.status.IsActive()
}

// Start moves the assignment to in_progress.
func (a *Assignment) Start() error {
	return a.changeStatus(vo.StatusInProgress)
}

// Complete finishes the assignment and stamps the completion time.
func (a *Assignment) Complete() error {
	if err := a.changeStatus(vo.StatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	a.completedAt = &now
	return nil
}

// Cancel terminates the assignment without completion.
func (a *Assignment) Cancel() error {
	return a.changeStatus(vo.StatusCancelled)
}

func (a *Assignment) changeStatus(next vo.AssignmentStatus) error {
	if a.status == next {
		return nil
	}
	if !a.status.CanTransitionTo(next) {
		return fmt.Errorf("cannot transition from %s to %s", a.status, next)
	}
	a.status = next
	a.updatedAt = time.Now()
	return nil
}

// ReassignTo moves an active assignment to a new assignee. SLA deadline and
// audit fields carry over unchanged.
func (a *Assignment) ReassignTo(assigneeID, unitID uint) error {
	if assigneeID == 0 {
		return fmt.Errorf("assignee ID is required")
	}
	if unitID == 0 {
		return fmt.Errorf("unit ID is required")
	}
	if !a.status.IsActive() {
		return fmt.Errorf("cannot reassign a %s assignment", a.status)
	}
	a.assigneeID = assigneeID
	a.unitID = unitID
	a.updatedAt = time.Now()
	return nil
}

// MarkWarningSent records that the single SLA warning has been delivered.
// Returns false when the warning was already sent.
func (a *Assignment) MarkWarningSent() bool {
	if a.warningSent {
		return false
	}
	a.warningSent = true
	a.updatedAt = time.Now()
	return true
}

// Escalate records the one-time SLA breach escalation. Returns false when
// the assignment was already escalated.
func (a *Assignment) Escalate(recipientID uint, at time.Time) bool {
	if a.escalated {
		return false
	}
	a.escalated = true
	a.escalatedAt = &at
	a.escalatedTo = &recipientID
	a.updatedAt = time.Now()
	return true
}

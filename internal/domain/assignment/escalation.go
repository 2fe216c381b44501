package assignment

import (
	"fmt"
	"time"
)

// EscalationEvent is the immutable record of an SLA breach. The core fields
// (assignment, reason, recipient, timestamp) never change after creation;
// acknowledgement and resolution annotate the operational follow-up.
type EscalationEvent struct {
	id             uint
	assignmentID   uint
	reason         string
	escalatedTo    uint
	createdAt      time.Time
	acknowledgedAt *time.Time
	acknowledgedBy *uint
	ackNotes       string
	resolvedAt     *time.Time
	resolvedBy     *uint
	resolution     string
}

func NewEscalationEvent(assignmentID uint, reason string, escalatedTo uint, at time.Time) (*EscalationEvent, error) {
	if assignmentID == 0 {
		return nil, fmt.Errorf("assignment ID is required")
	}
	if reason == "" {
		return nil, fmt.Errorf("escalation reason is required")
	}

	return &EscalationEvent{
		assignmentID: assignmentID,
		reason:       reason,
		escalatedTo:  escalatedTo,
		createdAt:    at,
	}, nil
}

func ReconstructEscalationEvent(
	id uint,
	assignmentID uint,
	reason string,
	escalatedTo uint,
	createdAt time.Time,
	acknowledgedAt *time.Time,
	acknowledgedBy *uint,
	ackNotes string,
	resolvedAt *time.Time,
	resolvedBy *uint,
	resolution string,
) (*EscalationEvent, error) {
	if id == 0 {
		return nil, fmt.Errorf("escalation event ID cannot be zero")
	}
	if assignmentID == 0 {
		return nil, fmt.Errorf("assignment ID is required")
	}

	return &EscalationEvent{
		id:             id,
		assignmentID:   assignmentID,
		reason:         reason,
		escalatedTo:    escalatedTo,
		createdAt:      createdAt,
		acknowledgedAt: acknowledgedAt,
		acknowledgedBy: acknowledgedBy,
		ackNotes:       ackNotes,
		resolvedAt:     resolvedAt,
		resolvedBy:     resolvedBy,
		resolution:     resolution,
	}, nil
}

func (e *EscalationEvent) ID() uint                   { return e.id }
func (e *EscalationEvent) AssignmentID() uint         { return e.assignmentID }
func (e *EscalationEvent) Reason() string             { return e.reason }
func (e *EscalationEvent) EscalatedTo() uint          { return e.escalatedTo }
func (e *EscalationEvent) CreatedAt() time.Time       { return e.createdAt }
func (e *EscalationEvent) AcknowledgedAt() *time.Time { return e.acknowledgedAt }
func (e *EscalationEvent) AcknowledgedBy() *uint      { return e.acknowledgedBy }
func (e *EscalationEvent) AckNotes() string           { return e.ackNotes }
func (e *EscalationEvent) ResolvedAt() *time.Time     { return e.resolvedAt }
func (e *EscalationEvent) ResolvedBy() *uint          { return e.resolvedBy }
func (e *EscalationEvent) Resolution() string         { return e.resolution }

func (e *EscalationEvent) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("escalation event ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("escalation event ID cannot be zero")
	}
	e.id = id
	return nil
}

// Acknowledge records that the recipient has seen the escalation.
func (e *EscalationEvent) Acknowledge(userID uint, notes string, at time.Time) error {
	if userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	if e.acknowledgedAt != nil {
		return fmt.Errorf("escalation already acknowledged")
	}
	e.acknowledgedAt = &at
	e.acknowledgedBy = &userID
	e.ackNotes = notes
	return nil
}

// Resolve closes out the escalation with a resolution note.
func (e *EscalationEvent) Resolve(userID uint, resolution string, at time.Time) error {
	if userID == 0 {
		return fmt.Errorf("user ID is required")
	}
	if resolution == "" {
		return fmt.Errorf("resolution is required")
	}
	if e.resolvedAt != nil {
		return fmt.Errorf("escalation already resolved")
	}
	e.resolvedAt = &at
	e.resolvedBy = &userID
	e.resolution = resolution
	return nil
}

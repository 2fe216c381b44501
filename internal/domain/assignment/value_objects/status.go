package value_objects

import "fmt"

type AssignmentStatus string

const (
	StatusPending    AssignmentStatus = "pending"
	StatusAssigned   AssignmentStatus = "assigned"
	StatusInProgress AssignmentStatus = "in_progress"
	StatusCompleted  AssignmentStatus = "completed"
	StatusCancelled  AssignmentStatus = "cancelled"
)

var validStatuses = map[AssignmentStatus]bool{
	StatusPending:    true,
	StatusAssigned:   true,
	StatusInProgress: true,
	StatusCompleted:  true,
	StatusCancelled:  true,
}

// statusTransitions defines allowed status changes.
var statusTransitions = map[AssignmentStatus][]AssignmentStatus{
	StatusPending:    {StatusAssigned, StatusCancelled},
	StatusAssigned:   {StatusInProgress, StatusCompleted, StatusCancelled},
	StatusInProgress: {StatusCompleted, StatusCancelled},
	StatusCompleted:  {},
	StatusCancelled:  {},
}

func (s AssignmentStatus) String() string {
	return string(s)
}

func (s AssignmentStatus) IsValid() bool {
	return validStatuses[s]
}

// IsActive reports whether the assignment still occupies a WIP slot.
func (s AssignmentStatus) IsActive() bool {
	return s != StatusCompleted && s != StatusCancelled
}

func (s AssignmentStatus) IsTerminal() bool {
	return !s.IsActive()
}

func (s AssignmentStatus) CanTransitionTo(next AssignmentStatus) bool {
	for _, allowed := range statusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func NewAssignmentStatus(s string) (AssignmentStatus, error) {
	st := AssignmentStatus(s)
	if !st.IsValid() {
		return "", fmt.Errorf("invalid assignment status: %s", s)
	}
	return st, nil
}

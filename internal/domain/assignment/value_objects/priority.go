package value_objects

import "fmt"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

var validPriorities = map[Priority]bool{
	PriorityLow:    true,
	PriorityNormal: true,
	PriorityHigh:   true,
	PriorityUrgent: true,
}

// priorityWeights orders priorities for queue ranking: urgent first.
var priorityWeights = map[Priority]int{
	PriorityUrgent: 4,
	PriorityHigh:   3,
	PriorityNormal: 2,
	PriorityLow:    1,
}

func (p Priority) String() string {
	return string(p)
}

func (p Priority) IsValid() bool {
	return validPriorities[p]
}

// Weight returns the ordering weight. Higher weight drains first.
func (p Priority) Weight() int {
	return priorityWeights[p]
}

func NewPriority(s string) (Priority, error) {
	p := Priority(s)
	if !p.IsValid() {
		return "", fmt.Errorf("invalid priority: %s", s)
	}
	return p, nil
}

func (p Priority) IsUrgent() bool {
	return p == PriorityUrgent
}

package value_objects

import "fmt"

// WorkItemType is the closed set of routable work item kinds. Unknown types
// are rejected at the boundary.
type WorkItemType string

const (
	WorkItemDossier  WorkItemType = "dossier"
	WorkItemTicket   WorkItemType = "ticket"
	WorkItemPosition WorkItemType = "position"
	WorkItemTask     WorkItemType = "task"
)

var validWorkItemTypes = map[WorkItemType]bool{
	WorkItemDossier:  true,
	WorkItemTicket:   true,
	WorkItemPosition: true,
	WorkItemTask:     true,
}

func (t WorkItemType) String() string {
	return string(t)
}

func (t WorkItemType) IsValid() bool {
	return validWorkItemTypes[t]
}

func NewWorkItemType(s string) (WorkItemType, error) {
	t := WorkItemType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid work item type: %s", s)
	}
	return t, nil
}

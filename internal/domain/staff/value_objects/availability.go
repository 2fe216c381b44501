package value_objects

import "fmt"

type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityOnLeave     Availability = "on_leave"
	AvailabilityUnavailable Availability = "unavailable"
)

var validAvailabilities = map[Availability]bool{
	AvailabilityAvailable:   true,
	AvailabilityOnLeave:     true,
	AvailabilityUnavailable: true,
}

func (a Availability) String() string {
	return string(a)
}

func (a Availability) IsValid() bool {
	return validAvailabilities[a]
}

func (a Availability) IsAvailable() bool {
	return a == AvailabilityAvailable
}

func NewAvailability(s string) (Availability, error) {
	a := Availability(s)
	if !a.IsValid() {
		return "", fmt.Errorf("invalid availability status: %s", s)
	}
	return a, nil
}

package linkage

import "fmt"

// Location names the boundary of a phase a linkage endpoint refers to.
type Location string

const (
	Initial Location = "initial"
	Final   Location = "final"
)

// ParseLocation converts a user-supplied string into a Location.
func ParseLocation(s string) (Location, error) {
	switch Location(s) {
	case Initial, Final:
		return Location(s), nil
	default:
		return "", fmt.Errorf("invalid location %q: must be 'initial' or 'final'", s)
	}
}


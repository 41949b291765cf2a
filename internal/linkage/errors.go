package linkage

import (
	"errors"
	"fmt"
)

// ErrBothFixed matches any *Error via errors.Is.
var ErrBothFixed = errors.New("values on both sides of the linkage are fixed")

// Error reports a linkage whose endpoints are both fixed. Its message is
// part of the public contract and callers match on it verbatim.
type Error struct {
	Trajectory string
	A          Endpoint
	B          Endpoint
}

func (e *Error) Error() string {
	return fmt.Sprintf(`Invalid linkage in Trajectory %s: Cannot link %s value of "%s" in %s to %s value of "%s" in %s.  Values on both sides of the linkage are fixed.`,
		e.Trajectory, e.A.Loc, e.A.Var, e.A.Phase, e.B.Loc, e.B.Var, e.B.Phase)
}

// Is lets errors.Is(err, ErrBothFixed) succeed for any *Error.
func (e *Error) Is(target error) bool {
	return target == ErrBothFixed
}

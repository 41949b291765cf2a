package linkage

import "fmt"

// BoundarySpec describes how a variable's value at one boundary of a phase
// is determined. Fixed records an explicit declaration. Lower and Upper are
// optional bounds; when both are present and equal the value is pinned even
// though it was never declared fixed.
type BoundarySpec struct {
	Fixed bool
	Lower *float64
	Upper *float64
}

// Free describes a value the optimizer is free to choose.
var Free = BoundarySpec{}

// Pinned describes a value declared fixed without known bounds.
var Pinned = BoundarySpec{Fixed: true}

// Bounds returns a spec bounded to [lower, upper].
func Bounds(lower, upper float64) BoundarySpec {
	return BoundarySpec{Lower: &lower, Upper: &upper}
}

// Point returns a spec bounded to the single value v.
func Point(v float64) BoundarySpec {
	return Bounds(v, v)
}

// IsFixed reports whether the value is not an independent decision variable.
func (b BoundarySpec) IsFixed() bool {
	if b.Fixed {
		return true
	}
	return b.Lower != nil && b.Upper != nil && *b.Lower == *b.Upper
}

// Sum composes the boundary of x+y from the boundaries of x and y. The sum is fixed
// only when both terms are. Bounds propagate side by side; a missing bound
// on either term leaves that side of the sum unbounded.
func Sum(x, y BoundarySpec) BoundarySpec {
	out := BoundarySpec{Fixed: x.IsFixed() && y.IsFixed()}
	if x.Lower != nil && y.Lower != nil {
		lo := *x.Lower + *y.Lower
		out.Lower = &lo
	}
	if x.Upper != nil && y.Upper != nil {
		hi := *x.Upper + *y.Upper
		out.Upper = &hi
	}
	return out
}

// String renders the boundary for logs.
func (b BoundarySpec) String() string {
	lo, hi := "-inf", "+inf"
	if b.Lower != nil {
		lo = fmt.Sprintf("%g", *b.Lower)
	}
	if b.Upper != nil {
		hi = fmt.Sprintf("%g", *b.Upper)
	}
	return fmt.Sprintf("fixed=%t bounds=[%s, %s]", b.IsFixed(), lo, hi)
}

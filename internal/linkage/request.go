package linkage

import "fmt"

// Endpoint identifies a variable's value at one boundary of one phase.
type Endpoint struct {
	Phase string
	Var   string
	Loc   Location
}

// String renders the endpoint as phase.var.loc.
func (e Endpoint) String() string {
	return fmt.Sprintf("%s.%s.%s", e.Phase, e.Var, e.Loc)
}

// Request is a single proposed linkage between two endpoints. Connected
// linkages pass the value from A directly into B; unconnected ones are
// enforced as an equality constraint.
type Request struct {
	A         Endpoint
	B         Endpoint
	Connected bool
}

// Key identifies the endpoint pair regardless of its direction.
func (r Request) Key() string {
	a, b := r.A.String(), r.B.String()
	if b < a {
		a, b = b, a
	}
	return a + "<->" + b
}

// ExpandLinkPhases chains consecutive phases: for every neighbouring pair
// and every variable, the final value in the earlier phase is linked to the
// initial value in the later one. Requests come out pair-major, var-minor.
func ExpandLinkPhases(phases, vars []string, connected bool) []Request {
	if len(phases) < 2 {
		return nil
	}
	reqs := make([]Request, 0, (len(phases)-1)*len(vars))
	for i := 0; i < len(phases)-1; i++ {
		for _, v := range vars {
			reqs = append(reqs, Request{
				A:         Endpoint{Phase: phases[i], Var: v, Loc: Final},
				B:         Endpoint{Phase: phases[i+1], Var: v, Loc: Initial},
				Connected: connected,
			})
		}
	}
	return reqs
}

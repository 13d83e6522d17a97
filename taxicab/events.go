package taxicab

import "github.com/taxidispatch/simulator/query"

// Event is one observable occurrence during a taxi's Step, reported back to
// the simulation driver for per-timestep logging.
type Event interface {
	isEvent()
}

// PickupEvent fires when a taxi reaches a query's origin and the query
// transitions WAITING->RIDING.
type PickupEvent struct {
	QueryID query.QueryID
}

// DropoffEvent fires when a taxi reaches a query's destination and the
// query transitions RIDING->SATISFIED.
type DropoffEvent struct {
	QueryID query.QueryID
}

// StallEvent fires when a taxi's recomputed route after a schedule-node pop
// is empty (spec.md §7 Unreachable) — the taxi remains at its current
// vertex: Step does nothing while the route is empty, and a later dispatch
// appends behind the same unreachable schedule head and recomputes the
// route toward it.
type StallEvent struct{}

func (PickupEvent) isEvent()  {}
func (DropoffEvent) isEvent() {}
func (StallEvent) isEvent()   {}

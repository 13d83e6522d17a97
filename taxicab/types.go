package taxicab

import (
	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/geoindex"
	"github.com/taxidispatch/simulator/query"
	"github.com/taxidispatch/simulator/roadnet"
)

// TaxiID is an alias of geoindex.TaxiID so both packages share one
// identifier space for the index's dynamic taxi-arrival lists.
type TaxiID = geoindex.TaxiID

// Taxi is a capacity-limited vehicle: its current position and road-network
// state, its ordered schedule of pickup/dropoff obligations, and the route
// to the head of that schedule.
//
// Invariants: NumRiders <= Capacity; NumRiders == len(Serving); if Schedule
// is non-empty, Route is defined and runs from VID to
// Schedule[0].MatchedVertex.
type Taxi struct {
	ID       TaxiID
	Loc      geo.Location
	Speed    float64
	Capacity int

	NumRiders int
	Schedule  []query.ScheduleNode
	Route     roadnet.Path

	VID             roadnet.VertexID
	EID             roadnet.EdgeID
	EdgeIdx         int
	DrivingDistance float64

	Serving map[query.QueryID]*query.Query

	// pendingOrigins holds queries whose origin ScheduleNode has been
	// appended to this taxi's schedule but not yet reached. dispatch
	// populates this via AttachQuery at schedule-insertion time, since the
	// taxi otherwise has no registry through which to resolve a
	// ScheduleNode back to its live *query.Query.
	pendingOrigins map[query.QueryID]*query.Query
}

// NewTaxi constructs an idle taxi at vID with an empty schedule, per
// spec.md §3's baseline state (no route, no riders).
func NewTaxi(id TaxiID, loc geo.Location, speed float64, capacity int, vID roadnet.VertexID) *Taxi {
	return &Taxi{
		ID:             id,
		Loc:            loc,
		Speed:          speed,
		Capacity:       capacity,
		VID:            vID,
		Serving:        make(map[query.QueryID]*query.Query),
		pendingOrigins: make(map[query.QueryID]*query.Query),
	}
}

// AttachQuery appends q's origin and destination ScheduleNodes to the
// taxi's schedule (in that order, per spec.md §4.4 step 3) and registers q
// so the taxi can resolve the origin node back to a live query when popped.
func (t *Taxi) AttachQuery(q *query.Query) {
	t.Schedule = append(t.Schedule, q.OriginNode, q.DestNode)
	t.pendingOrigins[q.ID] = q
}

// Available reports whether the taxi may be selected as a dispatch
// candidate: NumRiders < Capacity AND Schedule is non-empty. See doc.go for
// why the non-empty-schedule clause is preserved despite looking backwards.
func (t *Taxi) Available() bool {
	return t.NumRiders < t.Capacity && len(t.Schedule) > 0
}

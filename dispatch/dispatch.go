package dispatch

import (
	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/geoindex"
	"github.com/taxidispatch/simulator/query"
	"github.com/taxidispatch/simulator/roadnet"
	"github.com/taxidispatch/simulator/taxicab"
)

// Dispatch attempts to match q to a taxi at the given timestamp. On success
// it appends q to the taxi's schedule, recomputes the taxi's route, updates
// the index with the taxi's new predicted arrivals, records q in Waiting,
// and returns true. On failure — an empty candidate list, a first candidate
// missing from taxis, or a failed map-match on either endpoint — it enqueues
// q into Failed (for retry on a later timestep) and returns false. A
// candidate that is not Available can still be selected (see selectTaxi).
//
// This implements spec.md §4.4 verbatim, including two documented-as-suspect
// behaviors preserved for fidelity: the candidate walk's time test uses
// `t_ij + eta` where eta is an absolute simulator time rather than an
// interval (spec.md §9), and route recomputation always runs from the
// taxi's current vertex to the new schedule head, even when the head was
// not the node just appended (spec.md §9).
func (d *Dispatcher) Dispatch(timestamp int64, q *query.Query, idx *geoindex.SpatioTemporalDatabase, net *roadnet.RoadNetwork, taxis map[taxicab.TaxiID]*taxicab.Taxi) bool {
	if !q.OriginNode.Valid || !q.DestNode.Valid {
		d.Failed = append(d.Failed, q.ID)
		return false
	}

	candidates := CandidateSearch(timestamp, q, idx)

	selected, ok := selectTaxi(candidates, q, taxis)
	if !ok {
		d.Failed = append(d.Failed, q.ID)
		return false
	}

	taxiID := query.TaxiID(selected.ID)
	q.MatchedTaxi = &taxiID

	selected.AttachQuery(q)
	selected.Route = net.AStar(selected.VID, selected.Schedule[0].MatchedVertex)
	selected.EdgeIdx = 0
	idx.UpdateTaxiList(timestamp, selected.ID, selected.Route, net)

	d.Waiting[q.ID] = struct{}{}

	return true
}

// selectTaxi picks a taxi among candidates: the first candidate is the
// default pick, overridden by whichever Available candidate minimizes
// great-circle distance from its current location to q.Origin. Only an
// empty candidate list yields ok=false — per spec.md §4.4, Available() only
// chooses among already-nonempty candidates, it never disqualifies all of
// them.
func selectTaxi(candidates []taxicab.TaxiID, q *query.Query, taxis map[taxicab.TaxiID]*taxicab.Taxi) (*taxicab.Taxi, bool) {
	if len(candidates) == 0 {
		return nil, false
	}

	best, ok := taxis[candidates[0]]
	if !ok {
		return nil, false
	}
	bestDist := geo.GreatCircleDistance(best.Loc, q.Origin)

	for _, id := range candidates[1:] {
		t, ok := taxis[id]
		if !ok || !t.Available() {
			continue
		}
		d := geo.GreatCircleDistance(t.Loc, q.Origin)
		if d < bestDist {
			best = t
			bestDist = d
		}
	}

	return best, true
}

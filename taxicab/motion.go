package taxicab

import (
	"fmt"

	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/geoindex"
	"github.com/taxidispatch/simulator/query"
	"github.com/taxidispatch/simulator/roadnet"
)

// GeohashPrecision is the fixed geohash length used to re-encode a taxi's
// position as it moves, matching spec.md §6's GEOHASH_PRECISION.
const GeohashPrecision = 5

// Step advances the taxi by one timestep of length dt seconds, implementing
// spec.md §4.5 exactly: bearing-advance along the current edge, snap-and-pop
// at edge/schedule-node boundaries, and pickup/dropoff transitions. now is
// the absolute simulator time at the end of this step, used to stamp the
// index's cell-membership records when the taxi's geohash changes.
//
// If the taxi has no route (empty schedule, or stalled after an
// unreachable recomputation), Step is a no-op and returns no events.
func (t *Taxi) Step(dt float64, now int64, idx *geoindex.SpatioTemporalDatabase, net *roadnet.RoadNetwork) ([]Event, error) {
	if t.Route.Empty() {
		return nil, nil
	}

	if len(t.Route.Edges) == 0 {
		// The route's only vertex is the taxi's current position: it is
		// already at the schedule head (e.g. just dispatched while parked
		// at the query's origin vertex). Pop immediately, for free, per
		// spec.md §8's "distance 0 from target advances on the next step."
		return t.popScheduleNode(now, idx, net)
	}

	d := t.Speed * dt
	t.DrivingDistance += d

	startVID := t.Route.Vertices[t.EdgeIdx]
	endVID := t.Route.Vertices[t.EdgeIdx+1]
	edgeID := t.Route.Edges[t.EdgeIdx]

	startVertex, err := net.GetVertex(startVID)
	if err != nil {
		return nil, fmt.Errorf("taxicab: step: %w", err)
	}
	endVertex, err := net.GetVertex(endVID)
	if err != nil {
		return nil, fmt.Errorf("taxicab: step: %w", err)
	}
	edge, err := net.GetEdge(edgeID)
	if err != nil {
		return nil, fmt.Errorf("taxicab: step: %w", err)
	}

	prevHash := t.Loc.Geohash
	brng := geo.Bearing(t.Loc, endVertex.Loc)
	tentative := geo.Destination(t.Loc, brng, d)
	tentative.Geohash = geo.Encode(tentative.Lat, tentative.Lon, GeohashPrecision)

	var events []Event

	if geo.GreatCircleDistance(startVertex.Loc, tentative) < edge.Weight {
		// Still traversing the current edge.
		t.Loc = tentative
		t.maybeUpdateCell(idx, prevHash, now)
		return events, nil
	}

	// Reached (or passed) the edge's end vertex: snap and advance.
	t.Loc = endVertex.Loc
	t.VID = endVID
	t.maybeUpdateCell(idx, prevHash, now)

	if t.EdgeIdx+1 < len(t.Route.Edges) {
		t.EdgeIdx++
		return events, nil
	}

	// Head schedule node reached.
	return t.popScheduleNode(now, idx, net)
}

// maybeUpdateCell mutates the index's cell membership if the taxi's geohash
// changed as a result of the position update just applied.
func (t *Taxi) maybeUpdateCell(idx *geoindex.SpatioTemporalDatabase, prevHash string, now int64) {
	if t.Loc.Geohash != prevHash {
		idx.SetTaxiCell(t.ID, prevHash, t.Loc.Geohash, now)
	}
}

// popScheduleNode handles reaching the head of the schedule: fires the
// pickup/dropoff transition, recomputes the route from the popped node's
// vertex to the new head (if any), and notifies the index of the new route.
func (t *Taxi) popScheduleNode(now int64, idx *geoindex.SpatioTemporalDatabase, net *roadnet.RoadNetwork) ([]Event, error) {
	node := t.Schedule[0]
	t.Schedule = t.Schedule[1:]

	var events []Event

	if node.IsOrigin {
		q, ok := t.pendingOrigins[node.QueryID]
		delete(t.pendingOrigins, node.QueryID)
		if ok {
			switch q.Status {
			case query.Waiting:
				q.Transition(query.Riding)
				t.Serving[q.ID] = q
				t.NumRiders++
				events = append(events, PickupEvent{QueryID: q.ID})
			case query.Cancelled:
				t.removeScheduleNodeForQuery(node.QueryID, false)
			}
		}
	} else {
		q, ok := t.Serving[node.QueryID]
		if !ok || q.Status != query.Riding {
			return events, ErrScheduleInvariant
		}
		q.Transition(query.Satisfied)
		delete(t.Serving, q.ID)
		t.NumRiders--
		events = append(events, DropoffEvent{QueryID: q.ID})
	}

	if len(t.Schedule) == 0 {
		t.Route = roadnet.Path{}
		t.EdgeIdx = 0
		return events, nil
	}

	newRoute := net.AStar(node.MatchedVertex, t.Schedule[0].MatchedVertex)
	t.Route = newRoute
	t.EdgeIdx = 0
	idx.UpdateTaxiList(now, t.ID, newRoute, net)

	if newRoute.Empty() {
		events = append(events, StallEvent{})
	}

	return events, nil
}

// removeScheduleNodeForQuery removes the first ScheduleNode matching
// queryID; if origin is true, removes the origin node, else the
// destination node. Used when a query cancels while its taxi is still
// en route to pick it up (spec.md §4.5 step 4, "remove the matching
// destination node").
func (t *Taxi) removeScheduleNodeForQuery(queryID query.QueryID, origin bool) {
	for i, n := range t.Schedule {
		if n.QueryID == queryID && n.IsOrigin == origin {
			t.Schedule = append(t.Schedule[:i], t.Schedule[i+1:]...)
			return
		}
	}
}

package taxicab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/geoindex"
	"github.com/taxidispatch/simulator/query"
	"github.com/taxidispatch/simulator/roadnet"
)

func buildTwoVertexNetwork() *roadnet.RoadNetwork {
	n := roadnet.NewRoadNetwork()
	a := geo.WithLocation(0, 0, 5)
	b := geo.Destination(a, 0, 700) // due north, 700m away
	b.Geohash = geo.Encode(b.Lat, b.Lon, 5)
	n.AddVertex(1, a)
	n.AddVertex(2, b)
	n.AddEdge(1, 1, 2, 700)
	return n
}

func TestScenarioOneTwoVertexPickupAndDropoff(t *testing.T) {
	net := buildTwoVertexNetwork()
	idx := geoindex.NewSpatioTemporalDatabase(net, 7.0)
	idx.Build(1, nil)

	v1, err := net.GetVertex(1)
	require.NoError(t, err)
	taxi := NewTaxi(1, v1.Loc, 7.0, 1, 1)

	q := query.NewQuery(1, 1, v1.Loc, mustVertex(t, net, 2).Loc, 300, 1, 2, true, true)
	taxi.AttachQuery(q)
	taxi.Route = net.AStar(taxi.VID, taxi.Schedule[0].MatchedVertex)

	// Step 1: route is trivial (taxi already at origin vertex) -> pops
	// immediately, transitions query to RIDING, recomputes route to B.
	events, err := taxi.Step(1, 1, idx, net)
	require.NoError(t, err)
	require.Len(t, events, 1)
	_, isPickup := events[0].(PickupEvent)
	assert.True(t, isPickup)
	assert.Equal(t, query.Riding, q.Status)
	assert.Equal(t, 1, taxi.NumRiders)

	// Drive until dropoff.
	var droppedOff bool
	for step := 0; step < 200 && !droppedOff; step++ {
		now := int64(2 + step)
		evs, stepErr := taxi.Step(1, now, idx, net)
		require.NoError(t, stepErr)
		for _, e := range evs {
			if _, ok := e.(DropoffEvent); ok {
				droppedOff = true
			}
		}
	}

	assert.True(t, droppedOff)
	assert.Equal(t, query.Satisfied, q.Status)
	assert.Equal(t, 0, taxi.NumRiders)
	assert.Empty(t, taxi.Serving)
}

func TestAvailableRequiresNonEmptySchedule(t *testing.T) {
	taxi := NewTaxi(1, geo.Location{}, 7.0, 1, 1)
	assert.False(t, taxi.Available())
}

func TestCancellationRemovesDestinationNode(t *testing.T) {
	net := buildTwoVertexNetwork()
	idx := geoindex.NewSpatioTemporalDatabase(net, 7.0)
	idx.Build(1, nil)

	v1, err := net.GetVertex(1)
	require.NoError(t, err)
	v2, err := net.GetVertex(2)
	require.NoError(t, err)

	taxi := NewTaxi(1, v1.Loc, 7.0, 1, 1)
	q := query.NewQuery(1, 1, v1.Loc, v2.Loc, 300, 1, 2, true, true)
	taxi.AttachQuery(q)
	taxi.Route = net.AStar(taxi.VID, taxi.Schedule[0].MatchedVertex)

	q.Transition(query.Cancelled)

	events, err := taxi.Step(1, 1, idx, net)
	require.NoError(t, err)
	assert.Empty(t, events)
	assert.Empty(t, taxi.Schedule)
	assert.Equal(t, 0, taxi.NumRiders)
}

func mustVertex(t *testing.T, net *roadnet.RoadNetwork, id roadnet.VertexID) *roadnet.Vertex {
	t.Helper()
	v, err := net.GetVertex(id)
	require.NoError(t, err)
	return v
}

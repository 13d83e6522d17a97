package dispatch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/geoindex"
	"github.com/taxidispatch/simulator/query"
	"github.com/taxidispatch/simulator/roadnet"
	"github.com/taxidispatch/simulator/taxicab"
)

func buildScenario(t *testing.T) (*roadnet.RoadNetwork, *geoindex.SpatioTemporalDatabase) {
	t.Helper()
	net := roadnet.NewRoadNetwork()
	a := geo.WithLocation(0, 0, 5)
	b := geo.Destination(a, 0, 700)
	b.Geohash = geo.Encode(b.Lat, b.Lon, 5)
	net.AddVertex(1, a)
	net.AddVertex(2, b)
	net.AddEdge(1, 1, 2, 700)

	idx := geoindex.NewSpatioTemporalDatabase(net, 7.0)
	idx.Build(1, nil)
	return net, idx
}

func TestDispatchMatchesAvailableTaxi(t *testing.T) {
	net, idx := buildScenario(t)
	v1, err := net.GetVertex(1)
	require.NoError(t, err)
	v2, err := net.GetVertex(2)
	require.NoError(t, err)

	taxi := taxicab.NewTaxi(1, v1.Loc, 7.0, 1, 1)
	// Seed a non-empty schedule so Available() is true — without popping
	// it, so the taxi stays parked at v1 with an untouched two-node schedule.
	seed := query.NewQuery(0, 0, v1.Loc, v1.Loc, 300, 1, 1, true, true)
	taxi.AttachQuery(seed)
	idx.SetTaxiCell(taxi.ID, "", taxi.Loc.Geohash, 1)

	taxis := map[taxicab.TaxiID]*taxicab.Taxi{1: taxi}

	q := query.NewQuery(1, 1, v1.Loc, v2.Loc, 300, 1, 2, true, true)

	d := NewDispatcher()
	ok := d.Dispatch(1, q, idx, net, taxis)
	require.True(t, ok)
	assert.Contains(t, d.Waiting, q.ID)
	assert.NotNil(t, q.MatchedTaxi)
	assert.Equal(t, query.TaxiID(1), *q.MatchedTaxi)
}

func TestDispatchFailsWhenNoAvailableTaxi(t *testing.T) {
	net, idx := buildScenario(t)
	v1, err := net.GetVertex(1)
	require.NoError(t, err)
	v2, err := net.GetVertex(2)
	require.NoError(t, err)

	taxis := map[taxicab.TaxiID]*taxicab.Taxi{} // no taxis at all

	q := query.NewQuery(1, 1, v1.Loc, v2.Loc, 300, 1, 2, true, true)
	d := NewDispatcher()
	ok := d.Dispatch(1, q, idx, net, taxis)

	assert.False(t, ok)
	assert.Contains(t, d.Failed, q.ID)
}

func TestDispatchFailsOnInvalidMapMatch(t *testing.T) {
	net, idx := buildScenario(t)
	v1, err := net.GetVertex(1)
	require.NoError(t, err)

	q := query.NewQuery(1, 1, v1.Loc, v1.Loc, 300, 1, 1, false, true)
	d := NewDispatcher()
	ok := d.Dispatch(1, q, idx, net, map[taxicab.TaxiID]*taxicab.Taxi{})

	assert.False(t, ok)
	assert.Contains(t, d.Failed, q.ID)
}

func TestCandidateSearchEmptyWhenNoTaxisRegistered(t *testing.T) {
	net, idx := buildScenario(t)
	v1, err := net.GetVertex(1)
	require.NoError(t, err)
	v2, err := net.GetVertex(2)
	require.NoError(t, err)

	q := query.NewQuery(1, 100, v1.Loc, v2.Loc, 10, 1, 2, true, true)
	// No taxis registered anywhere; candidate list should simply be empty,
	// not panic, regardless of patience boundary.
	candidates := CandidateSearch(100, q, idx)
	assert.Empty(t, candidates)
}

package geoindex

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/roadnet"
)

func buildTestNetwork() *roadnet.RoadNetwork {
	n := roadnet.NewRoadNetwork()
	n.AddVertex(1, geo.WithLocation(37.7749, -122.4194, 5))
	n.AddVertex(2, geo.WithLocation(37.7849, -122.4094, 5))
	n.AddVertex(3, geo.WithLocation(37.8049, -122.3894, 5))
	n.AddEdge(1, 1, 2, 1000)
	n.AddEdge(2, 2, 3, 1500)
	return n
}

func TestBuildPhasesInOrder(t *testing.T) {
	net := buildTestNetwork()
	db := NewSpatioTemporalDatabase(net, 7.0)
	db.Build(0, map[TaxiID]geo.Location{100: geo.WithLocation(37.7749, -122.4194, 5)})

	require.NotEmpty(t, db.Cells)
	for hash, cell := range db.Cells {
		assert.NotEmpty(t, cell.Anchor)
		assert.NotEmpty(t, db.Matrix[hash])
		// static lists must exactly be the sorted projection of the matrix row
		assert.Len(t, cell.SpatialList, len(db.Matrix[hash]))
		assert.Len(t, cell.TemporalList, len(db.Matrix[hash]))
	}
}

func TestStaticListsSortedAscending(t *testing.T) {
	net := buildTestNetwork()
	db := NewSpatioTemporalDatabase(net, 7.0)
	db.LoadRoadNetwork()
	db.DetermineAnchors()
	db.ComputeDistanceMatrix()
	db.ConstructStaticLists()

	for _, cell := range db.Cells {
		for i := 1; i < len(cell.SpatialList); i++ {
			assert.LessOrEqual(t, cell.SpatialList[i-1].Distance, cell.SpatialList[i].Distance)
		}
		for i := 1; i < len(cell.TemporalList); i++ {
			assert.LessOrEqual(t, cell.TemporalList[i-1].Distance, cell.TemporalList[i].Distance)
		}
	}
}

func TestInitDynamicInfoSeedsTaxiList(t *testing.T) {
	net := buildTestNetwork()
	db := NewSpatioTemporalDatabase(net, 7.0)
	db.LoadRoadNetwork()
	db.DetermineAnchors()
	db.ComputeDistanceMatrix()
	db.ConstructStaticLists()

	loc := geo.WithLocation(37.7749, -122.4194, 5)
	db.InitDynamicInfo(5, map[TaxiID]geo.Location{42: loc})

	cell, ok := db.Cells[loc.Geohash]
	require.True(t, ok)
	assert.Equal(t, int64(5), cell.TaxiList[42])
}

func TestSetTaxiCellMovesBetweenCells(t *testing.T) {
	net := buildTestNetwork()
	db := NewSpatioTemporalDatabase(net, 7.0)
	db.Build(0, nil)

	var hashes []string
	for h := range db.Cells {
		hashes = append(hashes, h)
	}
	require.GreaterOrEqual(t, len(hashes), 1)

	db.SetTaxiCell(1, "", hashes[0], 10)
	assert.Equal(t, int64(10), db.Cells[hashes[0]].TaxiList[1])

	if len(hashes) > 1 {
		db.SetTaxiCell(1, hashes[0], hashes[1], 20)
		_, stillThere := db.Cells[hashes[0]].TaxiList[1]
		assert.False(t, stillThere)
		assert.Equal(t, int64(20), db.Cells[hashes[1]].TaxiList[1])
	}
}

func TestMapMatchFailsOnEmptyCell(t *testing.T) {
	net := buildTestNetwork()
	db := NewSpatioTemporalDatabase(net, 7.0)
	db.LoadRoadNetwork()

	farAway := geo.WithLocation(-33.8688, 151.2093, 5)
	_, ok := db.MapMatch(farAway, net)
	assert.False(t, ok)
}

func TestMapMatchPicksClosestVertexInCell(t *testing.T) {
	net := buildTestNetwork()
	db := NewSpatioTemporalDatabase(net, 7.0)
	db.LoadRoadNetwork()

	loc := geo.WithLocation(37.7749, -122.4194, 5)
	vid, ok := db.MapMatch(loc, net)
	require.True(t, ok)
	assert.Equal(t, roadnet.VertexID(1), vid)
}

func TestSaveLoadMatrixRoundTrip(t *testing.T) {
	net := buildTestNetwork()
	db := NewSpatioTemporalDatabase(net, 7.0)
	db.LoadRoadNetwork()
	db.DetermineAnchors()
	db.ComputeDistanceMatrix()

	var buf bytes.Buffer
	require.NoError(t, db.SaveMatrix(&buf))

	loaded, err := LoadMatrix(&buf)
	require.NoError(t, err)
	assert.Equal(t, db.Matrix, loaded)
}

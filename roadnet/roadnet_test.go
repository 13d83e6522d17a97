package roadnet

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taxidispatch/simulator/geo"
)

func buildLinearNetwork() *RoadNetwork {
	n := NewRoadNetwork()
	n.AddVertex(1, geo.WithLocation(0, 0, 5))
	n.AddVertex(2, geo.WithLocation(0, 0.005, 5))
	n.AddVertex(3, geo.WithLocation(0, 0.010, 5))
	n.AddEdge(1, 1, 2, 100)
	n.AddEdge(2, 2, 3, 200)
	return n
}

func TestAddEdgeAutoCreatesEndpoints(t *testing.T) {
	n := NewRoadNetwork()
	n.AddEdge(1, 10, 20, 50)

	v10, err := n.GetVertex(10)
	require.NoError(t, err)
	assert.Equal(t, VertexID(10), v10.ID)

	v20, err := n.GetVertex(20)
	require.NoError(t, err)
	assert.Equal(t, VertexID(20), v20.ID)
}

func TestEdgeWeightInfiniteWhenAbsent(t *testing.T) {
	n := buildLinearNetwork()
	assert.True(t, math.IsInf(n.EdgeWeight(3, 1), 1))
	assert.Equal(t, 100.0, n.EdgeWeight(1, 2))
}

func TestBFSReachable(t *testing.T) {
	n := buildLinearNetwork()
	assert.True(t, n.BFSReachable(1, 3))
	assert.False(t, n.BFSReachable(3, 1))
}

func TestDijkstraAndAStarAgree(t *testing.T) {
	n := buildLinearNetwork()
	dPath := n.Dijkstra(1, 3)
	aPath := n.AStar(1, 3)

	require.False(t, dPath.Empty())
	require.False(t, aPath.Empty())
	assert.Equal(t, dPath.Distance, aPath.Distance)
	assert.Equal(t, 300.0, dPath.Distance)
	assert.Equal(t, []EdgeID{1, 2}, dPath.Edges)
}

func TestUnreachableReturnsEmptyPath(t *testing.T) {
	n := buildLinearNetwork()
	n.AddVertex(99, geo.WithLocation(1, 1, 5))

	path := n.AStar(1, 99)
	assert.True(t, path.Empty())
	assert.Equal(t, 0.0, path.Distance)
}

func TestSingleSourceDijkstraMatchesAStar(t *testing.T) {
	n := buildLinearNetwork()
	_, cameFrom := n.SingleSourceDijkstra(1)
	viaCameFrom := n.ConstructPath(1, 3, cameFrom)
	direct := n.AStar(1, 3)

	assert.Equal(t, direct.Distance, viaCameFrom.Distance)
}

func TestFloydWarshallSmallGraphDistances(t *testing.T) {
	n := buildLinearNetwork()
	dist, err := n.FloydWarshall()
	require.NoError(t, err)
	assert.Equal(t, 300.0, dist[1][3])
	assert.True(t, math.IsInf(dist[3][1], 1))
}

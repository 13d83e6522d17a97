package geoindex

import (
	"runtime"
	"sort"
	"sync"

	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/roadnet"
)

// defaultPrecision is the fixed geohash length used throughout the index,
// matching spec.md §6's GEOHASH_PRECISION.
const defaultPrecision = 5

// NewSpatioTemporalDatabase returns an index bound to net, with avgSpeedMPS
// used to convert anchor-to-anchor road distance into the temporal matrix.
// Call Build to run the five construction phases in order, or call the
// phase methods individually (LoadRoadNetwork, DetermineAnchors,
// ComputeDistanceMatrix, ConstructStaticLists, InitDynamicInfo) for finer
// control, e.g. loading a cached matrix between DetermineAnchors and
// ConstructStaticLists.
func NewSpatioTemporalDatabase(net *roadnet.RoadNetwork, avgSpeedMPS float64) *SpatioTemporalDatabase {
	return &SpatioTemporalDatabase{
		Cells:       make(map[string]*GridCell),
		Matrix:      make(map[string]map[string]MatrixCell),
		net:         net,
		avgSpeedMPS: avgSpeedMPS,
	}
}

// Build runs all five construction phases in the order spec.md §4.3
// mandates, then seeds dynamic state for taxis present at startTime.
func (db *SpatioTemporalDatabase) Build(startTime int64, taxiStarts map[TaxiID]geo.Location) {
	db.LoadRoadNetwork()
	db.DetermineAnchors()
	db.ComputeDistanceMatrix()
	db.ConstructStaticLists()
	db.InitDynamicInfo(startTime, taxiStarts)
}

// LoadRoadNetwork is construction phase 1: for every vertex in the bound
// network, compute its geohash and create the cell if absent, inserting the
// vertex id into it.
func (db *SpatioTemporalDatabase) LoadRoadNetwork() {
	for _, id := range db.net.VertexIDs() {
		v, err := db.net.GetVertex(id)
		if err != nil {
			continue
		}
		hash := v.Loc.Geohash
		if hash == "" {
			hash = geo.Encode(v.Loc.Lat, v.Loc.Lon, defaultPrecision)
		}
		cell, ok := db.Cells[hash]
		if !ok {
			cell = &GridCell{
				Geohash:  hash,
				Center:   geo.Decode(hash),
				Vertices: make(map[roadnet.VertexID]struct{}),
				TaxiList: make(map[TaxiID]int64),
			}
			db.Cells[hash] = cell
		}
		cell.Vertices[id] = struct{}{}
	}
}

// DetermineAnchors is construction phase 2: for each cell, the anchor is the
// contained vertex closest (great-circle) to the cell's decoded center.
func (db *SpatioTemporalDatabase) DetermineAnchors() {
	for _, cell := range db.Cells {
		var best roadnet.VertexID
		bestDist := -1.0
		first := true
		for vid := range cell.Vertices {
			v, err := db.net.GetVertex(vid)
			if err != nil {
				continue
			}
			d := geo.GreatCircleDistance(cell.Center, v.Loc)
			if first || d < bestDist {
				best = vid
				bestDist = d
				first = false
			}
		}
		cell.Anchor = best
	}
}

// ComputeDistanceMatrix is construction phase 3: for each cell i, run
// single-source Dijkstra from its anchor; for each cell j, D is the
// great-circle distance between anchors and T is the road distance over
// avgSpeedMPS, falling back to D/avgSpeedMPS when anchor_j is unreachable
// from anchor_i.
//
// Each source cell writes a disjoint matrix row, so this phase is safe to
// run concurrently; it is parallelized across a bounded worker pool sized
// to runtime.NumCPU().
func (db *SpatioTemporalDatabase) ComputeDistanceMatrix() {
	hashes := make([]string, 0, len(db.Cells))
	for h := range db.Cells {
		hashes = append(hashes, h)
	}

	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	if workers > len(hashes) {
		workers = len(hashes)
	}

	jobs := make(chan string)
	rows := make(chan struct {
		hash string
		row  map[string]MatrixCell
	}, len(hashes))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for hi := range jobs {
				rows <- struct {
					hash string
					row  map[string]MatrixCell
				}{hash: hi, row: db.computeRow(hi)}
			}
		}()
	}

	go func() {
		for _, h := range hashes {
			jobs <- h
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(rows)
	}()

	for r := range rows {
		db.Matrix[r.hash] = r.row
	}
}

// computeRow builds one row of the distance matrix, anchored at cell hi.
func (db *SpatioTemporalDatabase) computeRow(hi string) map[string]MatrixCell {
	anchorI := db.Cells[hi].Anchor
	dist, _ := db.net.SingleSourceDijkstra(anchorI)
	anchorLoc, err := db.net.GetVertex(anchorI)

	row := make(map[string]MatrixCell, len(db.Cells))
	for hj, cellJ := range db.Cells {
		anchorJ := cellJ.Anchor
		anchorJLoc, errJ := db.net.GetVertex(anchorJ)

		var d float64
		if err == nil && errJ == nil {
			d = geo.GreatCircleDistance(anchorLoc.Loc, anchorJLoc.Loc)
		}

		var t float64
		if roadDist, ok := dist[anchorJ]; ok {
			t = roadDist / db.avgSpeedMPS
		} else {
			t = d / db.avgSpeedMPS
		}
		row[hj] = MatrixCell{D: d, T: t}
	}

	return row
}

// ConstructStaticLists is construction phase 4: for each cell i, sort all j
// by D ascending into SpatialList, and by T ascending into TemporalList;
// ties are broken by geohash string order.
func (db *SpatioTemporalDatabase) ConstructStaticLists() {
	for hi, cell := range db.Cells {
		row := db.Matrix[hi]

		spatial := make([]NeighborEntry, 0, len(row))
		temporal := make([]NeighborEntry, 0, len(row))
		for hj, mc := range row {
			spatial = append(spatial, NeighborEntry{Geohash: hj, Distance: mc.D})
			temporal = append(temporal, NeighborEntry{Geohash: hj, Distance: mc.T})
		}

		sort.Slice(spatial, func(a, b int) bool {
			if spatial[a].Distance != spatial[b].Distance {
				return spatial[a].Distance < spatial[b].Distance
			}
			return spatial[a].Geohash < spatial[b].Geohash
		})
		sort.Slice(temporal, func(a, b int) bool {
			if temporal[a].Distance != temporal[b].Distance {
				return temporal[a].Distance < temporal[b].Distance
			}
			return temporal[a].Geohash < temporal[b].Geohash
		})

		cell.SpatialList = spatial
		cell.TemporalList = temporal
	}
}

// InitDynamicInfo is construction phase 5: for every taxi at startTime,
// record it as present in its starting cell's TaxiList with eta startTime.
func (db *SpatioTemporalDatabase) InitDynamicInfo(startTime int64, taxiStarts map[TaxiID]geo.Location) {
	for id, loc := range taxiStarts {
		hash := loc.Geohash
		if hash == "" {
			hash = geo.Encode(loc.Lat, loc.Lon, defaultPrecision)
		}
		cell, ok := db.Cells[hash]
		if !ok {
			continue
		}
		cell.TaxiList[id] = startTime
	}
}

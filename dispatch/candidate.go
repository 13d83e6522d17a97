package dispatch

import (
	"github.com/taxidispatch/simulator/geoindex"
	"github.com/taxidispatch/simulator/query"
	"github.com/taxidispatch/simulator/taxicab"
)

// CandidateSearch enumerates taxis eligible for q, walking q's origin
// cell's TemporalList in ascending order. For each entry (gridID, t_ij), it
// stops as soon as t_ij + timestamp exceeds q's pickup deadline — no
// farther cell can produce a feasible taxi, since the list is sorted
// ascending. Otherwise, every taxi (taxiID, eta) registered in that cell's
// TaxiList is included if t_ij + eta <= pickup deadline.
//
// Preserved verbatim per spec.md §9: eta is an absolute simulator time, so
// this test conflates relative and absolute time rather than computing
// t_ij + max(0, eta-timestamp). Do not "fix" this without updating the
// spec's note; it is a documented property of the reference behavior, not
// an oversight introduced here.
func CandidateSearch(timestamp int64, q *query.Query, idx *geoindex.SpatioTemporalDatabase) []taxicab.TaxiID {
	originHash := q.Origin.Geohash
	originCell, ok := idx.Cells[originHash]
	if !ok {
		return nil
	}

	var candidates []taxicab.TaxiID
	for _, entry := range originCell.TemporalList {
		tij := entry.Distance
		if tij+float64(timestamp) > float64(q.PickupWindow.Late) {
			break
		}

		cell, ok := idx.Cells[entry.Geohash]
		if !ok {
			continue
		}
		for taxiID, eta := range cell.TaxiList {
			if tij+float64(eta) <= float64(q.PickupWindow.Late) {
				candidates = append(candidates, taxicab.TaxiID(taxiID))
			}
		}
	}

	return candidates
}

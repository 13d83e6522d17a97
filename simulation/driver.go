package simulation

import (
	"log"
	"os"
	"sort"

	"github.com/taxidispatch/simulator/dispatch"
	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/geoindex"
	"github.com/taxidispatch/simulator/query"
	"github.com/taxidispatch/simulator/roadnet"
	"github.com/taxidispatch/simulator/taxicab"
)

// Report is the final per-run tally: spec.md §6's "final tallies of
// completed/cancelled/failed queries."
type Report struct {
	Completed int
	Cancelled int
	Failed    int
	Tallies   map[string]int
}

// Simulation owns every piece of mutable state the driver mutates:
// network, index, taxi fleet, query set, dispatcher queues, and the
// time-sorted arrival list.
type Simulation struct {
	Config  *Config
	Network *roadnet.RoadNetwork
	Index   *geoindex.SpatioTemporalDatabase

	Taxis   map[taxicab.TaxiID]*taxicab.Taxi
	Queries map[query.QueryID]*query.Query

	Dispatcher *dispatch.Dispatcher
	Arrivals   []*query.Query // sorted ascending by Timestamp

	Log *log.Logger
}

// NewSimulation builds the index, map-matches every taxi start location and
// every query endpoint, and assembles a ready-to-Run Simulation.
func NewSimulation(cfg *Config, net *roadnet.RoadNetwork, taxiStarts map[taxicab.TaxiID]geo.Location, records []QueryRecord, simStart int64) *Simulation {
	idx := geoindex.NewSpatioTemporalDatabase(net, cfg.AverageSpeedMPS)
	idx.LoadRoadNetwork()
	idx.DetermineAnchors()
	idx.ComputeDistanceMatrix()
	idx.ConstructStaticLists()
	idx.InitDynamicInfo(simStart, taxiStarts)

	taxis := make(map[taxicab.TaxiID]*taxicab.Taxi, len(taxiStarts))
	for id, loc := range taxiStarts {
		vid, ok := idx.MapMatch(loc, net)
		if !ok {
			// A taxi whose spawn cell has no vertices cannot be placed on
			// the network; it is omitted from the fleet rather than
			// crashing the run, matching the EmptyCell error policy
			// (spec.md §7) applied to taxis instead of queries.
			continue
		}
		v, err := net.GetVertex(vid)
		if err != nil {
			continue
		}
		taxis[id] = taxicab.NewTaxi(id, v.Loc, cfg.AverageSpeedMPS, cfg.TaxiCapacity, vid)
	}

	queries := make(map[query.QueryID]*query.Query, len(records))
	arrivals := make([]*query.Query, 0, len(records))
	for i, rec := range records {
		qid := query.QueryID(i + 1)
		origin := geo.WithLocation(rec.OriLat, rec.OriLon, cfg.GeohashPrecision)
		dest := geo.WithLocation(rec.DesLat, rec.DesLon, cfg.GeohashPrecision)

		originVID, originOK := idx.MapMatch(origin, net)
		destVID, destOK := idx.MapMatch(dest, net)

		q := query.NewQuery(qid, rec.TimestampS, origin, dest, cfg.PatienceS, originVID, destVID, originOK, destOK)
		queries[qid] = q
		arrivals = append(arrivals, q)
	}
	sort.Slice(arrivals, func(i, j int) bool { return arrivals[i].Timestamp < arrivals[j].Timestamp })

	return &Simulation{
		Config:     cfg,
		Network:    net,
		Index:      idx,
		Taxis:      taxis,
		Queries:    queries,
		Dispatcher: dispatch.NewDispatcher(),
		Arrivals:   arrivals,
		Log:        log.New(os.Stdout, "citysim: ", log.LstdFlags),
	}
}

// Run executes spec.md §4.6's per-timestep loop for t in
// [SimStartSeconds, SimEndSeconds], in the exact five-step order: drain
// arrivals, drain failures, dispatch-or-record-cancellation, waiting-time
// accrual with patience expiry, then taxi motion.
func (s *Simulation) Run() (*Report, error) {
	simStart, err := s.Config.SimStartSeconds()
	if err != nil {
		return nil, err
	}
	simEnd, err := s.Config.SimEndSeconds()
	if err != nil {
		return nil, err
	}

	arrivalIdx := 0
	for t := simStart; t <= simEnd; t++ {
		var w []query.QueryID

		for arrivalIdx < len(s.Arrivals) && s.Arrivals[arrivalIdx].Timestamp == t {
			w = append(w, s.Arrivals[arrivalIdx].ID)
			arrivalIdx++
		}

		w = append(w, s.Dispatcher.DrainFailed()...)

		for _, qid := range w {
			q, ok := s.Queries[qid]
			if !ok {
				continue
			}
			if q.Status == query.Cancelled {
				s.Dispatcher.RecordCancellation(qid)
				s.Log.Printf("t=%d query=%d cancelled", t, qid)
				continue
			}
			if s.Dispatcher.Dispatch(t, q, s.Index, s.Network, s.Taxis) {
				s.Log.Printf("t=%d query=%d dispatched taxi=%d", t, qid, *q.MatchedTaxi)
			} else {
				s.Log.Printf("t=%d query=%d dispatch failed, retrying", t, qid)
			}
		}

		for _, q := range s.Queries {
			if q.Timestamp <= t && q.Status == query.Waiting {
				q.WaitingTime++
				if t > q.PickupWindow.Late {
					q.Transition(query.Cancelled)
				}
			}
		}

		for _, taxi := range s.Taxis {
			events, err := taxi.Step(float64(s.Config.TimeStep), t, s.Index, s.Network)
			if err != nil {
				return nil, err
			}
			for _, e := range events {
				switch ev := e.(type) {
				case taxicab.PickupEvent:
					s.Log.Printf("t=%d taxi=%d picked up query=%d", t, taxi.ID, ev.QueryID)
				case taxicab.DropoffEvent:
					s.Dispatcher.RecordCompletion(ev.QueryID)
					s.Log.Printf("t=%d taxi=%d dropped off query=%d", t, taxi.ID, ev.QueryID)
				case taxicab.StallEvent:
					s.Log.Printf("t=%d taxi=%d stalled (unreachable route)", t, taxi.ID)
				}
			}
		}
	}

	report := &Report{
		Completed: len(s.Dispatcher.Completed),
		Cancelled: len(s.Dispatcher.Cancelled),
		Failed:    len(s.Dispatcher.Failed),
		Tallies: map[string]int{
			"total_queries": len(s.Queries),
			"total_taxis":   len(s.Taxis),
		},
	}
	s.Log.Printf("run complete: completed=%d cancelled=%d still_failed=%d",
		report.Completed, report.Cancelled, report.Failed)

	return report, nil
}

// Command citysim runs the taxi-dispatch discrete-event simulator against a
// road network and query set loaded from CSV, per spec.md §6.
package main

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/roadnet"
	"github.com/taxidispatch/simulator/simulation"
	"github.com/taxidispatch/simulator/taxicab"
)

func main() {
	if err := run(); err != nil {
		log.Printf("citysim: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := simulation.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	vertices, err := simulation.LoadVertices(cfg.VerticesPath, cfg.GeohashPrecision)
	if err != nil {
		return fmt.Errorf("load vertices: %w", err)
	}

	edges, err := simulation.LoadEdges(cfg.EdgesPath)
	if err != nil {
		return fmt.Errorf("load edges: %w", err)
	}

	net := simulation.BuildNetwork(vertices, edges)

	simStart, err := cfg.SimStartSeconds()
	if err != nil {
		return fmt.Errorf("parse start time: %w", err)
	}
	simEnd, err := cfg.SimEndSeconds()
	if err != nil {
		return fmt.Errorf("parse end time: %w", err)
	}

	records, err := simulation.LoadQueries(cfg.QueriesDir, simStart, simEnd)
	if err != nil {
		return fmt.Errorf("load queries: %w", err)
	}

	taxiStarts := spawnTaxis(cfg.NumTaxi, vertices, cfg.GeohashPrecision)

	sim := simulation.NewSimulation(cfg, net, taxiStarts, records, simStart)
	report, err := sim.Run()
	if err != nil {
		return fmt.Errorf("run simulation: %w", err)
	}

	fmt.Printf("completed=%d cancelled=%d failed=%d\n", report.Completed, report.Cancelled, report.Failed)
	return nil
}

// spawnTaxis places count taxis round-robin across the loaded vertex set in
// ascending vertex-id order, a deterministic placeholder for whatever fleet-seeding policy an
// operator's real deployment configures externally.
func spawnTaxis(count int, vertices map[roadnet.VertexID]geo.Location, precision int) map[taxicab.TaxiID]geo.Location {
	if len(vertices) == 0 {
		return map[taxicab.TaxiID]geo.Location{}
	}

	ids := make([]roadnet.VertexID, 0, len(vertices))
	for id := range vertices {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })

	starts := make(map[taxicab.TaxiID]geo.Location, count)
	for i := 0; i < count; i++ {
		vid := ids[i%len(ids)]
		starts[taxicab.TaxiID(i+1)] = vertices[vid]
	}

	return starts
}

package simulation

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/roadnet"
)

// EdgeRecord is one row of edges.csv before it is wired into a RoadNetwork,
// kept separate so LoadEdges can be tested without a network.
type EdgeRecord struct {
	ID     roadnet.EdgeID
	From   roadnet.VertexID
	To     roadnet.VertexID
	Length float64
}

// QueryRecord is one parsed line of a queries/*.csv file, before map
// matching and window construction turn it into a *query.Query.
type QueryRecord struct {
	TimestampS int64
	OriLat     float64
	OriLon     float64
	DesLat     float64
	DesLon     float64
}

// LoadVertices parses vertices.csv (columns v_id, lat, lon) into a map of
// vertex id to Location, eagerly encoding each Location's geohash at
// precision. Returns InputMalformed-class errors (spec.md §7) on any
// non-numeric field; the caller must abort the run on error.
func LoadVertices(path string, precision int) (map[roadnet.VertexID]geo.Location, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("simulation: open vertices file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 3

	out := make(map[roadnet.VertexID]geo.Location)
	line := 0
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: malformed vertex row: %w", path, line, err)
		}

		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad v_id %q: %w", path, line, record[0], err)
		}
		lat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad lat %q: %w", path, line, record[1], err)
		}
		lon, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad lon %q: %w", path, line, record[2], err)
		}

		out[roadnet.VertexID(id)] = geo.WithLocation(lat, lon, precision)
	}

	log.Printf("simulation: loaded %d vertices from %s", len(out), path)
	return out, nil
}

// LoadEdges parses edges.csv (columns e_id, start_vid, end_vid, length).
func LoadEdges(path string) ([]EdgeRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("simulation: open edges file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 4

	var out []EdgeRecord
	line := 0
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: malformed edge row: %w", path, line, err)
		}

		id, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad e_id %q: %w", path, line, record[0], err)
		}
		from, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad start_vid %q: %w", path, line, record[1], err)
		}
		to, err := strconv.Atoi(record[2])
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad end_vid %q: %w", path, line, record[2], err)
		}
		length, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad length %q: %w", path, line, record[3], err)
		}

		out = append(out, EdgeRecord{
			ID:     roadnet.EdgeID(id),
			From:   roadnet.VertexID(from),
			To:     roadnet.VertexID(to),
			Length: length,
		})
	}

	log.Printf("simulation: loaded %d edges from %s", len(out), path)
	return out, nil
}

// BuildNetwork wires parsed vertices and edges into a RoadNetwork. Vertices
// must be loaded first so add_edge's auto-creation of missing endpoints
// (spec.md §9) never actually fires against real records.
func BuildNetwork(vertices map[roadnet.VertexID]geo.Location, edges []EdgeRecord) *roadnet.RoadNetwork {
	net := roadnet.NewRoadNetwork()
	for id, loc := range vertices {
		net.AddVertex(id, loc)
	}
	for _, e := range edges {
		net.AddEdge(e.ID, e.From, e.To, e.Length)
	}
	return net
}

// LoadQueries parses every *.csv file in dir, each line
// "HH:MM:SS,ori_lat,ori_lon,des_lat,des_lon". Timestamps convert to
// seconds-since-midnight plus one (spec.md §6); records outside
// [simStart, simEnd] are discarded rather than erroring, since a query
// file may legitimately span a wider day than one simulation window.
func LoadQueries(dir string, simStart, simEnd int64) ([]QueryRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("simulation: read queries dir: %w", err)
	}

	var out []QueryRecord
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".csv" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		records, err := loadQueryFile(path, simStart, simEnd)
		if err != nil {
			return nil, err
		}
		out = append(out, records...)
	}

	log.Printf("simulation: loaded %d queries from %s", len(out), dir)
	return out, nil
}

func loadQueryFile(path string, simStart, simEnd int64) ([]QueryRecord, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("simulation: open query file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = 5

	var out []QueryRecord
	line := 0
	for {
		line++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: malformed query row: %w", path, line, err)
		}

		ts, err := time.Parse("15:04:05", record[0])
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad HH:MM:SS %q: %w", path, line, record[0], err)
		}
		timestampS := int64(ts.Hour()*3600+ts.Minute()*60+ts.Second()) + 1

		if timestampS < simStart || timestampS > simEnd {
			continue
		}

		oriLat, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad ori_lat %q: %w", path, line, record[1], err)
		}
		oriLon, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad ori_lon %q: %w", path, line, record[2], err)
		}
		desLat, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad des_lat %q: %w", path, line, record[3], err)
		}
		desLon, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("simulation: %s:%d: bad des_lon %q: %w", path, line, record[4], err)
		}

		out = append(out, QueryRecord{
			TimestampS: timestampS,
			OriLat:     oriLat,
			OriLon:     oriLon,
			DesLat:     desLat,
			DesLon:     desLon,
		})
	}

	return out, nil
}

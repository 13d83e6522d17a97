package query

import (
	"errors"

	"github.com/taxidispatch/simulator/geo"
	"github.com/taxidispatch/simulator/roadnet"
)

// ErrEmptyTimeWindow indicates early > late in a TimeWindow.
var ErrEmptyTimeWindow = errors.New("query: time window early must be <= late")

// MaxInt is the sentinel used for a delivery window's open-ended late bound,
// matching spec.md §6's MAX_INT.
const MaxInt = int64(1<<63 - 1)

// QueryID uniquely identifies a ride request.
type QueryID int

// TaxiID mirrors taxicab.TaxiID without importing it, avoiding a cycle
// (taxicab references query, not the reverse). Both are defined as the
// same underlying int type as geoindex.TaxiID.
type TaxiID int

// TimeWindow is an inclusive [Early, Late] interval in integer seconds.
type TimeWindow struct {
	Early int64
	Late  int64
}

// NewTimeWindow validates Early <= Late and returns the window.
func NewTimeWindow(early, late int64) (TimeWindow, error) {
	if early > late {
		return TimeWindow{}, ErrEmptyTimeWindow
	}
	return TimeWindow{Early: early, Late: late}, nil
}

// Status is a query's position in its lifecycle.
type Status int

const (
	Waiting Status = iota
	Riding
	Satisfied
	Cancelled
)

// String renders Status for logging.
func (s Status) String() string {
	switch s {
	case Waiting:
		return "WAITING"
	case Riding:
		return "RIDING"
	case Satisfied:
		return "SATISFIED"
	case Cancelled:
		return "CANCELLED"
	default:
		return "UNKNOWN"
	}
}

// CanTransition reports whether moving from `from` to `to` is a legal
// lifecycle step: WAITING->RIDING, WAITING->CANCELLED, or RIDING->SATISFIED.
// All other pairs, including self-transitions, are illegal.
func CanTransition(from, to Status) bool {
	switch from {
	case Waiting:
		return to == Riding || to == Cancelled
	case Riding:
		return to == Satisfied
	default:
		return false
	}
}

// ScheduleNode is a pickup (IsOrigin=true) or dropoff obligation for a
// specific query, pinned to a specific road-network vertex. Valid is false
// when map-matching failed to find any vertex in the endpoint's cell
// (spec.md §7 EmptyCell); such a node can never be reached by a route and
// the owning query can only ever fail dispatch and eventually cancel.
type ScheduleNode struct {
	QueryID       QueryID
	IsOrigin      bool
	MatchedVertex roadnet.VertexID
	Valid         bool
}

// Query is one ride request: immutable origin/destination fields set at
// construction, plus mutable status/windows/waiting-time tracked across the
// simulation.
type Query struct {
	ID          QueryID
	Timestamp   int64
	Origin      geo.Location
	Destination geo.Location

	OriginNode ScheduleNode
	DestNode   ScheduleNode

	PickupWindow   TimeWindow
	DeliveryWindow TimeWindow

	MatchedTaxi *TaxiID
	Status      Status
	WaitingTime int64
}

// NewQuery builds a Query with its pickup window [timestamp,
// timestamp+patienceS] and an open-ended delivery window
// [timestamp, MaxInt], per spec.md §3. originVertex/destVertex and their
// validity come from the caller's map-match step.
func NewQuery(id QueryID, timestamp int64, origin, destination geo.Location, patienceS int64, originVertex, destVertex roadnet.VertexID, originValid, destValid bool) *Query {
	q := &Query{
		ID:          id,
		Timestamp:   timestamp,
		Origin:      origin,
		Destination: destination,
		PickupWindow: TimeWindow{
			Early: timestamp,
			Late:  timestamp + patienceS,
		},
		DeliveryWindow: TimeWindow{
			Early: timestamp,
			Late:  MaxInt,
		},
		Status: Waiting,
	}
	q.OriginNode = ScheduleNode{QueryID: id, IsOrigin: true, MatchedVertex: originVertex, Valid: originValid}
	q.DestNode = ScheduleNode{QueryID: id, IsOrigin: false, MatchedVertex: destVertex, Valid: destValid}

	return q
}

// Transition attempts to move the query to newStatus, returning false
// without mutating Status if the transition is illegal.
func (q *Query) Transition(newStatus Status) bool {
	if !CanTransition(q.Status, newStatus) {
		return false
	}
	q.Status = newStatus
	return true
}

// Package query defines the ride-request data model: immutable origin and
// destination, mutable pickup/delivery windows, lifecycle status, and the
// map-matched ScheduleNode pair a dispatched query contributes to its
// matched taxi's schedule.
//
// Status transitions are monotone: WAITING -> RIDING -> SATISFIED, or
// WAITING -> CANCELLED. No other transition is legal; CanTransition is the
// single source of truth callers should consult before mutating Status.
package query

// Package dispatch implements the matching of ride requests to taxis: a
// single-side candidate search anchored at the query's origin cell,
// filtering to taxis predicted to reach it within the pickup window,
// selection by great-circle distance to the origin (preferring Available
// taxis over the first candidate, which is taken even when not Available),
// and schedule insertion with route recomputation.
//
// Dispatch is attempted at most once per call; a failed attempt enqueues
// the query for retry on a later timestep via the simulation driver, which
// drains Dispatcher.Failed each step and dispatches those queries after
// that step's new arrivals.
package dispatch

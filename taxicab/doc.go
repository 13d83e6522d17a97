// Package taxicab implements the taxi state/motion model: position and edge
// state, the schedule queue of pickup/dropoff obligations, per-timestep
// motion along the current route, and the pickup/dropoff transitions fired
// when a schedule node is reached.
//
// A taxi is Available only when NumRiders is below Capacity AND its
// schedule is non-empty, so a freshly spawned taxi is not Available.
// Dispatch's selection still takes the first candidate when no Available
// candidate is closer, so such a taxi can be dispatched that way.
// simulation seeds every taxi with an empty schedule at startup; it does
// not pre-seed a synthetic schedule entry.
package taxicab

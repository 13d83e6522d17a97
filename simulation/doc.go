// Package simulation is the external-collaborator layer spec.md §6
// describes only by contract: CSV loading of vertices/edges/queries,
// environment-backed configuration, the per-timestep driver that
// orchestrates roadnet/geoindex/query/taxicab/dispatch, and console
// reporting of dispatch decisions and final tallies.
package simulation

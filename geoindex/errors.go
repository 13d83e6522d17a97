package geoindex

import "errors"

var (
	// ErrCellNotFound indicates a lookup for a geohash cell absent from the database.
	ErrCellNotFound = errors.New("geoindex: cell not found")

	// ErrEmptyCell indicates map-matching was attempted against a cell with no vertices.
	ErrEmptyCell = errors.New("geoindex: cell has no vertices to map-match against")
)

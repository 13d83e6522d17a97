package geoindex

import (
	"encoding/gob"
	"fmt"
	"io"
)

// SaveMatrix serializes the computed distance matrix to w via encoding/gob.
// This is the cacheable artifact of spec.md §6: the matrix depends only on
// the road network and avgSpeedMPS, not on taxi or query state, so it may be
// computed once and reloaded across runs against the same network.
func (db *SpatioTemporalDatabase) SaveMatrix(w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(db.Matrix); err != nil {
		return fmt.Errorf("geoindex: encode matrix: %w", err)
	}
	return nil
}

// LoadMatrix deserializes a previously saved distance matrix. Callers must
// call ConstructStaticLists afterward to rebuild the sorted neighbor lists
// from the loaded matrix, since SaveMatrix/LoadMatrix round-trips only the
// raw MatrixCell data.
func LoadMatrix(r io.Reader) (map[string]map[string]MatrixCell, error) {
	var matrix map[string]map[string]MatrixCell
	if err := gob.NewDecoder(r).Decode(&matrix); err != nil {
		return nil, fmt.Errorf("geoindex: decode matrix: %w", err)
	}
	return matrix, nil
}

// Package jsonstore loads a full station catalog, including metadata and
// harmonic epochs, from a single JSON file.
package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/go-playground/validator/v10"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/domain"
)

// StationStore holds stations parsed and validated at construction time.
// The backing file is read once; the store never mutates afterwards.
type StationStore struct {
	byID map[string]domain.Station
}

// NewStationStore reads and validates a stations JSON file: a top-level
// array of station objects with embedded constituent lists.
func NewStationStore(path string) (*StationStore, error) {
	//nolint:gosec // G304: Path comes from configuration.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stations file: %w", err)
	}

	var stations []domain.Station
	if err := json.Unmarshal(b, &stations); err != nil {
		return nil, fmt.Errorf("parse stations file %s: %w", path, err)
	}
	if len(stations) == 0 {
		return nil, fmt.Errorf("stations file %s contains no stations", path)
	}

	validate := validator.New()
	byID := make(map[string]domain.Station, len(stations))
	for _, st := range stations {
		if err := validate.Struct(st); err != nil {
			return nil, fmt.Errorf("invalid station %q: %w", st.ID, err)
		}
		if _, dup := byID[st.ID]; dup {
			return nil, fmt.Errorf("duplicate station id %q", st.ID)
		}
		byID[st.ID] = st
	}

	return &StationStore{byID: byID}, nil
}

// LoadStation returns the named station.
func (s *StationStore) LoadStation(stationID string) (domain.Station, error) {
	st, ok := s.byID[stationID]
	if !ok {
		return domain.Station{}, fmt.Errorf("unknown station %q", stationID)
	}
	return st, nil
}

// ListStations returns the available station IDs, sorted.
func (s *StationStore) ListStations() ([]string, error) {
	ids := make([]string, 0, len(s.byID))
	for id := range s.byID {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

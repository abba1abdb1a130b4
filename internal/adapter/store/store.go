// Package store defines how station harmonic constants enter the engine.
// All loaders are read-at-startup: stations are immutable once loaded.
package store

import "github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/domain"

// StationLoader loads station harmonic constants from an external source.
type StationLoader interface {
	// LoadStation loads the named station with its harmonic constants.
	LoadStation(stationID string) (domain.Station, error)

	// ListStations returns the available station IDs.
	ListStations() ([]string, error)
}

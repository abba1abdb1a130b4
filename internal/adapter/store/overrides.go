package store

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/domain"
)

// ConstituentOverride replaces or adds one harmonic constant of a station.
type ConstituentOverride struct {
	Symbol     string  `json:"symbol"`
	AmplitudeM float64 `json:"amplitude_m"`
	PhaseDeg   float64 `json:"phase_deg"`
}

// StationOverride is a per-station correction applied after loading: a datum
// relabel and constituent amendments from a newer harmonic analysis.
type StationOverride struct {
	StationID    string                `json:"station_id"`
	Datum        string                `json:"datum,omitempty"`
	Constituents []ConstituentOverride `json:"constituents"`
}

// OverrideLoader decorates a StationLoader with corrections from a JSON
// overrides file. Stations without an entry pass through untouched.
type OverrideLoader struct {
	inner     StationLoader
	overrides map[string]StationOverride
}

// NewOverrideLoader reads the overrides file and wraps the inner loader.
func NewOverrideLoader(inner StationLoader, path string) (*OverrideLoader, error) {
	//nolint:gosec // G304: Path comes from configuration.
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read overrides file: %w", err)
	}

	var entries []StationOverride
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("parse overrides file %s: %w", path, err)
	}

	overrides := make(map[string]StationOverride, len(entries))
	for _, e := range entries {
		if e.StationID == "" {
			return nil, fmt.Errorf("override entry without station_id in %s", path)
		}
		overrides[e.StationID] = e
	}

	return &OverrideLoader{inner: inner, overrides: overrides}, nil
}

// LoadStation loads the station from the inner loader and applies its
// override, if any. Matching symbols are replaced; new symbols are appended.
func (l *OverrideLoader) LoadStation(stationID string) (domain.Station, error) {
	station, err := l.inner.LoadStation(stationID)
	if err != nil {
		return domain.Station{}, err
	}

	override, ok := l.overrides[stationID]
	if !ok {
		return station, nil
	}

	if override.Datum != "" {
		station.Datum = override.Datum
	}

	index := make(map[string]int, len(station.Constituents))
	for i, c := range station.Constituents {
		index[c.Symbol] = i
	}

	adjusted := make([]domain.HarmonicConstant, len(station.Constituents))
	copy(adjusted, station.Constituents)

	for _, ov := range override.Constituents {
		if ov.AmplitudeM < 0 {
			return domain.Station{}, fmt.Errorf("override for station %s: negative amplitude for %s", stationID, ov.Symbol)
		}
		constant := domain.HarmonicConstant{
			Symbol:     ov.Symbol,
			AmplitudeM: ov.AmplitudeM,
			PhaseDeg:   wrapPhase(ov.PhaseDeg),
		}
		if i, ok := index[ov.Symbol]; ok {
			adjusted[i] = constant
			continue
		}
		adjusted = append(adjusted, constant)
	}

	station.Constituents = adjusted
	return station, nil
}

// ListStations delegates to the inner loader.
func (l *OverrideLoader) ListStations() ([]string, error) {
	return l.inner.ListStations()
}

func wrapPhase(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

// Package csv provides CSV-based station constituent loading. Each station
// is a file of (constituent, amplitude_m, phase_deg) rows.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/domain"
)

const fileSuffix = "_constituents.csv"

// StationStore reads station harmonic constants from per-station CSV files
// in a data directory.
type StationStore struct {
	dataDir string
}

// NewStationStore creates a CSV-based station store.
func NewStationStore(dataDir string) *StationStore {
	return &StationStore{dataDir: dataDir}
}

// LoadStation loads the constants for a named station from
// <dataDir>/<id>_constituents.csv. Symbols are not checked against the
// catalog here; unknown symbols surface as prediction warnings instead.
func (s *StationStore) LoadStation(stationID string) (domain.Station, error) {
	filename := filepath.Join(s.dataDir, strings.ToLower(stationID)+fileSuffix)

	//nolint:gosec // G304: Path built from configured dataDir and a station ID.
	file, err := os.Open(filename)
	if err != nil {
		return domain.Station{}, fmt.Errorf("open constituents for station %s: %w", stationID, err)
	}
	defer func() { _ = file.Close() }()

	constituents, err := readConstituents(file)
	if err != nil {
		return domain.Station{}, fmt.Errorf("station %s: %w", stationID, err)
	}

	return domain.Station{
		ID:           stationID,
		Name:         stationID,
		Datum:        "MSL",
		Constituents: constituents,
	}, nil
}

func readConstituents(r io.Reader) ([]domain.HarmonicConstant, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}

	expected := []string{"constituent", "amplitude_m", "phase_deg"}
	if len(header) != len(expected) {
		return nil, fmt.Errorf("invalid CSV header: expected %v, got %v", expected, header)
	}
	for i, h := range header {
		if strings.TrimSpace(h) != expected[i] {
			return nil, fmt.Errorf("invalid CSV header: column %d should be %s, got %s", i, expected[i], h)
		}
	}

	constituents := make([]domain.HarmonicConstant, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV record: %w", err)
		}
		if len(record) != 3 {
			return nil, fmt.Errorf("invalid CSV record: expected 3 columns, got %d", len(record))
		}

		symbol := strings.TrimSpace(record[0])

		amplitude, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid amplitude for constituent %s: %w", symbol, err)
		}
		if amplitude < 0 {
			return nil, fmt.Errorf("negative amplitude %.4f for constituent %s", amplitude, symbol)
		}

		phase, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid phase for constituent %s: %w", symbol, err)
		}

		constituents = append(constituents, domain.HarmonicConstant{
			Symbol:     symbol,
			AmplitudeM: amplitude,
			PhaseDeg:   wrapPhase(phase),
		})
	}

	if len(constituents) == 0 {
		return nil, errors.New("no constituents in CSV")
	}
	return constituents, nil
}

// ListStations returns the station IDs with a constituents file in the data
// directory.
func (s *StationStore) ListStations() ([]string, error) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		return nil, fmt.Errorf("read data directory: %w", err)
	}

	stations := make([]string, 0)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, fileSuffix) {
			stations = append(stations, strings.TrimSuffix(name, fileSuffix))
		}
	}
	return stations, nil
}

// wrapPhase normalizes a phase lag to [0, 360) degrees.
func wrapPhase(deg float64) float64 {
	for deg < 0 {
		deg += 360
	}
	for deg >= 360 {
		deg -= 360
	}
	return deg
}

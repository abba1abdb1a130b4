// Package main generates synthetic demo stations for local development: a
// set of per-station constituent CSV files plus a combined JSON catalog, so
// the server and CLI have data to serve out of the box.
package main

import (
	"encoding/csv"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/domain"
)

// baseAmplitudes anchor each demo station to a plausible mix: M2 dominant,
// the other majors scaled roughly as coastal Atlantic stations show.
var baseAmplitudes = map[string]float64{
	"M2":  1.00,
	"S2":  0.33,
	"N2":  0.20,
	"K2":  0.09,
	"K1":  0.14,
	"O1":  0.10,
	"P1":  0.05,
	"Q1":  0.02,
	"M4":  0.04,
	"MS4": 0.02,
	"MF":  0.02,
	"SA":  0.08,
}

func main() {
	outDir := flag.String("out", "./data", "Output directory")
	count := flag.Int("count", 3, "Number of demo stations")
	seed := flag.Int64("seed", 1, "Random seed")
	scaleMin := flag.Float64("scale-min", 0.5, "Minimum station range scale")
	scaleMax := flag.Float64("scale-max", 2.5, "Maximum station range scale")
	flag.Parse()

	if *count < 1 {
		log.Fatalf("count must be at least 1, got %d", *count)
	}
	if *scaleMin <= 0 || *scaleMax < *scaleMin {
		log.Fatalf("invalid scale range [%g, %g]", *scaleMin, *scaleMax)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		log.Fatalf("create output directory: %v", err)
	}

	catalog := domain.StandardCatalog()
	rng := rand.New(rand.NewSource(*seed))

	stations := make([]domain.Station, 0, *count)
	for i := 0; i < *count; i++ {
		st := generateStation(i, catalog, rng, *scaleMin, *scaleMax)
		stations = append(stations, st)

		path := filepath.Join(*outDir, strings.ToLower(st.ID)+"_constituents.csv")
		if err := writeStationCSV(path, st); err != nil {
			log.Fatalf("write %s: %v", path, err)
		}
		log.Printf("wrote %s (%d constituents)", path, len(st.Constituents))
	}

	jsonPath := filepath.Join(*outDir, "stations.json")
	if err := writeStationsJSON(jsonPath, stations); err != nil {
		log.Fatalf("write %s: %v", jsonPath, err)
	}
	log.Printf("wrote %s (%d stations)", jsonPath, len(stations))
}

func generateStation(i int, catalog *domain.Catalog, rng *rand.Rand, scaleMin, scaleMax float64) domain.Station {
	scale := scaleMin + rng.Float64()*(scaleMax-scaleMin)

	constituents := make([]domain.HarmonicConstant, 0, len(baseAmplitudes))
	for _, def := range catalog.Definitions() {
		base, ok := baseAmplitudes[def.Symbol]
		if !ok {
			continue
		}
		// Jitter keeps the stations distinct without breaking realism.
		amp := base * scale * (0.85 + 0.3*rng.Float64())
		constituents = append(constituents, domain.HarmonicConstant{
			Symbol:     def.Symbol,
			AmplitudeM: math.Round(amp*1000) / 1000,
			PhaseDeg:   math.Round(rng.Float64()*3600) / 10,
		})
	}

	return domain.Station{
		ID:           fmt.Sprintf("demo-%02d", i+1),
		Name:         fmt.Sprintf("Demo Station %02d", i+1),
		Lat:          math.Round((rng.Float64()*140-70)*100) / 100,
		Lon:          math.Round((rng.Float64()*360-180)*100) / 100,
		Datum:        "MSL",
		Constituents: constituents,
	}
}

func writeStationCSV(path string, st domain.Station) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	writer := csv.NewWriter(file)
	if err := writer.Write([]string{"constituent", "amplitude_m", "phase_deg"}); err != nil {
		return err
	}
	for _, c := range st.Constituents {
		record := []string{
			c.Symbol,
			strconv.FormatFloat(c.AmplitudeM, 'f', 3, 64),
			strconv.FormatFloat(c.PhaseDeg, 'f', 1, 64),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func writeStationsJSON(path string, stations []domain.Station) error {
	b, err := json.MarshalIndent(stations, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

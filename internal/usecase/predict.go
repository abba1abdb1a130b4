package usecase

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/adapter/store"
	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/domain"
)

// Caps keep a single request from monopolizing the server: the visualizer
// never needs more than a year of data or sub-minute cadence.
const (
	minInterval = time.Minute
	maxInterval = 6 * time.Hour
	maxDuration = 365 * 24 * time.Hour
	maxPoints   = 100000
)

// PredictionRequest encapsulates a tide prediction request.
type PredictionRequest struct {
	StationID string

	// Time range, inclusive on both ends.
	Start time.Time
	End   time.Time

	// Sampling cadence for the series.
	Interval time.Duration

	// Optional restriction to a subset of the station's constituents.
	// Empty means all constituents.
	Constituents []string

	// Workers for parallel sampling. Zero or one means sequential.
	Workers int
}

// Validate checks the request bounds before any work is done.
func (r *PredictionRequest) Validate() error {
	if r.StationID == "" {
		return fmt.Errorf("station_id must be provided")
	}
	// start == end is a single-point series, matching the sampler.
	if r.Start.After(r.End) {
		return fmt.Errorf("start time must not be after end time")
	}
	if r.Interval < minInterval {
		return fmt.Errorf("interval must be at least 1 minute")
	}
	if r.Interval > maxInterval {
		return fmt.Errorf("interval must be at most 6 hours")
	}

	duration := r.End.Sub(r.Start)
	if duration > maxDuration {
		return fmt.Errorf("time range must be at most 365 days")
	}
	if numPoints := int(duration/r.Interval) + 1; numPoints > maxPoints {
		return fmt.Errorf("too many prediction points (%d): reduce time range or increase interval", numPoints)
	}

	return nil
}

// PredictionPoint is a single timestamped height in a response.
type PredictionPoint struct {
	Time    string  `json:"time"`
	HeightM float64 `json:"height_m"`
}

// ExtremaResponse groups the detected highs and lows.
type ExtremaResponse struct {
	Highs []PredictionPoint `json:"highs"`
	Lows  []PredictionPoint `json:"lows"`
}

// PredictionResponse contains the tide prediction results.
type PredictionResponse struct {
	StationID    string            `json:"station_id"`
	Datum        string            `json:"datum"`
	Timezone     string            `json:"timezone"`
	Constituents []string          `json:"constituents"`
	Predictions  []PredictionPoint `json:"predictions"`
	Extrema      ExtremaResponse   `json:"extrema"`
	Warnings     []domain.Warning  `json:"warnings,omitempty"`
	Meta         map[string]string `json:"meta"`
}

// PredictionUseCase orchestrates station loading, sampling, and extrema
// detection for the HTTP and CLI surfaces.
type PredictionUseCase struct {
	stations  store.StationLoader
	predictor *domain.Predictor
}

// NewPredictionUseCase creates a prediction use case over a station loader.
func NewPredictionUseCase(stations store.StationLoader) *PredictionUseCase {
	return &PredictionUseCase{
		stations:  stations,
		predictor: domain.NewPredictor(domain.StandardCatalog()),
	}
}

// Execute runs a full series prediction: validates the request, loads the
// station, samples the tide curve, and locates the highs and lows.
func (uc *PredictionUseCase) Execute(ctx context.Context, req PredictionRequest) (*PredictionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	station, err := uc.stations.LoadStation(req.StationID)
	if err != nil {
		return nil, fmt.Errorf("load station %s: %w", req.StationID, err)
	}

	if len(req.Constituents) > 0 {
		station = restrictStation(station, req.Constituents)
	}

	var series []domain.TidePoint
	var warnings []domain.Warning
	if req.Workers > 1 {
		series, warnings, err = uc.predictor.PredictSeriesParallel(ctx, station, req.Start, req.End, req.Interval, req.Workers)
	} else {
		series, warnings, err = uc.predictor.PredictSeries(ctx, station, req.Start, req.End, req.Interval)
	}
	if err != nil {
		return nil, fmt.Errorf("predict series for station %s: %w", req.StationID, err)
	}

	extremes := domain.FindExtremes(series)

	points := make([]PredictionPoint, len(series))
	for i, p := range series {
		points[i] = toPoint(p.Time, p.HeightM)
	}

	var highs, lows []PredictionPoint
	for _, e := range extremes {
		pt := toPoint(e.Time, e.HeightM)
		if e.Kind == domain.ExtremeHigh {
			highs = append(highs, pt)
		} else {
			lows = append(lows, pt)
		}
	}

	datum := station.Datum
	if datum == "" {
		datum = "MSL"
	}

	return &PredictionResponse{
		StationID:    station.ID,
		Datum:        datum,
		Timezone:     "+00:00",
		Constituents: station.Symbols(),
		Predictions:  points,
		Extrema:      ExtremaResponse{Highs: highs, Lows: lows},
		Warnings:     warnings,
		Meta: map[string]string{
			"model": "harmonic_v1",
		},
	}, nil
}

// SingleHeightResponse is the instantaneous height at one time.
type SingleHeightResponse struct {
	StationID string           `json:"station_id"`
	Time      string           `json:"time"`
	HeightM   float64          `json:"height_m"`
	Warnings  []domain.Warning `json:"warnings,omitempty"`
}

// SingleHeight predicts the height at a single instant, optionally for a
// constituent subset.
func (uc *PredictionUseCase) SingleHeight(stationID string, at time.Time, symbols []string) (*SingleHeightResponse, error) {
	station, err := uc.stations.LoadStation(stationID)
	if err != nil {
		return nil, fmt.Errorf("load station %s: %w", stationID, err)
	}

	var height float64
	var warnings []domain.Warning
	if len(symbols) > 0 {
		height, warnings, err = uc.predictor.PredictSubset(station, at, symbols)
	} else {
		height, warnings, err = uc.predictor.Predict(station, at)
	}
	if err != nil {
		return nil, err
	}

	return &SingleHeightResponse{
		StationID: station.ID,
		Time:      at.UTC().Format(time.RFC3339),
		HeightM:   roundToDecimal(height, 3),
		Warnings:  domain.DedupeWarnings(warnings),
	}, nil
}

// ConstituentContribution is one constituent's isolated curve in a
// decomposition, with the combined total for comparison.
type ConstituentContribution struct {
	Symbol string            `json:"symbol"`
	Points []PredictionPoint `json:"points"`
}

// DecompositionResponse shows how individual constituents stack into the
// combined tide, the core view of the visualizer.
type DecompositionResponse struct {
	StationID     string                    `json:"station_id"`
	Contributions []ConstituentContribution `json:"contributions"`
	Combined      []PredictionPoint         `json:"combined"`
	Warnings      []domain.Warning          `json:"warnings,omitempty"`
}

// Decomposition samples each requested constituent in isolation plus the
// combined curve over the same grid. Empty symbols means every constituent
// the station carries.
func (uc *PredictionUseCase) Decomposition(ctx context.Context, req PredictionRequest) (*DecompositionResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("invalid request: %w", err)
	}

	station, err := uc.stations.LoadStation(req.StationID)
	if err != nil {
		return nil, fmt.Errorf("load station %s: %w", req.StationID, err)
	}

	symbols := req.Constituents
	if len(symbols) == 0 {
		symbols = station.Symbols()
	}

	var warnings []domain.Warning
	contributions := make([]ConstituentContribution, 0, len(symbols))
	for _, sym := range symbols {
		single := restrictStation(station, []string{sym})
		series, w, err := uc.predictor.PredictSeries(ctx, single, req.Start, req.End, req.Interval)
		warnings = append(warnings, w...)
		if err != nil {
			return nil, fmt.Errorf("decompose %s for station %s: %w", sym, req.StationID, err)
		}
		points := make([]PredictionPoint, len(series))
		for i, p := range series {
			points[i] = toPoint(p.Time, p.HeightM)
		}
		contributions = append(contributions, ConstituentContribution{Symbol: sym, Points: points})
	}

	combinedStation := restrictStation(station, symbols)
	combined, w, err := uc.predictor.PredictSeries(ctx, combinedStation, req.Start, req.End, req.Interval)
	warnings = append(warnings, w...)
	if err != nil {
		return nil, fmt.Errorf("predict combined series for station %s: %w", req.StationID, err)
	}
	combinedPoints := make([]PredictionPoint, len(combined))
	for i, p := range combined {
		combinedPoints[i] = toPoint(p.Time, p.HeightM)
	}

	return &DecompositionResponse{
		StationID:     station.ID,
		Contributions: contributions,
		Combined:      combinedPoints,
		Warnings:      domain.DedupeWarnings(warnings),
	}, nil
}

// SpringNeapEntry is one day of the spring-neap calendar.
type SpringNeapEntry struct {
	Date  string  `json:"date"`
	Index float64 `json:"index"`
	Phase string  `json:"phase"`
}

// SpringNeapCalendar evaluates the spring-neap index at daily noon over the
// given range. The phase label is a coarse bucket for display.
func (uc *PredictionUseCase) SpringNeapCalendar(start, end time.Time) ([]SpringNeapEntry, error) {
	if start.After(end) {
		return []SpringNeapEntry{}, nil
	}
	if end.Sub(start) > maxDuration {
		return nil, fmt.Errorf("time range must be at most 365 days")
	}

	var entries []SpringNeapEntry
	day := time.Date(start.Year(), start.Month(), start.Day(), 12, 0, 0, 0, time.UTC)
	// An afternoon start skips its own day rather than sampling before start.
	if day.Before(start) {
		day = day.AddDate(0, 0, 1)
	}
	for !day.After(end) {
		idx := domain.SpringNeapIndex(day)
		entries = append(entries, SpringNeapEntry{
			Date:  day.Format("2006-01-02"),
			Index: roundToDecimal(idx, 3),
			Phase: springNeapPhase(idx),
		})
		day = day.AddDate(0, 0, 1)
	}
	return entries, nil
}

func springNeapPhase(idx float64) string {
	switch {
	case idx >= 0.7:
		return "spring"
	case idx <= -0.7:
		return "neap"
	default:
		return "intermediate"
	}
}

// ListStations returns the available station IDs.
func (uc *PredictionUseCase) ListStations() ([]string, error) {
	return uc.stations.ListStations()
}

// Catalog exposes the constituent catalog for the listing surfaces.
func (uc *PredictionUseCase) Catalog() *domain.Catalog {
	return uc.predictor.Catalog()
}

func restrictStation(station domain.Station, symbols []string) domain.Station {
	keep := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		keep[s] = struct{}{}
	}
	restricted := station
	restricted.Constituents = make([]domain.HarmonicConstant, 0, len(symbols))
	for _, c := range station.Constituents {
		if _, ok := keep[c.Symbol]; ok {
			restricted.Constituents = append(restricted.Constituents, c)
		}
	}
	return restricted
}

func toPoint(t time.Time, height float64) PredictionPoint {
	return PredictionPoint{
		Time:    t.UTC().Format(time.RFC3339),
		HeightM: roundToDecimal(height, 3),
	}
}

func roundToDecimal(val float64, precision int) float64 {
	multiplier := math.Pow(10, float64(precision))
	return math.Round(val*multiplier) / multiplier
}

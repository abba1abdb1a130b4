package usecase

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/cjw6k/tidal-harmonics-visualizer-sub001/internal/domain"
)

// ExportRequest describes a CSV export of a sampled tide curve.
type ExportRequest struct {
	PredictionRequest

	// IncludeExtremes appends high/low rows after the series when set.
	IncludeExtremes bool
}

// ExportCSV samples the station's tide and writes it as CSV. Series rows are
// (time, height_m, kind="") and extreme rows carry kind HIGH or LOW, so one
// file holds both the curve and its turning points. Warnings collected while
// sampling are returned so callers can report them next to the output; the
// CSV itself carries only data rows.
func (uc *PredictionUseCase) ExportCSV(ctx context.Context, req ExportRequest, w io.Writer) ([]domain.Warning, error) {
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
		return warnings, fmt.Errorf("predict series for station %s: %w", req.StationID, err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"time", "height_m", "kind"}); err != nil {
		return warnings, fmt.Errorf("write CSV header: %w", err)
	}

	for _, p := range series {
		record := []string{
			p.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(roundToDecimal(p.HeightM, 3), 'f', 3, 64),
			"",
		}
		if err := writer.Write(record); err != nil {
			return warnings, fmt.Errorf("write CSV record: %w", err)
		}
	}

	if req.IncludeExtremes {
		for _, e := range domain.FindExtremes(series) {
			record := []string{
				e.Time.UTC().Format(time.RFC3339),
				strconv.FormatFloat(roundToDecimal(e.HeightM, 3), 'f', 3, 64),
				string(e.Kind),
			}
			if err := writer.Write(record); err != nil {
				return warnings, fmt.Errorf("write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return warnings, fmt.Errorf("flush CSV: %w", err)
	}
	return warnings, nil
}

// ExportedPoint is one row read back from an exported CSV file.
type ExportedPoint struct {
	Time    time.Time
	HeightM float64
	Kind    string
}

// ReadExportedCSV parses a file produced by ExportCSV, for tooling that
// post-processes exports.
func ReadExportedCSV(r io.Reader) ([]ExportedPoint, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read CSV header: %w", err)
	}
	if len(header) != 3 || header[0] != "time" || header[1] != "height_m" || header[2] != "kind" {
		return nil, fmt.Errorf("unexpected CSV header %v", header)
	}

	var points []ExportedPoint
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV record: %w", err)
		}

		at, err := time.Parse(time.RFC3339, record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid time %q: %w", record[0], err)
		}
		height, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid height %q: %w", record[1], err)
		}

		points = append(points, ExportedPoint{Time: at, HeightM: height, Kind: record[2]})
	}
	return points, nil
}

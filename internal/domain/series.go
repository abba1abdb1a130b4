package domain

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrInvalidInterval is returned when a series is requested with a
// non-positive sampling interval.
var ErrInvalidInterval = errors.New("sampling interval must be positive")

// PredictSeries samples the station's tide from start to end inclusive at a
// fixed cadence. A start after end yields an empty series (not an error);
// start equal to end yields a single point. Each point is computed
// independently; nothing is memoized between calls.
//
// Per-point non-finite failures are skipped in the output and reported via
// the joined error, so the rest of the batch still succeeds. The context is
// checked every iteration so long exports can be cancelled cleanly.
func (p *Predictor) PredictSeries(ctx context.Context, station Station, start, end time.Time, interval time.Duration) ([]TidePoint, []Warning, error) {
	if interval <= 0 {
		return nil, nil, ErrInvalidInterval
	}
	if start.After(end) {
		return []TidePoint{}, nil, nil
	}

	points := make([]TidePoint, 0, end.Sub(start)/interval+1)
	var warnings []Warning
	var pointErrs []error

	for t := start; !t.After(end); t = t.Add(interval) {
		if err := ctx.Err(); err != nil {
			return points, DedupeWarnings(warnings), err
		}

		height, w, err := p.Predict(station, t)
		warnings = append(warnings, w...)
		if err != nil {
			pointErrs = append(pointErrs, err)
			continue
		}
		points = append(points, TidePoint{Time: t, HeightM: height})
	}

	return points, DedupeWarnings(warnings), errors.Join(pointErrs...)
}

// PredictSeriesParallel is PredictSeries evaluated across a bounded worker
// pool. Points are independent, so the only ordering obligation is the
// final re-sort into ascending time before the series is handed to extrema
// detection or export consumers.
func (p *Predictor) PredictSeriesParallel(ctx context.Context, station Station, start, end time.Time, interval time.Duration, workers int) ([]TidePoint, []Warning, error) {
	if interval <= 0 {
		return nil, nil, ErrInvalidInterval
	}
	if start.After(end) {
		return []TidePoint{}, nil, nil
	}
	if workers < 1 {
		workers = 1
	}

	var stamps []time.Time
	for t := start; !t.After(end); t = t.Add(interval) {
		stamps = append(stamps, t)
	}

	type pointResult struct {
		point TidePoint
		ok    bool
	}

	results := make([]pointResult, len(stamps))
	indexes := make(chan int)

	var mu sync.Mutex
	var warnings []Warning
	var pointErrs []error

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				height, warns, err := p.Predict(station, stamps[i])
				mu.Lock()
				warnings = append(warnings, warns...)
				if err != nil {
					pointErrs = append(pointErrs, err)
				}
				mu.Unlock()
				if err != nil {
					continue
				}
				results[i] = pointResult{point: TidePoint{Time: stamps[i], HeightM: height}, ok: true}
			}
		}()
	}

	var cancelled error
feed:
	for i := range stamps {
		select {
		case <-ctx.Done():
			cancelled = ctx.Err()
			break feed
		case indexes <- i:
		}
	}
	close(indexes)
	wg.Wait()

	points := make([]TidePoint, 0, len(stamps))
	for _, r := range results {
		if r.ok {
			points = append(points, r.point)
		}
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Time.Before(points[j].Time)
	})

	if cancelled != nil {
		return points, DedupeWarnings(warnings), fmt.Errorf("series sampling cancelled: %w", cancelled)
	}
	return points, DedupeWarnings(warnings), errors.Join(pointErrs...)
}

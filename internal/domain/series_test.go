package domain

import (
	"context"
	"testing"
	"time"
)

// TestPredictSeries_CountAndCadence checks the sampler hits start and end
// inclusive at the requested interval.
func TestPredictSeries_CountAndCadence(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	st := m2OnlyStation()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	interval := 30 * time.Minute

	series, _, err := p.PredictSeries(context.Background(), st, start, end, interval)
	if err != nil {
		t.Fatal(err)
	}

	if len(series) != 5 {
		t.Fatalf("expected 5 points, got %d", len(series))
	}
	for i, pt := range series {
		expected := start.Add(time.Duration(i) * interval)
		if !pt.Time.Equal(expected) {
			t.Errorf("point %d: expected time %v, got %v", i, expected, pt.Time)
		}
	}
}

// TestPredictSeries_InvalidRange: start after end is an empty series, not
// an error, so batch callers stay simple.
func TestPredictSeries_InvalidRange(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	series, warnings, err := p.PredictSeries(context.Background(), m2OnlyStation(), start, end, 10*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series) != 0 {
		t.Errorf("expected empty series, got %d points", len(series))
	}
	if len(warnings) != 0 {
		t.Errorf("expected no warnings, got %v", warnings)
	}
}

// TestPredictSeries_SingleInstant: start equal to end yields exactly one
// point.
func TestPredictSeries_SingleInstant(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	at := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	series, _, err := p.PredictSeries(context.Background(), m2OnlyStation(), at, at, 10*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 1 {
		t.Fatalf("expected 1 point, got %d", len(series))
	}
	if !series[0].Time.Equal(at) {
		t.Errorf("expected time %v, got %v", at, series[0].Time)
	}
}

func TestPredictSeries_BadInterval(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	at := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	if _, _, err := p.PredictSeries(context.Background(), m2OnlyStation(), at, at.Add(time.Hour), 0); err == nil {
		t.Error("expected error for zero interval")
	}
}

// TestPredictSeriesParallel_MatchesSequential: parallel evaluation computes
// the exact same per-point values and returns them in ascending time order.
func TestPredictSeriesParallel_MatchesSequential(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	st := multiStation()

	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(48 * time.Hour)
	interval := 10 * time.Minute

	seq, seqWarn, err := p.PredictSeries(context.Background(), st, start, end, interval)
	if err != nil {
		t.Fatal(err)
	}
	par, parWarn, err := p.PredictSeriesParallel(context.Background(), st, start, end, interval, 4)
	if err != nil {
		t.Fatal(err)
	}

	if len(seq) != len(par) {
		t.Fatalf("length mismatch: sequential %d, parallel %d", len(seq), len(par))
	}
	for i := range seq {
		if !seq[i].Time.Equal(par[i].Time) {
			t.Fatalf("point %d: time mismatch %v vs %v", i, seq[i].Time, par[i].Time)
		}
		if seq[i].HeightM != par[i].HeightM {
			t.Errorf("point %d: height mismatch %.17g vs %.17g", i, seq[i].HeightM, par[i].HeightM)
		}
	}
	if len(seqWarn) != len(parWarn) {
		t.Errorf("warning count mismatch: %d vs %d", len(seqWarn), len(parWarn))
	}
}

// TestPredictSeries_Cancellation: an already-cancelled context aborts the
// batch with the context error.
func TestPredictSeries_Cancellation(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	st := m2OnlyStation()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, _, err := p.PredictSeries(ctx, st, start, start.Add(24*time.Hour), time.Minute)
	if err == nil {
		t.Error("expected cancellation error")
	}

	_, _, err = p.PredictSeriesParallel(ctx, st, start, start.Add(24*time.Hour), time.Minute, 4)
	if err == nil {
		t.Error("expected cancellation error from parallel sampler")
	}
}

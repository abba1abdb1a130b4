package domain

import (
	"context"
	"math"
	"testing"
	"time"
)

func m2OnlyStation() Station {
	return Station{
		ID:    "test-m2",
		Name:  "M2 only",
		Datum: "MSL",
		Constituents: []HarmonicConstant{
			{Symbol: "M2", AmplitudeM: 1.0, PhaseDeg: 0.0},
		},
	}
}

func multiStation() Station {
	return Station{
		ID:    "test-multi",
		Name:  "Multi constituent",
		Datum: "MLLW",
		Constituents: []HarmonicConstant{
			{Symbol: "M2", AmplitudeM: 1.10, PhaseDeg: 152.3},
			{Symbol: "S2", AmplitudeM: 0.38, PhaseDeg: 180.1},
			{Symbol: "N2", AmplitudeM: 0.22, PhaseDeg: 137.9},
			{Symbol: "K1", AmplitudeM: 0.41, PhaseDeg: 96.4},
			{Symbol: "O1", AmplitudeM: 0.25, PhaseDeg: 82.0},
			{Symbol: "M4", AmplitudeM: 0.04, PhaseDeg: 301.5},
		},
	}
}

// TestPredict_Deterministic: identical inputs must return bit-identical
// output, with no hidden state between calls.
func TestPredict_Deterministic(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	st := multiStation()
	at := time.Date(2025, 7, 4, 17, 30, 0, 0, time.UTC)

	h1, _, err1 := p.Predict(st, at)
	h2, _, err2 := p.Predict(st, at)
	if err1 != nil || err2 != nil {
		t.Fatalf("unexpected errors: %v, %v", err1, err2)
	}
	if h1 != h2 {
		t.Errorf("non-deterministic prediction: %.17g vs %.17g", h1, h2)
	}
}

// TestPredictSubset_FullAgreement: the subset predictor over the complete
// symbol list must agree with the full prediction.
func TestPredictSubset_FullAgreement(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	st := multiStation()
	at := time.Date(2024, 11, 20, 3, 15, 0, 0, time.UTC)

	full, _, err := p.Predict(st, at)
	if err != nil {
		t.Fatal(err)
	}
	subset, _, err := p.PredictSubset(st, at, st.Symbols())
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(full-subset) > 1e-9 {
		t.Errorf("subset over full list disagrees: full=%.12f subset=%.12f", full, subset)
	}
}

// TestPredictSubset_Empty: an empty subset is defined as zero height.
func TestPredictSubset_Empty(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	at := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	h, warnings, err := p.PredictSubset(multiStation(), at, []string{})
	if err != nil {
		t.Fatal(err)
	}
	if h != 0 {
		t.Errorf("empty subset: expected 0, got %.10f", h)
	}
	if len(warnings) != 0 {
		t.Errorf("empty subset: expected no warnings, got %v", warnings)
	}
}

// TestPredict_SingleConstituentPeriodicity: an M2-only station must repeat
// with the M2 period, peak near its amplitude, and invert at half period.
func TestPredict_SingleConstituentPeriodicity(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	st := m2OnlyStation()

	m2PeriodHours := 360.0 / 28.9841042
	period := time.Duration(m2PeriodHours * float64(time.Hour))

	// Locate a high water near the start of 2025.
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	series, _, err := p.PredictSeries(context.Background(), st, start, start.Add(24*time.Hour), 6*time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	extremes := FindExtremes(series)
	if len(extremes) == 0 {
		t.Fatal("no extremes found for M2-only station")
	}

	var peak TideExtreme
	for _, e := range extremes {
		if e.Kind == ExtremeHigh {
			peak = e
			break
		}
	}
	if peak.Kind != ExtremeHigh {
		t.Fatal("no high water found")
	}

	// The peak height is the amplitude scaled by the nodal factor f, which
	// stays within a few percent of unity.
	if math.Abs(peak.HeightM-1.0) > 0.05 {
		t.Errorf("M2 peak height %.4f, expected ~1.0", peak.HeightM)
	}

	hPeak, _, err := p.Predict(st, peak.Time)
	if err != nil {
		t.Fatal(err)
	}

	for k := 1; k <= 3; k++ {
		at := peak.Time.Add(time.Duration(k) * period)
		h, _, err := p.Predict(st, at)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(h-hPeak) > 1e-3 {
			t.Errorf("k=%d periods after peak: height %.6f, expected %.6f", k, h, hPeak)
		}
	}

	half, _, err := p.Predict(st, peak.Time.Add(period/2))
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(half-(-hPeak)) > 1e-3 {
		t.Errorf("half period after peak: height %.6f, expected %.6f", half, -hPeak)
	}
}

// TestPredict_UnknownConstituentWarns: symbols absent from the catalog are
// skipped with a warning, and the remaining contributions still sum.
func TestPredict_UnknownConstituentWarns(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	at := time.Date(2025, 5, 5, 12, 0, 0, 0, time.UTC)

	known := m2OnlyStation()
	withUnknown := known
	withUnknown.Constituents = append([]HarmonicConstant{
		{Symbol: "ZZ9", AmplitudeM: 0.5, PhaseDeg: 10},
	}, known.Constituents...)

	hKnown, _, err := p.Predict(known, at)
	if err != nil {
		t.Fatal(err)
	}
	h, warnings, err := p.Predict(withUnknown, at)
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(h-hKnown) > 1e-12 {
		t.Errorf("unknown constituent altered height: %.12f vs %.12f", h, hKnown)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnUnknownConstituent || warnings[0].Symbol != "ZZ9" {
		t.Errorf("expected one unknown_constituent warning for ZZ9, got %v", warnings)
	}
}

// TestPredict_MissingNodalFormulaWarns: M1 has no tabulated nodal formula
// and must produce a warning, not an error.
func TestPredict_MissingNodalFormulaWarns(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	st := Station{
		ID: "test-m1",
		Constituents: []HarmonicConstant{
			{Symbol: "M1", AmplitudeM: 0.05, PhaseDeg: 45},
		},
	}

	_, warnings, err := p.Predict(st, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 1 || warnings[0].Kind != WarnMissingNodalFormula {
		t.Errorf("expected one missing_nodal_formula warning, got %v", warnings)
	}
}

// TestPredict_NonFinite: corrupt inputs must fail per-point with an error
// rather than leaking NaN/Inf into consumers.
func TestPredict_NonFinite(t *testing.T) {
	p := NewPredictor(StandardCatalog())
	st := Station{
		ID: "test-inf",
		Constituents: []HarmonicConstant{
			{Symbol: "M2", AmplitudeM: math.Inf(1), PhaseDeg: 0},
		},
	}

	_, _, err := p.Predict(st, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	if err == nil {
		t.Error("expected error for non-finite height")
	}
}

func TestDedupeWarnings(t *testing.T) {
	in := []Warning{
		unknownConstituentWarning("ZZ9"),
		missingNodalFormulaWarning("M1"),
		unknownConstituentWarning("ZZ9"),
		unknownConstituentWarning("ZZ9"),
	}
	out := DedupeWarnings(in)
	if len(out) != 2 {
		t.Fatalf("expected 2 deduped warnings, got %d", len(out))
	}
	if out[0].Symbol != "ZZ9" || out[1].Symbol != "M1" {
		t.Errorf("dedupe did not preserve first-seen order: %v", out)
	}
}

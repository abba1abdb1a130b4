package domain

import (
	"math"
	"time"
)

// ExtremeKind marks a tide extreme as a high or low water event.
type ExtremeKind string

const (
	ExtremeHigh ExtremeKind = "HIGH"
	ExtremeLow  ExtremeKind = "LOW"
)

// TideExtreme is a located high or low tide event with its refined
// (sub-sample) time and height.
type TideExtreme struct {
	Time    time.Time
	HeightM float64
	Kind    ExtremeKind
}

// FindExtremes locates high and low tides in a time-ordered series. A
// sample is a candidate when it tops (or bottoms) both neighbors in a
// sliding three-point window; each candidate is refined by fitting a
// quadratic through the window and solving for the vertex, so the reported
// time and height are sub-sample accurate. Boundary samples are never
// reported, the output strictly alternates high/low, and a flat series
// yields an empty list.
func FindExtremes(series []TidePoint) []TideExtreme {
	if len(series) < 3 {
		return []TideExtreme{}
	}

	// Candidate detection. Strict comparison against the previous sample
	// keeps plateaus (including a fully flat series) from producing runs of
	// duplicate candidates.
	type candidate struct {
		index int
		kind  ExtremeKind
	}
	var candidates []candidate
	for i := 1; i < len(series)-1; i++ {
		prev := series[i-1].HeightM
		curr := series[i].HeightM
		next := series[i+1].HeightM

		switch {
		case curr > prev && curr >= next:
			candidates = append(candidates, candidate{index: i, kind: ExtremeHigh})
		case curr < prev && curr <= next:
			candidates = append(candidates, candidate{index: i, kind: ExtremeLow})
		}
	}

	// Enforce alternation: within a run of same-kind candidates keep only
	// the most extreme one.
	var kept []candidate
	for _, c := range candidates {
		if len(kept) == 0 || kept[len(kept)-1].kind != c.kind {
			kept = append(kept, c)
			continue
		}
		last := &kept[len(kept)-1]
		if c.kind == ExtremeHigh && series[c.index].HeightM > series[last.index].HeightM {
			*last = c
		}
		if c.kind == ExtremeLow && series[c.index].HeightM < series[last.index].HeightM {
			*last = c
		}
	}

	extremes := make([]TideExtreme, 0, len(kept))
	for _, c := range kept {
		refinedTime, refinedHeight := refineVertex(series[c.index-1], series[c.index], series[c.index+1])
		extremes = append(extremes, TideExtreme{
			Time:    refinedTime,
			HeightM: refinedHeight,
			Kind:    c.kind,
		})
	}
	return extremes
}

// refineVertex fits a quadratic through three consecutive samples and
// returns its vertex. This materially improves accuracy relative to the
// sampling interval: the grid point can be off by half an interval while
// the vertex is off by a small fraction of it. Falls back to the middle
// sample for non-uniform spacing or a degenerate (near-linear) fit.
func refineVertex(before, peak, after TidePoint) (time.Time, float64) {
	dt1 := peak.Time.Sub(before.Time).Hours()
	dt2 := after.Time.Sub(peak.Time).Hours()

	if dt1 <= 0 || math.Abs(dt1-dt2) > 1e-6 {
		return peak.Time, peak.HeightM
	}

	h0, h1, h2 := before.HeightM, peak.HeightM, after.HeightM

	// y(x) = a*x^2 + b*x + h1 with x in hours from the middle sample;
	// vertex at x = -b / (2a).
	a := (h2 - 2*h1 + h0) / (2 * dt1 * dt1)
	b := (h2 - h0) / (2 * dt1)

	if math.Abs(a) < 1e-10 {
		return peak.Time, peak.HeightM
	}

	xv := -b / (2 * a)
	if math.Abs(xv) > dt1 {
		return peak.Time, peak.HeightM
	}

	refinedTime := peak.Time.Add(time.Duration(xv * float64(time.Hour)))
	refinedHeight := h1 + b*xv + a*xv*xv
	return refinedTime, refinedHeight
}

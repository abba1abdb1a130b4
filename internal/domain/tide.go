package domain

import (
	"fmt"
	"math"
	"time"
)

// TidePoint is a single predicted water level at a specific time, in meters
// relative to the station's datum.
type TidePoint struct {
	Time    time.Time
	HeightM float64
}

// WarningKind identifies a non-fatal prediction defect.
type WarningKind string

const (
	// WarnUnknownConstituent marks a station symbol absent from the catalog;
	// its contribution is skipped.
	WarnUnknownConstituent WarningKind = "unknown_constituent"
	// WarnMissingNodalFormula marks a constituent with no tabulated (f, u)
	// formula; identity corrections are used.
	WarnMissingNodalFormula WarningKind = "missing_nodal_formula"
)

// Warning records a non-fatal defect encountered while predicting. Warnings
// accumulate and are reported alongside results; a partially correct tide
// curve is more useful than a hard abort.
type Warning struct {
	Kind    WarningKind `json:"kind"`
	Symbol  string      `json:"symbol"`
	Message string      `json:"message"`
}

func unknownConstituentWarning(symbol string) Warning {
	return Warning{
		Kind:    WarnUnknownConstituent,
		Symbol:  symbol,
		Message: fmt.Sprintf("constituent %s is not in the catalog; contribution skipped", symbol),
	}
}

func missingNodalFormulaWarning(symbol string) Warning {
	return Warning{
		Kind:    WarnMissingNodalFormula,
		Symbol:  symbol,
		Message: fmt.Sprintf("no nodal correction formula for %s; using f=1, u=0", symbol),
	}
}

// DedupeWarnings collapses repeated warnings (the same kind and symbol recur
// on every sample of a batch) preserving first-seen order.
func DedupeWarnings(warnings []Warning) []Warning {
	if len(warnings) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(warnings))
	out := make([]Warning, 0, len(warnings))
	for _, w := range warnings {
		key := string(w.Kind) + "|" + w.Symbol
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, w)
	}
	return out
}

// Predictor superposes a station's constituents into instantaneous heights.
// It holds only immutable shared data (the catalog and its resolver), so
// every method is a pure function of its arguments and safe to call
// concurrently.
type Predictor struct {
	catalog  *Catalog
	resolver *EquilibriumArgumentResolver
}

// NewPredictor creates a predictor over a constituent catalog.
func NewPredictor(catalog *Catalog) *Predictor {
	return &Predictor{
		catalog:  catalog,
		resolver: NewEquilibriumArgumentResolver(catalog),
	}
}

// Catalog returns the catalog the predictor was built over.
func (p *Predictor) Catalog() *Catalog {
	return p.catalog
}

// Predict computes the tide height at t by summing all of the station's
// constituent contributions:
//
//	h(t) = sum f_k * A_k * cos(V_k(t) + u_k - kappa_k)
//
// where V_k is the equilibrium argument from the continuous astronomical
// arguments and (f_k, u_k) the nodal corrections. Unknown symbols and
// missing nodal formulas are reported as warnings, never as errors; a
// non-finite result fails with a descriptive error.
func (p *Predictor) Predict(station Station, t time.Time) (float64, []Warning, error) {
	return p.predict(station, t, nil)
}

// PredictSubset is Predict restricted to the given constituent symbols. An
// empty subset yields zero height (no displacement from datum). When the
// subset covers the station's full list the result equals Predict exactly.
func (p *Predictor) PredictSubset(station Station, t time.Time, symbols []string) (float64, []Warning, error) {
	subset := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		subset[s] = struct{}{}
	}
	return p.predict(station, t, subset)
}

func (p *Predictor) predict(station Station, t time.Time, subset map[string]struct{}) (float64, []Warning, error) {
	args := CalculateArguments(t)

	height := 0.0
	var warnings []Warning

	for _, c := range station.Constituents {
		if subset != nil {
			if _, keep := subset[c.Symbol]; !keep {
				continue
			}
		}

		def, ok := p.catalog.Lookup(c.Symbol)
		if !ok {
			warnings = append(warnings, unknownConstituentWarning(c.Symbol))
			continue
		}

		v := p.resolver.EquilibriumArgument(def, args)
		corr, known := p.resolver.Correction(def, args)
		if !known {
			warnings = append(warnings, missingNodalFormulaWarning(c.Symbol))
		}

		// Wrap only at the trig boundary; v itself is continuous.
		phase := WrapDeg(v + corr.U - c.PhaseDeg)
		height += corr.F * c.AmplitudeM * math.Cos(Deg2Rad(phase))
	}

	if math.IsNaN(height) || math.IsInf(height, 0) {
		return 0, warnings, fmt.Errorf("non-finite height for station %s at %s", station.ID, t.UTC().Format(time.RFC3339))
	}

	return height, warnings, nil
}

package domain

import "time"

// HarmonicConstant is one measured (symbol, amplitude, phase lag) triple of
// a station's harmonic analysis. Amplitude is in meters relative to the
// station datum; the phase lag kappa is in degrees, normalized to [0, 360).
type HarmonicConstant struct {
	Symbol     string  `json:"symbol" validate:"required"`
	AmplitudeM float64 `json:"amplitude_m" validate:"gte=0"`
	PhaseDeg   float64 `json:"phase_deg" validate:"gte=0,lt=360"`
}

// HarmonicEpoch is the date range the station's constants were fit over.
type HarmonicEpoch struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Station holds a station's identity, location, datum, and harmonic
// constants. Stations are loaded once at startup and never mutated; a
// prediction is a pure function of (station, catalog, instant).
type Station struct {
	ID            string             `json:"id" validate:"required"`
	Name          string             `json:"name"`
	Lat           float64            `json:"lat" validate:"gte=-90,lte=90"`
	Lon           float64            `json:"lon" validate:"gte=-180,lte=180"`
	Datum         string             `json:"datum"`
	HarmonicEpoch HarmonicEpoch      `json:"harmonic_epoch"`
	Constituents  []HarmonicConstant `json:"constituents" validate:"dive"`
}

// Symbols returns the station's constituent symbols in listed order.
func (s Station) Symbols() []string {
	out := make([]string, len(s.Constituents))
	for i, c := range s.Constituents {
		out[i] = c.Symbol
	}
	return out
}

package domain

import (
	"math"
	"time"
)

// SynodicFortnightDays is the period of the spring/neap cycle: the beat
// between the principal lunar (M2) and solar (S2) semidiurnal constituents.
const SynodicFortnightDays = 14.765

// SpringNeapIndex returns the phase alignment of the two dominant
// semidiurnal constituents at t, normalized to [-1, +1]: +1 when M2 and S2
// are in phase (spring tide, maximal range), -1 at quadrature (neap tide,
// minimal range). It is purely astronomical and needs no station data.
//
// The equilibrium arguments differ by V_S2 - V_M2 = 2(s - h) (Doodson rows
// (2,2,-2,0,0,0) and (2,0,0,0,0,0)), which advances one full cycle per
// synodic fortnight (~14.77 days).
func SpringNeapIndex(t time.Time) float64 {
	args := CalculateArguments(t)
	delta := 2.0 * (args.S - args.H)
	return math.Cos(Deg2Rad(WrapDeg(delta)))
}

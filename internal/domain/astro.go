// Package domain implements the harmonic tide prediction engine:
// astronomical arguments, the constituent catalog, equilibrium arguments and
// nodal corrections, constituent superposition, series sampling, extrema
// detection, and the spring/neap index.
package domain

import (
	"math"
	"time"
)

// j2000 is the reference epoch for the astronomical argument polynomials:
// 2000-01-01 12:00:00 UTC (JD 2451545.0).
var j2000 = time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)

// AstronomicalArguments holds the six fundamental astronomical arguments at
// an instant, in degrees. Values are continuous (never wrapped to [0,360))
// so that phase differences stay numerically well-behaved across long time
// spans; wrapping happens only immediately before a trigonometric
// evaluation.
type AstronomicalArguments struct {
	Tau    float64 // Mean lunar time.
	S      float64 // Mean longitude of the Moon.
	H      float64 // Mean longitude of the Sun.
	P      float64 // Mean longitude of lunar perigee.
	Nprime float64 // Negated longitude of the lunar ascending node.
	Pprime float64 // Mean longitude of solar perigee (perihelion).
}

// NodeLongitude returns the longitude of the lunar ascending node N in
// degrees. The nodal correction formulas are written in terms of N, whose
// regression drives the 18.6-year modulation cycle.
func (a AstronomicalArguments) NodeLongitude() float64 {
	return -a.Nprime
}

// JulianCenturies returns the elapsed time from J2000.0 in Julian centuries.
func JulianCenturies(t time.Time) float64 {
	return t.Sub(j2000).Hours() / 24.0 / 36525.0
}

// CalculateArguments evaluates the fundamental astronomical arguments at t
// using the standard polynomial approximations (Schureman 1958; Meeus 1998).
// The output is continuous: each argument advances smoothly at its
// documented rate (s ~360°/27.32 d, h ~360°/365.24 d, p ~360°/8.85 y,
// N ~-360°/18.61 y), with no discontinuities introduced here.
func CalculateArguments(t time.Time) AstronomicalArguments {
	T := JulianCenturies(t)

	// Mean longitude of the Moon.
	s := 218.3164477 + 481267.88123421*T - 0.0015786*T*T + T*T*T/538841.0 - T*T*T*T/65194000.0

	// Mean longitude of the Sun.
	h := 280.46646 + 36000.76983*T + 0.0003032*T*T

	// Mean longitude of lunar perigee.
	p := 83.3532465 + 4069.0137287*T - 0.0103200*T*T - T*T*T/80053.0 + T*T*T*T/18999000.0

	// Mean longitude of the lunar ascending node.
	N := 125.04452 - 1934.136261*T + 0.0020708*T*T + T*T*T/450000.0

	// Mean longitude of solar perigee.
	ps := 282.94 + 1.7192*T

	// Mean lunar time: the hour angle of the mean Moon plus 180°. J2000 is a
	// noon epoch, so the mean solar time angle there is 180° exactly.
	hoursUT := t.Sub(j2000).Hours()
	tau := 180.0 + 15.0*hoursUT + h - s

	return AstronomicalArguments{
		Tau:    tau,
		S:      s,
		H:      h,
		P:      p,
		Nprime: -N,
		Pprime: ps,
	}
}

// WrapDeg normalizes an angle to [0, 360) degrees. Used only at trig
// evaluation sites; the arguments themselves stay continuous.
func WrapDeg(deg float64) float64 {
	deg = math.Mod(deg, 360.0)
	if deg < 0 {
		deg += 360.0
	}
	return deg
}

// Deg2Rad converts degrees to radians.
func Deg2Rad(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// Rad2Deg converts radians to degrees.
func Rad2Deg(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

package domain

import "math"

// nodalTag selects the (f, u) formula variant for a constituent. The
// correction tables reduce to a small closed set of variants: sine/cosine
// series in the node longitude N for the major lunar groups, identity for
// solar constituents, a p-dependent Schureman formula for L2, and products
// of parent corrections for compound shallow-water constituents.
type nodalTag int

const (
	nodalNone nodalTag = iota
	nodalM2
	nodalK2
	nodalK1
	nodalO1
	nodalJ1
	nodalOO1
	nodalMf
	nodalMm
	nodalL2
	nodalCompound
	// nodalMissing marks a catalog symbol with no tabulated formula; it
	// resolves to identity and raises a MissingNodalFormula warning.
	nodalMissing
)

// NodalCorrection is the slowly varying amplitude factor f (dimensionless)
// and phase correction u (degrees) of a constituent at a date. Both vary on
// the 18.6-year nodal cycle.
type NodalCorrection struct {
	F float64
	U float64
}

// identityCorrection is the fallback when no formula is tabulated.
var identityCorrection = NodalCorrection{F: 1, U: 0}

type seriesTerm struct {
	k int
	c float64
}

// nodalSeries expresses f and u as truncated Fourier series in N:
// f = f0 + sum c*cos(kN), u = sum c*sin(kN). Coefficients are Schureman's
// (1958) table values.
type nodalSeries struct {
	f0   float64
	fCos []seriesTerm
	uSin []seriesTerm
}

var nodalSeriesByTag = map[nodalTag]nodalSeries{
	nodalM2: {
		f0:   1.0004,
		fCos: []seriesTerm{{1, -0.0373}, {2, 0.0002}},
		uSin: []seriesTerm{{1, -2.14}},
	},
	nodalK2: {
		f0:   1.0241,
		fCos: []seriesTerm{{1, 0.2863}, {2, 0.0083}, {3, -0.0015}},
		uSin: []seriesTerm{{1, -17.74}, {2, 0.68}, {3, -0.04}},
	},
	nodalK1: {
		f0:   1.0060,
		fCos: []seriesTerm{{1, 0.1150}, {2, -0.0088}, {3, 0.0006}},
		uSin: []seriesTerm{{1, -8.86}, {2, 0.68}, {3, -0.07}},
	},
	nodalO1: {
		f0:   1.0089,
		fCos: []seriesTerm{{1, 0.1871}, {2, -0.0147}, {3, 0.0014}},
		uSin: []seriesTerm{{1, 10.80}, {2, -1.34}, {3, 0.19}},
	},
	nodalJ1: {
		f0:   1.0129,
		fCos: []seriesTerm{{1, 0.1676}, {2, -0.0170}, {3, 0.0016}},
		uSin: []seriesTerm{{1, -12.94}, {2, 1.34}, {3, -0.19}},
	},
	nodalOO1: {
		f0:   1.1027,
		fCos: []seriesTerm{{1, 0.6504}, {2, 0.0317}, {3, -0.0014}},
		uSin: []seriesTerm{{1, -36.11}, {2, 4.56}, {3, -0.57}},
	},
	nodalMf: {
		f0:   1.0429,
		fCos: []seriesTerm{{1, 0.4135}, {2, -0.0040}},
		uSin: []seriesTerm{{1, -23.74}, {2, 2.68}, {3, -0.38}},
	},
	nodalMm: {
		f0:   1.0000,
		fCos: []seriesTerm{{1, -0.1300}, {2, 0.0013}},
	},
}

func (s nodalSeries) eval(nDeg float64) NodalCorrection {
	nRad := Deg2Rad(nDeg)
	f := s.f0
	for _, t := range s.fCos {
		f += t.c * math.Cos(float64(t.k)*nRad)
	}
	u := 0.0
	for _, t := range s.uSin {
		u += t.c * math.Sin(float64(t.k)*nRad)
	}
	return NodalCorrection{F: f, U: u}
}

// EquilibriumArgumentResolver computes per-constituent equilibrium phases
// V and nodal corrections (f, u) for a date. It holds only a reference to
// the immutable catalog, so resolution is a pure function of its inputs.
type EquilibriumArgumentResolver struct {
	catalog *Catalog
}

// NewEquilibriumArgumentResolver creates a resolver over a catalog.
func NewEquilibriumArgumentResolver(catalog *Catalog) *EquilibriumArgumentResolver {
	return &EquilibriumArgumentResolver{catalog: catalog}
}

// EquilibriumArgument returns the equilibrium argument V in degrees for def
// at the given astronomical arguments: the Doodson-number dot product with
// (tau, s, h, p, N', p') plus the constituent's phase offset. The result is
// continuous, mirroring the arguments themselves.
func (r *EquilibriumArgumentResolver) EquilibriumArgument(def *ConstituentDefinition, args AstronomicalArguments) float64 {
	n := def.Doodson
	return float64(n[0])*args.Tau +
		float64(n[1])*args.S +
		float64(n[2])*args.H +
		float64(n[3])*args.P +
		float64(n[4])*args.Nprime +
		float64(n[5])*args.Pprime +
		def.PhaseOffsetDeg
}

// Correction returns the nodal correction (f, u) for def at the given
// astronomical arguments. The second return value reports whether a
// tabulated formula exists: when false the identity correction is returned
// and the caller should record a MissingNodalFormula warning.
func (r *EquilibriumArgumentResolver) Correction(def *ConstituentDefinition, args AstronomicalArguments) (NodalCorrection, bool) {
	switch def.nodal {
	case nodalNone:
		return identityCorrection, true
	case nodalMissing:
		return identityCorrection, false
	case nodalL2:
		return l2Correction(args), true
	case nodalCompound:
		return r.compoundCorrection(def, args)
	default:
		series, ok := nodalSeriesByTag[def.nodal]
		if !ok {
			return identityCorrection, false
		}
		return series.eval(args.NodeLongitude()), true
	}
}

// compoundCorrection derives (f, u) from the constituent's parents:
// f = prod f_parent^|factor|, u = sum factor*u_parent. Parents with no
// tabulated formula propagate the missing flag.
func (r *EquilibriumArgumentResolver) compoundCorrection(def *ConstituentDefinition, args AstronomicalArguments) (NodalCorrection, bool) {
	f := 1.0
	u := 0.0
	known := true
	for _, parent := range def.parents {
		pdef, ok := r.catalog.Lookup(parent.Symbol)
		if !ok {
			return identityCorrection, false
		}
		pc, pcKnown := r.Correction(pdef, args)
		if !pcKnown {
			known = false
		}
		f *= math.Pow(pc.F, math.Abs(parent.Factor))
		u += parent.Factor * pc.U
	}
	return NodalCorrection{F: f, U: u}, known
}

// l2Correction evaluates Schureman's L2 formulas (eqs. 213-216), which
// depend on the lunar perigee p as well as the node. I is the inclination
// of the lunar orbit to the equator; P = p - xi with xi recovered from the
// M2 phase series (u_M2 = 2(xi - nu)).
func l2Correction(args AstronomicalArguments) NodalCorrection {
	nDeg := args.NodeLongitude()
	nRad := Deg2Rad(nDeg)

	cosI := 0.91370 - 0.03569*math.Cos(nRad)
	i := math.Acos(cosI)
	nu := math.Asin(0.08978 * math.Sin(nRad) / math.Sin(i))

	m2 := nodalSeriesByTag[nodalM2].eval(nDeg)
	xi := nu + Deg2Rad(m2.U)/2.0

	pRad := Deg2Rad(args.P)
	twoP := 2.0 * (pRad - xi)
	tanHalfI := math.Tan(i / 2.0)
	t2 := tanHalfI * tanHalfI

	inverseRa := math.Sqrt(1.0 - 12.0*t2*math.Cos(twoP) + 36.0*t2*t2)
	rRad := math.Atan2(math.Sin(twoP), 1.0/(6.0*t2)-math.Cos(twoP))

	return NodalCorrection{
		F: m2.F * inverseRa,
		U: m2.U - Rad2Deg(rRad),
	}
}

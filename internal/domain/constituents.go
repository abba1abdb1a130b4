package domain

import "fmt"

// Family classifies a constituent by the band of its angular speed.
type Family string

const (
	FamilySemidiurnal  Family = "semidiurnal"
	FamilyDiurnal      Family = "diurnal"
	FamilyLongPeriod   Family = "long-period"
	FamilyShallowWater Family = "shallow-water"
)

// ParentTerm references a parent constituent of a compound (shallow-water)
// constituent together with the signed factor its phase contributes. The
// nodal amplitude factor combines as f_parent^|Factor| and the phase
// correction as Factor*u_parent.
type ParentTerm struct {
	Symbol string
	Factor float64
}

// ConstituentDefinition is one entry of the static constituent catalog.
// The six Doodson numbers are the signed integer multipliers of the
// fundamental arguments (tau, s, h, p, N', p'); the tabulated speed is the
// time derivative of that combination in degrees per hour.
type ConstituentDefinition struct {
	Symbol         string
	Doodson        [6]int
	SpeedDegPerHr  float64
	Family         Family
	PhaseOffsetDeg float64 // Equilibrium-phase offset, a multiple of 90°.
	Description    string

	nodal   nodalTag
	parents []ParentTerm
}

// standardDefinitions is the classical catalog of harmonic constituents.
// Doodson numbers follow the (tau, s, h, p, N', p') basis; speeds are the
// NOAA tabulated values in degrees per hour.
var standardDefinitions = []ConstituentDefinition{
	// Semidiurnal.
	{Symbol: "M2", Doodson: [6]int{2, 0, 0, 0, 0, 0}, SpeedDegPerHr: 28.9841042, Family: FamilySemidiurnal, nodal: nodalM2, Description: "Principal lunar semidiurnal"},
	{Symbol: "S2", Doodson: [6]int{2, 2, -2, 0, 0, 0}, SpeedDegPerHr: 30.0000000, Family: FamilySemidiurnal, nodal: nodalNone, Description: "Principal solar semidiurnal"},
	{Symbol: "N2", Doodson: [6]int{2, -1, 0, 1, 0, 0}, SpeedDegPerHr: 28.4397295, Family: FamilySemidiurnal, nodal: nodalM2, Description: "Larger lunar elliptic semidiurnal"},
	{Symbol: "K2", Doodson: [6]int{2, 2, 0, 0, 0, 0}, SpeedDegPerHr: 30.0821373, Family: FamilySemidiurnal, nodal: nodalK2, Description: "Lunisolar semidiurnal"},
	{Symbol: "2N2", Doodson: [6]int{2, -2, 0, 2, 0, 0}, SpeedDegPerHr: 27.8953548, Family: FamilySemidiurnal, nodal: nodalM2, Description: "Lunar elliptic semidiurnal second order"},
	{Symbol: "MU2", Doodson: [6]int{2, -2, 2, 0, 0, 0}, SpeedDegPerHr: 27.9682084, Family: FamilySemidiurnal, nodal: nodalM2, Description: "Variational"},
	{Symbol: "NU2", Doodson: [6]int{2, -1, 2, -1, 0, 0}, SpeedDegPerHr: 28.5125831, Family: FamilySemidiurnal, nodal: nodalM2, Description: "Larger lunar evectional"},
	{Symbol: "LAM2", Doodson: [6]int{2, 1, -2, 1, 0, 0}, SpeedDegPerHr: 29.4556253, Family: FamilySemidiurnal, nodal: nodalM2, Description: "Smaller lunar evectional"},
	{Symbol: "L2", Doodson: [6]int{2, 1, 0, -1, 0, 0}, SpeedDegPerHr: 29.5284789, Family: FamilySemidiurnal, PhaseOffsetDeg: 180, nodal: nodalL2, Description: "Smaller lunar elliptic semidiurnal"},
	{Symbol: "T2", Doodson: [6]int{2, 2, -3, 0, 0, 1}, SpeedDegPerHr: 29.9589333, Family: FamilySemidiurnal, nodal: nodalNone, Description: "Larger solar elliptic"},
	{Symbol: "R2", Doodson: [6]int{2, 2, -1, 0, 0, -1}, SpeedDegPerHr: 30.0410667, Family: FamilySemidiurnal, PhaseOffsetDeg: 180, nodal: nodalNone, Description: "Smaller solar elliptic"},

	// Diurnal.
	{Symbol: "K1", Doodson: [6]int{1, 1, 0, 0, 0, 0}, SpeedDegPerHr: 15.0410686, Family: FamilyDiurnal, PhaseOffsetDeg: -90, nodal: nodalK1, Description: "Lunisolar diurnal"},
	{Symbol: "O1", Doodson: [6]int{1, -1, 0, 0, 0, 0}, SpeedDegPerHr: 13.9430356, Family: FamilyDiurnal, PhaseOffsetDeg: 90, nodal: nodalO1, Description: "Principal lunar diurnal"},
	{Symbol: "P1", Doodson: [6]int{1, 1, -2, 0, 0, 0}, SpeedDegPerHr: 14.9589314, Family: FamilyDiurnal, PhaseOffsetDeg: 90, nodal: nodalNone, Description: "Principal solar diurnal"},
	{Symbol: "Q1", Doodson: [6]int{1, -2, 0, 1, 0, 0}, SpeedDegPerHr: 13.3986609, Family: FamilyDiurnal, PhaseOffsetDeg: 90, nodal: nodalO1, Description: "Larger lunar elliptic diurnal"},
	{Symbol: "2Q1", Doodson: [6]int{1, -3, 0, 2, 0, 0}, SpeedDegPerHr: 12.8542862, Family: FamilyDiurnal, PhaseOffsetDeg: 90, nodal: nodalO1, Description: "Lunar elliptic diurnal second order"},
	{Symbol: "RHO1", Doodson: [6]int{1, -2, 2, -1, 0, 0}, SpeedDegPerHr: 13.4715145, Family: FamilyDiurnal, PhaseOffsetDeg: 90, nodal: nodalO1, Description: "Larger lunar evectional diurnal"},
	{Symbol: "M1", Doodson: [6]int{1, 0, 0, 1, 0, 0}, SpeedDegPerHr: 14.4966939, Family: FamilyDiurnal, PhaseOffsetDeg: -90, nodal: nodalMissing, Description: "Smaller lunar elliptic diurnal"},
	{Symbol: "J1", Doodson: [6]int{1, 2, 0, -1, 0, 0}, SpeedDegPerHr: 15.5854433, Family: FamilyDiurnal, PhaseOffsetDeg: -90, nodal: nodalJ1, Description: "Smaller lunar elliptic diurnal"},
	{Symbol: "OO1", Doodson: [6]int{1, 3, 0, 0, 0, 0}, SpeedDegPerHr: 16.1391017, Family: FamilyDiurnal, PhaseOffsetDeg: -90, nodal: nodalOO1, Description: "Lunar diurnal second order"},
	{Symbol: "S1", Doodson: [6]int{1, 1, -1, 0, 0, 0}, SpeedDegPerHr: 15.0000000, Family: FamilyDiurnal, nodal: nodalNone, Description: "Solar diurnal"},

	// Long period.
	{Symbol: "MM", Doodson: [6]int{0, 1, 0, -1, 0, 0}, SpeedDegPerHr: 0.5443747, Family: FamilyLongPeriod, nodal: nodalMm, Description: "Lunar monthly"},
	{Symbol: "MF", Doodson: [6]int{0, 2, 0, 0, 0, 0}, SpeedDegPerHr: 1.0980331, Family: FamilyLongPeriod, nodal: nodalMf, Description: "Lunisolar fortnightly"},
	{Symbol: "MSF", Doodson: [6]int{0, 2, -2, 0, 0, 0}, SpeedDegPerHr: 1.0158958, Family: FamilyLongPeriod, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: -1}}, Description: "Lunisolar synodic fortnightly"},
	{Symbol: "SA", Doodson: [6]int{0, 0, 1, 0, 0, 0}, SpeedDegPerHr: 0.0410686, Family: FamilyLongPeriod, nodal: nodalNone, Description: "Solar annual"},
	{Symbol: "SSA", Doodson: [6]int{0, 0, 2, 0, 0, 0}, SpeedDegPerHr: 0.0821373, Family: FamilyLongPeriod, nodal: nodalNone, Description: "Solar semiannual"},

	// Shallow water (compound / overtide).
	{Symbol: "M3", Doodson: [6]int{3, 0, 0, 0, 0, 0}, SpeedDegPerHr: 43.4761563, Family: FamilyShallowWater, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 1.5}}, Description: "Lunar terdiurnal"},
	{Symbol: "M4", Doodson: [6]int{4, 0, 0, 0, 0, 0}, SpeedDegPerHr: 57.9682084, Family: FamilyShallowWater, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 2}}, Description: "Shallow water overtide of M2"},
	{Symbol: "M6", Doodson: [6]int{6, 0, 0, 0, 0, 0}, SpeedDegPerHr: 86.9523127, Family: FamilyShallowWater, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 3}}, Description: "Shallow water overtide of M2"},
	{Symbol: "M8", Doodson: [6]int{8, 0, 0, 0, 0, 0}, SpeedDegPerHr: 115.9364168, Family: FamilyShallowWater, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 4}}, Description: "Shallow water overtide of M2"},
	{Symbol: "MK3", Doodson: [6]int{3, 1, 0, 0, 0, 0}, SpeedDegPerHr: 44.0251729, Family: FamilyShallowWater, PhaseOffsetDeg: -90, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 1}, {Symbol: "K1", Factor: 1}}, Description: "Shallow water terdiurnal"},
	{Symbol: "2MK3", Doodson: [6]int{3, -1, 0, 0, 0, 0}, SpeedDegPerHr: 42.9271398, Family: FamilyShallowWater, PhaseOffsetDeg: 90, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 2}, {Symbol: "K1", Factor: -1}}, Description: "Shallow water terdiurnal"},
	{Symbol: "MN4", Doodson: [6]int{4, -1, 0, 1, 0, 0}, SpeedDegPerHr: 57.4238337, Family: FamilyShallowWater, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 2}}, Description: "Shallow water quarter diurnal"},
	{Symbol: "MS4", Doodson: [6]int{4, 2, -2, 0, 0, 0}, SpeedDegPerHr: 58.9841042, Family: FamilyShallowWater, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 1}}, Description: "Shallow water quarter diurnal"},
	{Symbol: "2SM2", Doodson: [6]int{2, 4, -4, 0, 0, 0}, SpeedDegPerHr: 31.0158958, Family: FamilyShallowWater, nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: -1}}, Description: "Shallow water semidiurnal"},
	{Symbol: "S4", Doodson: [6]int{4, 4, -4, 0, 0, 0}, SpeedDegPerHr: 60.0000000, Family: FamilyShallowWater, nodal: nodalNone, Description: "Shallow water overtide of S2"},
	{Symbol: "S6", Doodson: [6]int{6, 6, -6, 0, 0, 0}, SpeedDegPerHr: 90.0000000, Family: FamilyShallowWater, nodal: nodalNone, Description: "Shallow water overtide of S2"},
}

// Catalog is an immutable, shared set of constituent definitions with
// symbol lookup. It is constructed once and referenced by all predictions;
// nothing mutates it after construction.
type Catalog struct {
	defs   []ConstituentDefinition
	byName map[string]*ConstituentDefinition
}

// NewCatalog builds a catalog from definitions. Symbols must be unique and
// compound parents must resolve within the same catalog.
func NewCatalog(defs []ConstituentDefinition) (*Catalog, error) {
	c := &Catalog{
		defs:   make([]ConstituentDefinition, len(defs)),
		byName: make(map[string]*ConstituentDefinition, len(defs)),
	}
	copy(c.defs, defs)

	for i := range c.defs {
		def := &c.defs[i]
		if def.Symbol == "" {
			return nil, fmt.Errorf("constituent at index %d has empty symbol", i)
		}
		if _, dup := c.byName[def.Symbol]; dup {
			return nil, fmt.Errorf("duplicate constituent symbol %s", def.Symbol)
		}
		c.byName[def.Symbol] = def
	}

	for i := range c.defs {
		for _, parent := range c.defs[i].parents {
			if _, ok := c.byName[parent.Symbol]; !ok {
				return nil, fmt.Errorf("constituent %s references unknown parent %s", c.defs[i].Symbol, parent.Symbol)
			}
		}
	}

	return c, nil
}

var standardCatalog = mustCatalog(standardDefinitions)

func mustCatalog(defs []ConstituentDefinition) *Catalog {
	c, err := NewCatalog(defs)
	if err != nil {
		panic(err)
	}
	return c
}

// StandardCatalog returns the shared catalog of classical constituents.
func StandardCatalog() *Catalog {
	return standardCatalog
}

// Lookup returns the definition for a symbol.
func (c *Catalog) Lookup(symbol string) (*ConstituentDefinition, bool) {
	def, ok := c.byName[symbol]
	return def, ok
}

// Definitions returns a copy of all definitions in catalog order.
func (c *Catalog) Definitions() []ConstituentDefinition {
	out := make([]ConstituentDefinition, len(c.defs))
	copy(out, c.defs)
	return out
}

// Symbols returns all symbols in catalog order.
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.defs))
	for i := range c.defs {
		out[i] = c.defs[i].Symbol
	}
	return out
}

// Len returns the number of definitions.
func (c *Catalog) Len() int {
	return len(c.defs)
}

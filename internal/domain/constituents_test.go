package domain

import (
	"math"
	"testing"
	"time"
)

// TestStandardCatalog_SpeedsMatchDoodson verifies every tabulated speed is
// consistent with the time derivative of its Doodson combination. This
// catches transcription errors in either column.
func TestStandardCatalog_SpeedsMatchDoodson(t *testing.T) {
	t0 := time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(time.Hour)

	a0 := CalculateArguments(t0)
	a1 := CalculateArguments(t1)

	rates := [6]float64{
		a1.Tau - a0.Tau,
		a1.S - a0.S,
		a1.H - a0.H,
		a1.P - a0.P,
		a1.Nprime - a0.Nprime,
		a1.Pprime - a0.Pprime,
	}

	for _, def := range StandardCatalog().Definitions() {
		derived := 0.0
		for i, n := range def.Doodson {
			derived += float64(n) * rates[i]
		}
		if math.Abs(derived-def.SpeedDegPerHr) > 1e-5 {
			t.Errorf("%s: Doodson-derived speed %.7f deg/hr, tabulated %.7f", def.Symbol, derived, def.SpeedDegPerHr)
		}
	}
}

func TestStandardCatalog_Lookup(t *testing.T) {
	c := StandardCatalog()

	def, ok := c.Lookup("M2")
	if !ok {
		t.Fatal("M2 missing from standard catalog")
	}
	if def.Family != FamilySemidiurnal {
		t.Errorf("M2 family: expected %s, got %s", FamilySemidiurnal, def.Family)
	}
	if math.Abs(def.SpeedDegPerHr-28.9841042) > 1e-7 {
		t.Errorf("M2 speed: expected 28.9841042, got %.7f", def.SpeedDegPerHr)
	}

	if _, ok := c.Lookup("Z9"); ok {
		t.Error("Z9 unexpectedly present in catalog")
	}
}

func TestStandardCatalog_Size(t *testing.T) {
	if n := StandardCatalog().Len(); n != 37 {
		t.Errorf("expected 37 catalog entries, got %d", n)
	}
}

func TestNewCatalog_RejectsDuplicates(t *testing.T) {
	defs := []ConstituentDefinition{
		{Symbol: "M2", SpeedDegPerHr: 28.9841042},
		{Symbol: "M2", SpeedDegPerHr: 28.9841042},
	}
	if _, err := NewCatalog(defs); err == nil {
		t.Error("expected error for duplicate symbol")
	}
}

func TestNewCatalog_RejectsUnknownParent(t *testing.T) {
	defs := []ConstituentDefinition{
		{Symbol: "X4", nodal: nodalCompound, parents: []ParentTerm{{Symbol: "M2", Factor: 2}}},
	}
	if _, err := NewCatalog(defs); err == nil {
		t.Error("expected error for unresolved parent")
	}
}

// TestCatalog_PhaseOffsetsAreQuarterTurns ensures equilibrium-phase offsets
// stay multiples of 90 degrees, per the classical convention.
func TestCatalog_PhaseOffsetsAreQuarterTurns(t *testing.T) {
	for _, def := range StandardCatalog().Definitions() {
		if math.Mod(def.PhaseOffsetDeg, 90.0) != 0 {
			t.Errorf("%s: phase offset %.1f is not a multiple of 90", def.Symbol, def.PhaseOffsetDeg)
		}
	}
}

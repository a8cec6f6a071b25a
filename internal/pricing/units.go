package pricing

import (
	"fmt"
	"math"
	"strings"
)

// Unit is a recognized measurement unit label.
type Unit string

// Recognized units, partitioned into three disjoint groups. UnitPieceLegacy
// is an accepted spelling that behaves exactly like UnitPiece.
const (
	UnitKilogram    Unit = "kg"
	UnitGram        Unit = "g"
	UnitMilligram   Unit = "mg"
	UnitLiter       Unit = "l"
	UnitMilliliter  Unit = "ml"
	UnitPiece       Unit = "pc"
	UnitPieceLegacy Unit = "stk"
)

type unitGroup int

const (
	groupMass unitGroup = iota + 1
	groupVolume
	groupPiece
)

type unitDef struct {
	group unitGroup
	// scale expresses the unit in multiples of its group's smallest
	// recognized unit, so conversion ratios stay exact integers.
	scale float64
}

var units = map[Unit]unitDef{
	UnitKilogram:    {groupMass, 1_000_000},
	UnitGram:        {groupMass, 1_000},
	UnitMilligram:   {groupMass, 1},
	UnitLiter:       {groupVolume, 1_000},
	UnitMilliliter:  {groupVolume, 1},
	UnitPiece:       {groupPiece, 1},
	UnitPieceLegacy: {groupPiece, 1},
}

func normalizeUnit(u Unit) Unit {
	return Unit(strings.ToLower(string(u)))
}

// KnownUnit reports whether u is a recognized unit label.
func KnownUnit(u Unit) bool {
	_, ok := units[normalizeUnit(u)]
	return ok
}

// Convert converts qty from one unit into another unit of the same group.
// It fails with ErrIncompatibleUnits when either unit is unrecognized, the
// units belong to different groups, or qty is not a finite number.
func Convert(qty float64, from, to Unit) (float64, error) {
	if math.IsNaN(qty) || math.IsInf(qty, 0) {
		return 0, fmt.Errorf("quantity %v is not a finite number: %w", qty, ErrIncompatibleUnits)
	}

	f, fok := units[normalizeUnit(from)]
	t, tok := units[normalizeUnit(to)]
	if !fok || !tok {
		return 0, fmt.Errorf("unrecognized unit %q or %q: %w", from, to, ErrIncompatibleUnits)
	}
	if f.group != t.group {
		return 0, fmt.Errorf("cannot convert %q to %q: %w", from, to, ErrIncompatibleUnits)
	}

	if f.scale == t.scale {
		return qty, nil
	}
	// Exactly one multiplication or division by an exact power of ten,
	// keeping the scale factors decimal-safe.
	if f.scale > t.scale {
		return qty * (f.scale / t.scale), nil
	}
	return qty / (t.scale / f.scale), nil
}

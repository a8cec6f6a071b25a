package pricing

import (
	"errors"
	"math"
	"testing"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("%s = %v, want %v", name, got, want)
	}
}

func TestConvert_SameUnitIsIdentity(t *testing.T) {
	got, err := Convert(123.456, UnitGram, UnitGram)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 123.456 {
		t.Fatalf("expected exact identity, got %v", got)
	}
}

func TestConvert_MassAndVolumeFactors(t *testing.T) {
	cases := []struct {
		qty      float64
		from, to Unit
		want     float64
	}{
		{250, UnitGram, UnitKilogram, 0.25},
		{2, UnitKilogram, UnitGram, 2000},
		{500, UnitMilligram, UnitGram, 0.5},
		{1.5, UnitKilogram, UnitMilligram, 1_500_000},
		{330, UnitMilliliter, UnitLiter, 0.33},
		{0.75, UnitLiter, UnitMilliliter, 750},
	}
	for _, c := range cases {
		got, err := Convert(c.qty, c.from, c.to)
		if err != nil {
			t.Fatalf("Convert(%v, %s, %s) returned error: %v", c.qty, c.from, c.to, err)
		}
		nearlyEqual(t, string(c.from)+"->"+string(c.to), got, c.want)
	}
}

func TestConvert_PieceSynonymsConvertOneToOne(t *testing.T) {
	got, err := Convert(4, UnitPieceLegacy, UnitPiece)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 4 {
		t.Fatalf("stk -> pc = %v, want 4", got)
	}

	got, err = Convert(4, UnitPiece, UnitPieceLegacy)
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	if got != 4 {
		t.Fatalf("pc -> stk = %v, want 4", got)
	}
}

func TestConvert_UnitLabelsAreCaseInsensitive(t *testing.T) {
	got, err := Convert(1000, Unit("G"), Unit("Kg"))
	if err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}
	nearlyEqual(t, "G->Kg", got, 1)
}

func TestConvert_RoundTrip(t *testing.T) {
	pairs := [][2]Unit{
		{UnitGram, UnitKilogram},
		{UnitMilligram, UnitKilogram},
		{UnitMilliliter, UnitLiter},
		{UnitPiece, UnitPieceLegacy},
	}
	for _, p := range pairs {
		forward, err := Convert(250, p[0], p[1])
		if err != nil {
			t.Fatalf("forward Convert returned error: %v", err)
		}
		back, err := Convert(forward, p[1], p[0])
		if err != nil {
			t.Fatalf("back Convert returned error: %v", err)
		}
		nearlyEqual(t, "round trip "+string(p[0])+"<->"+string(p[1]), back, 250)
	}
}

func TestConvert_IncompatibleOrUnknownUnits(t *testing.T) {
	cases := []struct {
		from, to Unit
	}{
		{UnitMilliliter, UnitPiece},
		{UnitGram, UnitLiter},
		{UnitPiece, UnitKilogram},
		{Unit("oz"), UnitGram},
		{UnitGram, Unit("")},
	}
	for _, c := range cases {
		if _, err := Convert(1, c.from, c.to); !errors.Is(err, ErrIncompatibleUnits) {
			t.Fatalf("Convert(1, %q, %q) error = %v, want ErrIncompatibleUnits", c.from, c.to, err)
		}
	}
}

func TestConvert_NonFiniteQuantityFails(t *testing.T) {
	for _, qty := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Convert(qty, UnitGram, UnitKilogram); !errors.Is(err, ErrIncompatibleUnits) {
			t.Fatalf("Convert(%v) error = %v, want ErrIncompatibleUnits", qty, err)
		}
	}
}

package dst

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCombineCommutes(t *testing.T) {
	a := []Focal[Bits]{fb(0b001, 0.5), fb(0b011, 0.3), fb(0b111, 0.2)}
	b := []Focal[Bits]{fb(0b010, 0.6), fb(0b110, 0.4)}

	strategies := map[string]Strategy[Bits]{
		"topn":      TopN[Bits]{},
		"summarize": Summarize[Bits]{},
	}
	for name, strat := range strategies {
		t.Run(name, func(t *testing.T) {
			ab, err := Combine(strat.Approx(4, a), strat.Approx(4, b), strat)
			if err != nil {
				t.Fatalf("combine a,b: %v", err)
			}
			ba, err := Combine(strat.Approx(4, b), strat.Approx(4, a), strat)
			if err != nil {
				t.Fatalf("combine b,a: %v", err)
			}
			if diff := cmp.Diff(ab.Focals(), ba.Focals(), focalCmp); diff != "" {
				t.Errorf("order changed the result (-ab +ba):\n%s", diff)
			}
		})
	}
}

func TestCombineRenormalizes(t *testing.T) {
	// One source favors red, the other yellow, both hedge on the pair.
	a := TopN[Bits]{}.Approx(3, []Focal[Bits]{fb(lightRed, 0.7), fb(lightRed|lightYellow, 0.3)})
	b := TopN[Bits]{}.Approx(3, []Focal[Bits]{fb(lightYellow, 0.6), fb(lightRed|lightYellow, 0.4)})

	got, err := Combine(a, b, TopN[Bits]{})
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	inDelta(t, 1.0, got.Mass(), 1e-5)

	// K = 0.7*0.6 = 0.42; red keeps 0.28, yellow 0.18, the pair 0.12.
	inDelta(t, 0.28/0.58, got.Bel(lightRed), 1e-4)
	inDelta(t, 0.18/0.58, got.Bel(lightYellow), 1e-4)
}

func TestCombineBelPlOrdering(t *testing.T) {
	a := TopN[Bits]{}.Approx(3, []Focal[Bits]{fb(0b001, 0.5), fb(0b011, 0.5)})
	b := TopN[Bits]{}.Approx(3, []Focal[Bits]{fb(0b010, 0.4), fb(0b111, 0.6)})

	got, err := Combine(a, b, TopN[Bits]{})
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	for q := Bits(0); q < 8; q++ {
		if bel, pl := got.Bel(q), got.Pl(q); bel > pl+1e-5 {
			t.Errorf("query %03b: bel %v exceeds pl %v", q, bel, pl)
		}
	}
}

// Two sources each almost certain of different films still agree on the one
// both consider barely possible. The near-total conflict renormalizes onto
// the shared hypothesis.
func TestCombineHighConflict(t *testing.T) {
	filmX := Bits(0b001)
	filmY := Bits(0b010)
	filmZ := Bits(0b100)

	a := TopN[Bits]{}.Approx(2, []Focal[Bits]{fb(filmX, 0.99), fb(filmY, 0.01)})
	b := TopN[Bits]{}.Approx(2, []Focal[Bits]{fb(filmZ, 0.99), fb(filmY, 0.01)})

	got, k, err := combine(a, b, TopN[Bits]{})
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	if k < 0.97 {
		t.Errorf("conflict K = %v, want nearly total", k)
	}
	inDelta(t, 1.0, got.Bel(filmY), 0.001)
	if bx := got.Bel(filmX); bx >= 0.001 {
		t.Errorf("bel(X) = %v, want below 0.001", bx)
	}
	if bz := got.Bel(filmZ); bz >= 0.001 {
		t.Errorf("bel(Z) = %v, want below 0.001", bz)
	}
	inDelta(t, 1.0, got.Mass(), 1e-5)
}

func TestCombineFullContradiction(t *testing.T) {
	a := TopN[Bits]{}.Approx(2, []Focal[Bits]{fb(0b001, 1.0)})
	b := TopN[Bits]{}.Approx(2, []Focal[Bits]{fb(0b100, 1.0)})

	got, err := Combine(a, b, TopN[Bits]{})
	if !errors.Is(err, ErrFullContradiction) {
		t.Fatalf("err = %v, want ErrFullContradiction", err)
	}
	if got != nil {
		t.Error("a contradictory combination still returned an assignment")
	}
}

// The failure above must be an error, never a NaN smuggled through masses.
func TestCombineNearContradictionStaysFinite(t *testing.T) {
	a := TopN[Bits]{}.Approx(2, []Focal[Bits]{fb(0b001, 0.999), fb(0b011, 0.001)})
	b := TopN[Bits]{}.Approx(2, []Focal[Bits]{fb(0b010, 0.999), fb(0b011, 0.001)})

	got, err := Combine(a, b, TopN[Bits]{})
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	for _, f := range got.Focals() {
		if math.IsNaN(float64(f.Mass)) || math.IsInf(float64(f.Mass), 0) {
			t.Fatalf("mass %v is not finite", f.Mass)
		}
	}
	inDelta(t, 1.0, got.Mass(), 1e-5)
}

func TestCombineMixedCapacities(t *testing.T) {
	a := TopN[Bits]{}.Approx(2, []Focal[Bits]{fb(0b011, 0.5), fb(0b111, 0.5)})
	b := TopN[Bits]{}.Approx(4, trafficLight())

	got, err := Combine(a, b, TopN[Bits]{})
	if err != nil {
		t.Fatalf("combine: %v", err)
	}
	if got.Cap() != 4 {
		t.Errorf("cap = %d, want the larger operand's 4", got.Cap())
	}
	inDelta(t, 1.0, got.Mass(), 1e-5)
}

package dst

import (
	"math"
	"testing"
)

const (
	lightGreen  Bits = 0b001
	lightYellow Bits = 0b010
	lightRed    Bits = 0b100
)

func fb(h Bits, m float32) Focal[Bits] {
	return Focal[Bits]{Hyp: h, Mass: m}
}

// trafficLight is a hand-checkable assignment over a three-lamp frame.
func trafficLight() []Focal[Bits] {
	return []Focal[Bits]{
		fb(lightRed, 0.35),
		fb(lightYellow, 0.25),
		fb(lightGreen, 0.15),
		fb(lightRed|lightYellow, 0.06),
		fb(lightRed|lightGreen, 0.05),
		fb(lightYellow|lightGreen, 0.04),
		fb(lightRed|lightYellow|lightGreen, 0.10),
	}
}

func inDelta(t *testing.T, want, got float32, delta float64) {
	t.Helper()
	if math.Abs(float64(want)-float64(got)) > delta {
		t.Errorf("got %v, want %v (within %v)", got, want, delta)
	}
}

func TestBelTrafficLight(t *testing.T) {
	bba := trafficLight()

	tests := []struct {
		name string
		q    Bits
		want float32
	}{
		{"red", lightRed, 0.35},
		{"yellow", lightYellow, 0.25},
		{"red or yellow", lightRed | lightYellow, 0.66},
		{"whole frame", lightRed | lightYellow | lightGreen, 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inDelta(t, tt.want, Bel(bba, tt.q), 0.001)
		})
	}
}

func TestPlTrafficLight(t *testing.T) {
	bba := trafficLight()

	inDelta(t, 0.56, Pl(bba, lightRed), 0.001)
	inDelta(t, 1.0, Pl(bba, lightRed|lightYellow|lightGreen), 0.001)
}

// The same numbers must survive a lossless pass through the bounded engine.
func TestBelAfterLosslessApprox(t *testing.T) {
	a := TopN[Bits]{}.Approx(7, trafficLight())

	inDelta(t, 0.35, a.Bel(lightRed), 0.001)
	inDelta(t, 0.66, a.Bel(lightRed|lightYellow), 0.001)
	inDelta(t, 0.56, a.Pl(lightRed), 0.001)
}

func TestBelNeverExceedsPl(t *testing.T) {
	a := TopN[Bits]{}.Approx(4, trafficLight())

	for q := Bits(0); q < 8; q++ {
		if bel, pl := a.Bel(q), a.Pl(q); bel > pl+1e-5 {
			t.Errorf("query %03b: bel %v exceeds pl %v", q, bel, pl)
		}
	}
}

func TestBelEmptyInput(t *testing.T) {
	if got := Bel(nil, lightRed); got != 0 {
		t.Errorf("bel over no focals = %v, want 0", got)
	}
}

package dst

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var focalCmp = cmp.Options{
	cmpopts.SortSlices(func(a, b Focal[Bits]) bool { return a.Hyp < b.Hyp }),
	cmpopts.EquateApprox(0, 1e-5),
}

func TestTopNKeepsLargest(t *testing.T) {
	bba := []Focal[Bits]{
		fb(0b001, 0.4),
		fb(0b010, 0.3),
		fb(0b100, 0.2),
		fb(0b011, 0.06),
		fb(0b101, 0.04),
	}

	got := TopN[Bits]{}.Approx(3, bba)

	want := []Focal[Bits]{
		fb(0b001, 4.0/9),
		fb(0b010, 3.0/9),
		fb(0b100, 2.0/9),
	}
	if diff := cmp.Diff(want, got.Focals(), focalCmp); diff != "" {
		t.Errorf("kept focals mismatch (-want +got):\n%s", diff)
	}
}

func TestTopNMassConservation(t *testing.T) {
	bba := trafficLight()

	for _, n := range []int{1, 2, 3, 4, 7, 10} {
		got := TopN[Bits]{}.Approx(n, bba)
		inDelta(t, 1.0, got.Mass(), 1e-5)
	}
}

func TestTopNIdempotent(t *testing.T) {
	bba := trafficLight()

	for _, n := range []int{1, 3, 5, 7, 10} {
		once := TopN[Bits]{}.Approx(n, bba)
		twice := TopN[Bits]{}.Approx(n, once.Focals())
		if diff := cmp.Diff(once.Focals(), twice.Focals(), focalCmp); diff != "" {
			t.Errorf("n=%d not idempotent (-once +twice):\n%s", n, diff)
		}
	}
}

func TestTopNDegenerateInputs(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		got := TopN[Bits]{}.Approx(3, nil)
		if got.Cap() != 3 {
			t.Fatalf("cap = %d, want 3", got.Cap())
		}
		if m := got.Mass(); m != 0 || math.IsNaN(float64(m)) {
			t.Errorf("mass = %v, want exactly 0", m)
		}
	})

	t.Run("all zero masses", func(t *testing.T) {
		got := TopN[Bits]{}.Approx(2, []Focal[Bits]{fb(0b001, 0), fb(0b010, 0)})
		if m := got.Mass(); math.IsNaN(float64(m)) {
			t.Error("rescaling a zero sum produced NaN")
		}
	})

	t.Run("fewer focals than slots", func(t *testing.T) {
		got := TopN[Bits]{}.Approx(4, []Focal[Bits]{fb(0b001, 0.6), fb(0b010, 0.4)})
		inDelta(t, 1.0, got.Mass(), 1e-5)
		var pads int
		for _, f := range got.Focals() {
			if f.Hyp.IsEmpty() && f.Mass == 0 {
				pads++
			}
		}
		if pads != 2 {
			t.Errorf("pad slots = %d, want 2", pads)
		}
	})
}

func TestSummarizeResidual(t *testing.T) {
	bba := []Focal[Bits]{
		fb(0b001, 0.4),
		fb(0b010, 0.3),
		fb(0b100, 0.2),
		fb(0b011, 0.06),
	}

	sum := Summarize[Bits]{}.Approx(3, bba)

	slots := sum.Focals()
	residual := slots[2]
	if residual.Hyp != 0b111 {
		t.Errorf("residual hypothesis = %03b, want the union 111", residual.Hyp)
	}
	inDelta(t, 0.26, residual.Mass, 1e-5)
	inDelta(t, 0.96, sum.Mass(), 1e-5)
}

func TestSummarizeMassConservation(t *testing.T) {
	bba := trafficLight()

	for _, n := range []int{1, 2, 3, 4, 7} {
		got := Summarize[Bits]{}.Approx(n, bba)
		inDelta(t, 1.0, got.Mass(), 1e-5)
	}
}

func TestSummarizeUnderfull(t *testing.T) {
	got := Summarize[Bits]{}.Approx(4, []Focal[Bits]{fb(0b001, 0.6), fb(0b010, 0.4)})

	slots := got.Focals()
	if last := slots[3]; !last.Hyp.IsEmpty() || last.Mass != 0 {
		t.Errorf("residual slot = %v, want the empty pad when nothing spilled", last)
	}
	inDelta(t, 1.0, got.Mass(), 1e-5)
}

func TestSummarizeSingleSlot(t *testing.T) {
	got := Summarize[Bits]{}.Approx(1, trafficLight())

	slots := got.Focals()
	if slots[0].Hyp != 0b111 {
		t.Errorf("collapsed hypothesis = %03b, want the whole frame", slots[0].Hyp)
	}
	inDelta(t, 1.0, slots[0].Mass, 1e-5)
}

func TestApproxRejectsNonPositiveCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for capacity 0")
		}
	}()
	TopN[Bits]{}.Approx(0, trafficLight())
}

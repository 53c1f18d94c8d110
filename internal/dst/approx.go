package dst

// Strategy reduces an arbitrary mass assignment to a bounded one with at most
// n focal slots. Implementations must be deterministic for a given input.
type Strategy[S Set[S]] interface {
	Approx(n int, bba []Focal[S]) *Assignment[S]
}

// TopN keeps the n largest masses, discards the rest and rescales the kept
// masses so they sum to one. Applying it to an assignment that already fits
// changes nothing beyond slot order.
type TopN[S Set[S]] struct{}

func (TopN[S]) Approx(n int, bba []Focal[S]) *Assignment[S] {
	out := newAssignment[S](n)
	sel := newTopK[S](n)
	for _, f := range bba {
		sel.Offer(f)
	}
	kept := sel.Kept()
	copy(out.slots, kept)

	var sum float32
	for _, f := range kept {
		sum += f.Mass
	}
	// An all-zero or empty input keeps its zero masses rather than turning
	// into NaN. Padding a degenerate assignment is valid, not an error.
	if sum > 0 {
		for i := range out.slots {
			out.slots[i].Mass /= sum
		}
	}
	return out
}

// Summarize keeps the n-1 largest masses and folds everything that falls out
// of the selection into a residual focal element: the union of the spilled
// hypotheses carrying their summed mass. Total mass is preserved exactly, at
// the cost of a coarser residual hypothesis.
//
// The residual always occupies the last slot. When fewer than n focal
// elements were offered, nothing spills and that slot stays the empty pad.
type Summarize[S Set[S]] struct{}

func (Summarize[S]) Approx(n int, bba []Focal[S]) *Assignment[S] {
	out := newAssignment[S](n)
	sel := newTopK[S](n - 1)
	var residual Focal[S]
	for _, f := range bba {
		if spill, ok := sel.Offer(f); ok {
			residual.Hyp = residual.Hyp.Union(spill.Hyp)
			residual.Mass += spill.Mass
		}
	}
	copy(out.slots, sel.Kept())
	out.slots[n-1] = residual
	return out
}

var (
	_ Strategy[Bits] = TopN[Bits]{}
	_ Strategy[Bits] = Summarize[Bits]{}
)

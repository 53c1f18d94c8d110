package dst

import "errors"

// ErrFullContradiction is returned when two sources commit all of their mass
// to disjoint hypotheses. Renormalizing would divide by zero, so the
// combination is refused instead of producing NaN or Inf.
var ErrFullContradiction = errors.New("dst: sources are fully contradictory")

// conflictEpsilon is how close 1-K may get to zero before a combination is
// treated as fully contradictory.
const conflictEpsilon = 1e-6

// Combine merges two bounded assignments with Dempster's rule: every pairwise
// intersection of focal elements accumulates the product of their masses,
// mass landing on the empty set becomes the conflict K, the rest is rescaled
// by 1/(1-K), and the result is reduced back to a bounded assignment with
// strat. The accumulator lives only for the duration of the call.
//
// The returned assignment has max(a.Cap(), b.Cap()) slots.
func Combine[S Set[S]](a, b *Assignment[S], strat Strategy[S]) (*Assignment[S], error) {
	out, _, err := combine(a, b, strat)
	return out, err
}

// combine also reports the conflict mass K for callers that audit
// disagreement between sources.
func combine[S Set[S]](a, b *Assignment[S], strat Strategy[S]) (*Assignment[S], float32, error) {
	acc := newTable[S](a.Cap() * b.Cap())
	var k float32
	for _, fa := range a.slots {
		for _, fb := range b.slots {
			m := fa.Mass * fb.Mass
			h := fa.Hyp.Intersect(fb.Hyp)
			if h.IsEmpty() {
				k += m
				continue
			}
			acc.Add(h, m)
		}
	}
	if 1-k <= conflictEpsilon {
		return nil, k, ErrFullContradiction
	}
	acc.Scale(1 / (1 - k))

	n := a.Cap()
	if b.Cap() > n {
		n = b.Cap()
	}
	return strat.Approx(n, acc.Live()), k, nil
}

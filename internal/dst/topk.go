package dst

// topK retains the k focal elements with the largest masses from a stream of
// offers. k is fixed at construction; a linear scan finds the current minimum,
// which is fine at the slot counts assignments are built with.
type topK[S Set[S]] struct {
	slots []Focal[S]
}

func newTopK[S Set[S]](k int) *topK[S] {
	return &topK[S]{slots: make([]Focal[S], 0, k)}
}

// Offer presents one focal element. Until k elements have been seen it is
// kept outright. After that it replaces the current minimum only when its
// mass is strictly larger, so an equal-mass incumbent stays put.
//
// The second return reports whether an element fell out of the selection:
// the displaced minimum on a replacement, or f itself when it was rejected.
// While the selector is still warming nothing spills.
func (t *topK[S]) Offer(f Focal[S]) (Focal[S], bool) {
	if len(t.slots) < cap(t.slots) {
		t.slots = append(t.slots, f)
		var none Focal[S]
		return none, false
	}
	if cap(t.slots) == 0 {
		return f, true
	}
	min := 0
	for i := 1; i < len(t.slots); i++ {
		if t.slots[i].Mass < t.slots[min].Mass {
			min = i
		}
	}
	if f.Mass <= t.slots[min].Mass {
		return f, true
	}
	out := t.slots[min]
	t.slots[min] = f
	return out, true
}

// Kept returns the retained elements, at most k of them.
func (t *topK[S]) Kept() []Focal[S] { return t.slots }

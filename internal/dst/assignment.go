package dst

// Focal is one focal element of a mass assignment: a hypothesis set and the
// mass committed to exactly that set.
type Focal[S Set[S]] struct {
	Hyp  S
	Mass float32
}

// Assignment is a mass assignment bounded to a fixed number of focal slots.
// The slot count is fixed at construction and never grows. Slots beyond the
// live focal elements hold the (empty, 0.0) pad, which is inert in every
// query and combination.
//
// Live slots never repeat a hypothesis; the approximation strategies and
// Combine maintain that invariant for their outputs.
type Assignment[S Set[S]] struct {
	slots []Focal[S]
}

func newAssignment[S Set[S]](n int) *Assignment[S] {
	if n < 1 {
		panic("dst: assignment capacity must be positive")
	}
	return &Assignment[S]{slots: make([]Focal[S], n)}
}

// Cap returns the slot count fixed at construction.
func (a *Assignment[S]) Cap() int { return len(a.slots) }

// Focals returns the slot array, padding included. Callers must treat it as
// read-only.
func (a *Assignment[S]) Focals() []Focal[S] { return a.slots }

// Mass returns the total mass across all slots.
func (a *Assignment[S]) Mass() float32 {
	var sum float32
	for _, f := range a.slots {
		sum += f.Mass
	}
	return sum
}

// Bel returns the belief committed to q by this assignment.
func (a *Assignment[S]) Bel(q S) float32 { return Bel(a.slots, q) }

// Pl returns the plausibility of q under this assignment.
func (a *Assignment[S]) Pl(q S) float32 { return Pl(a.slots, q) }

package dst

import "fmt"

// table accumulates (hypothesis, mass) pairs into a fixed number of slots,
// summing masses on structurally equal hypotheses. Combine creates one per
// call, sized n*n for the worst case where every pairwise intersection is
// distinct, so Add running out of room means the table was mis-sized. That
// is a programming error, not an input condition, and it panics.
type table[S Set[S]] struct {
	slots []Focal[S]
}

func newTable[S Set[S]](n int) *table[S] {
	return &table[S]{slots: make([]Focal[S], 0, n)}
}

func (t *table[S]) Add(h S, m float32) {
	for i := range t.slots {
		if t.slots[i].Hyp.Equal(h) {
			t.slots[i].Mass += m
			return
		}
	}
	if len(t.slots) == cap(t.slots) {
		panic(fmt.Sprintf("dst: accumulator table capacity %d exceeded", cap(t.slots)))
	}
	t.slots = append(t.slots, Focal[S]{Hyp: h, Mass: m})
}

// Scale multiplies every accumulated mass by v.
func (t *table[S]) Scale(v float32) {
	for i := range t.slots {
		t.slots[i].Mass *= v
	}
}

// Live returns the occupied slots.
func (t *table[S]) Live() []Focal[S] { return t.slots }

// Package dst implements Dempster-Shafer evidence combination under a fixed
// memory budget. Mass assignments are bounded to a construction-time number of
// focal slots, oversized assignments are reduced by pluggable approximation
// strategies, and sources are merged with Dempster's rule of combination.
package dst

// Set is the capability a hypothesis-space representation must provide.
// Combination, approximation and query code is generic over this contract,
// not over a concrete type.
//
// The zero value of an implementation must be its empty set. That zero value
// is used to pad unused focal slots, so it has to carry no hypotheses and no
// mass weight of its own.
type Set[S any] interface {
	// IsSubset reports whether every elementary hypothesis of the receiver
	// is contained in o.
	IsSubset(o S) bool
	Intersect(o S) S
	Union(o S) S
	Complement() S
	IsEmpty() bool
	// Equal is structural: two sets are equal when they contain exactly the
	// same elementary hypotheses.
	Equal(o S) bool
}

// Bits is a hypothesis space of up to 64 elementary hypotheses, one bit per
// hypothesis. It is the default frame representation.
type Bits uint64

func (b Bits) IsSubset(o Bits) bool  { return b&o == b }
func (b Bits) Intersect(o Bits) Bits { return b & o }
func (b Bits) Union(o Bits) Bits     { return b | o }
func (b Bits) Complement() Bits      { return ^b }
func (b Bits) IsEmpty() bool         { return b == 0 }
func (b Bits) Equal(o Bits) bool     { return b == o }

var _ Set[Bits] = Bits(0)

// Wide is a hypothesis space of up to 256 elementary hypotheses for frames
// that outgrow Bits. It is a fixed-width value type like Bits, so assignments
// over it still hold no indirection.
type Wide [4]uint64

func (w Wide) IsSubset(o Wide) bool {
	for i := range w {
		if w[i]&o[i] != w[i] {
			return false
		}
	}
	return true
}

func (w Wide) Intersect(o Wide) Wide {
	var r Wide
	for i := range w {
		r[i] = w[i] & o[i]
	}
	return r
}

func (w Wide) Union(o Wide) Wide {
	var r Wide
	for i := range w {
		r[i] = w[i] | o[i]
	}
	return r
}

func (w Wide) Complement() Wide {
	var r Wide
	for i := range w {
		r[i] = ^w[i]
	}
	return r
}

func (w Wide) IsEmpty() bool {
	for i := range w {
		if w[i] != 0 {
			return false
		}
	}
	return true
}

func (w Wide) Equal(o Wide) bool { return w == o }

// WideBit returns the Wide set holding only elementary hypothesis i.
func WideBit(i int) Wide {
	var w Wide
	w[i/64] = 1 << (i % 64)
	return w
}

var _ Set[Wide] = Wide{}

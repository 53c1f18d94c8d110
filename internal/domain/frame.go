package domain

import (
	"errors"
	"fmt"

	"github.com/credalab/credence/internal/dst"
)

const MaxFrameSize = 64

var (
	ErrEmptyFrame    = errors.New("domain: frame has no hypotheses")
	ErrFrameTooLarge = fmt.Errorf("domain: frame exceeds %d hypotheses", MaxFrameSize)
	ErrBlankName     = errors.New("domain: blank hypothesis name")
	ErrDuplicateName = errors.New("domain: duplicate hypothesis name")
	ErrUnknownName   = errors.New("domain: unknown hypothesis name")
	ErrNoHypotheses  = errors.New("domain: no hypothesis names given")
)

// Hypothesis is one elementary outcome of the frame as configured, with an
// optional human description for API consumers.
type Hypothesis struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Frame is the frame of discernment: the ordered elementary hypotheses all
// evidence and queries range over. Each name owns one bit of a dst.Bits.
type Frame struct {
	names []string
	index map[string]int
}

func NewFrame(names []string) (*Frame, error) {
	if len(names) == 0 {
		return nil, ErrEmptyFrame
	}
	if len(names) > MaxFrameSize {
		return nil, ErrFrameTooLarge
	}
	index := make(map[string]int, len(names))
	for i, name := range names {
		if name == "" {
			return nil, fmt.Errorf("%w: position %d", ErrBlankName, i)
		}
		if _, dup := index[name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
		index[name] = i
	}
	return &Frame{names: append([]string(nil), names...), index: index}, nil
}

func (f *Frame) Size() int { return len(f.names) }

func (f *Frame) Names() []string {
	return append([]string(nil), f.names...)
}

// Universe returns the set holding every hypothesis in the frame.
func (f *Frame) Universe() dst.Bits {
	if len(f.names) == MaxFrameSize {
		return ^dst.Bits(0)
	}
	return dst.Bits(1)<<len(f.names) - 1
}

// Resolve maps hypothesis names to their bitmask. Duplicates are allowed and
// collapse into the same bit; unknown names fail.
func (f *Frame) Resolve(names []string) (dst.Bits, error) {
	if len(names) == 0 {
		return 0, ErrNoHypotheses
	}
	var b dst.Bits
	for _, name := range names {
		i, ok := f.index[name]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownName, name)
		}
		b |= dst.Bits(1) << i
	}
	return b, nil
}

// Render maps a bitmask back to hypothesis names in frame order. Bits beyond
// the frame are ignored, so complements render cleanly.
func (f *Frame) Render(b dst.Bits) []string {
	out := make([]string, 0, len(f.names))
	for i, name := range f.names {
		if b&(dst.Bits(1)<<i) != 0 {
			out = append(out, name)
		}
	}
	return out
}

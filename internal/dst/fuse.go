package dst

import "errors"

// ErrNoSources is returned when a fuse is attempted over zero sources.
var ErrNoSources = errors.New("dst: no sources to fuse")

// Fuse folds any number of raw sources into one bounded assignment with n
// slots: the first source is approximated with strat, then each further
// source is approximated and combined in order. A single source comes back
// as its own approximation. A fully contradictory step aborts the fold.
func Fuse[S Set[S]](n int, strat Strategy[S], sources ...[]Focal[S]) (*Assignment[S], error) {
	acc, _, err := fuse(n, strat, sources)
	return acc, err
}

// FuseTrace is Fuse plus the conflict mass K observed at each combination
// step, in fold order. len(conflicts) is len(sources)-1 on success. On a
// contradiction the trace covers the steps up to and including the failing
// one.
func FuseTrace[S Set[S]](n int, strat Strategy[S], sources ...[]Focal[S]) (*Assignment[S], []float32, error) {
	return fuse(n, strat, sources)
}

func fuse[S Set[S]](n int, strat Strategy[S], sources [][]Focal[S]) (*Assignment[S], []float32, error) {
	if len(sources) == 0 {
		return nil, nil, ErrNoSources
	}
	acc := strat.Approx(n, sources[0])
	conflicts := make([]float32, 0, len(sources)-1)
	for _, src := range sources[1:] {
		next, k, err := combine(acc, strat.Approx(n, src), strat)
		conflicts = append(conflicts, k)
		if err != nil {
			return nil, conflicts, err
		}
		acc = next
	}
	return acc, conflicts, nil
}

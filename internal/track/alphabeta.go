// Package track implements a constant-velocity alpha-beta filter for
// smoothing and extrapolating a scalar series sampled at a fixed period.
package track

import "errors"

var ErrBadGain = errors.New("track: gains out of range")

// AlphaBeta holds the filter state: the smoothed position and velocity of
// the tracked quantity. Alpha weighs how much of each measurement residual
// is folded into position, beta how much into velocity.
type AlphaBeta struct {
	alpha  float64
	beta   float64
	period float64

	pos float64
	vel float64
}

// NewAlphaBeta validates the gains and sampling period. Alpha must be in
// (0, 1), beta in (0, 2], and the period positive, or the filter can
// oscillate or diverge.
func NewAlphaBeta(alpha, beta, period float64) (*AlphaBeta, error) {
	if alpha <= 0 || alpha >= 1 || beta <= 0 || beta > 2 || period <= 0 {
		return nil, ErrBadGain
	}
	return &AlphaBeta{alpha: alpha, beta: beta, period: period}, nil
}

// Predict extrapolates one period ahead from the current state without
// consuming a measurement.
func (f *AlphaBeta) Predict() (pos, vel float64) {
	return f.pos + f.period*f.vel, f.vel
}

// Update folds one measurement into the state and returns the smoothed
// position and velocity.
func (f *AlphaBeta) Update(measured float64) (pos, vel float64) {
	predicted, vel := f.Predict()
	residual := measured - predicted

	f.pos = predicted + f.alpha*residual
	f.vel = vel + (f.beta/f.period)*residual
	return f.pos, f.vel
}

// State returns the current smoothed position and velocity.
func (f *AlphaBeta) State() (pos, vel float64) { return f.pos, f.vel }

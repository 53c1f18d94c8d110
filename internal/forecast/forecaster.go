// Package forecast implements prediction with expert advice. An exponentially
// weighted average forecaster keeps one weight per expert, predicts the
// weight-normalized average of the experts' predictions, and shrinks the
// weight of every expert by how badly it missed once the outcome is revealed.
package forecast

import "math"

// Forecaster aggregates a fixed set of experts. The zero value is not usable;
// construct with New or NewWithHorizon.
type Forecaster struct {
	weights []float64
	loss    Loss
	horizon int
	round   int
}

// New returns a forecaster whose learning rate decays with the round number,
// for use when the total number of rounds is unknown.
func New(experts int, loss Loss) *Forecaster {
	return NewWithHorizon(experts, loss, 0)
}

// NewWithHorizon returns a forecaster tuned for a known number of rounds n,
// which gives the tighter constant learning rate sqrt(8 ln N / n).
func NewWithHorizon(experts int, loss Loss, n int) *Forecaster {
	if experts < 1 {
		panic("forecast: need at least one expert")
	}
	w := make([]float64, experts)
	for i := range w {
		w[i] = 1
	}
	return &Forecaster{weights: w, loss: loss, horizon: n}
}

// Predict returns the weighted average of the experts' predictions.
func (f *Forecaster) Predict(preds []float64) float64 {
	if len(preds) != len(f.weights) {
		panic("forecast: prediction count does not match expert count")
	}
	var top, bot float64
	for i, p := range preds {
		top += f.weights[i] * p
		bot += f.weights[i]
	}
	return top / bot
}

// Update reveals the outcome for the round the predictions belong to and
// reweights every expert by exp(-eta * loss).
func (f *Forecaster) Update(preds []float64, revealed float64) {
	if len(preds) != len(f.weights) {
		panic("forecast: prediction count does not match expert count")
	}
	f.round++
	eta := f.eta()
	for i, p := range preds {
		f.weights[i] *= math.Exp(-eta * f.loss.Score(p, revealed))
	}

	// Renormalize so weights cannot underflow to zero over a long run.
	// Predictions only depend on weight ratios, so this changes nothing.
	var sum float64
	for _, w := range f.weights {
		sum += w
	}
	if sum > 0 {
		for i := range f.weights {
			f.weights[i] /= sum
		}
		return
	}
	for i := range f.weights {
		f.weights[i] = 1.0 / float64(len(f.weights))
	}
}

func (f *Forecaster) eta() float64 {
	n := f.horizon
	if n <= 0 {
		n = f.round
	}
	return math.Sqrt(8 * math.Log(float64(len(f.weights))) / float64(n))
}

// Weights returns a copy of the current expert weights.
func (f *Forecaster) Weights() []float64 {
	out := make([]float64, len(f.weights))
	copy(out, f.weights)
	return out
}

// Round returns how many outcomes have been revealed so far.
func (f *Forecaster) Round() int { return f.round }

package forecast

import "math"

// Loss scores a prediction against the revealed outcome. Lower is better.
// Scores feed the exponential weight update, so they should stay in a
// roughly unit range for the regret guarantees to mean anything.
type Loss interface {
	Score(pred, revealed float64) float64
}

// L2 is squared error.
type L2 struct{}

func (L2) Score(pred, revealed float64) float64 {
	d := pred - revealed
	return d * d
}

// L1 is absolute error.
type L1 struct{}

func (L1) Score(pred, revealed float64) float64 {
	return math.Abs(pred - revealed)
}

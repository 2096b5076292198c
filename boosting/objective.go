package boosting

import "math"

// logisticObjective is the binary logistic loss. Predictions are raw scores;
// gradients and hessians are taken with respect to the score.
type logisticObjective struct{}

func (logisticObjective) Gradient(score, target float64) float64 {
	return sigmoid(score) - target
}

func (logisticObjective) Hessian(score, target float64) float64 {
	p := sigmoid(score)
	h := p * (1 - p)
	// Guard against vanishing curvature at saturated predictions.
	if h < 1e-16 {
		return 1e-16
	}
	return h
}

func (logisticObjective) Loss(score, target float64) float64 {
	p := sigmoid(score)
	return -target*safeLog(p) - (1-target)*safeLog(1-p)
}

// InitScore returns the log-odds of the weighted positive rate, the constant
// score minimizing weighted logistic loss before any tree is added.
func (logisticObjective) InitScore(targets, weights []float64) float64 {
	var posWeight, totalWeight float64
	for i, t := range targets {
		w := 1.0
		if weights != nil {
			w = weights[i]
		}
		totalWeight += w
		if t == 1 {
			posWeight += w
		}
	}
	if totalWeight == 0 {
		return 0
	}
	p := posWeight / totalWeight
	switch {
	case p <= 0:
		return -maxInitScore
	case p >= 1:
		return maxInitScore
	}
	return math.Log(p / (1 - p))
}

const maxInitScore = 30.0

func safeLog(x float64) float64 {
	if x < 1e-15 {
		x = 1e-15
	}
	return math.Log(x)
}

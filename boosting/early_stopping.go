package boosting

import "math"

// earlyStopping tracks validation loss across boosting iterations and stops
// training after Rounds iterations without improvement.
type earlyStopping struct {
	Rounds          int
	BestScore       float64
	BestIteration   int
	RoundsNoImprove int
	Enabled         bool
}

func newEarlyStopping(rounds int) *earlyStopping {
	if rounds <= 0 {
		return &earlyStopping{Enabled: false, BestScore: math.Inf(1)}
	}
	return &earlyStopping{
		Rounds:    rounds,
		BestScore: math.Inf(1),
		Enabled:   true,
	}
}

// Update records the validation loss of one iteration and returns true when
// training should stop. Lower is better.
func (es *earlyStopping) Update(iteration int, loss float64) bool {
	if loss < es.BestScore {
		es.BestScore = loss
		es.BestIteration = iteration
		es.RoundsNoImprove = 0
		return false
	}
	if !es.Enabled {
		return false
	}
	es.RoundsNoImprove++
	return es.RoundsNoImprove >= es.Rounds
}

package boosting

import (
	"github.com/molbench/molbench/pkg/errors"
)

// ClassWeights holds the per-class loss multipliers for a binary task.
type ClassWeights struct {
	Negative float64
	Positive float64
}

// For returns the weight for one label.
func (cw ClassWeights) For(label float64) float64 {
	if label == 1 {
		return cw.Positive
	}
	return cw.Negative
}

// BalancedWeights computes class weights inversely proportional to class
// frequency: weight(c) = n_samples / (n_classes * n_samples_in_class_c).
// Labels must be exactly 0 or 1. A single-class input leaves the weighting
// undefined and returns an InsufficientClassDiversityError.
func BalancedWeights(dataset string, labels []float64) (ClassWeights, error) {
	if len(labels) == 0 {
		return ClassWeights{}, errors.WithStack(errors.ErrEmptyData)
	}

	var neg, pos int
	for _, l := range labels {
		switch l {
		case 0:
			neg++
		case 1:
			pos++
		default:
			return ClassWeights{}, errors.NewValueError("boosting.BalancedWeights",
				"labels must be exactly 0 or 1")
		}
	}
	if neg == 0 {
		return ClassWeights{}, errors.NewInsufficientClassDiversityError(dataset, 1, pos)
	}
	if pos == 0 {
		return ClassWeights{}, errors.NewInsufficientClassDiversityError(dataset, 0, neg)
	}

	n := float64(len(labels))
	return ClassWeights{
		Negative: n / (2 * float64(neg)),
		Positive: n / (2 * float64(pos)),
	}, nil
}

// SampleWeights expands class weights into one weight per sample.
func SampleWeights(labels []float64, cw ClassWeights) []float64 {
	weights := make([]float64, len(labels))
	for i, l := range labels {
		weights[i] = cw.For(l)
	}
	return weights
}

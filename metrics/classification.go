// Package metrics implements binary classification metrics for the benchmark
// reporter: threshold metrics over (true label, predicted label) pairs and
// ranking metrics over (true label, predicted score) pairs.
//
// Undefined-metric conventions follow scikit-learn's zero-division defaults:
// precision, recall and f1 return 0 and raise an UndefinedMetricWarning when
// their denominator is zero; the AUC metrics document their own conventions
// in ranking.go.
package metrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/molbench/molbench/pkg/errors"
)

// confusionCounts tallies the binary confusion matrix. Both vectors must
// contain only exact 0 or 1 entries.
func confusionCounts(op string, yTrue, yPred *mat.VecDense) (tp, fp, tn, fn int, err error) {
	n := yTrue.Len()
	if n == 0 {
		return 0, 0, 0, 0, errors.NewValueError(op, "empty vector")
	}
	if yPred.Len() != n {
		return 0, 0, 0, 0, errors.NewDimensionError(op, n, yPred.Len(), 0)
	}

	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		yp := yPred.AtVec(i)
		if (yt != 0 && yt != 1) || (yp != 0 && yp != 1) {
			return 0, 0, 0, 0, errors.NewValueError(op, "labels must be exactly 0 or 1")
		}
		switch {
		case yt == 1 && yp == 1:
			tp++
		case yt == 0 && yp == 1:
			fp++
		case yt == 0 && yp == 0:
			tn++
		default:
			fn++
		}
	}
	return tp, fp, tn, fn, nil
}

// Accuracy returns the fraction of predictions equal to the true labels.
func Accuracy(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, fp, tn, fn, err := confusionCounts("Accuracy", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	total := tp + fp + tn + fn
	return float64(tp+tn) / float64(total), nil
}

// Precision returns tp / (tp + fp).
//
// When no positive predictions were made the metric is undefined; the
// function returns 0 and raises an UndefinedMetricWarning.
func Precision(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, fp, _, _, err := confusionCounts("Precision", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if tp+fp == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("precision", "no predicted positives", 0))
		return 0, nil
	}
	return float64(tp) / float64(tp+fp), nil
}

// Recall returns tp / (tp + fn).
//
// When the input contains no positive examples the metric is undefined; the
// function returns 0 and raises an UndefinedMetricWarning.
func Recall(yTrue, yPred *mat.VecDense) (float64, error) {
	tp, _, _, fn, err := confusionCounts("Recall", yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if tp+fn == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("recall", "no true positives in input", 0))
		return 0, nil
	}
	return float64(tp) / float64(tp+fn), nil
}

// F1 returns the harmonic mean of precision and recall.
//
// When precision + recall is 0 the metric is undefined; the function returns
// 0 and raises an UndefinedMetricWarning.
func F1(yTrue, yPred *mat.VecDense) (float64, error) {
	precision, err := Precision(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	recall, err := Recall(yTrue, yPred)
	if err != nil {
		return 0, err
	}
	if precision+recall == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("f1", "precision and recall are both zero", 0))
		return 0, nil
	}
	return 2 * precision * recall / (precision + recall), nil
}

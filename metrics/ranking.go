package metrics

import (
	"sort"

	"gonum.org/v1/gonum/integrate"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/molbench/molbench/pkg/errors"
)

// validateScored checks a (true label, score) pair of vectors and returns the
// labels as booleans alongside a copy of the scores.
func validateScored(op string, yTrue, yScore *mat.VecDense) (classes []bool, scores []float64, err error) {
	n := yTrue.Len()
	if n == 0 {
		return nil, nil, errors.NewValueError(op, "empty vector")
	}
	if yScore.Len() != n {
		return nil, nil, errors.NewDimensionError(op, n, yScore.Len(), 0)
	}

	classes = make([]bool, n)
	scores = make([]float64, n)
	for i := 0; i < n; i++ {
		yt := yTrue.AtVec(i)
		if yt != 0 && yt != 1 {
			return nil, nil, errors.NewValueError(op, "labels must be exactly 0 or 1")
		}
		classes[i] = yt == 1
		scores[i] = yScore.AtVec(i)
	}
	return classes, scores, nil
}

// ROCAUC returns the area under the receiver-operating-characteristic curve
// for binary labels and real-valued scores.
//
// When the input contains a single class the curve is undefined; the
// function returns 0.5 and raises an UndefinedMetricWarning.
func ROCAUC(yTrue, yScore *mat.VecDense) (float64, error) {
	classes, scores, err := validateScored("ROCAUC", yTrue, yScore)
	if err != nil {
		return 0, err
	}

	pos := 0
	for _, c := range classes {
		if c {
			pos++
		}
	}
	if pos == 0 || pos == len(classes) {
		errors.Warn(errors.NewUndefinedMetricWarning("roc_auc", "only one class present", 0.5))
		return 0.5, nil
	}

	weights := make([]float64, len(scores))
	for i := range weights {
		weights[i] = 1
	}
	stat.SortWeightedLabeled(scores, classes, weights)
	tpr, fpr, _ := stat.ROC(nil, scores, classes, weights)
	return integrate.Trapezoidal(fpr, tpr), nil
}

// PRAUC returns the area under the precision-recall curve, computed by
// trapezoidal integration over the points of a threshold sweep across all
// distinct scores. The curve is anchored at (recall=0, precision=1), matching
// the conventional sweep output.
//
// When the input contains no positive examples the curve is undefined; the
// function returns 0 and raises an UndefinedMetricWarning.
func PRAUC(yTrue, yScore *mat.VecDense) (float64, error) {
	classes, scores, err := validateScored("PRAUC", yTrue, yScore)
	if err != nil {
		return 0, err
	}

	totalPos := 0
	for _, c := range classes {
		if c {
			totalPos++
		}
	}
	if totalPos == 0 {
		errors.Warn(errors.NewUndefinedMetricWarning("pr_auc", "no true positives in input", 0))
		return 0, nil
	}

	// Sweep thresholds from the highest score down, emitting one
	// (recall, precision) point per distinct score.
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	recalls := []float64{0}
	precisions := []float64{1}
	tp, fp := 0, 0
	for k, idx := range order {
		if classes[idx] {
			tp++
		} else {
			fp++
		}
		// Only emit a point at a score boundary; ties share one point.
		if k+1 < len(order) && scores[order[k+1]] == scores[idx] {
			continue
		}
		recalls = append(recalls, float64(tp)/float64(totalPos))
		precisions = append(precisions, float64(tp)/float64(tp+fp))
	}

	return integrate.Trapezoidal(recalls, precisions), nil
}

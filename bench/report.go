package bench

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"gonum.org/v1/gonum/mat"

	"github.com/molbench/molbench/boosting"
	"github.com/molbench/molbench/dataset"
	"github.com/molbench/molbench/metrics"
	"github.com/molbench/molbench/pkg/errors"
)

// Report evaluates a trained model on one partition. Probabilities above
// threshold count as positive predictions for the thresholded metrics; the
// ranking metrics consume the raw probabilities.
func Report(model *boosting.Model, rows []dataset.Row, threshold float64) (MetricsTable, error) {
	if len(rows) == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}

	X, yTrue := Matrices(rows)
	probs, err := model.PredictProba(X)
	if err != nil {
		return nil, err
	}
	return Evaluate(yTrue, probs, threshold)
}

// Evaluate computes the full metrics table from true labels and predicted
// positive-class probabilities.
func Evaluate(yTrue, probs *mat.VecDense, threshold float64) (MetricsTable, error) {
	preds := mat.NewVecDense(probs.Len(), nil)
	for i := 0; i < probs.Len(); i++ {
		if probs.AtVec(i) > threshold {
			preds.SetVec(i, 1)
		}
	}

	var err error
	table := MetricsTable{}
	thresholded := []struct {
		name string
		fn   func(yTrue, yPred *mat.VecDense) (float64, error)
	}{
		{"accuracy", metrics.Accuracy},
		{"recall", metrics.Recall},
		{"precision", metrics.Precision},
		{"f1", metrics.F1},
	}
	for _, m := range thresholded {
		v, err := m.fn(yTrue, preds)
		if err != nil {
			return nil, errors.Wrapf(err, "computing %s", m.name)
		}
		table[m.name] = v
	}

	if table["roc_auc"], err = metrics.ROCAUC(yTrue, probs); err != nil {
		return nil, errors.Wrap(err, "computing roc_auc")
	}
	if table["pr_auc"], err = metrics.PRAUC(yTrue, probs); err != nil {
		return nil, errors.Wrap(err, "computing pr_auc")
	}
	return table, nil
}

// Matrices converts prepared rows into the feature matrix and label vector
// the model and metric layers consume.
func Matrices(rows []dataset.Row) (*mat.Dense, *mat.VecDense) {
	if len(rows) == 0 {
		return nil, nil
	}
	X := mat.NewDense(len(rows), len(rows[0].Features), nil)
	y := mat.NewVecDense(len(rows), nil)
	for i, row := range rows {
		X.SetRow(i, row.Features)
		y.SetVec(i, row.Label)
	}
	return X, y
}

// RenderTable writes one dataset's metrics as an aligned table, one metric
// per row with train/valid/test columns, values to three decimals.
func RenderTable(w io.Writer, res Result) {
	fmt.Fprintf(w, "\n=== %s (n=%d, train=%d, valid=%d, test=%d, best_iteration=%d) ===\n",
		res.Dataset, res.Rows, res.TrainRows, res.ValidRows, res.TestRows, res.BestIteration)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"metric", "train", "valid", "test"})
	for _, name := range MetricNames {
		table.Append([]string{
			name,
			fmt.Sprintf("%.3f", res.Metrics.Train[name]),
			fmt.Sprintf("%.3f", res.Metrics.Valid[name]),
			fmt.Sprintf("%.3f", res.Metrics.Test[name]),
		})
	}
	table.Render()
}

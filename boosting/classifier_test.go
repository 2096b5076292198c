package boosting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/molbench/molbench/pkg/errors"
)

func TestClassifierNotFitted(t *testing.T) {
	clf := NewClassifier(WithName("toy"))

	_, err := clf.PredictProba(mat.NewDense(1, 1, nil))
	require.Error(t, err)

	var nfe *errors.NotFittedError
	assert.True(t, errors.As(err, &nfe))

	_, err = clf.Model()
	assert.Error(t, err)
	_, err = clf.Weights()
	assert.Error(t, err)
}

func TestClassifierFitPredict(t *testing.T) {
	X, y := separableData(200)
	validX, validY := separableData(60)

	clf := NewClassifier(
		WithName("toy"),
		WithNumIterations(20),
		WithMinDataInLeaf(5),
		WithEarlyStopping(5),
		WithSeed(11),
	)
	require.NoError(t, clf.Fit(X, y, validX, validY))

	probs, err := clf.PredictProba(validX)
	require.NoError(t, err)
	require.Equal(t, 60, probs.Len())

	correct := 0
	for i := 0; i < probs.Len(); i++ {
		pred := 0.0
		if probs.AtVec(i) > 0.5 {
			pred = 1.0
		}
		if pred == validY[i] {
			correct++
		}
	}
	assert.Equal(t, 60, correct, "separable data should be classified perfectly")

	weights, err := clf.Weights()
	require.NoError(t, err)
	assert.InDelta(t, 1.0, weights.Positive, 1e-12)
	assert.InDelta(t, 1.0, weights.Negative, 1e-12)

	model, err := clf.Model()
	require.NoError(t, err)
	assert.Greater(t, model.BestIteration, 0)
}

func TestClassifierSingleClassTraining(t *testing.T) {
	X := mat.NewDense(10, 2, nil)
	y := make([]float64, 10) // all negative

	clf := NewClassifier(WithName("degenerate"))
	err := clf.Fit(X, y, nil, nil)
	require.Error(t, err)

	var icde *errors.InsufficientClassDiversityError
	assert.True(t, errors.As(err, &icde))
}

func TestClassifierOptions(t *testing.T) {
	clf := NewClassifier(
		WithNumIterations(7),
		WithLearningRate(0.3),
		WithNumLeaves(15),
		WithMaxDepth(4),
		WithMinDataInLeaf(2),
		WithEarlyStopping(9),
		WithSeed(5),
	)
	assert.Equal(t, 7, clf.params.NumIterations)
	assert.Equal(t, 0.3, clf.params.LearningRate)
	assert.Equal(t, 15, clf.params.NumLeaves)
	assert.Equal(t, 4, clf.params.MaxDepth)
	assert.Equal(t, 2, clf.params.MinDataInLeaf)
	assert.Equal(t, 9, clf.params.EarlyStopping)
	assert.Equal(t, int64(5), clf.params.Seed)
}

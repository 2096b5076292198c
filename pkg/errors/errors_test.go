package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataQualityError(t *testing.T) {
	err := NewDataQualityError("C1CC1(", "unbalanced ring bond")
	require.Error(t, err)

	var dqe *DataQualityError
	require.True(t, As(err, &dqe))
	assert.Equal(t, "C1CC1(", dqe.Structure)
	assert.Contains(t, err.Error(), "unusable")
}

func TestShapeMismatchError(t *testing.T) {
	err := NewShapeMismatchError("indexed", "vector of length >= 11", []int{1})
	require.Error(t, err)

	var sme *ShapeMismatchError
	require.True(t, As(err, &sme))
	assert.Equal(t, []int{1}, sme.Got)
	assert.Contains(t, err.Error(), "does not match expected")
}

func TestInsufficientClassDiversityError(t *testing.T) {
	err := NewInsufficientClassDiversityError("bace", 1.0, 42)
	require.Error(t, err)

	var icde *InsufficientClassDiversityError
	require.True(t, As(err, &icde))
	assert.Equal(t, "bace", icde.Dataset)
	assert.Equal(t, 42, icde.Samples)
}

func TestNotFittedError(t *testing.T) {
	err := NewNotFittedError("Classifier", "PredictProba")
	var nfe *NotFittedError
	require.True(t, As(err, &nfe))
	assert.Contains(t, err.Error(), "not fitted")
}

func TestWarnUsesHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(nil)

	w := NewStructureParseWarning("c1ccccc1", "deprecated aromatic form")
	Warn(w)
	Warn(NewUndefinedMetricWarning("precision", "no predicted positives", 0))

	require.Len(t, captured, 2)
	assert.Equal(t, w, captured[0])
}

func TestWarnPrefersZerologSink(t *testing.T) {
	handlerCalls := 0
	SetWarningHandler(func(w error) { handlerCalls++ })
	defer SetWarningHandler(nil)

	var sinkCalls int
	SetZerologWarnFunc(func(warning error) { sinkCalls++ })
	defer SetZerologWarnFunc(nil)

	Warn(New("anything"))
	assert.Equal(t, 1, sinkCalls)
	assert.Equal(t, 0, handlerCalls)
}

func TestWrappingPreservesType(t *testing.T) {
	err := Wrap(NewDataQualityError("X", "unknown atom symbol"), "encoding batch")
	var dqe *DataQualityError
	assert.True(t, As(err, &dqe))
}

package dataset

import (
	"math"

	"github.com/molbench/molbench/pkg/errors"
)

// Extractor maps a raw label vector to a single scalar binary label, or
// signals that the label is missing. A label vector whose shape does not
// match the extractor's expectation is a configuration bug and returns a
// ShapeMismatchError.
type Extractor interface {
	Name() string
	Extract(labels []float64) (label float64, missing bool, err error)
}

// ThresholdExtractor binarizes a scalar property: label is 1 when the value
// exceeds Cutoff, 0 otherwise. There is no missing case.
type ThresholdExtractor struct {
	Cutoff float64
}

// Name returns the extractor variant name.
func (e ThresholdExtractor) Name() string { return "binary-threshold" }

// Extract implements Extractor.
func (e ThresholdExtractor) Extract(labels []float64) (float64, bool, error) {
	if len(labels) != 1 {
		return 0, false, errors.NewShapeMismatchError(e.Name(), "scalar", []int{len(labels)})
	}
	if labels[0] > e.Cutoff {
		return 1, false, nil
	}
	return 0, false, nil
}

// PassThroughExtractor forwards an already binary scalar label. NaN maps to
// missing.
type PassThroughExtractor struct{}

// Name returns the extractor variant name.
func (e PassThroughExtractor) Name() string { return "pass-through" }

// Extract implements Extractor.
func (e PassThroughExtractor) Extract(labels []float64) (float64, bool, error) {
	if len(labels) != 1 {
		return 0, false, errors.NewShapeMismatchError(e.Name(), "scalar", []int{len(labels)})
	}
	if math.IsNaN(labels[0]) {
		return 0, true, nil
	}
	return labels[0], false, nil
}

// IndexedExtractor selects one task from a vector-valued label, such as a
// single assay out of a multi-task toxicity panel. NaN maps to missing.
type IndexedExtractor struct {
	Index int
}

// Name returns the extractor variant name.
func (e IndexedExtractor) Name() string { return "indexed" }

// Extract implements Extractor.
func (e IndexedExtractor) Extract(labels []float64) (float64, bool, error) {
	if e.Index < 0 || e.Index >= len(labels) {
		return 0, false, errors.NewShapeMismatchError(e.Name(), "vector covering the task index", []int{len(labels)})
	}
	if math.IsNaN(labels[e.Index]) {
		return 0, true, nil
	}
	return labels[e.Index], false, nil
}

// Extract applies the extractor to every sample, in order. Every extracted
// non-missing label is validated to be exactly 0 or 1; anything else means
// the dataset and extractor are misconfigured.
func Extract(samples []RawSample, ex Extractor) ([]LabeledSample, error) {
	labeled := make([]LabeledSample, 0, len(samples))
	for i, s := range samples {
		label, missing, err := ex.Extract(s.Labels)
		if err != nil {
			return nil, errors.Wrapf(err, "sample %d", i)
		}
		if !missing && label != 0 && label != 1 {
			return nil, errors.NewValueError("dataset.Extract",
				"extracted label must be exactly 0 or 1")
		}
		labeled = append(labeled, LabeledSample{Structure: s.Structure, Label: label, Missing: missing})
	}
	return labeled, nil
}

// Filter drops samples with a missing label. Pure and order-preserving.
func Filter(samples []LabeledSample) []LabeledSample {
	kept := make([]LabeledSample, 0, len(samples))
	for _, s := range samples {
		if s.Missing {
			continue
		}
		kept = append(kept, s)
	}
	return kept
}

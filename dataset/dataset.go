// Package dataset supplies molecule samples for the benchmark pipeline:
// raw records loaded from benchmark CSV files, dataset-specific label
// extraction, and filtering of samples with missing labels.
package dataset

// RawSample is one molecule record as produced by a Source: a structural
// string plus the raw label vector, which may contain NaN entries.
type RawSample struct {
	Structure string
	Labels    []float64
}

// LabeledSample is a RawSample reduced to a single scalar binary label.
// Missing marks samples whose label is undefined for the selected task.
type LabeledSample struct {
	Structure string
	Label     float64
	Missing   bool
}

// Row is one fully prepared sample: the structural string (unique key), its
// fingerprint, and its binary label.
type Row struct {
	Structure string
	Features  []float64
	Label     float64
}

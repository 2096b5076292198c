// Package bench orchestrates the benchmark pipeline: load samples, extract
// and filter labels, encode fingerprints, partition, train a class-weighted
// classifier, and report per-partition metrics. Each dataset runs through
// the identical pipeline; nothing is shared across datasets beyond the
// configuration.
package bench

import (
	"github.com/molbench/molbench/split"
)

// Config carries everything one pipeline run needs. There is no other
// pipeline state: results are returned, never accumulated in package
// variables.
type Config struct {
	// DataDir holds the benchmark CSV files.
	DataDir string

	// Datasets selects which benchmarks to run; empty means all five.
	Datasets []string

	// Seed drives the train/valid/test partitioning. It is fixed across
	// datasets and runs.
	Seed int64

	// Threshold converts predicted probabilities into binary predictions.
	Threshold float64

	// Training hyperparameters, applied identically to every dataset.
	NumIterations int
	LearningRate  float64
	EarlyStopping int
	TrainSeed     int64
}

// DefaultConfig returns the standard benchmark configuration.
func DefaultConfig() Config {
	return Config{
		DataDir:       "data",
		Seed:          split.DefaultSeed,
		Threshold:     0.5,
		NumIterations: 200,
		LearningRate:  0.1,
		EarlyStopping: 10,
		TrainSeed:     0,
	}
}

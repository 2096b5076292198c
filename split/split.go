// Package split assigns samples to train/validation/test partitions using a
// seeded uniform draw per row, consumed in row order. Given the same number
// of rows and the same seed, assignments are identical on every call.
package split

import (
	"math/rand"

	"github.com/molbench/molbench/pkg/errors"
)

// DefaultSeed is the fixed module-wide seed for partitioning. It is shared
// by every dataset and never varies per run.
const DefaultSeed int64 = 42

// Partition boundaries on the uniform draw u in [0, 1).
const (
	trainUpper = 0.8
	validUpper = 0.9
)

// Fold identifies the partition a row belongs to.
type Fold int

const (
	// FoldTrain holds rows with u < 0.8.
	FoldTrain Fold = iota
	// FoldValid holds rows with 0.8 <= u < 0.9.
	FoldValid
	// FoldTest holds rows with u > 0.9.
	FoldTest
	// FoldNone marks the boundary gap: a draw of exactly 0.9 belongs to no
	// partition. The gap is intentional and kept for reproducibility against
	// reference outputs.
	FoldNone
)

// String returns the partition name.
func (f Fold) String() string {
	switch f {
	case FoldTrain:
		return "train"
	case FoldValid:
		return "valid"
	case FoldTest:
		return "test"
	default:
		return "none"
	}
}

// foldFor maps one uniform draw to its partition.
func foldFor(u float64) Fold {
	switch {
	case u < trainUpper:
		return FoldTrain
	case u < validUpper:
		return FoldValid
	case u > validUpper:
		return FoldTest
	default:
		return FoldNone
	}
}

// Assign draws one uniform number per row from a single generator seeded
// once, and maps each draw to a Fold. The returned slice has length n and
// position i holds the fold of row i.
func Assign(n int, seed int64) ([]Fold, error) {
	if n < 0 {
		return nil, errors.NewValueError("split.Assign", "negative row count")
	}
	rng := rand.New(rand.NewSource(seed))
	folds := make([]Fold, n)
	for i := 0; i < n; i++ {
		folds[i] = foldFor(rng.Float64())
	}
	return folds, nil
}

// Indices partitions row indices 0..n-1 into train/valid/test index slices,
// preserving row order within each partition. Rows falling into the boundary
// gap are omitted from all three.
func Indices(n int, seed int64) (train, valid, test []int, err error) {
	folds, err := Assign(n, seed)
	if err != nil {
		return nil, nil, nil, err
	}
	for i, f := range folds {
		switch f {
		case FoldTrain:
			train = append(train, i)
		case FoldValid:
			valid = append(valid, i)
		case FoldTest:
			test = append(test, i)
		}
	}
	return train, valid, test, nil
}

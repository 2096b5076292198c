package split

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignReproducible(t *testing.T) {
	first, err := Assign(5000, DefaultSeed)
	require.NoError(t, err)
	second, err := Assign(5000, DefaultSeed)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestAssignSeedSensitive(t *testing.T) {
	a, err := Assign(1000, DefaultSeed)
	require.NoError(t, err)
	b, err := Assign(1000, DefaultSeed+1)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestIndicesDisjointAndOrdered(t *testing.T) {
	const n = 2000
	train, valid, test, err := Indices(n, DefaultSeed)
	require.NoError(t, err)

	seen := make(map[int]int)
	for _, idx := range train {
		seen[idx]++
	}
	for _, idx := range valid {
		seen[idx]++
	}
	for _, idx := range test {
		seen[idx]++
	}
	for idx, count := range seen {
		assert.Equalf(t, 1, count, "row %d appears in %d partitions", idx, count)
	}

	for _, part := range [][]int{train, valid, test} {
		for i := 1; i < len(part); i++ {
			assert.Less(t, part[i-1], part[i])
		}
	}
}

func TestPartitionProportions(t *testing.T) {
	const n = 20000
	train, valid, test, err := Indices(n, DefaultSeed)
	require.NoError(t, err)

	trainFrac := float64(len(train)) / n
	validFrac := float64(len(valid)) / n
	testFrac := float64(len(test)) / n

	assert.InDelta(t, 0.8, trainFrac, 0.03)
	assert.InDelta(t, 0.1, validFrac, 0.03)
	assert.InDelta(t, 0.1, testFrac, 0.03)
}

func TestBoundaryGap(t *testing.T) {
	// A draw of exactly 0.9 belongs to no partition.
	assert.Equal(t, FoldNone, foldFor(0.9))

	assert.Equal(t, FoldTrain, foldFor(0))
	assert.Equal(t, FoldTrain, foldFor(math.Nextafter(0.8, 0)))
	assert.Equal(t, FoldValid, foldFor(0.8))
	assert.Equal(t, FoldValid, foldFor(math.Nextafter(0.9, 0)))
	assert.Equal(t, FoldTest, foldFor(math.Nextafter(0.9, 1)))
	assert.Equal(t, FoldTest, foldFor(math.Nextafter(1, 0)))
}

func TestFoldString(t *testing.T) {
	assert.Equal(t, "train", FoldTrain.String())
	assert.Equal(t, "valid", FoldValid.String())
	assert.Equal(t, "test", FoldTest.String())
	assert.Equal(t, "none", FoldNone.String())
}

package bench

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/molbench/molbench/dataset"
)

// writeESOLFixture writes a delaney-schema CSV where the molecule fully
// determines the label: ethanol rows are soluble, naphthalene rows are not.
func writeESOLFixture(t *testing.T, dir string, n int) {
	t.Helper()

	var sb strings.Builder
	sb.WriteString("smiles,measured log solubility in mols per litre\n")
	for i := 0; i < n; i++ {
		if i%2 == 0 {
			fmt.Fprintf(&sb, "CCO,%.1f\n", -1.0)
		} else {
			fmt.Fprintf(&sb, "c1ccc2ccccc2c1,%.1f\n", -5.0)
		}
	}
	path := filepath.Join(dir, "delaney-processed.csv")
	require.NoError(t, os.WriteFile(path, []byte(sb.String()), 0o644))
}

func TestRunDatasetSeparableFixture(t *testing.T) {
	dir := t.TempDir()
	writeESOLFixture(t, dir, 200)

	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.NumIterations = 30
	cfg.LearningRate = 0.3
	cfg.EarlyStopping = 10

	b, err := dataset.BenchmarkByName("esol")
	require.NoError(t, err)

	res, err := RunDataset(cfg, b)
	require.NoError(t, err)

	assert.Equal(t, "esol", res.Dataset)
	assert.Equal(t, 200, res.Rows)
	assert.Equal(t, 200, res.TrainRows+res.ValidRows+res.TestRows)
	assert.Greater(t, res.TrainRows, res.ValidRows)
	assert.Greater(t, res.TrainRows, res.TestRows)
	assert.Greater(t, res.BestIteration, 0)

	// Balanced classes give unit weights.
	assert.InDelta(t, 1.0, res.Weights.Positive, 1e-9)
	assert.InDelta(t, 1.0, res.Weights.Negative, 1e-9)

	// The molecule determines the label, so every partition separates
	// perfectly.
	for _, table := range []MetricsTable{res.Metrics.Train, res.Metrics.Valid, res.Metrics.Test} {
		for _, name := range MetricNames {
			assert.InDeltaf(t, 1.0, table[name], 1e-9, "metric %s", name)
		}
	}
}

func TestRunSelectsConfiguredDatasets(t *testing.T) {
	dir := t.TempDir()
	writeESOLFixture(t, dir, 200)

	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.Datasets = []string{"esol"}
	cfg.NumIterations = 10
	cfg.LearningRate = 0.3

	results, err := Run(cfg)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "esol", results[0].Dataset)
}

func TestRunKeepsCompletedResultsOnFailure(t *testing.T) {
	dir := t.TempDir()
	writeESOLFixture(t, dir, 200)

	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.Datasets = []string{"esol", "bace"} // no bace.csv in the fixture dir
	cfg.NumIterations = 10
	cfg.LearningRate = 0.3

	results, err := Run(cfg)
	require.Error(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "esol", results[0].Dataset)
}

func TestRunUnknownDataset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Datasets = []string{"nonexistent"}

	_, err := Run(cfg)
	assert.Error(t, err)
}

func TestSelectBenchmarksDefault(t *testing.T) {
	benchmarks, err := selectBenchmarks(nil)
	require.NoError(t, err)
	require.Len(t, benchmarks, 5)

	names := make([]string, len(benchmarks))
	for i, b := range benchmarks {
		names[i] = b.Name
	}
	assert.Equal(t, []string{"esol", "freesolv", "lipophilicity", "bace", "tox21"}, names)
}

func TestRunDatasetMissingFile(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()

	b, err := dataset.BenchmarkByName("bace")
	require.NoError(t, err)

	_, err = RunDataset(cfg, b)
	assert.Error(t, err)
}

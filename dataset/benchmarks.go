package dataset

import (
	"io"
	"path/filepath"

	"github.com/molbench/molbench/pkg/errors"
)

// Binarization cutoffs for the regression benchmarks: label is 1 when the
// measured property exceeds the cutoff. The cutoffs sit near each
// benchmark's median so both classes stay populated.
const (
	// ESOLCutoff splits aqueous solubility (log mol/L).
	ESOLCutoff = -3.0
	// FreeSolvCutoff splits hydration free energy (kcal/mol).
	FreeSolvCutoff = -3.0
	// LipophilicityCutoff splits octanol/water logD.
	LipophilicityCutoff = 2.0
)

// Tox21Task selects the SR-p53 stress-response assay from the 12-task panel.
const Tox21Task = 11

// Benchmark defines one molecular property benchmark: where its CSV lives
// and how its raw labels reduce to a binary task.
type Benchmark struct {
	Name      string
	File      string
	Extractor Extractor
	decode    func(r io.Reader) ([]RawSample, error)
}

// Open returns a Source reading the benchmark's CSV from dataDir.
func (b Benchmark) Open(dataDir string) Source {
	return &csvSource{name: b.Name, path: filepath.Join(dataDir, b.File), decode: b.decode}
}

// Benchmarks returns the five built-in benchmarks in canonical run order.
func Benchmarks() []Benchmark {
	return []Benchmark{
		{
			Name:      "esol",
			File:      "delaney-processed.csv",
			Extractor: ThresholdExtractor{Cutoff: ESOLCutoff},
			decode:    decodeESOL,
		},
		{
			Name:      "freesolv",
			File:      "SAMPL.csv",
			Extractor: ThresholdExtractor{Cutoff: FreeSolvCutoff},
			decode:    decodeFreeSolv,
		},
		{
			Name:      "lipophilicity",
			File:      "Lipophilicity.csv",
			Extractor: ThresholdExtractor{Cutoff: LipophilicityCutoff},
			decode:    decodeLipophilicity,
		},
		{
			Name:      "bace",
			File:      "bace.csv",
			Extractor: PassThroughExtractor{},
			decode:    decodeBACE,
		},
		{
			Name:      "tox21",
			File:      "tox21.csv",
			Extractor: IndexedExtractor{Index: Tox21Task},
			decode:    decodeTox21,
		},
	}
}

// BenchmarkByName looks up a built-in benchmark.
func BenchmarkByName(name string) (Benchmark, error) {
	for _, b := range Benchmarks() {
		if b.Name == name {
			return b, nil
		}
	}
	return Benchmark{}, errors.Newf("unknown benchmark %q", name)
}

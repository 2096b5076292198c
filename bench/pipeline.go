package bench

import (
	"time"

	"github.com/molbench/molbench/boosting"
	"github.com/molbench/molbench/dataset"
	"github.com/molbench/molbench/fingerprint"
	"github.com/molbench/molbench/pkg/errors"
	"github.com/molbench/molbench/pkg/log"
	"github.com/molbench/molbench/split"
)

// Run executes the pipeline for every selected benchmark in canonical order
// and returns one Result per dataset. A failure in one dataset aborts the
// run, but results for datasets completed before the failure are returned
// alongside the error.
func Run(cfg Config) ([]Result, error) {
	log.InstallWarningSink()

	benchmarks, err := selectBenchmarks(cfg.Datasets)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(benchmarks))
	for _, b := range benchmarks {
		res, err := RunDataset(cfg, b)
		if err != nil {
			return results, errors.Wrapf(err, "benchmark %s", b.Name)
		}
		results = append(results, res)
	}
	return results, nil
}

func selectBenchmarks(names []string) ([]dataset.Benchmark, error) {
	if len(names) == 0 {
		return dataset.Benchmarks(), nil
	}
	benchmarks := make([]dataset.Benchmark, 0, len(names))
	for _, name := range names {
		b, err := dataset.BenchmarkByName(name)
		if err != nil {
			return nil, err
		}
		benchmarks = append(benchmarks, b)
	}
	return benchmarks, nil
}

// RunDataset runs one benchmark end to end: load, extract, filter, encode,
// partition, train, evaluate.
func RunDataset(cfg Config, b dataset.Benchmark) (Result, error) {
	logger := log.GetLoggerWithName("bench")
	start := time.Now()

	samples, err := b.Open(cfg.DataDir).Samples()
	if err != nil {
		return Result{}, err
	}

	labeled, err := dataset.Extract(samples, b.Extractor)
	if err != nil {
		return Result{}, err
	}
	kept := dataset.Filter(labeled)
	if len(kept) == 0 {
		return Result{}, errors.Wrapf(errors.ErrEmptyData, "no labeled samples in %s", b.Name)
	}
	logger.Debug("labels extracted",
		log.DatasetKey, b.Name,
		log.PhaseKey, "extract",
		log.SamplesKey, len(kept),
		log.DroppedKey, len(labeled)-len(kept),
	)

	rows, err := prepareRows(kept)
	if err != nil {
		return Result{}, err
	}
	logger.Debug("fingerprints encoded",
		log.DatasetKey, b.Name,
		log.PhaseKey, "encode",
		log.SamplesKey, len(rows),
		log.FeaturesKey, fingerprint.Size,
	)

	trainIdx, validIdx, testIdx, err := split.Indices(len(rows), cfg.Seed)
	if err != nil {
		return Result{}, err
	}
	train := rowsAt(rows, trainIdx)
	valid := rowsAt(rows, validIdx)
	test := rowsAt(rows, testIdx)
	if len(train) == 0 || len(valid) == 0 || len(test) == 0 {
		return Result{}, errors.Newf("partitioning %s left an empty fold (train=%d valid=%d test=%d)",
			b.Name, len(train), len(valid), len(test))
	}

	clf := boosting.NewClassifier(
		boosting.WithName(b.Name),
		boosting.WithNumIterations(cfg.NumIterations),
		boosting.WithLearningRate(cfg.LearningRate),
		boosting.WithEarlyStopping(cfg.EarlyStopping),
		boosting.WithSeed(cfg.TrainSeed),
	)
	trainX, _ := Matrices(train)
	validX, _ := Matrices(valid)
	if err := clf.Fit(trainX, rawLabels(train), validX, rawLabels(valid)); err != nil {
		return Result{}, err
	}

	model, err := clf.Model()
	if err != nil {
		return Result{}, err
	}
	weights, err := clf.Weights()
	if err != nil {
		return Result{}, err
	}

	var m PartitionMetrics
	if m.Train, err = Report(model, train, cfg.Threshold); err != nil {
		return Result{}, err
	}
	if m.Valid, err = Report(model, valid, cfg.Threshold); err != nil {
		return Result{}, err
	}
	if m.Test, err = Report(model, test, cfg.Threshold); err != nil {
		return Result{}, err
	}

	logger.Info("benchmark finished",
		log.DatasetKey, b.Name,
		log.SamplesKey, len(rows),
		log.BestIterationKey, model.BestIteration,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	return Result{
		Dataset:       b.Name,
		Rows:          len(rows),
		TrainRows:     len(train),
		ValidRows:     len(valid),
		TestRows:      len(test),
		Weights:       weights,
		BestIteration: model.BestIteration,
		Metrics:       m,
	}, nil
}

// prepareRows encodes fingerprints for the kept samples, in input order.
func prepareRows(kept []dataset.LabeledSample) ([]dataset.Row, error) {
	structures := make([]string, len(kept))
	for i, s := range kept {
		structures[i] = s.Structure
	}

	features, err := fingerprint.EncodeBatch(fingerprint.NewStructuralKeys(), structures)
	if err != nil {
		return nil, err
	}

	rows := make([]dataset.Row, len(kept))
	for i, s := range kept {
		rows[i] = dataset.Row{
			Structure: s.Structure,
			Features:  features.RawRowView(i),
			Label:     s.Label,
		}
	}
	return rows, nil
}

func rowsAt(rows []dataset.Row, idx []int) []dataset.Row {
	out := make([]dataset.Row, len(idx))
	for i, j := range idx {
		out[i] = rows[j]
	}
	return out
}

func rawLabels(rows []dataset.Row) []float64 {
	labels := make([]float64, len(rows))
	for i, r := range rows {
		labels[i] = r.Label
	}
	return labels
}

// Standard attribute keys for benchmark pipeline logging. Using these keys
// keeps per-dataset log output filterable.

package log

// Pipeline context.
const (
	// ComponentKey identifies which package is performing the operation.
	// Examples: "dataset", "fingerprint", "boosting", "bench"
	ComponentKey = "component"

	// DatasetKey identifies the benchmark dataset being processed.
	DatasetKey = "dataset"

	// PhaseKey indicates the pipeline phase.
	// Examples: "load", "encode", "partition", "train", "report"
	PhaseKey = "phase"
)

// Data shape.
const (
	// SamplesKey indicates the number of samples (rows) being processed.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns).
	FeaturesKey = "data.features"

	// DroppedKey indicates how many samples were dropped by a filter.
	DroppedKey = "data.dropped"
)

// Training and evaluation.
const (
	// IterationKey is the current boosting iteration.
	IterationKey = "train.iteration"

	// BestIterationKey is the validation-selected boosting iteration.
	BestIterationKey = "train.best_iteration"

	// DurationMsKey records elapsed wall time in milliseconds.
	DurationMsKey = "duration_ms"
)

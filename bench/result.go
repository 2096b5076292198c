package bench

import (
	"github.com/molbench/molbench/boosting"
)

// MetricNames lists the reported metrics in display order.
var MetricNames = []string{"accuracy", "recall", "precision", "f1", "roc_auc", "pr_auc"}

// MetricsTable maps metric name to value for one partition.
type MetricsTable map[string]float64

// PartitionMetrics holds one MetricsTable per partition.
type PartitionMetrics struct {
	Train MetricsTable
	Valid MetricsTable
	Test  MetricsTable
}

// Result is the outcome of running one benchmark dataset.
type Result struct {
	Dataset string

	// Row counts after filtering and partitioning.
	Rows      int
	TrainRows int
	ValidRows int
	TestRows  int

	Weights       boosting.ClassWeights
	BestIteration int
	Metrics       PartitionMetrics
}

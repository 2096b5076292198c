package boosting

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/molbench/molbench/pkg/errors"
	"github.com/molbench/molbench/pkg/log"
)

// Classifier is a class-weighted boosted-tree binary classifier. Balanced
// class weights are computed from the training labels at fit time, and the
// reported model uses the iteration with the best validation loss.
type Classifier struct {
	name   string
	params TrainingParams

	model   *Model
	weights ClassWeights
	fitted  bool
}

// ClassifierOption configures a Classifier.
type ClassifierOption func(*Classifier)

// WithName tags the classifier with the dataset it is trained for; the tag
// appears in errors and logs.
func WithName(name string) ClassifierOption {
	return func(c *Classifier) { c.name = name }
}

// WithNumIterations sets the maximum number of boosting iterations.
func WithNumIterations(n int) ClassifierOption {
	return func(c *Classifier) { c.params.NumIterations = n }
}

// WithLearningRate sets the shrinkage rate.
func WithLearningRate(lr float64) ClassifierOption {
	return func(c *Classifier) { c.params.LearningRate = lr }
}

// WithEarlyStopping sets the patience in rounds on the validation set.
func WithEarlyStopping(rounds int) ClassifierOption {
	return func(c *Classifier) { c.params.EarlyStopping = rounds }
}

// WithSeed fixes the training seed.
func WithSeed(seed int64) ClassifierOption {
	return func(c *Classifier) { c.params.Seed = seed }
}

// WithNumLeaves caps the number of leaves per tree.
func WithNumLeaves(n int) ClassifierOption {
	return func(c *Classifier) { c.params.NumLeaves = n }
}

// WithMaxDepth caps the tree depth.
func WithMaxDepth(d int) ClassifierOption {
	return func(c *Classifier) { c.params.MaxDepth = d }
}

// WithMinDataInLeaf sets the minimum samples per leaf.
func WithMinDataInLeaf(n int) ClassifierOption {
	return func(c *Classifier) { c.params.MinDataInLeaf = n }
}

// NewClassifier creates an unfitted classifier.
func NewClassifier(opts ...ClassifierOption) *Classifier {
	c := &Classifier{name: "classifier"}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit computes balanced class weights from the training labels and trains
// the ensemble, selecting the best iteration on the validation set.
func (c *Classifier) Fit(trainX *mat.Dense, trainY []float64, validX *mat.Dense, validY []float64) error {
	weights, err := BalancedWeights(c.name, trainY)
	if err != nil {
		return err
	}
	c.weights = weights

	logger := log.GetLoggerWithName("boosting.classifier")
	start := time.Now()

	trainer := NewTrainer(c.params)
	model, err := trainer.Fit(trainX, trainY, SampleWeights(trainY, weights), validX, validY)
	if err != nil {
		return errors.Wrapf(err, "fitting %s", c.name)
	}

	rows, cols := trainX.Dims()
	logger.Info("training finished",
		log.DatasetKey, c.name,
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.BestIterationKey, model.BestIteration,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	c.model = model
	c.fitted = true
	return nil
}

// PredictProba returns positive-class probabilities for every row of X.
func (c *Classifier) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	if !c.fitted {
		return nil, errors.NewNotFittedError("Classifier", "PredictProba")
	}
	return c.model.PredictProba(X)
}

// Model returns the trained model.
func (c *Classifier) Model() (*Model, error) {
	if !c.fitted {
		return nil, errors.NewNotFittedError("Classifier", "Model")
	}
	return c.model, nil
}

// Weights returns the balanced class weights computed at fit time.
func (c *Classifier) Weights() (ClassWeights, error) {
	if !c.fitted {
		return ClassWeights{}, errors.NewNotFittedError("Classifier", "Weights")
	}
	return c.weights, nil
}

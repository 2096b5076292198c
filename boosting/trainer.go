package boosting

import (
	"math"
	"math/rand"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/molbench/molbench/pkg/errors"
	"github.com/molbench/molbench/pkg/log"
)

// TrainingParams contains the training hyperparameters.
type TrainingParams struct {
	NumIterations   int
	LearningRate    float64
	NumLeaves       int
	MaxDepth        int
	MinDataInLeaf   int
	Lambda          float64 // L2 regularization on leaf values
	MinGainToSplit  float64
	FeatureFraction float64
	EarlyStopping   int // rounds without validation improvement before stopping
	Seed            int64
	Verbosity       int
}

// Trainer fits a boosted-tree ensemble with logistic loss.
type Trainer struct {
	params TrainingParams

	X            *mat.Dense
	y            []float64
	sampleWeight []float64

	gradients []float64
	hessians  []float64
	scores    []float64 // cached raw ensemble scores per training sample

	trees     []Tree
	objective logisticObjective
	initScore float64
	rng       *rand.Rand
}

// NewTrainer creates a trainer with defaults filled in.
func NewTrainer(params TrainingParams) *Trainer {
	if params.NumIterations == 0 {
		params.NumIterations = 100
	}
	if params.LearningRate == 0 {
		params.LearningRate = 0.1
	}
	if params.NumLeaves == 0 {
		params.NumLeaves = 31
	}
	if params.MinDataInLeaf == 0 {
		params.MinDataInLeaf = 20
	}
	if params.FeatureFraction == 0 {
		params.FeatureFraction = 1.0
	}
	return &Trainer{
		params: params,
		rng:    rand.New(rand.NewSource(params.Seed)),
	}
}

// Fit trains the ensemble on (X, y) with per-sample weights and selects the
// best iteration by logistic loss on the validation set. The validation set
// may be empty, in which case all iterations are kept.
func (t *Trainer) Fit(X *mat.Dense, y, sampleWeight []float64, validX *mat.Dense, validY []float64) (*Model, error) {
	rows, cols := X.Dims()
	if rows == 0 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	if len(y) != rows {
		return nil, errors.NewDimensionError("Trainer.Fit", rows, len(y), 0)
	}
	if sampleWeight != nil && len(sampleWeight) != rows {
		return nil, errors.NewDimensionError("Trainer.Fit", rows, len(sampleWeight), 0)
	}

	t.X = X
	t.y = y
	t.sampleWeight = sampleWeight
	if t.sampleWeight == nil {
		t.sampleWeight = make([]float64, rows)
		for i := range t.sampleWeight {
			t.sampleWeight[i] = 1.0
		}
	}

	t.gradients = make([]float64, rows)
	t.hessians = make([]float64, rows)
	t.initScore = t.objective.InitScore(y, t.sampleWeight)
	t.scores = make([]float64, rows)
	for i := range t.scores {
		t.scores[i] = t.initScore
	}
	t.trees = t.trees[:0]

	var validScores []float64
	if validX != nil {
		validRows, _ := validX.Dims()
		if len(validY) != validRows {
			return nil, errors.NewDimensionError("Trainer.Fit", validRows, len(validY), 0)
		}
		validScores = make([]float64, validRows)
		for i := range validScores {
			validScores[i] = t.initScore
		}
	}

	logger := log.GetLoggerWithName("boosting.trainer")
	es := newEarlyStopping(t.params.EarlyStopping)

	for iter := 0; iter < t.params.NumIterations; iter++ {
		t.calculateGradients()

		tree := t.buildTree(iter, cols)
		t.trees = append(t.trees, tree)
		t.updateScores(&tree, t.X, t.scores)

		if validScores != nil {
			t.updateScores(&tree, validX, validScores)
			validLoss := t.validationLoss(validScores, validY)
			if es.Update(iter, validLoss) {
				if t.params.Verbosity > 0 {
					logger.Info("early stopping",
						log.IterationKey, iter,
						log.BestIterationKey, es.BestIteration)
				}
				break
			}
		}

		if t.params.Verbosity > 0 && iter%10 == 0 {
			logger.Debug("training progress", log.IterationKey, iter)
		}
	}

	model := &Model{
		Trees:       t.trees,
		NumFeatures: cols,
		InitScore:   t.initScore,
	}
	if validScores != nil {
		model.BestIteration = es.BestIteration + 1
	} else {
		model.BestIteration = len(t.trees)
	}
	return model, nil
}

// calculateGradients computes gradients and hessians for the cached scores.
func (t *Trainer) calculateGradients() {
	for i := range t.scores {
		t.gradients[i] = t.objective.Gradient(t.scores[i], t.y[i]) * t.sampleWeight[i]
		t.hessians[i] = t.objective.Hessian(t.scores[i], t.y[i]) * t.sampleWeight[i]
	}
}

// updateScores adds one tree's shrunken predictions to a score cache.
func (t *Trainer) updateScores(tree *Tree, X *mat.Dense, scores []float64) {
	_, cols := X.Dims()
	features := make([]float64, cols)
	for i := range scores {
		mat.Row(features, i, X)
		scores[i] += tree.Predict(features)
	}
}

// validationLoss is the mean logistic loss over the validation set.
func (t *Trainer) validationLoss(scores, targets []float64) float64 {
	loss := 0.0
	for i, s := range scores {
		loss += t.objective.Loss(s, targets[i])
	}
	return loss / float64(len(scores))
}

// buildTree constructs one decision tree on the current gradients.
func (t *Trainer) buildTree(iteration, cols int) Tree {
	tree := Tree{
		TreeIndex:     iteration,
		ShrinkageRate: t.params.LearningRate,
	}

	rows, _ := t.X.Dims()
	rootIndices := make([]int, rows)
	for i := range rootIndices {
		rootIndices[i] = i
	}

	candidates := t.sampleFeatures(cols)
	leaves := 0
	t.buildNode(&tree, rootIndices, candidates, -1, 0, &leaves)
	tree.NumLeaves = leaves
	return tree
}

// sampleFeatures selects the candidate feature set for one tree.
func (t *Trainer) sampleFeatures(cols int) []int {
	features := make([]int, cols)
	for j := range features {
		features[j] = j
	}
	if t.params.FeatureFraction >= 1.0 {
		return features
	}

	keep := int(math.Ceil(t.params.FeatureFraction * float64(cols)))
	if keep < 1 {
		keep = 1
	}
	t.rng.Shuffle(cols, func(a, b int) {
		features[a], features[b] = features[b], features[a]
	})
	selected := features[:keep]
	sort.Ints(selected)
	return selected
}

// buildNode recursively grows the tree and returns the new node's index.
// leaves counts only finished leaf nodes, so the NumLeaves cap is unaffected
// by internal nodes whose children are still being built.
func (t *Trainer) buildNode(tree *Tree, indices, candidates []int, parentIdx, depth int, leaves *int) int {
	nodeIdx := len(tree.Nodes)

	if (t.params.MaxDepth > 0 && depth >= t.params.MaxDepth) ||
		len(indices) < 2*t.params.MinDataInLeaf ||
		(t.params.NumLeaves > 0 && *leaves >= t.params.NumLeaves-1) {
		tree.Nodes = append(tree.Nodes, t.newLeaf(nodeIdx, parentIdx, indices))
		*leaves++
		return nodeIdx
	}

	bestSplit := t.findBestSplit(indices, candidates)
	if bestSplit.Gain <= t.params.MinGainToSplit {
		tree.Nodes = append(tree.Nodes, t.newLeaf(nodeIdx, parentIdx, indices))
		*leaves++
		return nodeIdx
	}

	tree.Nodes = append(tree.Nodes, Node{
		NodeID:       nodeIdx,
		ParentID:     parentIdx,
		LeftChild:    -1,
		RightChild:   -1,
		SplitFeature: bestSplit.Feature,
		Threshold:    bestSplit.Threshold,
		Gain:         bestSplit.Gain,
	})

	leftIndices, rightIndices := t.splitData(indices, bestSplit)
	leftChild := t.buildNode(tree, leftIndices, candidates, nodeIdx, depth+1, leaves)
	rightChild := t.buildNode(tree, rightIndices, candidates, nodeIdx, depth+1, leaves)
	tree.Nodes[nodeIdx].LeftChild = leftChild
	tree.Nodes[nodeIdx].RightChild = rightChild
	return nodeIdx
}

func (t *Trainer) newLeaf(nodeIdx, parentIdx int, indices []int) Node {
	return Node{
		NodeID:     nodeIdx,
		ParentID:   parentIdx,
		LeftChild:  -1,
		RightChild: -1,
		LeafValue:  t.calculateLeafValue(indices),
		LeafCount:  len(indices),
	}
}

// splitInfo describes a candidate split.
type splitInfo struct {
	Feature    int
	Threshold  float64
	Gain       float64
	LeftCount  int
	RightCount int
}

// findBestSplit scans the candidate features for the highest-gain split.
func (t *Trainer) findBestSplit(indices, candidates []int) splitInfo {
	best := splitInfo{Gain: math.Inf(-1)}
	for _, j := range candidates {
		split := t.findBestSplitForFeature(indices, j)
		if split.Gain > best.Gain {
			best = split
		}
	}
	return best
}

// findBestSplitForFeature sorts samples by feature value and evaluates every
// distinct split point.
func (t *Trainer) findBestSplitForFeature(indices []int, feature int) splitInfo {
	type valueIdx struct {
		value float64
		idx   int
	}
	values := make([]valueIdx, len(indices))
	for i, idx := range indices {
		values[i] = valueIdx{value: t.X.At(idx, feature), idx: idx}
	}
	sort.Slice(values, func(a, b int) bool {
		return values[a].value < values[b].value
	})

	totalGrad, totalHess := 0.0, 0.0
	for _, idx := range indices {
		totalGrad += t.gradients[idx]
		totalHess += t.hessians[idx]
	}

	best := splitInfo{Feature: feature, Gain: math.Inf(-1)}
	leftGrad, leftHess := 0.0, 0.0
	leftCount := 0

	for i := 0; i < len(values)-1; i++ {
		leftGrad += t.gradients[values[i].idx]
		leftHess += t.hessians[values[i].idx]
		leftCount++

		if values[i].value == values[i+1].value {
			continue
		}

		rightCount := len(indices) - leftCount
		if leftCount < t.params.MinDataInLeaf || rightCount < t.params.MinDataInLeaf {
			continue
		}

		gain := t.splitGain(leftGrad, leftHess, totalGrad-leftGrad, totalHess-leftHess, totalGrad, totalHess)
		if gain > best.Gain {
			best.Gain = gain
			best.Threshold = (values[i].value + values[i+1].value) / 2
			best.LeftCount = leftCount
			best.RightCount = rightCount
		}
	}
	return best
}

// splitGain is the standard second-order gain formula with L2 regularization.
func (t *Trainer) splitGain(leftGrad, leftHess, rightGrad, rightHess, totalGrad, totalHess float64) float64 {
	lambda := t.params.Lambda
	leftScore := (leftGrad * leftGrad) / (leftHess + lambda)
	rightScore := (rightGrad * rightGrad) / (rightHess + lambda)
	totalScore := (totalGrad * totalGrad) / (totalHess + lambda)
	return 0.5 * (leftScore + rightScore - totalScore)
}

// splitData partitions sample indices on a split decision.
func (t *Trainer) splitData(indices []int, split splitInfo) ([]int, []int) {
	var left, right []int
	for _, idx := range indices {
		if t.X.At(idx, split.Feature) <= split.Threshold {
			left = append(left, idx)
		} else {
			right = append(right, idx)
		}
	}
	return left, right
}

// calculateLeafValue is the optimal leaf output under L2 regularization.
func (t *Trainer) calculateLeafValue(indices []int) float64 {
	sumGrad, sumHess := 0.0, 0.0
	for _, idx := range indices {
		sumGrad += t.gradients[idx]
		sumHess += t.hessians[idx]
	}

	const epsilon = 1e-10
	if math.Abs(sumHess) < epsilon {
		sumHess = epsilon
	}
	return -sumGrad / (sumHess + t.params.Lambda + epsilon)
}

// Package boosting implements gradient-boosted decision trees for binary
// classification over numeric feature matrices. Training minimizes logistic
// loss with per-sample weights, selects the best iteration on a validation
// set, and produces an immutable Model exposing probability prediction.
package boosting

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/molbench/molbench/pkg/errors"
)

// Node represents a single node in a decision tree.
type Node struct {
	NodeID     int
	ParentID   int // -1 for root
	LeftChild  int // -1 if leaf
	RightChild int // -1 if leaf

	// Split information (internal nodes).
	SplitFeature int
	Threshold    float64
	Gain         float64

	// Leaf information.
	LeafValue float64
	LeafCount int
}

// IsLeaf returns true if the node is a leaf node.
func (n *Node) IsLeaf() bool {
	return n.LeftChild == -1 && n.RightChild == -1
}

// Tree is a single decision tree in the ensemble.
type Tree struct {
	TreeIndex     int
	NumLeaves     int
	ShrinkageRate float64
	Nodes         []Node
}

// Predict returns the shrunken leaf value for one sample.
func (t *Tree) Predict(features []float64) float64 {
	nodeID := 0
	for nodeID >= 0 && nodeID < len(t.Nodes) {
		node := &t.Nodes[nodeID]
		if node.IsLeaf() {
			return node.LeafValue * t.ShrinkageRate
		}
		if features[node.SplitFeature] <= node.Threshold {
			nodeID = node.LeftChild
		} else {
			nodeID = node.RightChild
		}
	}
	return 0.0
}

// Model is a trained boosted-tree binary classifier. It is never mutated
// after training; prediction is safe for concurrent use.
type Model struct {
	Trees         []Tree
	NumFeatures   int
	InitScore     float64
	BestIteration int // number of trees selected on the validation set
}

// PredictProbability returns the positive-class probability for one sample,
// using the validation-selected number of trees.
func (m *Model) PredictProbability(features []float64) float64 {
	score := m.InitScore
	numTrees := m.BestIteration
	if numTrees <= 0 || numTrees > len(m.Trees) {
		numTrees = len(m.Trees)
	}
	for i := 0; i < numTrees; i++ {
		score += m.Trees[i].Predict(features)
	}
	return sigmoid(score)
}

// PredictProba returns positive-class probabilities for every row of X.
func (m *Model) PredictProba(X mat.Matrix) (*mat.VecDense, error) {
	rows, cols := X.Dims()
	if cols != m.NumFeatures {
		return nil, errors.NewDimensionError("Model.PredictProba", m.NumFeatures, cols, 1)
	}

	probs := mat.NewVecDense(rows, nil)
	features := make([]float64, cols)
	for i := 0; i < rows; i++ {
		mat.Row(features, i, X)
		probs.SetVec(i, m.PredictProbability(features))
	}
	return probs, nil
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

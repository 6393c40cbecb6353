package ml

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
)

// DecisionTree is a flat, pre-order array of nodes exported from a trained tree.
type DecisionTree struct {
	nFeatures int
	nodes     []TreeNode
}

type TreeNode struct {
	FeatureIdx int     `json:"feature_idx"`
	Threshold  float64 `json:"threshold"`
	LeftChild  int     `json:"left_child"`
	RightChild int     `json:"right_child"`
	ClassLabel int     `json:"class_label"`
	IsLeaf     bool    `json:"is_leaf"`
}

type treeArtifact struct {
	NFeatures int        `json:"n_features"`
	Nodes     []TreeNode `json:"nodes"`
}

// NewDecisionTree validates nodes and returns a ready tree. nFeatures may be 0
// when the width is unknown.
func NewDecisionTree(nFeatures int, nodes []TreeNode) (*DecisionTree, error) {
	if len(nodes) == 0 {
		return nil, invalidArtifact("tree has no nodes")
	}
	for i, node := range nodes {
		if node.IsLeaf {
			continue
		}
		if node.FeatureIdx < 0 || (nFeatures > 0 && node.FeatureIdx >= nFeatures) {
			return nil, invalidArtifact("node %d: feature index %d out of range", i, node.FeatureIdx)
		}
		// pre-order layout: children always come after their parent
		if node.LeftChild <= i || node.LeftChild >= len(nodes) || node.RightChild <= i || node.RightChild >= len(nodes) {
			return nil, invalidArtifact("node %d: child index out of range", i)
		}
	}
	return &DecisionTree{nFeatures: nFeatures, nodes: append([]TreeNode(nil), nodes...)}, nil
}

// LoadDecisionTree reads either {"n_features":N,"nodes":[...]} or a bare node array.
func LoadDecisionTree(path string) (*DecisionTree, error) {
	payload, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var artifact treeArtifact
	if trimmed := bytes.TrimSpace(payload); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &artifact.Nodes)
	} else {
		err = json.Unmarshal(payload, &artifact)
	}
	if err != nil {
		return nil, invalidArtifact("decode tree: %v", err)
	}
	return NewDecisionTree(artifact.NFeatures, artifact.Nodes)
}

func (dt *DecisionTree) NumFeatures() int { return dt.nFeatures }

func (dt *DecisionTree) Predict(_ context.Context, features []float64) (int, error) {
	if err := checkDimension(dt.nFeatures, features); err != nil {
		return 0, err
	}
	idx := 0
	for {
		node := dt.nodes[idx]
		if node.IsLeaf {
			return node.ClassLabel, nil
		}
		if node.FeatureIdx >= len(features) {
			return 0, &DimensionError{Want: node.FeatureIdx + 1, Got: len(features)}
		}
		if features[node.FeatureIdx] <= node.Threshold {
			idx = node.LeftChild
		} else {
			idx = node.RightChild
		}
	}
}

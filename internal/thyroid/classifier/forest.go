// Package classifier evaluates the exported thyroid model.
//
// The artifact is a tree ensemble exported to JSON: a class list, the
// feature order and one flat node array per tree, in the layout
// scikit-learn uses for its fitted trees (children indices of -1 mark a
// leaf, samples with x[feature] <= threshold go left). Probabilities are
// the mean of the per-tree leaf class distributions, so a single tree and
// a random forest are evaluated the same way.
package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"strings"

	"thyrocheck/internal/models"
)

// FeatureOrder is the input vector layout the model was trained on.
var FeatureOrder = []string{"tsh", "t3", "t4"}

var ErrInvalidInput = errors.New("lab values must be finite and non-negative")

type Prediction struct {
	Label       string
	Probability float64
}

type Predictor interface {
	Predict(tsh, t3, t4 float64) (Prediction, error)
}

type node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value"`
}

func (n node) isLeaf() bool {
	return n.Left == -1 && n.Right == -1
}

type tree struct {
	Nodes []node `json:"nodes"`
}

type artifact struct {
	Classes  []json.RawMessage `json:"classes"`
	Features []string          `json:"features"`
	Trees    []tree            `json:"trees"`
}

type Forest struct {
	labels []string
	trees  []tree
}

func Load(path string) (*Forest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Forest, error) {
	var a artifact
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decode model: %w", err)
	}

	if len(a.Features) != len(FeatureOrder) {
		return nil, fmt.Errorf("model expects %d features, want %d", len(a.Features), len(FeatureOrder))
	}
	for i, f := range a.Features {
		if !strings.EqualFold(strings.TrimSpace(f), FeatureOrder[i]) {
			return nil, fmt.Errorf("feature %d is %q, want %q", i, f, FeatureOrder[i])
		}
	}

	if len(a.Classes) < 2 {
		return nil, errors.New("model needs at least two classes")
	}
	labels := make([]string, len(a.Classes))
	for i, c := range a.Classes {
		label, err := classLabel(c)
		if err != nil {
			return nil, fmt.Errorf("class %d: %w", i, err)
		}
		labels[i] = label
	}

	if len(a.Trees) == 0 {
		return nil, errors.New("model has no trees")
	}
	for i, t := range a.Trees {
		if err := checkTree(t, len(labels)); err != nil {
			return nil, fmt.Errorf("tree %d: %w", i, err)
		}
	}

	return &Forest{labels: labels, trees: a.Trees}, nil
}

// classLabel maps a class as stored by the training script to the label
// saved with a prediction: numeric 1 is malignant, any other number is
// benign, and string classes are used verbatim.
func classLabel(raw json.RawMessage) (string, error) {
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		if num == 1 {
			return models.LabelMalignant, nil
		}
		return models.LabelBenign, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil && strings.TrimSpace(str) != "" {
		return strings.TrimSpace(str), nil
	}

	return "", fmt.Errorf("unsupported class value %s", string(raw))
}

// checkTree requires children to come after their parent, which rules out
// cycles and matches the depth-first order of exported trees.
func checkTree(t tree, classes int) error {
	if len(t.Nodes) == 0 {
		return errors.New("empty tree")
	}

	for i, n := range t.Nodes {
		if n.isLeaf() {
			if len(n.Value) != classes {
				return fmt.Errorf("leaf %d has %d values, want %d", i, len(n.Value), classes)
			}
			total := 0.0
			for _, v := range n.Value {
				if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
					return fmt.Errorf("leaf %d has invalid value %v", i, v)
				}
				total += v
			}
			if total == 0 {
				return fmt.Errorf("leaf %d is empty", i)
			}
			continue
		}

		if n.Feature < 0 || n.Feature >= len(FeatureOrder) {
			return fmt.Errorf("node %d splits on unknown feature %d", i, n.Feature)
		}
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("node %d has out of range children %d/%d", i, n.Left, n.Right)
		}
	}
	return nil
}

func (f *Forest) Predict(tsh, t3, t4 float64) (Prediction, error) {
	x := [3]float64{tsh, t3, t4}
	for _, v := range x {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return Prediction{}, ErrInvalidInput
		}
	}

	proba := make([]float64, len(f.labels))
	for _, t := range f.trees {
		leaf := t.leaf(x)
		total := 0.0
		for _, v := range leaf.Value {
			total += v
		}
		for i, v := range leaf.Value {
			proba[i] += v / total
		}
	}

	best := 0
	for i := range proba {
		proba[i] /= float64(len(f.trees))
		if proba[i] > proba[best] {
			best = i
		}
	}

	return Prediction{Label: f.labels[best], Probability: proba[best]}, nil
}

func (t tree) leaf(x [3]float64) node {
	n := t.Nodes[0]
	for !n.isLeaf() {
		if x[n.Feature] <= n.Threshold {
			n = t.Nodes[n.Left]
		} else {
			n = t.Nodes[n.Right]
		}
	}
	return n
}

package model

import (
	"fmt"
)

const (
	KindLogisticRegression = "logistic_regression"
	KindRandomForest       = "random_forest"
)

// leaf marks a tree node without children.
const leaf = -1

// Node is one entry of a flattened decision tree. Leaves have Left == -1 and
// carry the per-class sample distribution in Value.
type Node struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      int       `json:"left"`
	Right     int       `json:"right"`
	Value     []float64 `json:"value,omitempty"`
}

// Tree is a flattened decision tree rooted at Nodes[0].
type Tree struct {
	Nodes []Node `json:"nodes"`
}

// Classifier is a pre-trained binary classifier.
type Classifier struct {
	Kind      string    `json:"kind"`
	Features  []string  `json:"features"`
	Classes   []int     `json:"classes"`
	Coef      []float64 `json:"coef,omitempty"`
	Intercept float64   `json:"intercept,omitempty"`
	Trees     []Tree    `json:"trees,omitempty"`
}

func (c *Classifier) validate() error {
	if len(c.Features) == 0 {
		return fmt.Errorf("%w: classifier has no features", ErrInvalidArtifact)
	}
	if len(c.Classes) != 2 {
		return fmt.Errorf("%w: expected 2 classes, got %d", ErrInvalidArtifact, len(c.Classes))
	}

	switch c.Kind {
	case KindLogisticRegression:
		if len(c.Coef) != len(c.Features) {
			return fmt.Errorf("%w: %d coefficients for %d features", ErrInvalidArtifact, len(c.Coef), len(c.Features))
		}
	case KindRandomForest:
		if len(c.Trees) == 0 {
			return fmt.Errorf("%w: forest has no trees", ErrInvalidArtifact)
		}
		for i, t := range c.Trees {
			if err := t.validate(len(c.Features), len(c.Classes)); err != nil {
				return fmt.Errorf("tree %d: %w", i, err)
			}
		}
	default:
		return fmt.Errorf("%w: unknown classifier kind %q", ErrInvalidArtifact, c.Kind)
	}
	return nil
}

func (t Tree) validate(features, classes int) error {
	if len(t.Nodes) == 0 {
		return fmt.Errorf("%w: empty tree", ErrInvalidArtifact)
	}
	for i, n := range t.Nodes {
		if n.Left == leaf {
			if len(n.Value) != classes {
				return fmt.Errorf("%w: leaf %d has %d values for %d classes", ErrInvalidArtifact, i, len(n.Value), classes)
			}
			continue
		}
		// Children always follow their parent, which also rules out cycles.
		if n.Left <= i || n.Left >= len(t.Nodes) || n.Right <= i || n.Right >= len(t.Nodes) {
			return fmt.Errorf("%w: node %d has out of range children", ErrInvalidArtifact, i)
		}
		if n.Feature < 0 || n.Feature >= features {
			return fmt.Errorf("%w: node %d splits on feature %d", ErrInvalidArtifact, i, n.Feature)
		}
	}
	return nil
}

// Predict returns the class label for a feature vector ordered like Features.
func (c *Classifier) Predict(x []float64) (int, error) {
	if len(x) != len(c.Features) {
		return 0, fmt.Errorf("%w: got %d features, classifier expects %d", ErrSchemaMismatch, len(x), len(c.Features))
	}

	switch c.Kind {
	case KindLogisticRegression:
		z := c.Intercept
		for i, w := range c.Coef {
			z += w * x[i]
		}
		if z > 0 {
			return c.Classes[1], nil
		}
		return c.Classes[0], nil
	case KindRandomForest:
		return c.Classes[argmax(c.forestProba(x))], nil
	}
	return 0, fmt.Errorf("%w: unknown classifier kind %q", ErrInvalidArtifact, c.Kind)
}

// forestProba averages the normalized leaf distributions of every tree.
func (c *Classifier) forestProba(x []float64) []float64 {
	proba := make([]float64, len(c.Classes))
	for _, t := range c.Trees {
		v := t.leafValue(x)
		var total float64
		for _, n := range v {
			total += n
		}
		if total == 0 {
			continue
		}
		for k, n := range v {
			proba[k] += n / total
		}
	}
	for k := range proba {
		proba[k] /= float64(len(c.Trees))
	}
	return proba
}

func (t Tree) leafValue(x []float64) []float64 {
	i := 0
	for t.Nodes[i].Left != leaf {
		n := t.Nodes[i]
		if x[n.Feature] <= n.Threshold {
			i = n.Left
		} else {
			i = n.Right
		}
	}
	return t.Nodes[i].Value
}

// argmax returns the first index holding the largest value.
func argmax(v []float64) int {
	best := 0
	for i := 1; i < len(v); i++ {
		if v[i] > v[best] {
			best = i
		}
	}
	return best
}

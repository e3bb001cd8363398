package model

import (
	"errors"
	"fmt"
)

// Tree is one fitted decision tree stored as parallel node arrays.  A node whose
// left child is -1 is a leaf; Value holds the per-class sample counts at each node.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

const leafNode = -1

func (t *Tree) validate(nFeatures, nClasses int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return errors.New("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return errors.New("tree node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		if len(t.Value[i]) != nClasses {
			return fmt.Errorf("node %d has %d class values, expected %d", i, len(t.Value[i]), nClasses)
		}
		if t.ChildrenLeft[i] == leafNode {
			continue
		}
		if t.ChildrenLeft[i] <= i || t.ChildrenLeft[i] >= n || t.ChildrenRight[i] <= i || t.ChildrenRight[i] >= n {
			return fmt.Errorf("node %d has children out of range", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= nFeatures {
			return fmt.Errorf("node %d splits on feature %d of %d", i, t.Feature[i], nFeatures)
		}
	}
	return nil
}

// leaf walks the tree for x: left when x[feature] <= threshold, otherwise right.
func (t *Tree) leaf(x []float64) int {
	node := 0
	for t.ChildrenLeft[node] != leafNode {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return node
}

// proba returns the leaf's class counts normalised to sum to one.
func (t *Tree) proba(x []float64) []float64 {
	return t.distribution(t.leaf(x))
}

// distribution returns the node's class counts normalised to sum to one.
func (t *Tree) distribution(node int) []float64 {
	counts := t.Value[node]
	total := 0.0
	for _, v := range counts {
		total += v
	}
	p := make([]float64, len(counts))
	if total == 0 {
		return p
	}
	for i, v := range counts {
		p[i] = v / total
	}
	return p
}

// explain walks the decision path for x and credits each step's change in the
// class probability to the feature split on.  The root's probability is the base;
// base plus the effects equals the leaf's probability.
func (t *Tree) explain(x []float64, class int, effects []float64) (base float64) {
	node := 0
	current := t.distribution(node)[class]
	base = current
	for t.ChildrenLeft[node] != leafNode {
		feature := t.Feature[node]
		if x[feature] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
		next := t.distribution(node)[class]
		effects[feature] += next - current
		current = next
	}
	return base
}

// RandomForest averages the class distributions of its trees.
type RandomForest struct {
	FeatureNames []string `json:"feature_names"`
	ClassLabels  []int    `json:"classes"`
	Trees        []Tree   `json:"trees"`
}

func (f *RandomForest) validate() error {
	if len(f.ClassLabels) < 2 {
		return errors.New("random forest needs at least two classes")
	}
	if len(f.Trees) == 0 {
		return errors.New("random forest has no trees")
	}
	for i := range f.Trees {
		if err := f.Trees[i].validate(len(f.FeatureNames), len(f.ClassLabels)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

// Features returns the column order the forest was fit on.
func (f *RandomForest) Features() []string { return f.FeatureNames }

// Classes returns the class labels in probability order.
func (f *RandomForest) Classes() []int { return f.ClassLabels }

// PredictProba returns the mean of the per-tree leaf distributions.
func (f *RandomForest) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(f.FeatureNames) {
		return nil, fmt.Errorf("random forest expects %d features, got %d", len(f.FeatureNames), len(x))
	}
	proba := make([]float64, len(f.ClassLabels))
	for i := range f.Trees {
		for j, p := range f.Trees[i].proba(x) {
			proba[j] += p
		}
	}
	for j := range proba {
		proba[j] /= float64(len(f.Trees))
	}
	return proba, nil
}

// Predict returns the label of the most probable class.
func (f *RandomForest) Predict(x []float64) (int, error) {
	return predict(f, x)
}

// Explain averages the per-tree path attributions for the given label.  The base is
// the mean root probability and the output the forest's probability of the label.
func (f *RandomForest) Explain(x []float64, label int) (*Attribution, error) {
	class := indexOf(f.ClassLabels, label)
	if class < 0 {
		return nil, fmt.Errorf("random forest has no class %d", label)
	}
	proba, err := f.PredictProba(x)
	if err != nil {
		return nil, err
	}
	a := &Attribution{Units: UnitsProbability, Output: proba[class], Effects: make([]float64, len(x))}
	for i := range f.Trees {
		a.Base += f.Trees[i].explain(x, class, a.Effects)
	}
	n := float64(len(f.Trees))
	a.Base /= n
	for i := range a.Effects {
		a.Effects[i] /= n
	}
	return a, nil
}

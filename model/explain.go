package model

import (
	"errors"
	"math"
	"sort"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
)

// Units an explanation is measured in
const (
	UnitsProbability = "probability"
	UnitsLogOdds     = "log-odds"
)

// ErrNotExplainable is returned for classifiers that cannot attribute a prediction
// to their input columns.
var ErrNotExplainable = errors.New("classifier cannot explain its predictions")

// Explainer is implemented by classifiers that can attribute one prediction to
// their input columns.
type Explainer interface {
	Explain(x []float64, label int) (*Attribution, error)
}

// Attribution is a classifier's raw answer: Output = Base + sum(Effects), with one
// effect per scaled input column.
type Attribution struct {
	Units   string
	Base    float64
	Output  float64
	Effects []float64
}

// Contribution is how far one feature moved the explained output.  Value is the
// unscaled feature value.
type Contribution struct {
	Feature string  `json:"feature"`
	Value   float64 `json:"value"`
	Effect  float64 `json:"effect"`
}

// Explanation breaks one prediction for Label into a base value plus a
// contribution per feature, in schema order.
type Explanation struct {
	Label         int            `json:"label"`
	Units         string         `json:"units"`
	Base          float64        `json:"base"`
	Output        float64        `json:"output"`
	Contributions []Contribution `json:"contributions"`
}

// Top returns up to n contributions with a non-zero effect, largest magnitude first.
// Equal magnitudes keep schema order.
func (e *Explanation) Top(n int) []Contribution {
	var top []Contribution
	for _, c := range e.Contributions {
		if c.Effect != 0 {
			top = append(top, c)
		}
	}
	sort.SliceStable(top, func(i, j int) bool {
		return math.Abs(top[i].Effect) > math.Abs(top[j].Effect)
	})
	if len(top) > n {
		top = top[:n]
	}
	return top
}

// Explain scales the vector and attributes the classifier's output for label to
// each feature.
func (a *Artifact) Explain(v *features.Vector, label int) (*Explanation, error) {
	explainer, ok := a.Classifier.(Explainer)
	if !ok {
		return nil, ErrNotExplainable
	}
	scaled, err := a.Scale(v)
	if err != nil {
		return nil, err
	}
	attribution, err := explainer.Explain(scaled, label)
	if err != nil {
		return nil, err
	}

	names, values := v.Names(), v.Values()
	e := &Explanation{
		Label:         label,
		Units:         attribution.Units,
		Base:          attribution.Base,
		Output:        attribution.Output,
		Contributions: make([]Contribution, len(names)),
	}
	for i := range names {
		e.Contributions[i] = Contribution{Feature: names[i], Value: values[i], Effect: attribution.Effects[i]}
	}
	return e, nil
}

func indexOf(labels []int, label int) int {
	for i := range labels {
		if labels[i] == label {
			return i
		}
	}
	return -1
}

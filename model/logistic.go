package model

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// LogisticRegression is a fitted binary logistic model.
type LogisticRegression struct {
	FeatureNames []string  `json:"feature_names"`
	ClassLabels  []int     `json:"classes"`
	Coef         []float64 `json:"coef"`
	Intercept    float64   `json:"intercept"`
}

func (l *LogisticRegression) validate() error {
	if len(l.ClassLabels) != 2 {
		return fmt.Errorf("logistic regression needs exactly two classes, got %d", len(l.ClassLabels))
	}
	if len(l.Coef) != len(l.FeatureNames) {
		return fmt.Errorf("logistic regression has %d features but %d coefficients", len(l.FeatureNames), len(l.Coef))
	}
	return nil
}

// Features returns the column order the model was fit on.
func (l *LogisticRegression) Features() []string { return l.FeatureNames }

// Classes returns the class labels in probability order.
func (l *LogisticRegression) Classes() []int { return l.ClassLabels }

// PredictProba returns [P(classes[0]), P(classes[1])].
func (l *LogisticRegression) PredictProba(x []float64) ([]float64, error) {
	if len(x) != len(l.Coef) {
		return nil, fmt.Errorf("logistic regression expects %d features, got %d", len(l.Coef), len(x))
	}
	p := 1 / (1 + math.Exp(-l.logOdds(x)))
	return []float64{1 - p, p}, nil
}

// Predict returns the label of the most probable class.
func (l *LogisticRegression) Predict(x []float64) (int, error) {
	return predict(l, x)
}

func (l *LogisticRegression) logOdds(x []float64) float64 {
	return mat.Dot(mat.NewVecDense(len(l.Coef), l.Coef), mat.NewVecDense(len(x), x)) + l.Intercept
}

// Explain splits the log-odds of the label into the intercept and one coef·x term
// per feature.  For the first class every term changes sign.
func (l *LogisticRegression) Explain(x []float64, label int) (*Attribution, error) {
	class := indexOf(l.ClassLabels, label)
	if class < 0 {
		return nil, fmt.Errorf("logistic regression has no class %d", label)
	}
	if len(x) != len(l.Coef) {
		return nil, fmt.Errorf("logistic regression expects %d features, got %d", len(l.Coef), len(x))
	}
	sign := 1.0
	if class == 0 {
		sign = -1
	}
	effects := mat.NewVecDense(len(x), nil)
	effects.MulElemVec(mat.NewVecDense(len(l.Coef), l.Coef), mat.NewVecDense(len(x), x))
	effects.ScaleVec(sign, effects)
	return &Attribution{
		Units:   UnitsLogOdds,
		Base:    sign * l.Intercept,
		Output:  sign * l.logOdds(x),
		Effects: effects.RawVector().Data,
	}, nil
}

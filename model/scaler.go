package model

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// StandardScaler centres and scales each column with the mean and scale it was fit
// with: (x - mean) / scale.  FeatureNames is the column order it was fit on.
// Sample marks hand-written placeholder artifacts that were never fit on data.
type StandardScaler struct {
	FeatureNames []string  `json:"feature_names"`
	Mean         []float64 `json:"mean"`
	Scale        []float64 `json:"scale"`
	Sample       bool      `json:"sample,omitempty"`
}

func (s *StandardScaler) validate() error {
	n := len(s.FeatureNames)
	if n == 0 {
		return errors.New("scaler has no feature names")
	}
	if len(s.Mean) != n || len(s.Scale) != n {
		return fmt.Errorf("scaler has %d features but %d means and %d scales", n, len(s.Mean), len(s.Scale))
	}
	// Zero-variance columns were fit with a scale of 1
	for i := range s.Scale {
		if s.Scale[i] == 0 {
			s.Scale[i] = 1
		}
	}
	return nil
}

// Transform scales one row.
func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != len(s.Mean) {
		return nil, fmt.Errorf("scaler expects %d features, got %d", len(s.Mean), len(x))
	}
	out := mat.NewVecDense(len(x), nil)
	out.SubVec(mat.NewVecDense(len(x), append([]float64(nil), x...)), mat.NewVecDense(len(s.Mean), s.Mean))
	out.DivElemVec(out, mat.NewVecDense(len(s.Scale), s.Scale))
	return out.RawVector().Data, nil
}

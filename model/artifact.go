package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
)

// Classifier is a fitted model treated as an opaque function over scaled rows.
type Classifier interface {
	// Features returns the column order the classifier was fit on.
	Features() []string
	// Classes returns the class labels in the order PredictProba reports them.
	Classes() []int
	// PredictProba returns one probability per class.
	PredictProba(x []float64) ([]float64, error)
	// Predict returns the most probable class label.
	Predict(x []float64) (int, error)
}

// Supported classifier kinds
const (
	KindRandomForest       = "random_forest"
	KindLogisticRegression = "logistic_regression"
)

func predict(c Classifier, x []float64) (int, error) {
	proba, err := c.PredictProba(x)
	if err != nil {
		return 0, err
	}
	return c.Classes()[argmax(proba)], nil
}

// argmax returns the first index of the largest value.
func argmax(values []float64) int {
	best := 0
	for i := range values {
		if values[i] > values[best] {
			best = i
		}
	}
	return best
}

// LoadScaler reads a scaler artifact from a JSON file.
func LoadScaler(path string) (*StandardScaler, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scaler: %w", err)
	}
	scaler := &StandardScaler{}
	if err = json.Unmarshal(data, scaler); err != nil {
		return nil, fmt.Errorf("decoding scaler %s: %w", path, err)
	}
	if err = scaler.validate(); err != nil {
		return nil, fmt.Errorf("scaler %s: %w", path, err)
	}
	return scaler, nil
}

// LoadClassifier reads a classifier artifact from a JSON file.  The "kind" field
// selects the model type.
func LoadClassifier(path string) (Classifier, error) {
	classifier, _, err := readClassifier(path)
	return classifier, err
}

func readClassifier(path string) (Classifier, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false, fmt.Errorf("reading classifier: %w", err)
	}
	header := struct {
		Kind   string `json:"kind"`
		Sample bool   `json:"sample"`
	}{}
	if err = json.Unmarshal(data, &header); err != nil {
		return nil, false, fmt.Errorf("decoding classifier %s: %w", path, err)
	}

	switch header.Kind {
	default:
		return nil, false, fmt.Errorf("classifier %s: unsupported kind %q", path, header.Kind)
	case KindRandomForest:
		forest := &RandomForest{}
		if err = json.Unmarshal(data, forest); err != nil {
			return nil, false, fmt.Errorf("decoding classifier %s: %w", path, err)
		}
		if err = forest.validate(); err != nil {
			return nil, false, fmt.Errorf("classifier %s: %w", path, err)
		}
		return forest, header.Sample, nil
	case KindLogisticRegression:
		logistic := &LogisticRegression{}
		if err = json.Unmarshal(data, logistic); err != nil {
			return nil, false, fmt.Errorf("decoding classifier %s: %w", path, err)
		}
		if err = logistic.validate(); err != nil {
			return nil, false, fmt.Errorf("classifier %s: %w", path, err)
		}
		return logistic, header.Sample, nil
	}
}

// Artifact pairs a scaler with the classifier fit on its output.  It is loaded once
// and only read afterwards.  Sample is set when either file is a placeholder.
type Artifact struct {
	Scaler     *StandardScaler
	Classifier Classifier
	Sample     bool
}

// NewArtifact checks that scaler and classifier agree on the feature columns and
// that every column can be derived from an observation.
func NewArtifact(scaler *StandardScaler, classifier Classifier) (*Artifact, error) {
	scalerSchema := features.Schema(scaler.FeatureNames)
	if names := classifier.Features(); len(names) > 0 && !scalerSchema.Equal(features.Schema(names)) {
		return nil, &SchemaMismatchError{Expected: scalerSchema, Got: features.Schema(names)}
	}
	if err := scalerSchema.Check(); err != nil {
		return nil, err
	}
	return &Artifact{Scaler: scaler, Classifier: classifier, Sample: scaler.Sample}, nil
}

// Load reads both artifacts from disk.
func Load(classifierPath, scalerPath string) (*Artifact, error) {
	classifier, sample, err := readClassifier(classifierPath)
	if err != nil {
		return nil, err
	}
	scaler, err := LoadScaler(scalerPath)
	if err != nil {
		return nil, err
	}
	a, err := NewArtifact(scaler, classifier)
	if err != nil {
		return nil, err
	}
	a.Sample = a.Sample || sample
	return a, nil
}

// Schema returns the feature columns, in order, that vectors passed to Predict must have.
func (a *Artifact) Schema() features.Schema {
	return features.Schema(append([]string(nil), a.Scaler.FeatureNames...))
}

// RequireSchema fails with a SchemaMismatchError unless the artifact was fit on
// exactly the given columns.
func (a *Artifact) RequireSchema(expected features.Schema) error {
	if got := a.Schema(); !got.Equal(expected) {
		return &SchemaMismatchError{Expected: expected, Got: got}
	}
	return nil
}

// Prediction is the classifier's answer for one vector.
type Prediction struct {
	Label         int       `json:"label"`
	Classes       []int     `json:"classes"`
	Probabilities []float64 `json:"probabilities"`
	// Confidence is the probability of Label.
	Confidence float64 `json:"confidence"`
}

// Probability returns the probability of the given label, or 0 if the classifier
// does not know it.
func (p *Prediction) Probability(label int) float64 {
	for i := range p.Classes {
		if p.Classes[i] == label {
			return p.Probabilities[i]
		}
	}
	return 0
}

// Scale checks the vector against the schema and returns the scaled row.
func (a *Artifact) Scale(v *features.Vector) ([]float64, error) {
	if got := features.Schema(v.Names()); !got.Equal(a.Schema()) {
		return nil, &SchemaMismatchError{Expected: a.Schema(), Got: got}
	}
	return a.Scaler.Transform(v.Values())
}

// Predict scales the vector and runs the classifier on it.  A vector whose names
// or order differ from Schema is rejected.
func (a *Artifact) Predict(v *features.Vector) (*Prediction, error) {
	scaled, err := a.Scale(v)
	if err != nil {
		return nil, err
	}
	proba, err := a.Classifier.PredictProba(scaled)
	if err != nil {
		return nil, err
	}
	best := argmax(proba)
	return &Prediction{
		Label:         a.Classifier.Classes()[best],
		Classes:       a.Classifier.Classes(),
		Probabilities: proba,
		Confidence:    proba[best],
	}, nil
}

// SchemaMismatchError reports a feature vector, or a classifier, whose columns do
// not match the scaler's.
type SchemaMismatchError struct {
	Expected features.Schema
	Got      features.Schema
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("feature schema mismatch: expected [%s], got [%s]",
		strings.Join(e.Expected, ", "), strings.Join(e.Got, ", "))
}

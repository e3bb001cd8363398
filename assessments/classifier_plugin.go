package assessments

import (
	"time"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/model"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/plugin"
	"github.com/intervention-engine/fhir/models"
)

// ClassifierName names the plugin.  Its pie holds one slice per binary risk indicator.
const ClassifierName = "Diabetes Classifier"

// DiabeticLabel is the class label the classifier uses for a positive prediction.
const DiabeticLabel = 1

// Outcome texts for the two labels
const (
	OutcomeDiabetic    = "Diabetic"
	OutcomeNonDiabetic = "Non-Diabetic"
)

// OutcomeFor names a class label.
func OutcomeFor(label int) string {
	if label == DiabeticLabel {
		return OutcomeDiabetic
	}
	return OutcomeNonDiabetic
}

// ClassifierPlugin runs the pre-trained classifier over the observation's feature
// vector.  The vector is built in the column order of the artifact's scaler.
type ClassifierPlugin struct {
	artifact   *model.Artifact
	thresholds features.Thresholds
	pie        *plugin.Pie
}

// NewClassifierPlugin returns a ClassifierPlugin backed by the given artifact.
func NewClassifierPlugin(artifact *model.Artifact, thresholds features.Thresholds) *ClassifierPlugin {
	p := &ClassifierPlugin{artifact: artifact, thresholds: thresholds}
	p.pie = plugin.NewPieWithSlices(p.Config().DefaultPieSlices)
	return p
}

// Config provides the configuration parameters for the ClassifierPlugin
func (p *ClassifierPlugin) Config() plugin.RiskServicePluginConfig {
	return plugin.RiskServicePluginConfig{
		Name: ClassifierName,
		Method: models.CodeableConcept{
			Coding: []models.Coding{{System: plugin.MethodSystem, Code: "DiabetesClassifier"}},
			Text:   ClassifierName,
		},
		PredictedOutcome: models.CodeableConcept{Text: "Diabetes"},
		DefaultPieSlices: []plugin.Slice{
			{Name: "Obesity", Weight: 20, MaxValue: 1},
			{Name: "High Glucose", Weight: 20, MaxValue: 1},
			{Name: "High Blood Pressure", Weight: 20, MaxValue: 1},
			{Name: "High Insulin", Weight: 20, MaxValue: 1},
			{Name: "High Pedigree", Weight: 20, MaxValue: 1},
		},
	}
}

// Schema returns the columns the classifier expects, or nil without an artifact.
func (p *ClassifierPlugin) Schema() features.Schema {
	if p.artifact == nil {
		return nil
	}
	return p.artifact.Schema()
}

// Calculate predicts the observation's class.  ProbabilityDecimal is the percentage
// probability of the diabetic class; the classification carries the predicted label
// and the percentage confidence in it.  Classifiers that can explain themselves also
// attribute the diabetic probability to each feature.
func (p *ClassifierPlugin) Calculate(obs *features.Observation) (*plugin.RiskServiceCalculationResult, error) {
	if p.artifact == nil {
		return nil, plugin.NewNotApplicableError("No classifier artifact is loaded")
	}

	v, err := features.BuildVector(obs, p.artifact.Schema(), p.thresholds)
	if err != nil {
		return nil, err
	}
	prediction, err := p.artifact.Predict(v)
	if err != nil {
		return nil, err
	}
	explanation, err := p.artifact.Explain(v, DiabeticLabel)
	if err != nil && err != model.ErrNotExplainable {
		return nil, err
	}

	d := features.Derive(obs, p.thresholds)
	pie := p.pie.Clone(true)
	pie.Created = time.Now()
	pie.UpdateSliceValue("Obesity", flag(d.IsObese))
	pie.UpdateSliceValue("High Glucose", flag(d.IsHighGlucose))
	pie.UpdateSliceValue("High Blood Pressure", flag(d.IsHighBloodPressure))
	pie.UpdateSliceValue("High Insulin", flag(d.IsHighInsulin))
	pie.UpdateSliceValue("High Pedigree", flag(d.IsHighDPF))

	percent := features.Round2(prediction.Probability(DiabeticLabel) * 100)
	return &plugin.RiskServiceCalculationResult{
		AsOf:               time.Now(),
		ProbabilityDecimal: &percent,
		Classification: &plugin.Classification{
			Label:         prediction.Label,
			Outcome:       OutcomeFor(prediction.Label),
			Confidence:    features.Round2(prediction.Confidence * 100),
			Probabilities: prediction.Probabilities,
			Explanation:   explanation,
		},
		Pie: pie,
	}, nil
}

func flag(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

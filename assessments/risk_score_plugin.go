package assessments

import (
	"time"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/plugin"
	"github.com/intervention-engine/fhir/models"
)

// RiskScorePlugin is the fixed linear "Total Risk Score": 0.4·glucose + 0.2·BMI +
// 0.2·age + 0.2·pregnancies.  It is a heuristic that needs no trained model and is
// shown alongside the classifier's prediction.  It is NOT a validated clinical score.
type RiskScorePlugin struct {
	pie *plugin.Pie
}

// NewRiskScorePlugin returns a new RiskScorePlugin
func NewRiskScorePlugin() *RiskScorePlugin {
	p := &RiskScorePlugin{}
	p.pie = plugin.NewPieWithSlices(p.Config().DefaultPieSlices)
	return p
}

// Config provides the configuration parameters for the RiskScorePlugin
func (p *RiskScorePlugin) Config() plugin.RiskServicePluginConfig {
	return plugin.RiskServicePluginConfig{
		Name: "Total Risk Score",
		Method: models.CodeableConcept{
			Coding: []models.Coding{{System: plugin.MethodSystem, Code: "DiabetesRiskScore"}},
			Text:   "Total Risk Score",
		},
		PredictedOutcome: models.CodeableConcept{Text: "Diabetes"},
		// Max values are the weighted contributions at the top of each widget's range
		DefaultPieSlices: []plugin.Slice{
			{Name: "Glucose", Weight: 40, MaxValue: features.GlucoseWeight * features.GlucoseRange.Max},
			{Name: "BMI", Weight: 20, MaxValue: features.BMIWeight * features.CalculateBMI(features.WeightRange.Max, features.HeightRange.Min)},
			{Name: "Age", Weight: 20, MaxValue: features.AgeWeight * features.AgeRange.Max},
			{Name: "Pregnancies", Weight: 20, MaxValue: features.PregnanciesWeight * features.PregnanciesRange.Max},
		},
	}
}

// Calculate returns the weighted score, with each term as a slice of the pie.
func (p *RiskScorePlugin) Calculate(obs *features.Observation) (*plugin.RiskServiceCalculationResult, error) {
	bmi := features.CalculateBMI(obs.WeightKg, obs.HeightCm)

	pie := p.pie.Clone(true)
	pie.Created = time.Now()
	pie.UpdateSliceValue("Glucose", features.Round2(features.GlucoseWeight*obs.Glucose))
	pie.UpdateSliceValue("BMI", features.Round2(features.BMIWeight*bmi))
	pie.UpdateSliceValue("Age", features.Round2(features.AgeWeight*float64(obs.Age)))
	pie.UpdateSliceValue("Pregnancies", features.Round2(features.PregnanciesWeight*float64(obs.Pregnancies)))

	score := features.CalculateRiskScore(obs.Glucose, bmi, obs.Age, obs.Pregnancies)
	return &plugin.RiskServiceCalculationResult{
		AsOf:  time.Now(),
		Score: &score,
		Pie:   pie,
	}, nil
}

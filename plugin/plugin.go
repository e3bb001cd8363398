package plugin

import (
	"fmt"
	"strings"
	"time"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/model"
	"github.com/intervention-engine/fhir/models"
)

// MethodSystem is the coding system for the assessment methods of the built-in plugins.
const MethodSystem = "http://interventionengine.org/risk-assessments"

// RiskServicePlugin provides the interface that risk scoring plugins should adhere
// to.  Each plugin scores one observation its own way; the service runs all of them.
type RiskServicePlugin interface {
	// Config returns the configuration information for the risk service plugin
	Config() RiskServicePluginConfig
	// Calculate scores the observation.  Implementations must not modify it.
	Calculate(obs *features.Observation) (*RiskServiceCalculationResult, error)
}

// RiskServicePluginConfig represents key information about the risk service plugin.
type RiskServicePluginConfig struct {
	Name             string                 `json:"name"`
	Method           models.CodeableConcept `json:"method"`
	PredictedOutcome models.CodeableConcept `json:"predictedOutcome"`
	DefaultPieSlices []Slice                `json:"-"`
}

// RiskServiceCalculationResult represents a risk assessment for one observation.  The
// Score indicates a raw score from the algorithm (if applicable), while the
// ProbabilityDecimal represents a percentage probability of the predicted outcome.
// Since it is a percentage, the value should never exceed 100.
type RiskServiceCalculationResult struct {
	AsOf               time.Time       `json:"asOf"`
	Score              *float64        `json:"score,omitempty"`
	ProbabilityDecimal *float64        `json:"probabilityDecimal,omitempty"`
	Classification     *Classification `json:"classification,omitempty"`
	Pie                *Pie            `json:"pie"`
}

// Classification is the labelled outcome of a classifier-backed plugin.
type Classification struct {
	Label   int    `json:"label"`
	Outcome string `json:"outcome"`
	// Confidence is the percentage probability of Label.
	Confidence    float64   `json:"confidence"`
	Probabilities []float64 `json:"probabilities"`
	// Explanation attributes the diabetic probability to the input features.  It is
	// nil for classifiers that cannot explain themselves.
	Explanation *model.Explanation `json:"explanation,omitempty"`
}

// ToRiskAssessment converts the RiskServiceCalculationResult to a FHIR RiskAssessment.
// The subject and basis are references into the bundle the assessment is exported in.
// The prediction is always for config.PredictedOutcome: ProbabilityDecimal is only
// ever a probability, never a raw score.  A score and the classifier's label go into
// the prediction's rationale instead.
func (r *RiskServiceCalculationResult) ToRiskAssessment(subjectRef string, basisRefs []string, config RiskServicePluginConfig) *models.RiskAssessment {
	var rationale []string
	if r.Score != nil {
		rationale = append(rationale, fmt.Sprintf("%s: %g", config.Name, *r.Score))
	}
	if r.Classification != nil {
		rationale = append(rationale, fmt.Sprintf("Predicted %s with %g%% confidence", r.Classification.Outcome, r.Classification.Confidence))
	}

	ra := &models.RiskAssessment{
		Subject: &models.Reference{Reference: subjectRef},
		Method:  &config.Method,
		Date:    &models.FHIRDateTime{Time: r.AsOf, Precision: models.Timestamp},
		Prediction: []models.RiskAssessmentPredictionComponent{
			{
				ProbabilityDecimal: r.ProbabilityDecimal,
				Outcome:            &config.PredictedOutcome,
				Rationale:          strings.Join(rationale, "; "),
			},
		},
	}
	for _, ref := range basisRefs {
		ra.Basis = append(ra.Basis, models.Reference{Reference: ref})
	}
	return ra
}

// NotApplicableError indicates that the given algorithm is not applicable
// for the requested observation.  It would be inappropriate to return a score.
type NotApplicableError struct {
	msg string
}

// NewNotApplicableError returns a new NotApplicableError with the given
// message.
func NewNotApplicableError(msg string) NotApplicableError {
	return NotApplicableError{msg: msg}
}

func (e NotApplicableError) Error() string { return e.msg }

package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/assessments"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/plugin"
	"github.com/davecgh/go-spew/spew"
	"github.com/google/uuid"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

// Advice shown with the headline prediction
const (
	HigherRiskAdvice = "This result suggests a higher risk of diabetes. Please consult a healthcare provider for further testing."
	LowerRiskAdvice  = "This result suggests a lower risk of diabetes."
)

// RiskService is an interface for the functions that must be supported by a risk service used by
// the HTTP server.
type RiskService interface {
	Assess(obs *features.Observation) (*Assessment, error)
	Schema() features.Schema
}

// ReferenceRiskService is a container for risk scoring plugins.  It validates the
// observation, derives its features and runs every registered plugin over it.
// Nothing is kept between calls.
type ReferenceRiskService struct {
	plugins    []plugin.RiskServicePlugin
	thresholds features.Thresholds
	schema     features.Schema
}

// NewReferenceRiskService creates a new risk service.  The schema is the column
// layout reported back with each assessment; it should be the classifier's.
func NewReferenceRiskService(thresholds features.Thresholds, schema features.Schema) *ReferenceRiskService {
	return &ReferenceRiskService{thresholds: thresholds, schema: schema}
}

// RegisterPlugin registers a plugin for use by the risk service
func (rs *ReferenceRiskService) RegisterPlugin(plugin plugin.RiskServicePlugin) {
	rs.plugins = append(rs.plugins, plugin)
}

// PluginNames returns the names of the registered plugins in the order they run.
func (rs *ReferenceRiskService) PluginNames() []string {
	return lo.Map(rs.plugins, func(p plugin.RiskServicePlugin, _ int) string { return p.Config().Name })
}

// Schema returns the feature columns reported with each assessment.
func (rs *ReferenceRiskService) Schema() features.Schema {
	return append(features.Schema(nil), rs.schema...)
}

// Assessment is everything computed for one form submission.
type Assessment struct {
	Id          string                 `json:"id"`
	Created     time.Time              `json:"created"`
	Observation features.Observation   `json:"observation"`
	Derived     features.Derived       `json:"derived"`
	Features    *features.Vector       `json:"features"`
	Results     []PluginResult         `json:"results"`
	Prediction  *plugin.Classification `json:"prediction,omitempty"`
	Advice      string                 `json:"advice,omitempty"`
}

// PluginResult pairs a plugin's configuration with what it calculated.
type PluginResult struct {
	Plugin plugin.RiskServicePluginConfig       `json:"plugin"`
	Result *plugin.RiskServiceCalculationResult `json:"result"`
}

// Assess invokes the registered plugins on the observation.  Validation errors are
// returned as features.ValidationError.  Plugins that report they are not applicable
// are skipped; any other plugin error fails the whole assessment.
func (rs *ReferenceRiskService) Assess(obs *features.Observation) (*Assessment, error) {
	if len(rs.plugins) == 0 {
		return nil, errors.New("No risk assessment plugins are registered")
	}
	if err := obs.Validate(); err != nil {
		return nil, err
	}

	// Work on a copy so plugins and the caller never share the symptom list
	observation := *obs
	observation.Symptoms = obs.CheckedSymptoms()

	vector, err := features.BuildVector(&observation, rs.schema, rs.thresholds)
	if err != nil {
		return nil, err
	}

	a := &Assessment{
		Id:          uuid.NewString(),
		Created:     time.Now(),
		Observation: observation,
		Derived:     features.Derive(&observation, rs.thresholds),
		Features:    vector,
	}
	logger := log.WithField("assessment", a.Id)
	if logger.Logger.IsLevelEnabled(log.DebugLevel) {
		logger.Debug("feature vector: ", spew.Sdump(vector.Names(), vector.Values()))
	}

	for _, p := range rs.plugins {
		config := p.Config()
		if len(config.Method.Coding) == 0 {
			return nil, errors.New("Risk Assessment Plugins MUST provide a method with a coding")
		}

		result, err := p.Calculate(&observation)
		if err != nil {
			if _, ok := err.(plugin.NotApplicableError); ok {
				logger.WithField("plugin", config.Name).Info("plugin not applicable: ", err)
				continue
			}
			return nil, fmt.Errorf("%s: %w", config.Name, err)
		}

		if result.Classification != nil && a.Prediction == nil {
			a.Prediction = result.Classification
		}
		a.Results = append(a.Results, PluginResult{Plugin: config, Result: result})
	}

	if a.Prediction != nil {
		if a.Prediction.Label == assessments.DiabeticLabel {
			a.Advice = HigherRiskAdvice
		} else {
			a.Advice = LowerRiskAdvice
		}
	}

	logger.WithFields(log.Fields{
		"bmi":       a.Derived.BMI,
		"riskScore": a.Derived.RiskScore,
		"results":   len(a.Results),
	}).Info("assessment calculated")
	return a, nil
}

// Result returns the result of the named plugin, or nil if it did not produce one.
func (a *Assessment) Result(pluginName string) *plugin.RiskServiceCalculationResult {
	for i := range a.Results {
		if a.Results[i].Plugin.Name == pluginName {
			return a.Results[i].Result
		}
	}
	return nil
}

// Outcome returns the headline prediction's outcome text, or "N/A" without one.
func (a *Assessment) Outcome() string {
	if a.Prediction == nil {
		return "N/A"
	}
	return a.Prediction.Outcome
}

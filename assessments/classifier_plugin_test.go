package assessments

import (
	"math"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/model"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/plugin"
	. "gopkg.in/check.v1"
)

type ClassifierPluginSuite struct {
	Plugin *ClassifierPlugin
}

var _ = Suite(&ClassifierPluginSuite{})

func (s *ClassifierPluginSuite) SetUpSuite(c *C) {
	s.Plugin = NewClassifierPlugin(loadForest(c), features.DefaultThresholds())
}

func (s *ClassifierPluginSuite) TestSchema(c *C) {
	c.Assert(s.Plugin.Schema(), DeepEquals, features.BasicSchema)
	c.Assert(NewClassifierPlugin(nil, features.DefaultThresholds()).Schema(), IsNil)
}

func (s *ClassifierPluginSuite) TestNonDiabetic(c *C) {
	result, err := s.Plugin.Calculate(defaultObservation())
	c.Assert(err, IsNil)
	c.Assert(result.Score, IsNil)
	c.Assert(*result.ProbabilityDecimal, Equals, 22.5)
	c.Assert(result.Classification.Label, Equals, 0)
	c.Assert(result.Classification.Outcome, Equals, OutcomeNonDiabetic)
	c.Assert(result.Classification.Confidence, Equals, 77.5)
	c.Assert(result.Classification.Probabilities, HasLen, 2)
	assertSlices(c, result.Pie, map[string]float64{
		"Obesity":             0,
		"High Glucose":        0,
		"High Blood Pressure": 0,
		"High Insulin":        0,
		"High Pedigree":       0,
	})
}

func (s *ClassifierPluginSuite) TestDiabetic(c *C) {
	result, err := s.Plugin.Calculate(highRiskObservation())
	c.Assert(err, IsNil)
	c.Assert(*result.ProbabilityDecimal, Equals, 85.0)
	c.Assert(result.Classification.Label, Equals, DiabeticLabel)
	c.Assert(result.Classification.Outcome, Equals, OutcomeDiabetic)
	c.Assert(result.Classification.Confidence, Equals, 85.0)
	assertSlices(c, result.Pie, map[string]float64{
		"Obesity":             1,
		"High Glucose":        1,
		"High Blood Pressure": 0,
		"High Insulin":        0,
		"High Pedigree":       0,
	})
}

func (s *ClassifierPluginSuite) TestExplanation(c *C) {
	result, err := s.Plugin.Calculate(highRiskObservation())
	c.Assert(err, IsNil)
	e := result.Classification.Explanation
	c.Assert(e, NotNil)
	c.Assert(e.Label, Equals, DiabeticLabel)
	c.Assert(e.Units, Equals, model.UnitsProbability)
	c.Assert(e.Contributions, HasLen, len(features.BasicSchema))

	total := e.Base
	for _, contribution := range e.Contributions {
		total += contribution.Effect
	}
	c.Assert(math.Abs(total-0.85) < 1e-9, Equals, true)
	c.Assert(e.Top(6)[0].Feature, Equals, "Glucose")
}

func (s *ClassifierPluginSuite) TestPieIsFreshEachTime(c *C) {
	first, err := s.Plugin.Calculate(highRiskObservation())
	c.Assert(err, IsNil)
	second, err := s.Plugin.Calculate(defaultObservation())
	c.Assert(err, IsNil)
	c.Assert(first.Pie.Id, Not(Equals), second.Pie.Id)
	c.Assert(first.Pie.TotalValues(), Equals, 2.0)
	c.Assert(second.Pie.TotalValues(), Equals, 0.0)
	// the template the pies are cloned from is untouched
	c.Assert(s.Plugin.pie.TotalValues(), Equals, 0.0)
}

func (s *ClassifierPluginSuite) TestThresholdsReachThePie(c *C) {
	thresholds := features.DefaultThresholds()
	thresholds.HighInsulin = 25
	p := NewClassifierPlugin(loadForest(c), thresholds)
	result, err := p.Calculate(defaultObservation())
	c.Assert(err, IsNil)
	v, _ := result.Pie.SliceValue("High Insulin")
	c.Assert(v, Equals, 1.0)
}

func (s *ClassifierPluginSuite) TestNoArtifactIsNotApplicable(c *C) {
	p := NewClassifierPlugin(nil, features.DefaultThresholds())
	_, err := p.Calculate(defaultObservation())
	c.Assert(err, FitsTypeOf, plugin.NotApplicableError{})
}

func (s *ClassifierPluginSuite) TestOutcomeFor(c *C) {
	c.Assert(OutcomeFor(1), Equals, "Diabetic")
	c.Assert(OutcomeFor(0), Equals, "Non-Diabetic")
}

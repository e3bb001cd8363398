package model

import (
	"math"
	"sort"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	. "gopkg.in/check.v1"
)

type ExplainSuite struct {
	Forest   *Artifact
	Logistic *Artifact
}

var _ = Suite(&ExplainSuite{})

func (s *ExplainSuite) SetUpSuite(c *C) {
	var err error
	s.Forest, err = Load("fixtures/forest_basic.json", "fixtures/scaler_basic.json")
	c.Assert(err, IsNil)
	s.Logistic, err = Load("fixtures/logistic_basic.json", "fixtures/scaler_basic.json")
	c.Assert(err, IsNil)
}

func (s *ExplainSuite) explain(c *C, a *Artifact, obs *features.Observation, label int) (*Explanation, *Prediction) {
	v, err := features.BuildVector(obs, a.Schema(), features.DefaultThresholds())
	c.Assert(err, IsNil)
	e, err := a.Explain(v, label)
	c.Assert(err, IsNil)
	p, err := a.Predict(v)
	c.Assert(err, IsNil)
	return e, p
}

func sumEffects(e *Explanation) float64 {
	total := 0.0
	for _, contribution := range e.Contributions {
		total += contribution.Effect
	}
	return total
}

func (s *ExplainSuite) TestForestEffectsSumToProbabilityMinusBase(c *C) {
	for _, obs := range []*features.Observation{features.NewObservation(), highRiskObservation()} {
		e, p := s.explain(c, s.Forest, obs, 1)
		c.Assert(e.Units, Equals, UnitsProbability)
		c.Assert(closeTo(e.Output, p.Probability(1)), Equals, true)
		c.Assert(closeTo(sumEffects(e), p.Probability(1)-e.Base), Equals, true)
	}
}

func (s *ExplainSuite) TestForestLowRisk(c *C) {
	// Root probabilities 55/100 and 28/70; glucose and BMI both send the row left
	e, _ := s.explain(c, s.Forest, features.NewObservation(), 1)
	c.Assert(closeTo(e.Base, 0.475), Equals, true)
	c.Assert(e.Contributions, HasLen, 6)
	c.Assert(e.Contributions[1].Feature, Equals, "Glucose")
	c.Assert(e.Contributions[1].Value, Equals, 110.0)
	c.Assert(closeTo(e.Contributions[1].Effect, -0.175), Equals, true)
	c.Assert(closeTo(e.Contributions[4].Effect, -0.075), Equals, true)

	top := e.Top(6)
	c.Assert(top, HasLen, 2)
	c.Assert(top[0].Feature, Equals, "Glucose")
	c.Assert(top[1].Feature, Equals, "BMI")
}

func (s *ExplainSuite) TestForestHighRisk(c *C) {
	e, _ := s.explain(c, s.Forest, highRiskObservation(), 1)
	top := e.Top(6)
	c.Assert(top, HasLen, 3)
	c.Assert(top[0].Feature, Equals, "Glucose")
	c.Assert(closeTo(top[0].Effect, 0.175), Equals, true)
	// BMI and Age both move the second tree by 0.2
	rest := []string{top[1].Feature, top[2].Feature}
	sort.Strings(rest)
	c.Assert(rest, DeepEquals, []string{"Age", "BMI"})
	c.Assert(closeTo(top[1].Effect, 0.1), Equals, true)
	c.Assert(closeTo(top[2].Effect, 0.1), Equals, true)

	c.Assert(e.Top(1), HasLen, 1)
}

func (s *ExplainSuite) TestForestOtherClassMirrors(c *C) {
	diabetic, _ := s.explain(c, s.Forest, highRiskObservation(), 1)
	healthy, p := s.explain(c, s.Forest, highRiskObservation(), 0)
	c.Assert(closeTo(healthy.Output, p.Probability(0)), Equals, true)
	c.Assert(closeTo(healthy.Base, 1-diabetic.Base), Equals, true)
	for i := range healthy.Contributions {
		c.Assert(closeTo(healthy.Contributions[i].Effect, -diabetic.Contributions[i].Effect), Equals, true)
	}
}

func (s *ExplainSuite) TestLogisticEffectsAreCoefTimesScaledValue(c *C) {
	obs := highRiskObservation()
	e, p := s.explain(c, s.Logistic, obs, 1)
	c.Assert(e.Units, Equals, UnitsLogOdds)
	c.Assert(e.Base, Equals, -0.8)

	v, err := features.BuildVector(obs, s.Logistic.Schema(), features.DefaultThresholds())
	c.Assert(err, IsNil)
	scaled, err := s.Logistic.Scale(v)
	c.Assert(err, IsNil)
	coef := s.Logistic.Classifier.(*LogisticRegression).Coef
	for i := range e.Contributions {
		c.Assert(closeTo(e.Contributions[i].Effect, coef[i]*scaled[i]), Equals, true)
	}

	// The output is the log-odds of the predicted probability
	c.Assert(closeTo(sumEffects(e), e.Output-e.Base), Equals, true)
	c.Assert(closeTo(1/(1+math.Exp(-e.Output)), p.Probability(1)), Equals, true)

	healthy, _ := s.explain(c, s.Logistic, obs, 0)
	c.Assert(healthy.Base, Equals, 0.8)
	c.Assert(closeTo(healthy.Output, -e.Output), Equals, true)
}

func (s *ExplainSuite) TestUnknownLabel(c *C) {
	v, err := features.BuildVector(features.NewObservation(), s.Forest.Schema(), features.DefaultThresholds())
	c.Assert(err, IsNil)
	_, err = s.Forest.Explain(v, 7)
	c.Assert(err, ErrorMatches, "random forest has no class 7")
	_, err = s.Logistic.Explain(v, 7)
	c.Assert(err, ErrorMatches, "logistic regression has no class 7")
}

func (s *ExplainSuite) TestExplainChecksSchema(c *C) {
	v, err := features.BuildVector(features.NewObservation(), features.EngineeredSchema, features.DefaultThresholds())
	c.Assert(err, IsNil)
	_, err = s.Forest.Explain(v, 1)
	c.Assert(err, FitsTypeOf, &SchemaMismatchError{})
}

type opaqueClassifier struct{}

func (opaqueClassifier) Features() []string                          { return nil }
func (opaqueClassifier) Classes() []int                              { return []int{0, 1} }
func (opaqueClassifier) PredictProba(x []float64) ([]float64, error) { return []float64{1, 0}, nil }
func (opaqueClassifier) Predict(x []float64) (int, error)            { return 0, nil }

func (s *ExplainSuite) TestNotExplainable(c *C) {
	a, err := NewArtifact(s.Forest.Scaler, opaqueClassifier{})
	c.Assert(err, IsNil)
	v, err := features.BuildVector(features.NewObservation(), a.Schema(), features.DefaultThresholds())
	c.Assert(err, IsNil)
	_, err = a.Explain(v, 1)
	c.Assert(err, Equals, ErrNotExplainable)
}

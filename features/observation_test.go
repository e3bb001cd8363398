package features

import (
	. "gopkg.in/check.v1"
)

type ObservationSuite struct{}

var _ = Suite(&ObservationSuite{})

func (s *ObservationSuite) TestDefaultObservationIsValid(c *C) {
	c.Assert(NewObservation().Validate(), IsNil)
}

func (s *ObservationSuite) TestValidateCollectsAllProblems(c *C) {
	o := NewObservation()
	o.Age = 0
	o.Glucose = 250
	o.HeightCm = 90
	o.Gender = "Other"
	o.Symptoms = []string{"Fatigue", "Headache"}

	err := o.Validate()
	c.Assert(err, NotNil)
	verr, ok := err.(ValidationError)
	c.Assert(ok, Equals, true)
	c.Assert(verr.Problems, HasLen, 5)
	c.Assert(verr.Problems[0], Equals, "age must be between 1 and 100, got 0")
	c.Assert(verr.Problems[1], Equals, "glucose must be between 50 and 200, got 250")
	c.Assert(verr.Problems[2], Equals, "height must be between 100 and 220, got 90")
	c.Assert(verr.Problems[3], Equals, `gender must be Male or Female, got "Other"`)
	c.Assert(verr.Problems[4], Equals, `unknown symptom "Headache"`)
}

func (s *ObservationSuite) TestValidateAcceptsBounds(c *C) {
	o := NewObservation()
	o.Age = 100
	o.Pregnancies = 0
	o.Glucose = 50
	o.SkinThickness = 100
	o.WeightKg = 200
	o.HeightCm = 100
	o.Insulin = 0
	o.BloodPressure = 200
	o.DiabetesPedigreeFunction = 3
	c.Assert(o.Validate(), IsNil)
}

func (s *ObservationSuite) TestCheckedSymptoms(c *C) {
	o := NewObservation()
	c.Assert(o.CheckedSymptoms(), HasLen, 0)

	o.Symptoms = []string{"Fatigue", " ", "Blurred vision", "Fatigue"}
	c.Assert(o.CheckedSymptoms(), DeepEquals, []string{"Fatigue", "Blurred vision"})
	c.Assert(o.Validate(), IsNil)
}

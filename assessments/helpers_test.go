package assessments

import (
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/model"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/plugin"
	. "gopkg.in/check.v1"
)

func defaultObservation() *features.Observation {
	return features.NewObservation()
}

func highRiskObservation() *features.Observation {
	obs := features.NewObservation()
	obs.Name = "Jane Doe"
	obs.Gender = features.Female
	obs.Pregnancies = 4
	obs.Glucose = 180
	obs.BloodPressure = 85
	obs.SkinThickness = 30
	obs.WeightKg = 100
	obs.Age = 55
	return obs
}

func loadForest(c *C) *model.Artifact {
	artifact, err := model.Load("../model/fixtures/forest_basic.json", "../model/fixtures/scaler_basic.json")
	c.Assert(err, IsNil)
	return artifact
}

func assertSlices(c *C, pie *plugin.Pie, expected map[string]float64) {
	c.Assert(pie.Slices, HasLen, len(expected))
	for name, value := range expected {
		got, ok := pie.SliceValue(name)
		c.Assert(ok, Equals, true, Commentf("slice %s", name))
		c.Assert(got, Equals, value, Commentf("slice %s", name))
	}
}

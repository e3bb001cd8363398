package features

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

// Gender is the patient's gender as entered on the form.
type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
)

// Symptoms offered on the optional checklist.
var KnownSymptoms = []string{"Frequent urination", "Excessive thirst", "Fatigue", "Blurred vision"}

// Observation is one form submission: a flat record of measurements that exists
// only for the duration of a single assessment.
type Observation struct {
	Name                     string   `json:"name" form:"name"`
	Age                      int      `json:"age" form:"age"`
	Gender                   Gender   `json:"gender" form:"gender"`
	Pregnancies              int      `json:"pregnancies" form:"pregnancies"`
	Glucose                  float64  `json:"glucose" form:"glucose"`
	BloodPressure            float64  `json:"bloodPressure" form:"bloodPressure"`
	SkinThickness            float64  `json:"skinThickness" form:"skinThickness"`
	WeightKg                 float64  `json:"weightKg" form:"weightKg"`
	HeightCm                 float64  `json:"heightCm" form:"heightCm"`
	Insulin                  float64  `json:"insulin" form:"insulin"`
	DiabetesPedigreeFunction float64  `json:"diabetesPedigreeFunction" form:"diabetesPedigreeFunction"`
	Symptoms                 []string `json:"symptoms,omitempty" form:"symptoms"`
}

// NewObservation returns an observation holding the form's initial widget values.
func NewObservation() *Observation {
	return &Observation{
		Age:                      30,
		Gender:                   Male,
		Pregnancies:              1,
		Glucose:                  110,
		BloodPressure:            80,
		SkinThickness:            20,
		WeightKg:                 70,
		HeightCm:                 170,
		Insulin:                  100,
		DiabetesPedigreeFunction: 0.5,
	}
}

// Range is an inclusive numeric bound taken from the form widgets.
type Range struct {
	Min float64
	Max float64
}

// Contains reports whether v lies inside the range.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Widget bounds for each numeric field
var (
	AgeRange           = Range{1, 100}
	PregnanciesRange   = Range{0, 20}
	GlucoseRange       = Range{50, 200}
	SkinThicknessRange = Range{0, 100}
	WeightRange        = Range{30, 200}
	HeightRange        = Range{100, 220}
	InsulinRange       = Range{0, 600}
	BloodPressureRange = Range{0, 200}
	DPFRange           = Range{0, 3}
)

// ValidationError lists every field of an observation that fell outside its widget bounds.
type ValidationError struct {
	Problems []string
}

func (e ValidationError) Error() string {
	return "invalid observation: " + strings.Join(e.Problems, "; ")
}

// Validate checks the observation against the widget-level bounds.  It performs no
// other validation.
func (o *Observation) Validate() error {
	var problems []string
	check := func(field string, v float64, r Range) {
		if !r.Contains(v) {
			problems = append(problems, fmt.Sprintf("%s must be between %g and %g, got %g", field, r.Min, r.Max, v))
		}
	}
	check("age", float64(o.Age), AgeRange)
	check("pregnancies", float64(o.Pregnancies), PregnanciesRange)
	check("glucose", o.Glucose, GlucoseRange)
	check("skin thickness", o.SkinThickness, SkinThicknessRange)
	check("weight", o.WeightKg, WeightRange)
	check("height", o.HeightCm, HeightRange)
	check("insulin", o.Insulin, InsulinRange)
	check("blood pressure", o.BloodPressure, BloodPressureRange)
	check("diabetes pedigree function", o.DiabetesPedigreeFunction, DPFRange)

	if o.Gender != Male && o.Gender != Female {
		problems = append(problems, fmt.Sprintf("gender must be %s or %s, got %q", Male, Female, o.Gender))
	}
	for _, s := range o.CheckedSymptoms() {
		if !lo.Contains(KnownSymptoms, s) {
			problems = append(problems, fmt.Sprintf("unknown symptom %q", s))
		}
	}

	if len(problems) > 0 {
		return ValidationError{Problems: problems}
	}
	return nil
}

// CheckedSymptoms returns the distinct non-empty symptoms in the order they were checked.
func (o *Observation) CheckedSymptoms() []string {
	trimmed := lo.Map(o.Symptoms, func(s string, _ int) string { return strings.TrimSpace(s) })
	return lo.Uniq(lo.Compact(trimmed))
}

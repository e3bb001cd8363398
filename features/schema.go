package features

import (
	"fmt"
	"sort"
	"strings"
)

// Schema is the ordered list of column names a scaler and classifier were fit on.
type Schema []string

// BasicSchema is the six-column layout of the shipped random forest artifact.
var BasicSchema = Schema{"Pregnancies", "Glucose", "BloodPressure", "SkinThickness", "BMI", "Age"}

// EngineeredSchema adds the log transforms, the blood pressure deviation, the
// indicators, the risk score and the one-hot buckets to the raw columns.
var EngineeredSchema = Schema{
	"Pregnancies", "Glucose", "BloodPressure", "SkinThickness", "Insulin", "BMI", "DiabetesPedigreeFunction", "Age",
	"Log_Insulin", "Log_DPF", "BP_Deviation",
	"Is_Obese", "High_Glucose", "High_BP", "High_Insulin", "High_DPF",
	"Total_Risk_Score",
	"AgeGroup_Young", "AgeGroup_Adult", "AgeGroup_MiddleAged", "AgeGroup_Senior",
	"BMICategory_Underweight", "BMICategory_Normal", "BMICategory_Overweight", "BMICategory_Obese",
}

var namedSchemas = map[string]Schema{
	"basic":      BasicSchema,
	"engineered": EngineeredSchema,
}

// SchemaByName looks up one of the built-in schemas.
func SchemaByName(name string) (Schema, error) {
	s, ok := namedSchemas[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown feature schema %q", name)
	}
	return s, nil
}

// Equal reports whether both schemas list the same names in the same order.
func (s Schema) Equal(other Schema) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Check returns an error naming every column this package cannot derive.
func (s Schema) Check() error {
	var unknown []string
	seen := make(map[string]bool, len(s))
	for _, name := range s {
		if _, ok := columns[name]; !ok {
			unknown = append(unknown, name)
		}
		if seen[name] {
			return fmt.Errorf("feature %q appears more than once in schema", name)
		}
		seen[name] = true
	}
	if len(unknown) > 0 {
		return fmt.Errorf("schema has columns that cannot be derived: %s", strings.Join(unknown, ", "))
	}
	return nil
}

// KnownColumns returns every column name that can appear in a schema, sorted.
func KnownColumns() []string {
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// BuildVector derives the observation's features and lays them out in the schema's
// column order.  Columns the schema names but this package cannot derive are an
// error; they are never filled with zero.
func BuildVector(o *Observation, s Schema, t Thresholds) (*Vector, error) {
	if err := s.Check(); err != nil {
		return nil, err
	}
	d := Derive(o, t)
	values := make([]float64, len(s))
	for i, name := range s {
		values[i] = columns[name](o, &d)
	}
	return NewVector(s, values)
}

type column func(o *Observation, d *Derived) float64

var columns = map[string]column{
	"Pregnancies":              func(o *Observation, d *Derived) float64 { return float64(o.Pregnancies) },
	"Glucose":                  func(o *Observation, d *Derived) float64 { return o.Glucose },
	"BloodPressure":            func(o *Observation, d *Derived) float64 { return o.BloodPressure },
	"SkinThickness":            func(o *Observation, d *Derived) float64 { return o.SkinThickness },
	"Insulin":                  func(o *Observation, d *Derived) float64 { return o.Insulin },
	"BMI":                      func(o *Observation, d *Derived) float64 { return d.BMI },
	"DiabetesPedigreeFunction": func(o *Observation, d *Derived) float64 { return o.DiabetesPedigreeFunction },
	"Age":                      func(o *Observation, d *Derived) float64 { return float64(o.Age) },
	"Gender_Female":            func(o *Observation, d *Derived) float64 { return indicator(o.Gender == Female) },
	"Log_Insulin":              func(o *Observation, d *Derived) float64 { return d.LogInsulin },
	"Log_DPF":                  func(o *Observation, d *Derived) float64 { return d.LogDPF },
	"BP_Deviation":             func(o *Observation, d *Derived) float64 { return d.BloodPressureDelta },
	"Is_Obese":                 func(o *Observation, d *Derived) float64 { return indicator(d.IsObese) },
	"High_Glucose":             func(o *Observation, d *Derived) float64 { return indicator(d.IsHighGlucose) },
	"High_BP":                  func(o *Observation, d *Derived) float64 { return indicator(d.IsHighBloodPressure) },
	"High_Insulin":             func(o *Observation, d *Derived) float64 { return indicator(d.IsHighInsulin) },
	"High_DPF":                 func(o *Observation, d *Derived) float64 { return indicator(d.IsHighDPF) },
	"Total_Risk_Score":         func(o *Observation, d *Derived) float64 { return d.RiskScore },
}

func init() {
	for _, g := range AgeGroups {
		g := g
		columns["AgeGroup_"+string(g)] = func(o *Observation, d *Derived) float64 { return indicator(d.AgeGroup == g) }
	}
	for _, c := range BMICategories {
		c := c
		columns["BMICategory_"+string(c)] = func(o *Observation, d *Derived) float64 { return indicator(d.BMICategory == c) }
	}
}

package features

import (
	"math"
	"strconv"
)

// Fixed indicator cut-offs.
const (
	ObeseBMI          = 30.0
	HighGlucose       = 140.0
	HighBloodPressure = 90.0
)

// Thresholds holds the cut-offs that have varied between versions of the model.
type Thresholds struct {
	// HighInsulin is the insulin level at or above which High_Insulin is set.
	HighInsulin float64
	// HighDPF is the pedigree value at or above which High_DPF is set.
	HighDPF float64
	// BloodPressureBaseline is subtracted from blood pressure to give BP_Deviation.
	BloodPressureBaseline float64
}

// DefaultThresholds returns the cut-offs the bundled artifacts were fit with.
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighInsulin:           200,
		HighDPF:               0.626,
		BloodPressureBaseline: 80,
	}
}

// AgeGroup is one of the four age buckets.
type AgeGroup string

const (
	AgeYoung      AgeGroup = "Young"
	AgeAdult      AgeGroup = "Adult"
	AgeMiddleAged AgeGroup = "MiddleAged"
	AgeSenior     AgeGroup = "Senior"
)

// AgeGroups lists the buckets in column order.
var AgeGroups = []AgeGroup{AgeYoung, AgeAdult, AgeMiddleAged, AgeSenior}

// AgeGroupFor buckets an age: <30, 30-44, 45-59, >=60.
func AgeGroupFor(age int) AgeGroup {
	switch {
	case age < 30:
		return AgeYoung
	case age < 45:
		return AgeAdult
	case age < 60:
		return AgeMiddleAged
	default:
		return AgeSenior
	}
}

// BMICategory is one of the four WHO BMI classes.
type BMICategory string

const (
	BMIUnderweight BMICategory = "Underweight"
	BMINormal      BMICategory = "Normal"
	BMIOverweight  BMICategory = "Overweight"
	BMIObese       BMICategory = "Obese"
)

// BMICategories lists the classes in column order.
var BMICategories = []BMICategory{BMIUnderweight, BMINormal, BMIOverweight, BMIObese}

// BMICategoryFor classifies a BMI: <18.5, 18.5-<25, 25-<30, >=30.
func BMICategoryFor(bmi float64) BMICategory {
	switch {
	case bmi < 18.5:
		return BMIUnderweight
	case bmi < 25:
		return BMINormal
	case bmi < ObeseBMI:
		return BMIOverweight
	default:
		return BMIObese
	}
}

// Derived holds every engineered value for one observation.
type Derived struct {
	BMI                 float64     `json:"bmi"`
	RiskScore           float64     `json:"riskScore"`
	LogInsulin          float64     `json:"logInsulin"`
	LogDPF              float64     `json:"logDpf"`
	BloodPressureDelta  float64     `json:"bpDeviation"`
	IsObese             bool        `json:"isObese"`
	IsHighGlucose       bool        `json:"highGlucose"`
	IsHighBloodPressure bool        `json:"highBloodPressure"`
	IsHighInsulin       bool        `json:"highInsulin"`
	IsHighDPF           bool        `json:"highDpf"`
	AgeGroup            AgeGroup    `json:"ageGroup"`
	BMICategory         BMICategory `json:"bmiCategory"`
}

// CalculateBMI returns weight / height² with height converted from centimetres to
// metres, rounded to two decimals.
func CalculateBMI(weightKg, heightCm float64) float64 {
	heightM := heightCm / 100
	return Round2(weightKg / (heightM * heightM))
}

// CalculateRiskScore returns the weighted sum 0.4·glucose + 0.2·bmi + 0.2·age +
// 0.2·pregnancies, rounded to two decimals.
func CalculateRiskScore(glucose, bmi float64, age, pregnancies int) float64 {
	return Round2(GlucoseWeight*glucose + BMIWeight*bmi + AgeWeight*float64(age) + PregnanciesWeight*float64(pregnancies))
}

// Risk score weights
const (
	GlucoseWeight     = 0.4
	BMIWeight         = 0.2
	AgeWeight         = 0.2
	PregnanciesWeight = 0.2
)

// Derive computes every engineered value for the observation.
func Derive(o *Observation, t Thresholds) Derived {
	bmi := CalculateBMI(o.WeightKg, o.HeightCm)
	return Derived{
		BMI:                 bmi,
		RiskScore:           CalculateRiskScore(o.Glucose, bmi, o.Age, o.Pregnancies),
		LogInsulin:          math.Log1p(o.Insulin),
		LogDPF:              math.Log1p(o.DiabetesPedigreeFunction),
		BloodPressureDelta:  o.BloodPressure - t.BloodPressureBaseline,
		IsObese:             bmi >= ObeseBMI,
		IsHighGlucose:       o.Glucose >= HighGlucose,
		IsHighBloodPressure: o.BloodPressure >= HighBloodPressure,
		IsHighInsulin:       o.Insulin >= t.HighInsulin,
		IsHighDPF:           o.DiabetesPedigreeFunction >= t.HighDPF,
		AgeGroup:            AgeGroupFor(o.Age),
		BMICategory:         BMICategoryFor(bmi),
	}
}

// Round2 rounds to two decimals.  The decision is made on the exact binary value,
// so 2.675 (stored just below) gives 2.67, and an exact tie such as 0.125 goes to
// the even digit.
func Round2(v float64) float64 {
	r, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	return r
}

func indicator(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

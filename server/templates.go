package server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/assessments"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/report"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/service"
	"github.com/labstack/echo/v4"
	"github.com/samber/lo"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates renders the HTML pages for echo.
type Templates struct {
	templates *template.Template
}

func NewTemplates() (*Templates, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Templates{templates: t}, nil
}

func (t *Templates) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return t.templates.ExecuteTemplate(w, name, data)
}

// FormField is one numeric input with its widget bounds.
type FormField struct {
	Name  string
	Label string
	Value float64
	Min   float64
	Max   float64
	Step  float64
}

// FormPage is the data for the input form.
type FormPage struct {
	Name     string
	Gender   string
	Genders  []string
	Fields   []FormField
	Symptoms []SymptomBox
	Error    string
}

type SymptomBox struct {
	Name    string
	Checked bool
}

func newFormPage(obs *features.Observation, message string) *FormPage {
	checked := obs.CheckedSymptoms()
	return &FormPage{
		Name:    obs.Name,
		Gender:  string(obs.Gender),
		Genders: []string{string(features.Male), string(features.Female)},
		Fields: []FormField{
			{"age", "Age", float64(obs.Age), features.AgeRange.Min, features.AgeRange.Max, 1},
			{"pregnancies", "Pregnancies", float64(obs.Pregnancies), features.PregnanciesRange.Min, features.PregnanciesRange.Max, 1},
			{"glucose", "Glucose Level", obs.Glucose, features.GlucoseRange.Min, features.GlucoseRange.Max, 1},
			{"bloodPressure", "Blood Pressure", obs.BloodPressure, features.BloodPressureRange.Min, features.BloodPressureRange.Max, 1},
			{"skinThickness", "Skin Thickness", obs.SkinThickness, features.SkinThicknessRange.Min, features.SkinThicknessRange.Max, 1},
			{"weightKg", "Weight (kg)", obs.WeightKg, features.WeightRange.Min, features.WeightRange.Max, 0.1},
			{"heightCm", "Height (cm)", obs.HeightCm, features.HeightRange.Min, features.HeightRange.Max, 0.1},
			{"insulin", "Insulin", obs.Insulin, features.InsulinRange.Min, features.InsulinRange.Max, 1},
			{"diabetesPedigreeFunction", "Diabetes Pedigree Function", obs.DiabetesPedigreeFunction, features.DPFRange.Min, features.DPFRange.Max, 0.01},
		},
		Symptoms: lo.Map(features.KnownSymptoms, func(s string, _ int) SymptomBox {
			return SymptomBox{Name: s, Checked: lo.Contains(checked, s)}
		}),
		Error: message,
	}
}

// ResultPage is the data for the prediction result.  RiskFlags counts the raised
// risk indicators and Factors lists the features that moved the prediction most.
type ResultPage struct {
	Name         string
	Outcome      string
	Diabetic     bool
	BMI          float64
	RiskScore    float64
	Confidence   string
	Advice       string
	RiskFlags    string
	Factors      []report.Line
	DownloadLink template.HTML
}

func newResultPage(a *service.Assessment, pdf []byte) *ResultPage {
	page := &ResultPage{
		Name:         a.Observation.Name,
		Outcome:      a.Outcome(),
		BMI:          a.Derived.BMI,
		RiskScore:    a.Derived.RiskScore,
		Confidence:   "N/A",
		Advice:       a.Advice,
		RiskFlags:    "N/A",
		DownloadLink: report.DownloadLink(pdf),
	}
	if page.Name == "" {
		page.Name = "N/A"
	}
	if a.Prediction != nil {
		page.Confidence = strconv.FormatFloat(a.Prediction.Confidence, 'f', -1, 64) + "%"
		page.Diabetic = a.Prediction.Label == assessments.DiabeticLabel
		page.Factors = report.ExplanationLines(a.Prediction.Explanation)
	}
	if result := a.Result(assessments.ClassifierName); result != nil && result.Pie != nil {
		page.RiskFlags = fmt.Sprintf("%g of %d", result.Pie.TotalValues(), len(result.Pie.Slices))
	}
	return page
}

package report

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html/template"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/model"
	"github.com/go-pdf/fpdf"
)

const (
	Title    = "Diabetes Prediction Report"
	FileName = "diabetes_prediction_report.pdf"
	MIMEType = "application/pdf"
)

// TopFactors is how many feature contributions the report lists.
const TopFactors = 6

// Line is one "Label: Value" row of the report.
type Line struct {
	Label string
	Value string
}

func (l Line) String() string {
	return l.Label + ": " + l.Value
}

// Summary carries the computed results restated under the inputs.  A nil
// Confidence prints as N/A; a nil Explanation leaves out the key factors.
type Summary struct {
	BMI         float64
	RiskScore   float64
	Outcome     string
	Confidence  *float64
	Explanation *model.Explanation
}

// Report is a printable restatement of one assessment.
type Report struct {
	Inputs      []Line
	Results     []Line
	Explanation []Line
	Created     time.Time
}

// New lays out the report for an observation and its results.
func New(obs *features.Observation, s Summary) *Report {
	name := strings.TrimSpace(obs.Name)
	if name == "" {
		name = "N/A"
	}
	symptoms := "None"
	if checked := obs.CheckedSymptoms(); len(checked) > 0 {
		symptoms = strings.Join(checked, ", ")
	}
	outcome := s.Outcome
	if outcome == "" {
		outcome = "N/A"
	}
	confidence := "N/A"
	if s.Confidence != nil {
		confidence = number(*s.Confidence) + "%"
	}

	return &Report{
		Inputs: []Line{
			{"Name", name},
			{"Age", strconv.Itoa(obs.Age)},
			{"Gender", string(obs.Gender)},
			{"Pregnancies", strconv.Itoa(obs.Pregnancies)},
			{"Glucose", number(obs.Glucose)},
			{"Skin Thickness", number(obs.SkinThickness)},
			{"Weight (kg)", number(obs.WeightKg)},
			{"Height (cm)", number(obs.HeightCm)},
			{"Insulin", number(obs.Insulin)},
			{"Blood Pressure", number(obs.BloodPressure)},
			{"Diabetes Pedigree Function", number(obs.DiabetesPedigreeFunction)},
			{"Symptoms Checked", symptoms},
		},
		Results: []Line{
			{"BMI", number(s.BMI)},
			{"Total Risk Score", number(s.RiskScore)},
			{"Prediction", outcome},
			{"Confidence", confidence},
		},
		Explanation: ExplanationLines(s.Explanation),
		Created:     time.Now(),
	}
}

// ExplanationLines lists the base value and then the TopFactors largest
// contributions.  Probabilities are shown in percentage points.
func ExplanationLines(e *model.Explanation) []Line {
	if e == nil {
		return nil
	}
	lines := []Line{{"Baseline", amount(e.Units, e.Base, false)}}
	for _, c := range e.Top(TopFactors) {
		lines = append(lines, Line{c.Feature, number(c.Value) + " (" + amount(e.Units, c.Effect, true) + ")"})
	}
	return lines
}

func amount(units string, v float64, signed bool) string {
	if units == model.UnitsProbability {
		if signed {
			return fmt.Sprintf("%+g points", features.Round2(v*100))
		}
		return number(features.Round2(v*100)) + "%"
	}
	if signed {
		return fmt.Sprintf("%+.3f %s", v, units)
	}
	return fmt.Sprintf("%.3f %s", v, units)
}

// Lines returns the inputs, the results and the key factors.
func (r *Report) Lines() []Line {
	lines := append(append([]Line(nil), r.Inputs...), r.Results...)
	return append(lines, r.Explanation...)
}

// Render writes the report as a single page PDF.
func (r *Report) Render(w io.Writer) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetCreationDate(r.Created)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, Title, "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 12)
	for _, l := range r.Inputs {
		pdf.CellFormat(0, 10, tr(l.String()), "", 1, "L", false, 0, "")
	}
	pdf.Ln(5)
	for _, l := range r.Results {
		pdf.CellFormat(0, 10, tr(l.String()), "", 1, "L", false, 0, "")
	}
	if len(r.Explanation) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 10, "Key Factors", "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 12)
		for _, l := range r.Explanation {
			pdf.CellFormat(0, 10, tr(l.String()), "", 1, "L", false, 0, "")
		}
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}
	return pdf.Output(w)
}

// Bytes renders the report into memory.
func (r *Report) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURI embeds a rendered PDF in a data URI.
func DataURI(pdf []byte) string {
	return "data:" + MIMEType + ";base64," + base64.StdEncoding.EncodeToString(pdf)
}

// DownloadLink is an anchor that saves the embedded PDF as FileName.
func DownloadLink(pdf []byte) template.HTML {
	return template.HTML(fmt.Sprintf(`<a href="%s" download="%s">Download Prediction Report</a>`, DataURI(pdf), FileName))
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package fhir

import (
	"strings"
	"time"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/service"
	"github.com/google/uuid"
	"github.com/intervention-engine/fhir/models"
)

const (
	LOINCSystem = "http://loinc.org"
	UCUMSystem  = "http://unitsofmeasure.org"
	// LocalSystem codes the form fields LOINC has no code for.
	LocalSystem = "http://interventionengine.org/diabetes-observations"
)

type measurement struct {
	text   string
	system string
	code   string
	unit   string
	value  func(o *features.Observation, d features.Derived) float64
}

var measurements = []measurement{
	{"Age", LOINCSystem, "30525-0", "a", func(o *features.Observation, _ features.Derived) float64 { return float64(o.Age) }},
	{"Pregnancies", LOINCSystem, "11996-6", "{#}", func(o *features.Observation, _ features.Derived) float64 { return float64(o.Pregnancies) }},
	{"Glucose", LOINCSystem, "2345-7", "mg/dL", func(o *features.Observation, _ features.Derived) float64 { return o.Glucose }},
	{"Diastolic Blood Pressure", LOINCSystem, "8462-4", "mm[Hg]", func(o *features.Observation, _ features.Derived) float64 { return o.BloodPressure }},
	{"Skin Thickness", LocalSystem, "skin-thickness", "mm", func(o *features.Observation, _ features.Derived) float64 { return o.SkinThickness }},
	{"Weight", LOINCSystem, "29463-7", "kg", func(o *features.Observation, _ features.Derived) float64 { return o.WeightKg }},
	{"Height", LOINCSystem, "8302-2", "cm", func(o *features.Observation, _ features.Derived) float64 { return o.HeightCm }},
	{"BMI", LOINCSystem, "39156-5", "kg/m2", func(_ *features.Observation, d features.Derived) float64 { return d.BMI }},
	{"Insulin", LOINCSystem, "20448-7", "u[IU]/mL", func(o *features.Observation, _ features.Derived) float64 { return o.Insulin }},
	{"Diabetes Pedigree Function", LocalSystem, "diabetes-pedigree-function", "1", func(o *features.Observation, _ features.Derived) float64 { return o.DiabetesPedigreeFunction }},
}

func Patient(obs *features.Observation) *models.Patient {
	patient := &models.Patient{Gender: strings.ToLower(string(obs.Gender))}
	if name := strings.TrimSpace(obs.Name); name != "" {
		patient.Name = []models.HumanName{{Text: name}}
	}
	return patient
}

// Observations restates every measurement on the form as a final FHIR Observation
// about the referenced subject.
func Observations(obs *features.Observation, derived features.Derived, subjectRef string, effective time.Time) []*models.Observation {
	result := make([]*models.Observation, 0, len(measurements))
	for _, m := range measurements {
		value := m.value(obs, derived)
		result = append(result, &models.Observation{
			Status: "final",
			Code: &models.CodeableConcept{
				Coding: []models.Coding{{System: m.system, Code: m.code}},
				Text:   m.text,
			},
			Subject: &models.Reference{Reference: subjectRef},
			ValueQuantity: &models.Quantity{
				Value:  &value,
				Unit:   m.unit,
				System: UCUMSystem,
				Code:   m.unit,
			},
			EffectiveDateTime: &models.FHIRDateTime{Time: effective, Precision: models.Timestamp},
		})
	}
	return result
}

// Bundle exports an assessment as a collection bundle: the patient, one observation
// per measurement, and one risk assessment per plugin result.  Entries reference each
// other by urn:uuid full URLs.
func Bundle(a *service.Assessment) *models.Bundle {
	bundle := &models.Bundle{Type: "collection"}
	bundle.Id = uuid.NewString()

	patientURL := urn()
	bundle.Entry = append(bundle.Entry, models.BundleEntryComponent{FullUrl: patientURL, Resource: Patient(&a.Observation)})

	var basis []string
	for _, o := range Observations(&a.Observation, a.Derived, patientURL, a.Created) {
		fullURL := urn()
		basis = append(basis, fullURL)
		bundle.Entry = append(bundle.Entry, models.BundleEntryComponent{FullUrl: fullURL, Resource: o})
	}

	for _, r := range a.Results {
		bundle.Entry = append(bundle.Entry, models.BundleEntryComponent{
			FullUrl:  urn(),
			Resource: r.Result.ToRiskAssessment(patientURL, basis, r.Plugin),
		})
	}

	total := uint32(len(bundle.Entry))
	bundle.Total = &total
	return bundle
}

func urn() string {
	return "urn:uuid:" + uuid.NewString()
}

package server

import (
	"fmt"
	"net/http"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/fhir"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/report"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/service"
	"github.com/labstack/echo/v4"
	log "github.com/sirupsen/logrus"
)

// ErrorResponse is the JSON body of every failed API call.
type ErrorResponse struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

// RegisterRoutes sets up the http request handlers with Echo.  The HTML pages need
// e.Renderer to be a *Templates.
func RegisterRoutes(e *echo.Echo, rs service.RiskService) {
	e.GET("/", func(c echo.Context) error {
		return c.Render(http.StatusOK, "form.html", newFormPage(features.NewObservation(), ""))
	})

	e.POST("/predict", func(c echo.Context) error {
		obs := features.NewObservation()
		if err := c.Bind(obs); err != nil {
			return c.Render(statusFor(err), "form.html", newFormPage(obs, messageFor(err)))
		}
		a, err := rs.Assess(obs)
		if err != nil {
			return c.Render(statusFor(err), "form.html", newFormPage(obs, messageFor(err)))
		}
		pdf, err := renderReport(a)
		if err != nil {
			return c.Render(http.StatusInternalServerError, "form.html", newFormPage(obs, err.Error()))
		}
		return c.Render(http.StatusOK, "result.html", newResultPage(a, pdf))
	})

	api := e.Group("/api")

	api.POST("/assessments", func(c echo.Context) error {
		a, err := assess(c, rs)
		if err != nil {
			return errorJSON(c, err)
		}
		if c.QueryParam("format") == "fhir" {
			return c.JSON(http.StatusOK, fhir.Bundle(a))
		}
		return c.JSON(http.StatusOK, a)
	})

	api.POST("/reports", func(c echo.Context) error {
		a, err := assess(c, rs)
		if err != nil {
			return errorJSON(c, err)
		}
		pdf, err := renderReport(a)
		if err != nil {
			return errorJSON(c, err)
		}
		c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", report.FileName))
		return c.Blob(http.StatusOK, report.MIMEType, pdf)
	})

	api.GET("/schema", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string][]string{
			"features":  rs.Schema(),
			"derivable": features.KnownColumns(),
		})
	})

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

// assess binds the JSON observation and runs the service.  Unlike the form, the
// API starts from zero values so omitted fields fail validation instead of taking
// the form's defaults.
func assess(c echo.Context, rs service.RiskService) (*service.Assessment, error) {
	obs := &features.Observation{}
	if err := c.Bind(obs); err != nil {
		return nil, err
	}
	return rs.Assess(obs)
}

func renderReport(a *service.Assessment) ([]byte, error) {
	summary := report.Summary{
		BMI:       a.Derived.BMI,
		RiskScore: a.Derived.RiskScore,
		Outcome:   a.Outcome(),
	}
	if a.Prediction != nil {
		confidence := a.Prediction.Confidence
		summary.Confidence = &confidence
		summary.Explanation = a.Prediction.Explanation
	}
	return report.New(&a.Observation, summary).Bytes()
}

// statusFor maps bind and validation failures to 400 and everything else to 500.
func statusFor(err error) int {
	if he, ok := err.(*echo.HTTPError); ok {
		return he.Code
	}
	if _, ok := err.(features.ValidationError); ok {
		return http.StatusBadRequest
	}
	log.WithError(err).Error("assessment failed")
	return http.StatusInternalServerError
}

func messageFor(err error) string {
	if he, ok := err.(*echo.HTTPError); ok {
		return fmt.Sprint(he.Message)
	}
	return err.Error()
}

func errorJSON(c echo.Context, err error) error {
	return c.JSON(statusFor(err), ErrorResponse{Status: "error", Description: messageFor(err)})
}

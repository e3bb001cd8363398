package main

import (
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/assessments"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/config"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/model"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/server"
	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/service"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}
	log.SetLevel(cfg.Level())

	artifact, err := model.Load(cfg.ClassifierPath, cfg.ScalerPath)
	if err != nil {
		log.Fatalf("loading model artifacts: %v", err)
	}
	expected, err := cfg.FeatureSchema()
	if err != nil {
		log.Fatalf("reading config: %v", err)
	}
	if expected != nil {
		if err = artifact.RequireSchema(expected); err != nil {
			log.Fatalf("checking model artifacts against schema %q: %v", cfg.Schema, err)
		}
	}
	log.WithField("features", artifact.Schema()).Info("model artifacts loaded")
	if artifact.Sample {
		log.WithFields(log.Fields{
			"classifier": cfg.ClassifierPath,
			"scaler":     cfg.ScalerPath,
		}).Warn("model artifacts are hand-written samples, not a trained model; export real ones with scripts/export_sklearn.py")
	}

	thresholds := cfg.Thresholds()
	rs := service.NewReferenceRiskService(thresholds, artifact.Schema())
	rs.RegisterPlugin(assessments.NewRiskScorePlugin())
	rs.RegisterPlugin(assessments.NewClassifierPlugin(artifact, thresholds))
	log.WithField("plugins", rs.PluginNames()).Info("risk service ready")

	templates, err := server.NewTemplates()
	if err != nil {
		log.Fatalf("parsing templates: %v", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.Renderer = templates
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	server.RegisterRoutes(e, rs)

	log.Fatal(e.Start(cfg.Address()))
}

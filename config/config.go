package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"

	"github.com/Anastasiadms/Personalized-Diabetes-Prediction/features"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. DIABETES_SERVICE_PORT.
const EnvPrefix = "DIABETES"

type Config struct {
	ServiceHost           string  `mapstructure:"service_host"`
	ServicePort           int     `mapstructure:"service_port"`
	LogLevel              string  `mapstructure:"log_level"`
	ClassifierPath        string  `mapstructure:"classifier_path"`
	ScalerPath            string  `mapstructure:"scaler_path"`
	Schema                string  `mapstructure:"schema"`
	HighInsulin           float64 `mapstructure:"high_insulin"`
	HighDPF               float64 `mapstructure:"high_dpf"`
	BloodPressureBaseline float64 `mapstructure:"blood_pressure_baseline"`
}

func setDefaults(v *viper.Viper) {
	t := features.DefaultThresholds()
	v.SetDefault("service_host", "0.0.0.0")
	v.SetDefault("service_port", 9000)
	v.SetDefault("log_level", "info")
	v.SetDefault("classifier_path", "artifacts/diabetes_rf.json")
	v.SetDefault("scaler_path", "artifacts/diabetes_scaler.json")
	v.SetDefault("schema", "")
	v.SetDefault("high_insulin", t.HighInsulin)
	v.SetDefault("high_dpf", t.HighDPF)
	v.SetDefault("blood_pressure_baseline", t.BloodPressureBaseline)
}

// NewConfig reads the toml config from ./config or the working directory.
func NewConfig() (*Config, error) {
	return Read("config", ".")
}

// Read loads an optional .env file, then the toml file named by CONFIG_NAME
// (default "config") from the first of paths that has it.  Every key has a default
// and can be overridden from the environment.  A missing file is not an error.
func Read(paths ...string) (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType("toml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	setDefaults(v)

	err = v.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.Info("no config file found, using defaults")
	}

	cfg := &Config{}
	err = v.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	log.WithField("file", v.ConfigFileUsed()).Info("config parsed")

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ServicePort <= 0 || c.ServicePort > 65535 {
		return fmt.Errorf("service_port must be between 1 and 65535, got %d", c.ServicePort)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.ClassifierPath == "" || c.ScalerPath == "" {
		return errors.New("classifier_path and scaler_path must be set")
	}
	if _, err := c.FeatureSchema(); err != nil {
		return err
	}
	if c.HighInsulin <= 0 || c.HighDPF <= 0 {
		return fmt.Errorf("high_insulin and high_dpf must be positive, got %v and %v", c.HighInsulin, c.HighDPF)
	}
	return nil
}

// Address is the host:port the HTTP server listens on.
func (c *Config) Address() string {
	return net.JoinHostPort(c.ServiceHost, strconv.Itoa(c.ServicePort))
}

// Level is the configured logrus level.  Validate has already checked it parses.
func (c *Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// FeatureSchema is the named column layout the loaded artifact must have, or nil
// when schema is unset and any derivable layout is accepted.
func (c *Config) FeatureSchema() (features.Schema, error) {
	if c.Schema == "" {
		return nil, nil
	}
	return features.SchemaByName(c.Schema)
}

func (c *Config) Thresholds() features.Thresholds {
	return features.Thresholds{
		HighInsulin:           c.HighInsulin,
		HighDPF:               c.HighDPF,
		BloodPressureBaseline: c.BloodPressureBaseline,
	}
}

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gyeh/clinstats/internal/aggregate"
)

// Config holds all runtime configuration for a clinload run.
type Config struct {
	DSN             string
	PatientsFile    string
	EncountersFile  string
	MedicationsFile string
	OutDir          string
	LogFormat       string // "text" or "json"
	KeepRows        bool   // keep previously loaded runs in the serving tables

	TopReasons      int    `yaml:"top_reasons"`       // entries in the reason ranking
	AgeBucketMetric string `yaml:"age_bucket_metric"` // "total" or "mean"
}

// yamlConfig is the on-disk YAML structure.
type yamlConfig struct {
	TopReasons      int    `yaml:"top_reasons"`
	AgeBucketMetric string `yaml:"age_bucket_metric"`
}

// LoadFromFile reads a YAML config file and merges its values into Config.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var yc yamlConfig
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	if yc.TopReasons != 0 {
		c.TopReasons = yc.TopReasons
	}
	if yc.AgeBucketMetric != "" {
		c.AgeBucketMetric = yc.AgeBucketMetric
	}
	return c.validateKPIOptions()
}

// validateKPIOptions checks the KPI knobs, applying defaults for unset
// values.
func (c *Config) validateKPIOptions() error {
	if c.TopReasons < 0 {
		return fmt.Errorf("top_reasons must be positive, got %d", c.TopReasons)
	}
	if c.TopReasons == 0 {
		c.TopReasons = 5
	}
	switch aggregate.AgeMetric(c.AgeBucketMetric) {
	case "", aggregate.MetricTotal, aggregate.MetricMean:
	default:
		return fmt.Errorf("unknown age_bucket_metric %q (want total or mean)", c.AgeBucketMetric)
	}
	if c.AgeBucketMetric == "" {
		c.AgeBucketMetric = string(aggregate.MetricTotal)
	}
	return nil
}

// AggregateOptions converts the KPI knobs into aggregate.Options.
func (c *Config) AggregateOptions() aggregate.Options {
	return aggregate.Options{
		TopN:      c.TopReasons,
		AgeMetric: aggregate.AgeMetric(c.AgeBucketMetric),
	}
}

// Validate checks required input fields and returns an error if the
// config is invalid.
func (c *Config) Validate() error {
	inputs := []struct {
		flag string
		path string
	}{
		{"--patients", c.PatientsFile},
		{"--encounters", c.EncountersFile},
		{"--medications", c.MedicationsFile},
	}
	for _, in := range inputs {
		if in.path == "" {
			return fmt.Errorf("%s is required", in.flag)
		}
		if _, err := os.Stat(in.path); err != nil {
			return fmt.Errorf("file not accessible: %w", err)
		}
	}
	return c.validateKPIOptions()
}

// ValidateWithDSN checks both input files and DSN.
func (c *Config) ValidateWithDSN() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DSN == "" {
		return fmt.Errorf("--dsn or CLINSTATS_DB_URL is required")
	}
	return nil
}

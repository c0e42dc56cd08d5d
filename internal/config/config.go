package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultCells       = 4
	DefaultScale       = 1.0
	DefaultTemperature = 50.0
	DefaultSteps       = 1000
	DefaultSampleEvery = 10
	DefaultReplicas    = 3
)

// Config describes a simulation run. Temperature is in kelvin; everything
// else is dimensionless.
type Config struct {
	Cells       int     `yaml:"cells"`
	Scale       float64 `yaml:"scale"`
	Temperature float64 `yaml:"temperature"`
	Ensemble    string  `yaml:"ensemble"`
	Steps       int     `yaml:"steps"`
	SampleEvery int     `yaml:"sample_every"`
	Seed        int64   `yaml:"seed"`
	Workers     int     `yaml:"workers"`
	Replicas    int     `yaml:"replicas"`
}

func DefaultConfig() *Config {
	return &Config{
		Cells:       DefaultCells,
		Scale:       DefaultScale,
		Temperature: DefaultTemperature,
		Ensemble:    "nvt",
		Steps:       DefaultSteps,
		SampleEvery: DefaultSampleEvery,
		Replicas:    DefaultReplicas,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first structurally invalid field, if any.
func (c *Config) Validate() error {
	if c.Cells < 1 {
		return fmt.Errorf("config: cells must be at least 1, got %d", c.Cells)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("config: scale must be positive, got %g", c.Scale)
	}
	if c.Temperature <= 0 {
		return fmt.Errorf("config: temperature must be positive, got %g", c.Temperature)
	}
	if c.Steps < 1 {
		return fmt.Errorf("config: steps must be at least 1, got %d", c.Steps)
	}
	if c.SampleEvery < 1 {
		return fmt.Errorf("config: sample_every must be at least 1, got %d", c.SampleEvery)
	}
	if c.Replicas < 0 {
		return fmt.Errorf("config: replicas must be non-negative, got %d", c.Replicas)
	}
	return nil
}

package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultGravity  = 9.81
	DefaultSteps    = 61
	DefaultFrom     = -math.Pi
	DefaultTo       = math.Pi
	DefaultLogLevel = "info"
)

type Config struct {
	Model    string      `yaml:"model"`
	Gravity  float64     `yaml:"gravity"`
	LogLevel string      `yaml:"log_level"`
	Q        []float64   `yaml:"q,omitempty"`
	QDot     []float64   `yaml:"qdot,omitempty"`
	Sweep    SweepConfig `yaml:"sweep"`
}

// SweepConfig selects one generalized velocity slot and the range its
// position is swept over.
type SweepConfig struct {
	DOF     int     `yaml:"dof"`
	From    float64 `yaml:"from"`
	To      float64 `yaml:"to"`
	Steps   int     `yaml:"steps"`
	Workers int     `yaml:"workers"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:    "pendulum",
		Gravity:  DefaultGravity,
		LogLevel: DefaultLogLevel,
		Sweep: SweepConfig{
			From:  DefaultFrom,
			To:    DefaultTo,
			Steps: DefaultSteps,
		},
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
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
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

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Gravity < 0 {
		return fmt.Errorf("gravity must be non-negative, got %g", c.Gravity)
	}
	if c.Sweep.Steps < 2 {
		return fmt.Errorf("sweep needs at least 2 steps, got %d", c.Sweep.Steps)
	}
	if c.Sweep.DOF < 0 {
		return fmt.Errorf("sweep dof must be non-negative, got %d", c.Sweep.DOF)
	}
	if c.Sweep.Workers < 0 {
		return fmt.Errorf("sweep workers must be non-negative, got %d", c.Sweep.Workers)
	}
	return nil
}

// Configuration returns a copy of Q, or nil when unset so callers fall back
// to the model's zero configuration.
func (c *Config) Configuration() []float64 {
	if len(c.Q) == 0 {
		return nil
	}
	return append([]float64(nil), c.Q...)
}

// Velocity returns a copy of QDot, or nil when unset.
func (c *Config) Velocity() []float64 {
	if len(c.QDot) == 0 {
		return nil
	}
	return append([]float64(nil), c.QDot...)
}

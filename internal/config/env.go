// Package config defines environment configuration structs and loaders.
package config

import (
	"errors"
	"fmt"
	"math"
)

type AppConfig struct {
	EvaluationEnvConfig
	LoggerEnvConfig
}

// EvaluationEnvConfig configures threshold, similarity and matrix workers.
type EvaluationEnvConfig struct {
	Threshold  float64 `env:"EVAL_THRESHOLD" envDefault:"0.8"`
	Similarity string  `env:"EVAL_SIMILARITY" envDefault:"cosine"`
	Workers    int     `env:"EVAL_WORKERS" envDefault:"0"`
	SweepMin   float64 `env:"EVAL_SWEEP_MIN" envDefault:"0"`
	SweepMax   float64 `env:"EVAL_SWEEP_MAX" envDefault:"1"`
	SweepStep  float64 `env:"EVAL_SWEEP_STEP" envDefault:"0.05"`
	Normalize  bool    `env:"EVAL_NORMALIZE" envDefault:"false"`
}

// LoggerEnvConfig selects the log level.
type LoggerEnvConfig struct {
	Environment string `env:"ENVIRONMENT" envDefault:"prod"`
	LogLevel    string `env:"LOG_LEVEL"`
}

func (c *EvaluationEnvConfig) Validate() error {
	var errs []error
	if math.IsNaN(c.Threshold) || math.IsInf(c.Threshold, 0) {
		errs = append(errs, fmt.Errorf("EVAL_THRESHOLD must be finite, got %v", c.Threshold))
	}
	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("EVAL_WORKERS must not be negative, got %d", c.Workers))
	}
	if c.SweepStep <= 0 {
		errs = append(errs, fmt.Errorf("EVAL_SWEEP_STEP must be positive, got %v", c.SweepStep))
	}
	if c.SweepMin >= c.SweepMax {
		errs = append(errs, fmt.Errorf("EVAL_SWEEP_MIN (%v) must be below EVAL_SWEEP_MAX (%v)", c.SweepMin, c.SweepMax))
	}
	return errors.Join(errs...)
}

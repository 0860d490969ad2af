package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

var evalEnvVars = []string{
	"EVAL_THRESHOLD", "EVAL_SIMILARITY", "EVAL_WORKERS",
	"EVAL_SWEEP_MIN", "EVAL_SWEEP_MAX", "EVAL_SWEEP_STEP", "EVAL_NORMALIZE",
	"ENVIRONMENT", "LOG_LEVEL",
}

func (s *ConfigTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	for _, key := range evalEnvVars {
		if _, ok := os.LookupEnv(key); ok {
			s.T().Setenv(key, "")
			s.Require().NoError(os.Unsetenv(key))
		}
	}
}

func (s *ConfigTestSuite) writeDotEnv(content string) string {
	path := filepath.Join(s.dir, ".env")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (s *ConfigTestSuite) TestDefaults() {
	cfg, err := LoadConfig(filepath.Join(s.dir, "missing.env"))
	s.Require().NoError(err)

	s.Equal(0.8, cfg.Threshold)
	s.Equal("cosine", cfg.Similarity)
	s.Equal(0, cfg.Workers)
	s.Equal(0.0, cfg.SweepMin)
	s.Equal(1.0, cfg.SweepMax)
	s.Equal(0.05, cfg.SweepStep)
	s.False(cfg.Normalize)
	s.Equal("prod", cfg.Environment)
	s.Empty(cfg.LogLevel)
}

func (s *ConfigTestSuite) TestDotEnvFile() {
	path := s.writeDotEnv("EVAL_THRESHOLD=0.65\nEVAL_SIMILARITY=histogram\nEVAL_WORKERS=3\nEVAL_NORMALIZE=true\nENVIRONMENT=dev\n")

	cfg, err := LoadConfig(path)
	s.Require().NoError(err)

	s.Equal(0.65, cfg.Threshold)
	s.Equal("histogram", cfg.Similarity)
	s.Equal(3, cfg.Workers)
	s.True(cfg.Normalize)
	s.Equal("dev", cfg.Environment)
}

func (s *ConfigTestSuite) TestProcessEnvWins() {
	path := s.writeDotEnv("EVAL_THRESHOLD=0.65\n")
	s.T().Setenv("EVAL_THRESHOLD", "0.7")

	cfg, err := LoadConfig(path)
	s.Require().NoError(err)
	s.Equal(0.7, cfg.Threshold)
}

func (s *ConfigTestSuite) TestMalformedValue() {
	s.T().Setenv("EVAL_WORKERS", "many")

	_, err := LoadConfig(filepath.Join(s.dir, "missing.env"))
	s.Error(err)
}

func (s *ConfigTestSuite) TestValidation() {
	tests := []struct {
		name string
		cfg  EvaluationEnvConfig
		ok   bool
	}{
		{name: "valid", cfg: EvaluationEnvConfig{Threshold: 0.5, SweepMax: 1, SweepStep: 0.1}, ok: true},
		{name: "negative workers", cfg: EvaluationEnvConfig{Workers: -1, SweepMax: 1, SweepStep: 0.1}},
		{name: "zero step", cfg: EvaluationEnvConfig{SweepMax: 1}},
		{name: "empty range", cfg: EvaluationEnvConfig{SweepMin: 1, SweepMax: 1, SweepStep: 0.1}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			err := tt.cfg.Validate()
			if tt.ok {
				s.NoError(err)
			} else {
				s.Error(err)
			}
		})
	}

	path := s.writeDotEnv("EVAL_SWEEP_STEP=0\n")
	_, err := LoadConfig(path)
	s.Error(err)
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

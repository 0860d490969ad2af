package config

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const defaultDotEnv = ".env"

// LoadConfig parses the configuration from the process environment layered
// over the given dotenv files (default ".env"). Process variables win over
// file values; missing files are ignored.
func LoadConfig(dotenvFiles ...string) (*AppConfig, error) {
	if len(dotenvFiles) == 0 {
		dotenvFiles = []string{defaultDotEnv}
	}

	environment := make(map[string]string)
	for _, file := range dotenvFiles {
		values, err := godotenv.Read(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				log.Debug().Str("file", file).Msg("dotenv file not found, skipping")
				continue
			}
			return nil, fmt.Errorf("read %s: %w", file, err)
		}
		maps.Copy(environment, values)
	}
	maps.Copy(environment, env.ToMap(os.Environ()))

	cfg := &AppConfig{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, err
	}
	if err := cfg.EvaluationEnvConfig.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Package logger provides a global logger for the application
package logger

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"

	"github.com/tensorplex-labs/faceval/internal/config"
)

// LevelForEnvironment maps ENVIRONMENT to a default log level: dev and test
// log everything, prod and unknown environments log info and above.
func LevelForEnvironment(environment string) zerolog.Level {
	switch strings.ToLower(environment) {
	case "dev", "test":
		return zerolog.TraceLevel
	default:
		return zerolog.InfoLevel
	}
}

// Configure sets up the global zerolog logger with console output. LOG_LEVEL,
// when set, overrides the level derived from ENVIRONMENT.
func Configure(cfg *config.LoggerEnvConfig) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).With().Caller().Logger()

	environment := strings.ToLower(cfg.Environment)
	if environment == "" {
		environment = "prod"
	}

	logLevel := LevelForEnvironment(environment)
	switch environment {
	case "dev", "test", "prod":
	default:
		log.Warn().Str("environment", environment).Msg("Unknown environment - defaulting to production log level (info and above)")
	}

	if cfg.LogLevel != "" {
		parsed, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
		if err != nil {
			log.Warn().Err(err).Str("log_level", cfg.LogLevel).Msg("Invalid LOG_LEVEL - keeping environment log level")
		} else {
			logLevel = parsed
		}
	}

	zerolog.SetGlobalLevel(logLevel)
	log.Info().Str("environment", environment).Str("level", logLevel.String()).Msg("Logger configured")
}

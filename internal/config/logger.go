package config

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// ParseLevel maps a configured level name to a zerolog level, defaulting to info.
func ParseLevel(name string) zerolog.Level {
	switch name {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// NewLogger creates a new logger based on the configuration.
func NewLogger(cfg LoggerConfig) zerolog.Logger {
	return newLogger(cfg, os.Stdout)
}

func newLogger(cfg LoggerConfig, out io.Writer) zerolog.Logger {
	zerolog.SetGlobalLevel(ParseLevel(cfg.Level))

	if cfg.Format == "console" {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.RFC3339,
		}
	}

	return zerolog.New(out).With().Timestamp().Str("app", "storefront").Logger()
}

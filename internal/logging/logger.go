// Package logging configures structured logging.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultLevel is used when no level is configured or the level is invalid.
const DefaultLevel = zerolog.WarnLevel

// Config holds logging configuration.
type Config struct {
	Level   string
	NoColor bool
	Out     io.Writer
}

// Setup configures the global zerolog logger and returns the resolved level.
func Setup(cfg Config) zerolog.Level {
	out := cfg.Out
	if out == nil {
		out = os.Stderr
	}
	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    cfg.NoColor,
		TimeFormat: time.RFC3339,
	}

	level := ParseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(writer).With().Timestamp().Logger()
	return level
}

// ParseLevel maps a level name to a zerolog level, falling back to DefaultLevel.
func ParseLevel(name string) zerolog.Level {
	name = strings.TrimSpace(strings.ToLower(name))
	if name == "" {
		return DefaultLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return DefaultLevel
	}
	return level
}

// Package logging builds the zerolog loggers used by the command-line tools.
package logging

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ErrUnknownFormat is returned for output formats other than json or console.
var ErrUnknownFormat = errors.New("logging: unknown format")

// Config selects the level and output format of a logger.
type Config struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig logs warnings and above in console format.
func DefaultConfig() Config {
	return Config{Level: "warn", Format: "console"}
}

// New creates a logger writing to w. An empty level selects info.
func New(cfg Config, w io.Writer) (zerolog.Logger, error) {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
		if err != nil {
			return zerolog.Nop(), fmt.Errorf("logging: level %q: %w", cfg.Level, err)
		}
		level = l
	}

	switch strings.ToLower(cfg.Format) {
	case "", "json":
	case "console", "pretty":
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	default:
		return zerolog.Nop(), fmt.Errorf("%w: %q", ErrUnknownFormat, cfg.Format)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Logger(), nil
}

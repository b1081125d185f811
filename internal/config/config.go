// Package config loads cafstat settings from defaults, an optional config
// file, CAFSTAT_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cwbudde/algo-hist/hist"
	"github.com/cwbudde/algo-hist/hist/surface"
	"github.com/cwbudde/algo-hist/internal/logging"
	"github.com/cwbudde/algo-hist/stats/binned"
)

// EnvPrefix prefixes environment overrides, e.g. CAFSTAT_LOG_LEVEL.
const EnvPrefix = "CAFSTAT"

// ErrInvalid is returned when a loaded setting fails validation.
var ErrInvalid = errors.New("config: invalid setting")

// Config holds the settings shared by all cafstat commands.
type Config struct {
	Sigma float64        `mapstructure:"sigma"`
	Error string         `mapstructure:"error"`
	Stat  string         `mapstructure:"stat"`
	Axis  int            `mapstructure:"axis"`
	Log   logging.Config `mapstructure:"log"`
}

// flagKeys maps config keys to the flag names bound to them.
var flagKeys = map[string]string{
	"sigma":      "sigma",
	"error":      "error",
	"stat":       "stat",
	"axis":       "axis",
	"log.level":  "log-level",
	"log.format": "log-format",
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Sigma: surface.DefaultSigma,
		Error: hist.ErrorNormal.String(),
		Stat:  binned.KindMean.String(),
		Axis:  0,
		Log:   logging.DefaultConfig(),
	}
}

// Load reads the configuration. configPath may be empty, in which case a
// file named cafstat.{yaml,json,toml} is looked up in the working directory
// and $HOME/.config/cafstat, and skipped when absent. flags may be nil; only
// flags that were set on the command line override other sources.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("cafstat")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/cafstat")
	}

	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range flagKeys {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("config: bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("sigma", d.Sigma)
	v.SetDefault("error", d.Error)
	v.SetDefault("stat", d.Stat)
	v.SetDefault("axis", d.Axis)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.format", d.Log.Format)
}

// Validate checks that every setting can be used by the commands.
func (c *Config) Validate() error {
	if !(c.Sigma > 0) || math.IsInf(c.Sigma, 0) {
		return fmt.Errorf("%w: sigma must be positive and finite: %v", ErrInvalid, c.Sigma)
	}
	if _, err := c.ErrorKind(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if _, err := c.StatKind(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Axis < 0 {
		return fmt.Errorf("%w: axis must be >= 0: %d", ErrInvalid, c.Axis)
	}
	return nil
}

// ErrorKind parses the configured error-bar kind.
func (c *Config) ErrorKind() (hist.ErrorKind, error) { return hist.ParseErrorKind(c.Error) }

// StatKind parses the configured binned statistic.
func (c *Config) StatKind() (binned.Kind, error) { return binned.ParseKind(c.Stat) }

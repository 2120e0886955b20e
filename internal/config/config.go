// internal/config/config.go
// Package config resolves coldplot settings from flags, environment and an
// optional config file through viper.
package config

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables, e.g. COLDPLOT_TYPE.
const EnvPrefix = "COLDPLOT"

// Config is the resolved set of options for one invocation.
type Config struct {
	Type        string  `mapstructure:"type"`
	Path        string  `mapstructure:"path"`
	Provider    string  `mapstructure:"provider"`
	Memory      string  `mapstructure:"memory"`
	ServiceTime string  `mapstructure:"service-time"`
	Output      string  `mapstructure:"output"`
	Width       float64 `mapstructure:"width"`
	Height      float64 `mapstructure:"height"`
	Summary     bool    `mapstructure:"summary"`
	LogLevel    string  `mapstructure:"log-level"`
}

// Defaults are used when neither a flag, an environment variable nor the
// config file sets a value.
var Defaults = Config{
	Type:     "cpustats",
	Path:     ".",
	Summary:  true,
	LogLevel: "info",
}

// SetDefaults registers Defaults on v and wires environment lookups.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("type", Defaults.Type)
	v.SetDefault("path", Defaults.Path)
	v.SetDefault("summary", Defaults.Summary)
	v.SetDefault("log-level", Defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

// FromViper reads the config file named by the "config" key, if any, and
// unmarshals every setting into a Config.
func FromViper(v *viper.Viper) (Config, error) {
	if file := v.GetString("config"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, errors.Wrapf(err, "reading config file %s", file)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "decoding config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings that cannot produce a figure.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return errors.Errorf("figure size must not be negative (width=%g, height=%g)", c.Width, c.Height)
	}
	if c.Path == "" {
		return errors.New("path must not be empty")
	}
	return nil
}

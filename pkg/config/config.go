// Package config holds the settings for the command line tools. They come
// from the environment, optionally from a .env file. Flags override them.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog"

	"github.com/andrew-torda/sstruct/pkg/ssfile"
)

// Prefix goes in front of every variable name, so WORKERS is read from
// SSLOAD_WORKERS.
const Prefix = "SSLOAD"

// Config is everything we read from the environment.
type Config struct {
	LogLevel    string        `envconfig:"LOG_LEVEL" default:"info"`
	Quiet       bool          `envconfig:"QUIET" default:"false"`
	Workers     int           `envconfig:"WORKERS" default:"4"`
	ByExtension bool          `envconfig:"BY_EXTENSION" default:"true"`
	Timeout     time.Duration `envconfig:"TIMEOUT" default:"0s"` // 0 means no limit
}

// Load reads the environment. Files are .env style files read first. With
// no files, .env in the working directory is tried. A missing .env file
// is not an error. Variables already set are not overwritten.
func Load(files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil && len(files) > 0 {
		return nil, fmt.Errorf("reading %v: %w", files, err)
	}
	var c Config
	if err := envconfig.Process(Prefix, &c); err != nil {
		return nil, err
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Check looks for values that cannot work.
func (c *Config) Check() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return fmt.Errorf("%s_WORKERS must be at least 1, not %d", Prefix, c.Workers)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("%s_TIMEOUT cannot be negative", Prefix)
	}
	return nil
}

// Level is the log level as zerolog understands it.
func (c *Config) Level() (zerolog.Level, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%s_LOG_LEVEL: %w", Prefix, err)
	}
	return lvl, nil
}

// LoadOptions turns the settings into options for the readers.
func (c *Config) LoadOptions(log *zerolog.Logger) ssfile.Options {
	return ssfile.Options{Quiet: c.Quiet, ByExtension: c.ByExtension, Logger: log}
}

// Package config loads quasargen settings from .quasargen.yaml and the
// environment.
package config

import (
	"errors"
	"fmt"
	"time"
)

// DefaultConfigFile is read from the working directory when no --config
// flag is given.
const DefaultConfigFile = ".quasargen.yaml"

// Defaults applied by WithDefaults.
const (
	DefaultOutput      = "src"
	DefaultConcurrency = 4
	DefaultHydraPrefix = "hydra:"
	DefaultTimeout     = 30 * time.Second
)

// Config holds the generator settings. Command line flags override these
// values.
type Config struct {
	// Source is the OpenAPI document path or URL.
	Source string `mapstructure:"source"`

	// Output is the Quasar project source directory.
	Output string `mapstructure:"output"`

	// Resources limits generation to the named resources. Empty means all.
	Resources []string `mapstructure:"resources"`

	// Concurrency bounds how many resources are generated at once.
	Concurrency int `mapstructure:"concurrency"`

	HydraPrefix string `mapstructure:"hydraPrefix"`

	// TemplatesDir overrides embedded templates with files from disk.
	TemplatesDir string `mapstructure:"templatesDir"`

	// Force overwrites files that are otherwise created only when missing.
	Force bool `mapstructure:"force"`

	// Timeout caps remote document fetches.
	Timeout time.Duration `mapstructure:"timeout"`
}

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c *Config) WithDefaults() *Config {
	out := Config{}
	if c != nil {
		out = *c
		out.Resources = append([]string(nil), c.Resources...)
	}
	if out.Output == "" {
		out.Output = DefaultOutput
	}
	if out.Concurrency <= 0 {
		out.Concurrency = DefaultConcurrency
	}
	if out.HydraPrefix == "" {
		out.HydraPrefix = DefaultHydraPrefix
	}
	if out.Timeout <= 0 {
		out.Timeout = DefaultTimeout
	}
	return &out
}

// Validate reports settings that cannot be used for a run.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config: nil config")
	}
	if c.Source == "" {
		return errors.New("config: source is required")
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("config: concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("config: timeout must not be negative, got %s", c.Timeout)
	}
	return nil
}

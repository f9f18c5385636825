package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for quasargen configuration.
const envPrefix = "QUASARGEN"

// Loader handles loading and merging configuration from the config file and
// the environment.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("source", "QUASARGEN_SOURCE")
	_ = v.BindEnv("output", "QUASARGEN_OUTPUT")
	_ = v.BindEnv("resources", "QUASARGEN_RESOURCES")
	_ = v.BindEnv("concurrency", "QUASARGEN_CONCURRENCY")
	_ = v.BindEnv("hydraPrefix", "QUASARGEN_HYDRA_PREFIX")
	_ = v.BindEnv("templatesDir", "QUASARGEN_TEMPLATES_DIR")
	_ = v.BindEnv("force", "QUASARGEN_FORCE")
	_ = v.BindEnv("timeout", "QUASARGEN_TIMEOUT")

	return &Loader{v: v}
}

// Load reads configFile (DefaultConfigFile when empty). A missing file is
// not an error. Environment variables take precedence over file values.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	l.v.SetConfigFile(configFile)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: reading %s: %w", configFile, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshaling: %w", err)
	}
	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

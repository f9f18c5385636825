package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoaderLoad(t *testing.T) {
	t.Run("loads config from file", func(t *testing.T) {
		path := writeConfig(t, `
source: ./openapi.json
output: ./app/src
resources:
  - books
  - reviews
concurrency: 2
hydraPrefix: "ld:"
templatesDir: ./templates
force: true
timeout: 5s
`)

		cfg, err := NewLoader().Load(path)

		require.NoError(t, err)
		assert.Equal(t, "./openapi.json", cfg.Source)
		assert.Equal(t, "./app/src", cfg.Output)
		assert.Equal(t, []string{"books", "reviews"}, cfg.Resources)
		assert.Equal(t, 2, cfg.Concurrency)
		assert.Equal(t, "ld:", cfg.HydraPrefix)
		assert.Equal(t, "./templates", cfg.TemplatesDir)
		assert.True(t, cfg.Force)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
	})

	t.Run("returns empty config for missing file", func(t *testing.T) {
		cfg, err := NewLoader().Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		require.NoError(t, err)
		assert.Empty(t, cfg.Source)
		assert.Zero(t, cfg.Concurrency)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		path := writeConfig(t, "source: ./file.json\nconcurrency: 2\n")
		t.Setenv("QUASARGEN_SOURCE", "https://demo.api-platform.com/docs.jsonopenapi")
		t.Setenv("QUASARGEN_HYDRA_PREFIX", "ld:")

		cfg, err := NewLoader().Load(path)

		require.NoError(t, err)
		assert.Equal(t, "https://demo.api-platform.com/docs.jsonopenapi", cfg.Source)
		assert.Equal(t, "ld:", cfg.HydraPrefix)
		assert.Equal(t, 2, cfg.Concurrency)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "source: [unterminated\n")

		_, err := NewLoader().Load(path)
		assert.Error(t, err)
	})
}

func TestLoadWithDefaults(t *testing.T) {
	cfg, err := NewLoader().LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.Equal(t, DefaultConcurrency, cfg.Concurrency)
	assert.Equal(t, DefaultHydraPrefix, cfg.HydraPrefix)
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
}

func TestWithDefaultsKeepsValues(t *testing.T) {
	in := &Config{Output: "web", Concurrency: 8, Resources: []string{"books"}}
	out := in.WithDefaults()

	assert.Equal(t, "web", out.Output)
	assert.Equal(t, 8, out.Concurrency)
	out.Resources[0] = "changed"
	assert.Equal(t, "books", in.Resources[0], "defaults must not alias the input")
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&Config{}).Validate())
	assert.Error(t, (&Config{Source: "a.json", Concurrency: -1}).Validate())
	assert.NoError(t, (&Config{Source: "a.json"}).Validate())
}

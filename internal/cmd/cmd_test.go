package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-quasargen/internal/config"
	"github.com/goliatone/go-quasargen/pkg/generator"
	"github.com/goliatone/go-quasargen/pkg/prompt"
)

var bookstore = filepath.Join("..", "openapi", "parser", "testdata", "bookstore.json")

// execute runs the root command with args and an isolated config file.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "none.yaml")))
	err := root.Execute()
	return out.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	return exitErr.Code
}

func TestNewVersionCmd(t *testing.T) {
	cmd := NewVersionCmd()
	assert.Equal(t, "version", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "quasargen version dev")
}

func TestResourcesCmd(t *testing.T) {
	out, err := execute(t, "resources", bookstore)

	require.NoError(t, err)
	assert.Contains(t, out, "Bookstore")
	assert.Contains(t, out, "books")
	assert.Contains(t, out, "reviews")
	assert.Contains(t, out, "2 resources")
}

func TestGenerateCmd_WritesFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "src")

	out, err := execute(t, "generate", bookstore, dir, "--resource", "books")

	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, "components", "book", "BookList.vue"))
	assert.FileExists(t, filepath.Join(dir, "router", "book.ts"))
	assert.NoDirExists(t, filepath.Join(dir, "components", "review"))
	assert.Contains(t, out, "components/book/BookList.vue")
	assert.Contains(t, out, "import bookRoutes from './book';")
	assert.Contains(t, out, "0 failed")
}

func TestGenerateCmd_DryRun(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "src")

	out, err := execute(t, "generate", bookstore, dir, "--dry-run")

	require.NoError(t, err)
	assert.NoDirExists(t, dir)
	assert.Contains(t, out, "plan books")
	assert.Contains(t, out, "plan reviews")
	assert.Contains(t, out, "planned")
	assert.NotContains(t, out, "bookRoutes")
}

func TestGenerateCmd_UnknownResource(t *testing.T) {
	_, err := execute(t, "generate", bookstore, t.TempDir(), "--resource", "publishers")

	assert.Equal(t, ExitNotFound, exitCode(t, err))
	assert.ErrorIs(t, err, generator.ErrResourceNotFound)
}

func TestGenerateCmd_MissingSource(t *testing.T) {
	_, err := execute(t, "generate")

	assert.Equal(t, ExitUsageError, exitCode(t, err))
}

func TestGenerateCmd_UsesConfigFile(t *testing.T) {
	dir := t.TempDir()
	source, err := filepath.Abs(bookstore)
	require.NoError(t, err)
	configPath := filepath.Join(dir, config.DefaultConfigFile)
	content := "source: " + source + "\noutput: " + filepath.Join(dir, "src") + "\nresources: [reviews]\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"generate", "--config", configPath})

	require.NoError(t, root.Execute())
	assert.FileExists(t, filepath.Join(dir, "src", "components", "review", "ReviewList.vue"))
	assert.NoDirExists(t, filepath.Join(dir, "src", "components", "book"))
}

type scriptedDriver struct {
	picked []int
	output string
	force  bool
}

func (d *scriptedDriver) Input(context.Context, prompt.InputConfig) (string, error) {
	return d.output, nil
}

func (d *scriptedDriver) Confirm(context.Context, prompt.ConfirmConfig) (bool, error) {
	return d.force, nil
}

func (d *scriptedDriver) MultiSelect(context.Context, prompt.SelectConfig) ([]int, error) {
	if d.picked == nil {
		return nil, prompt.ErrAborted
	}
	return d.picked, nil
}

func (d *scriptedDriver) Info(context.Context, string) error { return nil }

func TestGenerateCmd_Interactive(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "web")
	opts := &globalOptions{config: &config.Config{}}
	cmd := newGenerateCmd(opts, &scriptedDriver{picked: []int{1}, output: dir})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{bookstore, "--interactive"})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, filepath.Join(dir, "components", "review", "ReviewList.vue"))
	assert.NoDirExists(t, filepath.Join(dir, "components", "book"))
}

func TestGenerateCmd_InteractiveAbort(t *testing.T) {
	opts := &globalOptions{config: &config.Config{}}
	cmd := newGenerateCmd(opts, &scriptedDriver{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{bookstore, t.TempDir(), "--interactive"})

	err := cmd.Execute()
	assert.Equal(t, ExitAborted, exitCode(t, err))
}

func TestExitError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "resource not found", err: generator.ErrResourceNotFound, want: ExitNotFound},
		{name: "no resources", err: generator.ErrNoResources, want: ExitNotFound},
		{name: "aborted", err: prompt.ErrAborted, want: ExitAborted},
		{name: "other", err: errors.New("boom"), want: ExitGeneralError},
		{name: "already wrapped", err: &ExitError{Code: ExitPartialFailure}, want: ExitPartialFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(t, exitError(tt.err)))
		})
	}

	assert.NoError(t, exitError(nil))
	assert.Equal(t, "Partial Failure", (&ExitError{Code: ExitPartialFailure}).Error())
}

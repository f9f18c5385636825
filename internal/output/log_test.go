package output

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T, verbose bool) *bytes.Buffer {
	t.Helper()
	previous := Logger
	t.Cleanup(func() { Logger = previous })

	var buf bytes.Buffer
	SetupLoggingTo(&buf, verbose)
	return &buf
}

func TestSetupLogging_DefaultHidesDebug(t *testing.T) {
	buf := captureLog(t, false)
	Debug("hidden-msg")
	Info("shown-msg", "resource", "books")

	out := buf.String()
	assert.NotContains(t, out, "hidden-msg")
	assert.Contains(t, out, "shown-msg")
	assert.Contains(t, out, "resource=books")
	assert.Equal(t, log.InfoLevel, Logger.GetLevel())
}

func TestSetupLogging_VerboseEnablesDebugLevel(t *testing.T) {
	buf := captureLog(t, true)
	Debug("verbose-msg")

	assert.Equal(t, log.DebugLevel, Logger.GetLevel())
	assert.Contains(t, buf.String(), "verbose-msg")
}

func TestErrorAndWarnAlwaysShown(t *testing.T) {
	buf := captureLog(t, false)
	Warn("careful")
	Error("broken", "err", "boom")

	out := buf.String()
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "broken")
	assert.Contains(t, out, "err=boom")
}

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "shoptest.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ModeMock, c.Mode)
	assert.Equal(t, "reports", c.ReportsDir)
	assert.Equal(t, 5*time.Second, c.Timeouts.Wait.Std())
	assert.Equal(t, 30*time.Second, c.Timeouts.Navigation.Std())
	assert.Equal(t, 100*time.Millisecond, c.Timeouts.Poll.Std())
	assert.Equal(t, 3*time.Second, c.Performance.PageLoad.Std())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
mode: live
baseUrl: http://localhost:3000
headed: true
timeouts:
  wait: 10s
  poll: 250ms
performance:
  apiCall: 750ms
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ModeLive, c.Mode)
	assert.Equal(t, "http://localhost:3000", c.BaseURL)
	assert.True(t, c.Headed)
	assert.Equal(t, 10*time.Second, c.Timeouts.Wait.Std())
	assert.Equal(t, 250*time.Millisecond, c.Timeouts.Poll.Std())
	// Untouched values keep their defaults.
	assert.Equal(t, 30*time.Second, c.Timeouts.Navigation.Std())
	assert.Equal(t, 750*time.Millisecond, c.Performance.APICall.Std())
	assert.Equal(t, 3*time.Second, c.Performance.PageLoad.Std())
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "mode: live\n")
	t.Setenv("SHOPTEST_MODE", "mock")
	t.Setenv("SHOPTEST_REPORTS_DIR", "out/run-1")
	t.Setenv("SHOPTEST_WAIT_TIMEOUT", "2s")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ModeMock, c.Mode)
	assert.Equal(t, "out/run-1", c.ReportsDir)
	assert.Equal(t, 2*time.Second, c.Timeouts.Wait.Std())
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, "timeouts:\n  wait: fast\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `parse duration "fast"`)
}

func TestLoadRejectsUnknownMode(t *testing.T) {
	path := writeConfig(t, "mode: staging\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestPerfThresholds(t *testing.T) {
	c := Default()
	th := c.PerfThresholds()
	assert.Equal(t, 3*time.Second, th["page_load"])
	assert.Equal(t, 500*time.Millisecond, th["api_call"])
	assert.Equal(t, time.Second, th["interaction"])
}

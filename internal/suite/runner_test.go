package suite

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannydang64/snowboard-store-sub000/internal/config"
	"github.com/dannydang64/snowboard-store-sub000/internal/report"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.ReportsDir = t.TempDir()
	return cfg
}

func discard() *log.Logger { return log.New(io.Discard, "", 0) }

func TestSelect(t *testing.T) {
	cases, err := Select([]string{FeatureCart, FeatureProduct})
	require.NoError(t, err)
	require.NotEmpty(t, cases)
	// Canonical order: product cases come first however the names were
	// given.
	assert.Equal(t, FeatureProduct, cases[0].Feature)
	assert.Equal(t, FeatureCart, cases[len(cases)-1].Feature)

	_, err = Select([]string{"cartography"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown suite "cartography"`)
}

func TestRunAllSuitesMock(t *testing.T) {
	cases, err := Select(SuiteOrder)
	require.NoError(t, err)

	cfg := testConfig(t)
	r := NewRunner(cfg, discard())
	summary, err := r.Run(context.Background(), cases, 1)
	require.NoError(t, err)

	assert.Equal(t, len(cases), summary.Overall.Total)
	for _, res := range summary.Results {
		assert.Equalf(t, report.StatusPass, res.Status, "%s %s: %s", res.TestCaseID, res.Name, res.Actual)
	}
	assert.Zero(t, summary.Overall.Failed)

	// Perf cases fed the monitor.
	assert.NotEmpty(t, r.Monitor().Samples())

	// The artifacts render from the summary.
	require.NoError(t, report.Write(cfg.ReportsDir, summary, r.Monitor()))
	_, err = os.Stat(filepath.Join(cfg.ReportsDir, "summary.json"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(cfg.ReportsDir, "report.html"))
	require.NoError(t, err)
}

func TestRunParallelMock(t *testing.T) {
	cases, err := Select(SuiteOrder)
	require.NoError(t, err)

	r := NewRunner(testConfig(t), discard())
	summary, err := r.Run(context.Background(), cases, 4)
	require.NoError(t, err)

	assert.Equal(t, len(cases), summary.Overall.Total)
	assert.Zero(t, summary.Overall.Failed)
}

func TestRunRecordsFailureWithScreenshot(t *testing.T) {
	cfg := testConfig(t)
	r := NewRunner(cfg, discard())

	cases := []Case{{
		ID:       "FAIL-001",
		Name:     "deliberate failure",
		Feature:  FeatureCart,
		Priority: report.PriorityP2,
		Type:     report.TypePositive,
		Expected: "never",
		Run: func(ctx context.Context, env *Env) error {
			if err := env.Site.Home().Open(ctx); err != nil {
				return err
			}
			_, err := env.Site.Cart().Quantity(ctx, "no-such-product")
			return err
		},
	}}

	summary, err := r.Run(context.Background(), cases, 1)
	require.NoError(t, err, "a failing case must not fail the run itself")

	require.Len(t, summary.Results, 1)
	res := summary.Results[0]
	assert.Equal(t, report.StatusFail, res.Status)
	assert.NotEmpty(t, res.Actual)
	require.NotEmpty(t, res.Screenshot, "failures capture page state")
	_, err = os.Stat(res.Screenshot)
	require.NoError(t, err)
}

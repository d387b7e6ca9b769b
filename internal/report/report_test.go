package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannydang64/snowboard-store-sub000/internal/perf"
)

func sampleResults() []TestResult {
	ts := time.Date(2026, 8, 27, 10, 0, 0, 0, time.UTC)
	return []TestResult{
		{TestCaseID: "CART-001", Name: "add to cart", FeatureArea: "cart", Priority: PriorityP0, TestType: TypePositive, Status: StatusPass, ExecutionTime: 120 * time.Millisecond, Timestamp: ts},
		{TestCaseID: "CART-002", Name: "add out of stock", FeatureArea: "cart", Priority: PriorityP0, TestType: TypeNegative, Status: StatusFail, Expected: "cart unchanged", Actual: "item appeared", Timestamp: ts},
		{TestCaseID: "PROD-001", Name: "category filter", FeatureArea: "product", Priority: PriorityP1, TestType: TypePositive, Status: StatusPass, Timestamp: ts},
		{TestCaseID: "PERF-001", Name: "home load", FeatureArea: "performance", Priority: PriorityP2, TestType: TypePositive, Status: StatusSkip, Timestamp: ts},
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 8, 27, 10, 5, 0, 0, time.UTC)
	s := Summarize(sampleResults(), now, 3*time.Second)

	assert.Equal(t, 4, s.Overall.Total)
	assert.Equal(t, 2, s.Overall.Passed)
	assert.Equal(t, 1, s.Overall.Failed)
	assert.Equal(t, 1, s.Overall.Skipped)

	require.Len(t, s.ByPriority, 3)
	assert.Equal(t, "P0", s.ByPriority[0].Key)
	assert.Equal(t, "P1", s.ByPriority[1].Key)
	assert.Equal(t, "P2", s.ByPriority[2].Key)
	assert.Equal(t, 0.5, s.ByPriority[0].PassRate())

	require.Len(t, s.ByFeature, 3)
	assert.Equal(t, "cart", s.ByFeature[0].Key)
	assert.Equal(t, "performance", s.ByFeature[1].Key)
	assert.Equal(t, "product", s.ByFeature[2].Key)

	// An all-skipped grouping is not a failure.
	assert.Equal(t, 1.0, s.ByFeature[1].PassRate())
}

func TestRecorderConcurrentAdds(t *testing.T) {
	r := NewRecorder()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Add(TestResult{TestCaseID: "X", Status: StatusPass})
		}()
	}
	wg.Wait()
	assert.Len(t, r.Results(), 50)
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 8, 27, 10, 5, 0, 0, time.UTC)
	s := Summarize(sampleResults(), now, 3*time.Second)

	mon := perf.NewMonitor(nil)
	mon.Record(perf.CategoryPageLoad, "home", 4*time.Second, nil)

	require.NoError(t, Write(dir, s, mon))

	// summary.json round-trips.
	b, err := os.ReadFile(filepath.Join(dir, "summary.json"))
	require.NoError(t, err)
	var got Summary
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, s.Overall, got.Overall)
	assert.Len(t, got.Results, 4)

	// report.html carries the result rows and the flagged measurement.
	hb, err := os.ReadFile(filepath.Join(dir, "report.html"))
	require.NoError(t, err)
	html := string(hb)
	assert.Contains(t, html, "CART-002")
	assert.Contains(t, html, "item appeared")
	assert.Contains(t, html, "page_load")
	assert.Contains(t, html, "2/4 passed")
}

func TestWriteReportsDirFailure(t *testing.T) {
	// A file where the report dir should be makes MkdirAll fail.
	base := t.TempDir()
	blocked := filepath.Join(base, "reports")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	err := Write(filepath.Join(blocked, "run"), Summary{}, nil)
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "report dir"))
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "add_to_cart__qty_2_", SanitizeName("add to cart (qty 2)"))
	assert.Equal(t, "CART-001", SanitizeName("CART-001"))
}

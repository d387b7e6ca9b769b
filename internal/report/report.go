// Package report collects test results and renders the run's artifacts: a
// JSON summary for machines and an HTML report for people.
package report

import (
	"sort"
	"sync"
	"time"
)

// Result statuses.
const (
	StatusPass = "Pass"
	StatusFail = "Fail"
	StatusSkip = "Skip"
)

// Test priorities, highest first.
const (
	PriorityP0 = "P0"
	PriorityP1 = "P1"
	PriorityP2 = "P2"
)

// Test types.
const (
	TypePositive = "Positive"
	TypeNegative = "Negative"
)

// TestResult is the record of one executed test case.
type TestResult struct {
	TestCaseID    string        `json:"testCaseId"`
	Name          string        `json:"name"`
	Description   string        `json:"description"`
	FeatureArea   string        `json:"featureArea"`
	Priority      string        `json:"priority"`
	TestType      string        `json:"testType"`
	Expected      string        `json:"expected"`
	Actual        string        `json:"actual"`
	Status        string        `json:"status"`
	ExecutionTime time.Duration `json:"executionTime"`
	Timestamp     time.Time     `json:"timestamp"`
	Screenshot    string        `json:"screenshot,omitempty"`
}

// Recorder accumulates results as tests finish. Append-only and safe for
// concurrent use, so parallel workers share one recorder.
type Recorder struct {
	mu      sync.Mutex
	results []TestResult
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Add(res TestResult) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.results = append(r.results, res)
}

// Results returns a copy in recording order.
func (r *Recorder) Results() []TestResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]TestResult, len(r.results))
	copy(out, r.results)
	return out
}

// StatusCount is pass/fail/skip tallies for one grouping.
type StatusCount struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

func (c *StatusCount) add(status string) {
	c.Total++
	switch status {
	case StatusPass:
		c.Passed++
	case StatusFail:
		c.Failed++
	case StatusSkip:
		c.Skipped++
	}
}

// PassRate is passed over executed (skips excluded). A grouping with nothing
// executed reports 1 so an all-skipped area does not read as broken.
func (c StatusCount) PassRate() float64 {
	executed := c.Total - c.Skipped
	if executed == 0 {
		return 1
	}
	return float64(c.Passed) / float64(executed)
}

// Grouped is a named StatusCount, used for the per-priority and per-feature
// breakdowns.
type Grouped struct {
	Key string `json:"key"`
	StatusCount
}

// Summary is the aggregate view written to summary.json.
type Summary struct {
	GeneratedAt time.Time     `json:"generatedAt"`
	Duration    time.Duration `json:"duration"`
	Overall     StatusCount   `json:"overall"`
	ByPriority  []Grouped     `json:"byPriority"`
	ByFeature   []Grouped     `json:"byFeature"`
	Results     []TestResult  `json:"results"`
}

// Summarize folds the results into a Summary. Group order is deterministic:
// priorities sort lexically (P0 first), features alphabetically.
func Summarize(results []TestResult, generatedAt time.Time, duration time.Duration) Summary {
	s := Summary{
		GeneratedAt: generatedAt,
		Duration:    duration,
		Results:     results,
	}

	byPriority := make(map[string]*StatusCount)
	byFeature := make(map[string]*StatusCount)
	for _, r := range results {
		s.Overall.add(r.Status)
		groupAdd(byPriority, r.Priority, r.Status)
		groupAdd(byFeature, r.FeatureArea, r.Status)
	}
	s.ByPriority = sortedGroups(byPriority)
	s.ByFeature = sortedGroups(byFeature)
	return s
}

func groupAdd(m map[string]*StatusCount, key, status string) {
	c, ok := m[key]
	if !ok {
		c = &StatusCount{}
		m[key] = c
	}
	c.add(status)
}

func sortedGroups(m map[string]*StatusCount) []Grouped {
	out := make([]Grouped, 0, len(m))
	for k, c := range m {
		out = append(out, Grouped{Key: k, StatusCount: *c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

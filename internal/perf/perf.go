// Package perf measures operation durations against per-category thresholds.
// A breached threshold is flagged, never failed: performance findings are
// reported alongside functional results without aborting a run.
package perf

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Measurement categories. Each carries its own default threshold.
const (
	CategoryPageLoad    = "page_load"
	CategoryAPICall     = "api_call"
	CategoryInteraction = "interaction"
)

// DefaultThresholds are the budgets applied when the caller configures
// nothing else.
func DefaultThresholds() map[string]time.Duration {
	return map[string]time.Duration{
		CategoryPageLoad:    3 * time.Second,
		CategoryAPICall:     500 * time.Millisecond,
		CategoryInteraction: time.Second,
	}
}

// Sample is one recorded measurement.
type Sample struct {
	Category  string        `json:"category"`
	Name      string        `json:"name"`
	Duration  time.Duration `json:"duration"`
	Threshold time.Duration `json:"threshold"`
	Breached  bool          `json:"breached"`
	Err       string        `json:"error,omitempty"`
}

// CategorySummary aggregates the samples of one category.
type CategorySummary struct {
	Category string        `json:"category"`
	Count    int           `json:"count"`
	Breaches int           `json:"breaches"`
	Min      time.Duration `json:"min"`
	Max      time.Duration `json:"max"`
	Mean     time.Duration `json:"mean"`
	PassRate float64       `json:"passRate"`
}

// Monitor collects timing samples. Safe for concurrent use.
type Monitor struct {
	mu         sync.Mutex
	thresholds map[string]time.Duration
	samples    []Sample
	now        func() time.Time
}

func NewMonitor(thresholds map[string]time.Duration) *Monitor {
	merged := DefaultThresholds()
	for cat, d := range thresholds {
		if d > 0 {
			merged[cat] = d
		}
	}
	return &Monitor{thresholds: merged, now: time.Now}
}

// Threshold reports the budget for a category. Unknown categories have no
// budget and never breach.
func (m *Monitor) Threshold(category string) time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.thresholds[category]
}

// Measure times fn and records a sample under category/name. The sample is
// recorded even when fn fails, and fn's error is passed through untouched.
func (m *Monitor) Measure(category, name string, fn func() error) error {
	start := m.now()
	err := fn()
	m.Record(category, name, m.now().Sub(start), err)
	return err
}

// Record adds an externally timed sample.
func (m *Monitor) Record(category, name string, d time.Duration, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	threshold := m.thresholds[category]
	s := Sample{
		Category:  category,
		Name:      name,
		Duration:  d,
		Threshold: threshold,
		Breached:  threshold > 0 && d > threshold,
	}
	if err != nil {
		s.Err = err.Error()
	}
	m.samples = append(m.samples, s)
}

// Samples returns a copy of everything recorded so far, in recording order.
func (m *Monitor) Samples() []Sample {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Sample, len(m.samples))
	copy(out, m.samples)
	return out
}

// Breaches returns only the samples that exceeded their budget.
func (m *Monitor) Breaches() []Sample {
	var out []Sample
	for _, s := range m.Samples() {
		if s.Breached {
			out = append(out, s)
		}
	}
	return out
}

// Summary aggregates per category, sorted by category name so output is
// deterministic.
func (m *Monitor) Summary() []CategorySummary {
	byCat := make(map[string]*CategorySummary)
	var total = make(map[string]time.Duration)
	for _, s := range m.Samples() {
		cs, ok := byCat[s.Category]
		if !ok {
			cs = &CategorySummary{Category: s.Category, Min: s.Duration, Max: s.Duration}
			byCat[s.Category] = cs
		}
		cs.Count++
		if s.Breached {
			cs.Breaches++
		}
		if s.Duration < cs.Min {
			cs.Min = s.Duration
		}
		if s.Duration > cs.Max {
			cs.Max = s.Duration
		}
		total[s.Category] += s.Duration
	}

	out := make([]CategorySummary, 0, len(byCat))
	for cat, cs := range byCat {
		cs.Mean = total[cat] / time.Duration(cs.Count)
		cs.PassRate = float64(cs.Count-cs.Breaches) / float64(cs.Count)
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out
}

// Describe renders one sample the way it appears in run logs.
func (s Sample) Describe() string {
	if s.Breached {
		return fmt.Sprintf("%s/%s took %s, over the %s budget", s.Category, s.Name, s.Duration.Round(time.Millisecond), s.Threshold)
	}
	return fmt.Sprintf("%s/%s took %s", s.Category, s.Name, s.Duration.Round(time.Millisecond))
}

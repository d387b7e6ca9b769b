// Package check provides the assertion and wait helpers shared by every
// suite: a soft-assertion collector that batches failures until verified,
// hard assertions that abort a step immediately, and predicate-polling waits
// that replace fixed sleeps.
package check

import (
	"fmt"
	"math"
	"strings"
)

// Result is one recorded check.
type Result struct {
	Passed   bool
	Message  string
	Expected any
	Actual   any
}

func (r Result) String() string {
	if r.Passed {
		return fmt.Sprintf("PASS %s", r.Message)
	}
	return fmt.Sprintf("FAIL %s: expected %v, got %v", r.Message, r.Expected, r.Actual)
}

// AssertionError aggregates every failed soft check of a collector.
type AssertionError struct {
	Failures []Result
}

func (e *AssertionError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d assertion(s) failed:", len(e.Failures))
	for _, f := range e.Failures {
		b.WriteString("\n  - ")
		b.WriteString(f.String())
	}
	return b.String()
}

// Collector accumulates soft assertions for one test. It is an explicit
// per-test object, never shared across tests, so parallel workers cannot
// leak failures into each other.
type Collector struct {
	results []Result
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) record(passed bool, message string, expected, actual any) bool {
	c.results = append(c.results, Result{
		Passed:   passed,
		Message:  message,
		Expected: expected,
		Actual:   actual,
	})
	return passed
}

// Equal records a soft equality check and reports whether it passed.
func (c *Collector) Equal(message string, expected, actual any) bool {
	return c.record(expected == actual, message, expected, actual)
}

// InDelta records a soft numeric check with tolerance. Currency comparisons
// use a 0.01 delta.
func (c *Collector) InDelta(message string, expected, actual, delta float64) bool {
	return c.record(math.Abs(expected-actual) <= delta, message, expected, actual)
}

// True records a soft boolean check.
func (c *Collector) True(message string, ok bool) bool {
	return c.record(ok, message, true, ok)
}

// Results returns everything recorded so far, passes included.
func (c *Collector) Results() []Result {
	out := make([]Result, len(c.results))
	copy(out, c.results)
	return out
}

// Verify returns a single aggregated error listing every failed check, or
// nil when all checks passed. It does not reset the collector.
func (c *Collector) Verify() error {
	var failed []Result
	for _, r := range c.results {
		if !r.Passed {
			failed = append(failed, r)
		}
	}
	if len(failed) == 0 {
		return nil
	}
	return &AssertionError{Failures: failed}
}

// Hard assertions fail the current step immediately.

func Equal(message string, expected, actual any) error {
	if expected == actual {
		return nil
	}
	return &AssertionError{Failures: []Result{{Message: message, Expected: expected, Actual: actual}}}
}

func InDelta(message string, expected, actual, delta float64) error {
	if math.Abs(expected-actual) <= delta {
		return nil
	}
	return &AssertionError{Failures: []Result{{Message: message, Expected: expected, Actual: actual}}}
}

func True(message string, ok bool) error {
	if ok {
		return nil
	}
	return &AssertionError{Failures: []Result{{Message: message, Expected: true, Actual: false}}}
}

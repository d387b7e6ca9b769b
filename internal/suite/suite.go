// Package suite defines the executable test cases and the runner that
// drives them against either backend, records results, and writes the run's
// artifacts.
package suite

import (
	"context"
	"log"

	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
	"github.com/dannydang64/snowboard-store-sub000/internal/pages"
	"github.com/dannydang64/snowboard-store-sub000/internal/perf"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

// Feature areas, matching the report's grouping keys.
const (
	FeatureProduct     = "product"
	FeatureCart        = "cart"
	FeatureCheckout    = "checkout"
	FeatureAPI         = "api"
	FeaturePerformance = "performance"
)

// Case is one executable test: identity and classification for the report,
// plus the behavior itself.
type Case struct {
	ID          string
	Name        string
	Description string
	Feature     string
	Priority    string
	Type        string
	Expected    string
	Run         func(ctx context.Context, env *Env) error
}

// Env is the per-worker execution environment. Every worker owns a full
// stack: its own store, its own storefront server, and its own driver, so
// parallel workers never share mutable state.
type Env struct {
	Mode string

	Store  *store.Store
	Driver driver.Driver
	Site   *pages.Site

	// APIBaseURL addresses the storefront's HTTP API. In live mode it is
	// the same server the browser talks to; in mock mode a local server
	// over the worker's store, so API cases exercise real HTTP either way.
	APIBaseURL string

	Perf *perf.Monitor
	Log  *log.Logger
}

// Registry returns the named suites in their canonical order.
func Registry() map[string]func() []Case {
	return map[string]func() []Case{
		FeatureProduct:     ProductCases,
		FeatureCart:        CartCases,
		FeatureCheckout:    CheckoutCases,
		FeatureAPI:         APICases,
		FeaturePerformance: PerformanceCases,
	}
}

// SuiteOrder is the execution order when several suites are selected.
var SuiteOrder = []string{FeatureProduct, FeatureCart, FeatureCheckout, FeatureAPI, FeaturePerformance}

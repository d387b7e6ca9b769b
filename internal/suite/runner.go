package suite

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
	"github.com/dannydang64/snowboard-store-sub000/internal/config"
	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
	"github.com/dannydang64/snowboard-store-sub000/internal/httpapi"
	"github.com/dannydang64/snowboard-store-sub000/internal/pages"
	"github.com/dannydang64/snowboard-store-sub000/internal/perf"
	"github.com/dannydang64/snowboard-store-sub000/internal/report"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

// Runner executes selected suites against fresh environments and records
// the results.
type Runner struct {
	cfg config.Config
	log *log.Logger

	recorder *report.Recorder
	monitor  *perf.Monitor
	now      func() time.Time
}

func NewRunner(cfg config.Config, logger *log.Logger) *Runner {
	return &Runner{
		cfg:      cfg,
		log:      logger,
		recorder: report.NewRecorder(),
		monitor:  perf.NewMonitor(cfg.PerfThresholds()),
		now:      time.Now,
	}
}

func (r *Runner) Monitor() *perf.Monitor { return r.monitor }

// Select resolves suite names into cases, preserving the canonical suite
// order regardless of how the names were given.
func Select(names []string) ([]Case, error) {
	registry := Registry()
	wanted := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := registry[n]; !ok {
			return nil, fmt.Errorf("unknown suite %q", n)
		}
		wanted[n] = true
	}

	var cases []Case
	for _, n := range SuiteOrder {
		if wanted[n] {
			cases = append(cases, registry[n]()...)
		}
	}
	return cases, nil
}

// Run executes the cases and returns the run summary. workers <= 1 runs
// sequentially; otherwise the cases are spread over that many workers, each
// with its own isolated environment.
func (r *Runner) Run(ctx context.Context, cases []Case, workers int) (report.Summary, error) {
	started := r.now()

	if workers <= 1 {
		env, cleanup, err := r.newEnv()
		if err != nil {
			return report.Summary{}, err
		}
		defer cleanup()
		for _, c := range cases {
			r.recorder.Add(r.runCase(ctx, env, c))
		}
	} else {
		if err := r.runParallel(ctx, cases, workers); err != nil {
			return report.Summary{}, err
		}
	}

	return report.Summarize(r.recorder.Results(), r.now(), r.now().Sub(started)), nil
}

func (r *Runner) runParallel(ctx context.Context, cases []Case, workers int) error {
	if workers > len(cases) {
		workers = len(cases)
	}

	work := make(chan Case)
	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			env, cleanup, err := r.newEnv()
			if err != nil {
				errs <- err
				// Drain so the feeder never blocks on a dead worker.
				for range work {
				}
				return
			}
			defer cleanup()
			for c := range work {
				r.recorder.Add(r.runCase(ctx, env, c))
			}
		}()
	}

	for _, c := range cases {
		work <- c
	}
	close(work)
	wg.Wait()
	close(errs)
	return <-errs
}

// newEnv builds one isolated environment: its own store, its own storefront
// server, its own driver.
func (r *Runner) newEnv() (*Env, func(), error) {
	s := store.New(catalog.Default())
	srv, err := httpapi.StartLocal(s, r.log)
	if err != nil {
		return nil, nil, fmt.Errorf("start storefront: %w", err)
	}

	artifacts := filepath.Join(r.cfg.ReportsDir, "screenshots")
	var d driver.Driver
	var baseURL string
	switch r.cfg.Mode {
	case config.ModeLive:
		d, err = driver.NewChrome(driver.ChromeConfig{
			Headed:            r.cfg.Headed,
			NavigationTimeout: r.cfg.Timeouts.Navigation.Std(),
			WaitTimeout:       r.cfg.Timeouts.Wait.Std(),
			PollInterval:      r.cfg.Timeouts.Poll.Std(),
			ArtifactsDir:      artifacts,
			Logger:            r.log,
		})
		if err != nil {
			srv.Close()
			return nil, nil, err
		}
		baseURL = srv.BaseURL
		if r.cfg.BaseURL != "" {
			baseURL = r.cfg.BaseURL
		}
	default:
		sim := driver.NewSim(s, driver.SimConfig{
			ArtifactsDir: artifacts,
			Logger:       r.log,
		})
		d = sim
		baseURL = "http://storefront.sim"
	}

	env := &Env{
		Mode:       r.cfg.Mode,
		Store:      s,
		Driver:     d,
		Site:       pages.NewSite(d, baseURL).WithWaitTimeout(r.cfg.Timeouts.Wait.Std()),
		APIBaseURL: srv.BaseURL,
		Perf:       r.monitor,
		Log:        r.log,
	}
	cleanup := func() {
		if err := d.Close(); err != nil {
			r.log.Printf("close driver: %v", err)
		}
		if err := srv.Close(); err != nil {
			r.log.Printf("close storefront: %v", err)
		}
	}
	return env, cleanup, nil
}

// runCase resets per-test state, executes one case, and turns the outcome
// into a result record. A failing case gets a screenshot when the backend
// can produce one.
func (r *Runner) runCase(ctx context.Context, env *Env, c Case) report.TestResult {
	if err := env.Driver.Reset(ctx); err != nil {
		r.log.Printf("%s: reset driver: %v", c.ID, err)
	}
	env.Store.ResetCarts()

	started := r.now()
	err := c.Run(ctx, env)
	elapsed := r.now().Sub(started)

	res := report.TestResult{
		TestCaseID:    c.ID,
		Name:          c.Name,
		Description:   c.Description,
		FeatureArea:   c.Feature,
		Priority:      c.Priority,
		TestType:      c.Type,
		Expected:      c.Expected,
		ExecutionTime: elapsed,
		Timestamp:     started,
	}
	if err == nil {
		res.Status = report.StatusPass
		res.Actual = "as expected"
		r.log.Printf("PASS %s %s (%s)", c.ID, c.Name, elapsed.Round(time.Millisecond))
		return res
	}

	res.Status = report.StatusFail
	res.Actual = err.Error()
	r.log.Printf("FAIL %s %s: %v", c.ID, c.Name, err)
	if path, shotErr := env.Driver.Screenshot(ctx, report.SanitizeName(c.ID+"_"+c.Name)); shotErr == nil {
		res.Screenshot = path
	} else {
		r.log.Printf("%s: screenshot: %v", c.ID, shotErr)
	}
	return res
}

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dannydang64/snowboard-store-sub000/internal/config"
	"github.com/dannydang64/snowboard-store-sub000/internal/report"
	"github.com/dannydang64/snowboard-store-sub000/internal/suite"
)

func main() {
	var (
		configPath  = flag.String("config", "", "path to a YAML config file")
		product     = flag.Bool("product", false, "run the product suite")
		cart        = flag.Bool("cart", false, "run the cart suite")
		checkout    = flag.Bool("checkout", false, "run the checkout suite")
		api         = flag.Bool("api", false, "run the api suite")
		performance = flag.Bool("performance", false, "run the performance suite")
		parallel    = flag.Int("parallel", 1, "number of parallel workers")
		headed      = flag.Bool("headed", false, "run the browser with a visible window (live mode)")
		reportsDir  = flag.String("reports", "", "directory for report artifacts")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[shoptest] ", log.LstdFlags|log.Lmicroseconds)

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Fatalf("config: %v", err)
	}
	if *headed {
		cfg.Headed = true
	}
	if *reportsDir != "" {
		cfg.ReportsDir = *reportsDir
	}

	// No suite flags means run everything.
	selected := selectedSuites(*product, *cart, *checkout, *api, *performance)
	cases, err := suite.Select(selected)
	if err != nil {
		logger.Fatalf("select suites: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	logger.Printf("running %d cases in %s mode", len(cases), cfg.Mode)
	runner := suite.NewRunner(cfg, logger)
	summary, err := runner.Run(ctx, cases, *parallel)
	if err != nil {
		logger.Fatalf("run: %v", err)
	}

	if err := report.Write(cfg.ReportsDir, summary, runner.Monitor()); err != nil {
		// A broken report never flips the run's verdict.
		logger.Printf("write report: %v", err)
	} else {
		logger.Printf("report written to %s", cfg.ReportsDir)
	}

	logger.Printf("%d/%d passed, %d failed, %d skipped",
		summary.Overall.Passed, summary.Overall.Total,
		summary.Overall.Failed, summary.Overall.Skipped)
	for _, s := range runner.Monitor().Breaches() {
		logger.Printf("perf: %s", s.Describe())
	}

	if summary.Overall.Failed > 0 {
		os.Exit(1)
	}
}

func selectedSuites(product, cart, checkout, api, performance bool) []string {
	var names []string
	if product {
		names = append(names, suite.FeatureProduct)
	}
	if cart {
		names = append(names, suite.FeatureCart)
	}
	if checkout {
		names = append(names, suite.FeatureCheckout)
	}
	if api {
		names = append(names, suite.FeatureAPI)
	}
	if performance {
		names = append(names, suite.FeaturePerformance)
	}
	if len(names) == 0 {
		return suite.SuiteOrder
	}
	return names
}

package suite

import (
	"context"
	"fmt"
	"net/http"

	"github.com/dannydang64/snowboard-store-sub000/internal/perf"
	"github.com/dannydang64/snowboard-store-sub000/internal/report"
)

// PerformanceCases times representative operations. Budget breaches are
// flagged in the report; the cases themselves only fail when the operation
// breaks functionally.
func PerformanceCases() []Case {
	return []Case{
		{
			ID:       "PERF-001",
			Name:     "page load timings",
			Feature:  FeaturePerformance,
			Priority: report.PriorityP2,
			Type:     report.TypePositive,
			Expected: "home, listing and cart load within the page budget",
			Run: func(ctx context.Context, env *Env) error {
				loads := []struct {
					name string
					open func(context.Context) error
				}{
					{"home", env.Site.Home().Open},
					{"products", env.Site.Products().Open},
					{"cart", env.Site.Cart().Open},
				}
				for _, l := range loads {
					if err := env.Perf.Measure(perf.CategoryPageLoad, l.name, func() error {
						return l.open(ctx)
					}); err != nil {
						return fmt.Errorf("load %s: %w", l.name, err)
					}
				}
				return nil
			},
		},
		{
			ID:       "PERF-002",
			Name:     "api response timings",
			Feature:  FeaturePerformance,
			Priority: report.PriorityP2,
			Type:     report.TypePositive,
			Expected: "product and cart endpoints respond within the api budget",
			Run: func(ctx context.Context, env *Env) error {
				calls := []struct {
					name string
					fn   func() error
				}{
					{"list products", func() error {
						_, err := apiCall(ctx, env, http.MethodGet, "/api/products", nil, nil)
						return err
					}},
					{"add to cart", func() error {
						_, err := apiCall(ctx, env, http.MethodPost, "/api/cart",
							map[string]any{"productId": "sb-001", "quantity": 1}, nil)
						return err
					}},
				}
				for _, call := range calls {
					if err := env.Perf.Measure(perf.CategoryAPICall, call.name, call.fn); err != nil {
						return fmt.Errorf("%s: %w", call.name, err)
					}
				}
				return nil
			},
		},
		{
			ID:       "PERF-003",
			Name:     "add-to-cart interaction timing",
			Feature:  FeaturePerformance,
			Priority: report.PriorityP2,
			Type:     report.TypePositive,
			Expected: "add to cart completes within the interaction budget",
			Run: func(ctx context.Context, env *Env) error {
				detail := env.Site.ProductDetail()
				if err := detail.Open(ctx, "bd-001"); err != nil {
					return err
				}
				return env.Perf.Measure(perf.CategoryInteraction, "add to cart", func() error {
					return detail.AddToCart(ctx)
				})
			},
		},
	}
}

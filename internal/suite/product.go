package suite

import (
	"context"
	"fmt"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
	"github.com/dannydang64/snowboard-store-sub000/internal/check"
	"github.com/dannydang64/snowboard-store-sub000/internal/report"
)

// ProductCases covers browsing: the home page, the listing, category
// filters and the product detail view.
func ProductCases() []Case {
	return []Case{
		{
			ID:       "PROD-001",
			Name:     "home page shows hero and featured products",
			Feature:  FeatureProduct,
			Priority: report.PriorityP1,
			Type:     report.TypePositive,
			Expected: "hero title visible and exactly 3 featured products",
			Run: func(ctx context.Context, env *Env) error {
				home := env.Site.Home()
				if err := home.Open(ctx); err != nil {
					return err
				}
				c := check.NewCollector()
				title, err := home.HeroTitle(ctx)
				if err != nil {
					return err
				}
				c.True("hero title is present", title != "")
				n, err := home.FeaturedCount(ctx)
				if err != nil {
					return err
				}
				c.Equal("featured product count", 3, n)
				return c.Verify()
			},
		},
		{
			ID:       "PROD-002",
			Name:     "listing shows the full catalog",
			Feature:  FeatureProduct,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "all 8 catalog products listed",
			Run: func(ctx context.Context, env *Env) error {
				list := env.Site.Products()
				if err := list.Open(ctx); err != nil {
					return err
				}
				n, err := list.ProductCount(ctx)
				if err != nil {
					return err
				}
				return check.Equal("listed product count", env.Store.Catalog().Len(), n)
			},
		},
		{
			ID:       "PROD-003",
			Name:     "category filter narrows the listing",
			Feature:  FeatureProduct,
			Priority: report.PriorityP1,
			Type:     report.TypePositive,
			Expected: "filtering by bindings shows only the 2 bindings",
			Run: func(ctx context.Context, env *Env) error {
				list := env.Site.Products()
				if err := list.Open(ctx); err != nil {
					return err
				}
				if err := list.FilterByCategory(ctx, catalog.CategoryBindings); err != nil {
					return err
				}
				n, err := list.ProductCount(ctx)
				if err != nil {
					return err
				}
				return check.Equal("bindings count", 2, n)
			},
		},
		{
			ID:       "PROD-004",
			Name:     "product detail shows name, price and features",
			Feature:  FeatureProduct,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "detail page matches the catalog record",
			Run: func(ctx context.Context, env *Env) error {
				p, err := env.Store.Product("sb-001")
				if err != nil {
					return err
				}
				detail := env.Site.ProductDetail()
				if err := detail.Open(ctx, p.ID); err != nil {
					return err
				}

				c := check.NewCollector()
				name, err := detail.Name(ctx)
				if err != nil {
					return err
				}
				c.Equal("product name", p.Name, name)
				price, err := detail.Price(ctx)
				if err != nil {
					return err
				}
				c.InDelta("product price", p.Price, price, 0.001)
				nf, err := detail.FeatureCount(ctx)
				if err != nil {
					return err
				}
				c.Equal("feature count", len(p.Features), nf)
				status, err := detail.StockStatus(ctx)
				if err != nil {
					return err
				}
				c.Equal("stock status", "In Stock", status)
				return c.Verify()
			},
		},
		{
			ID:       "PROD-005",
			Name:     "out of stock product is marked and not addable",
			Feature:  FeatureProduct,
			Priority: report.PriorityP1,
			Type:     report.TypeNegative,
			Expected: "out-of-stock notice shown, add control inert",
			Run: func(ctx context.Context, env *Env) error {
				detail := env.Site.ProductDetail()
				if err := detail.Open(ctx, "sb-003"); err != nil {
					return err
				}
				c := check.NewCollector()
				status, err := detail.StockStatus(ctx)
				if err != nil {
					return err
				}
				c.Equal("stock status", "Out of Stock", status)
				c.True("out-of-stock notice visible", detail.OutOfStockNoticeShown(ctx))
				if err := detail.TryAddToCart(ctx); err != nil {
					return err
				}
				c.True("no add confirmation", !detail.AddedConfirmationShown(ctx))
				return c.Verify()
			},
		},
		{
			ID:       "PROD-006",
			Name:     "unknown product id yields no detail",
			Feature:  FeatureProduct,
			Priority: report.PriorityP2,
			Type:     report.TypeNegative,
			Expected: "no product content rendered for a bogus id",
			Run: func(ctx context.Context, env *Env) error {
				detail := env.Site.ProductDetail()
				if err := detail.Open(ctx, "sb-404"); err != nil {
					return err
				}
				if _, err := detail.Name(ctx); err == nil {
					return fmt.Errorf("detail content rendered for unknown product")
				}
				return nil
			},
		},
	}
}

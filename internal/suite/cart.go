package suite

import (
	"context"

	"github.com/dannydang64/snowboard-store-sub000/internal/check"
	"github.com/dannydang64/snowboard-store-sub000/internal/report"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

// addProduct opens a product's detail page and puts qty of it in the cart.
func addProduct(ctx context.Context, env *Env, productID string, qty int) error {
	detail := env.Site.ProductDetail()
	if err := detail.Open(ctx, productID); err != nil {
		return err
	}
	if qty > 1 {
		if err := detail.SetQuantity(ctx, qty); err != nil {
			return err
		}
	}
	return detail.AddToCart(ctx)
}

// CartCases covers adding, updating, removing and the cart's arithmetic.
func CartCases() []Case {
	return []Case{
		{
			ID:       "CART-001",
			Name:     "add to cart updates the badge",
			Feature:  FeatureCart,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "cart badge counts 2 after adding quantity 2",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "sb-001", 2); err != nil {
					return err
				}
				n, err := env.Site.ProductDetail().CartCount(ctx)
				if err != nil {
					return err
				}
				return check.Equal("cart badge", 2, n)
			},
		},
		{
			ID:       "CART-002",
			Name:     "adding the same product twice merges lines",
			Feature:  FeatureCart,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "one cart line with quantity 2",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "bd-001", 1); err != nil {
					return err
				}
				if err := addProduct(ctx, env, "bd-001", 1); err != nil {
					return err
				}
				cart := env.Site.Cart()
				if err := cart.Open(ctx); err != nil {
					return err
				}
				c := check.NewCollector()
				n, err := cart.ItemCount(ctx)
				if err != nil {
					return err
				}
				c.Equal("cart line count", 1, n)
				qty, err := cart.Quantity(ctx, "bd-001")
				if err != nil {
					return err
				}
				c.Equal("merged quantity", 2, qty)
				return c.Verify()
			},
		},
		{
			ID:       "CART-003",
			Name:     "cart totals follow the pricing rules",
			Feature:  FeatureCart,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "tax is 8% of subtotal, flat shipping, parts sum to total",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "sb-001", 1); err != nil {
					return err
				}
				if err := addProduct(ctx, env, "bd-001", 1); err != nil {
					return err
				}
				cart := env.Site.Cart()
				if err := cart.Open(ctx); err != nil {
					return err
				}

				subtotal, err := cart.Subtotal(ctx)
				if err != nil {
					return err
				}
				tax, err := cart.Tax(ctx)
				if err != nil {
					return err
				}
				shipping, err := cart.Shipping(ctx)
				if err != nil {
					return err
				}
				total, err := cart.Total(ctx)
				if err != nil {
					return err
				}

				c := check.NewCollector()
				c.InDelta("subtotal", 749.98, subtotal, 0.001)
				c.InDelta("tax at 8%", subtotal*store.TaxRate, tax, 0.01)
				c.InDelta("flat shipping", store.ShippingFlat, shipping, 0.001)
				c.InDelta("total adds up", subtotal+tax+shipping, total, 0.01)
				return c.Verify()
			},
		},
		{
			ID:       "CART-004",
			Name:     "quantity update reprices the cart",
			Feature:  FeatureCart,
			Priority: report.PriorityP1,
			Type:     report.TypePositive,
			Expected: "subtotal tracks the new quantity",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "sb-001", 1); err != nil {
					return err
				}
				cart := env.Site.Cart()
				if err := cart.Open(ctx); err != nil {
					return err
				}
				if err := cart.UpdateQuantity(ctx, "sb-001", 3); err != nil {
					return err
				}
				subtotal, err := cart.Subtotal(ctx)
				if err != nil {
					return err
				}
				return check.InDelta("subtotal for quantity 3", 1499.97, subtotal, 0.001)
			},
		},
		{
			ID:       "CART-005",
			Name:     "zero quantity removes the line",
			Feature:  FeatureCart,
			Priority: report.PriorityP1,
			Type:     report.TypePositive,
			Expected: "updating to quantity 0 empties the cart",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "bt-001", 1); err != nil {
					return err
				}
				cart := env.Site.Cart()
				if err := cart.Open(ctx); err != nil {
					return err
				}
				if err := cart.UpdateQuantity(ctx, "bt-001", 0); err != nil {
					return err
				}
				return check.True("cart shows its empty state", cart.IsEmpty(ctx))
			},
		},
		{
			ID:       "CART-006",
			Name:     "remove control deletes the line",
			Feature:  FeatureCart,
			Priority: report.PriorityP1,
			Type:     report.TypePositive,
			Expected: "removed item no longer listed",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "ac-001", 1); err != nil {
					return err
				}
				if err := addProduct(ctx, env, "ac-002", 1); err != nil {
					return err
				}
				cart := env.Site.Cart()
				if err := cart.Open(ctx); err != nil {
					return err
				}
				if err := cart.RemoveItem(ctx, "ac-001"); err != nil {
					return err
				}
				n, err := cart.ItemCount(ctx)
				if err != nil {
					return err
				}
				return check.Equal("remaining cart lines", 1, n)
			},
		},
		{
			ID:       "CART-007",
			Name:     "empty cart shows its empty state",
			Feature:  FeatureCart,
			Priority: report.PriorityP2,
			Type:     report.TypeNegative,
			Expected: "fresh session sees the empty-cart message",
			Run: func(ctx context.Context, env *Env) error {
				cart := env.Site.Cart()
				if err := cart.Open(ctx); err != nil {
					return err
				}
				return check.True("empty-cart message visible", cart.IsEmpty(ctx))
			},
		},
	}
}

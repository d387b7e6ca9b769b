package suite

import (
	"context"
	"strings"

	"github.com/dannydang64/snowboard-store-sub000/internal/check"
	"github.com/dannydang64/snowboard-store-sub000/internal/pages"
	"github.com/dannydang64/snowboard-store-sub000/internal/report"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

var checkoutInfo = pages.CheckoutInfo{
	Name:       "Jamie Rider",
	Email:      "jamie@example.com",
	Phone:      "555-0100",
	Line1:      "1 Powder Ln",
	City:       "Truckee",
	State:      "CA",
	Zip:        "96161",
	Country:    "US",
	CardNumber: "4111 1111 1111 4242",
	Expiry:     "12/28",
	CVV:        "123",
}

// CheckoutCases covers the three-step checkout state machine and order
// placement.
func CheckoutCases() []Case {
	return []Case{
		{
			ID:       "CHK-001",
			Name:     "empty cart cannot enter checkout",
			Feature:  FeatureCheckout,
			Priority: report.PriorityP0,
			Type:     report.TypeNegative,
			Expected: "checkout with an empty cart redirects to the cart page",
			Run: func(ctx context.Context, env *Env) error {
				if err := env.Site.Checkout().Open(ctx); err != nil {
					return err
				}
				return check.True("redirected to /cart",
					strings.HasSuffix(env.Driver.CurrentURL(), "/cart"))
			},
		},
		{
			ID:       "CHK-002",
			Name:     "unvisited steps are clamped",
			Feature:  FeatureCheckout,
			Priority: report.PriorityP1,
			Type:     report.TypeNegative,
			Expected: "requesting the payment step first lands on information",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "sb-001", 1); err != nil {
					return err
				}
				co := env.Site.Checkout()
				if err := co.OpenStep(ctx, "payment"); err != nil {
					return err
				}
				step, err := co.Step(ctx)
				if err != nil {
					return err
				}
				return check.Equal("clamped step", "information", step)
			},
		},
		{
			ID:       "CHK-003",
			Name:     "back preserves entered values",
			Feature:  FeatureCheckout,
			Priority: report.PriorityP1,
			Type:     report.TypePositive,
			Expected: "returning to a step shows what was typed there",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "sb-001", 1); err != nil {
					return err
				}
				co := env.Site.Checkout()
				if err := co.Open(ctx); err != nil {
					return err
				}
				if err := co.FillInformation(ctx, checkoutInfo); err != nil {
					return err
				}
				if err := co.Continue(ctx); err != nil {
					return err
				}
				if err := co.Back(ctx); err != nil {
					return err
				}

				c := check.NewCollector()
				name, err := co.FieldValue(ctx, "name")
				if err != nil {
					return err
				}
				c.Equal("name preserved", checkoutInfo.Name, name)
				email, err := co.FieldValue(ctx, "email")
				if err != nil {
					return err
				}
				c.Equal("email preserved", checkoutInfo.Email, email)
				return c.Verify()
			},
		},
		{
			ID:       "CHK-004",
			Name:     "full checkout places an order",
			Feature:  FeatureCheckout,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "confirmation page with an ORD- id, processing status, cart cleared",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "sb-001", 1); err != nil {
					return err
				}
				co := env.Site.Checkout()
				if err := co.Open(ctx); err != nil {
					return err
				}
				conf, err := co.Complete(ctx, checkoutInfo)
				if err != nil {
					return err
				}

				c := check.NewCollector()
				orderID, err := conf.OrderID(ctx)
				if err != nil {
					return err
				}
				c.True("order id format", strings.HasPrefix(orderID, "ORD-"))
				status, err := conf.Status(ctx)
				if err != nil {
					return err
				}
				c.Equal("initial order status", string(store.StatusProcessing), status)
				n, err := conf.CartCount(ctx)
				if err != nil {
					return err
				}
				c.Equal("cart cleared after checkout", 0, n)
				return c.Verify()
			},
		},
		{
			ID:       "CHK-005",
			Name:     "checkout total matches the cart total",
			Feature:  FeatureCheckout,
			Priority: report.PriorityP1,
			Type:     report.TypePositive,
			Expected: "order summary shows the cart's grand total",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "sb-002", 1); err != nil {
					return err
				}
				cart := env.Site.Cart()
				if err := cart.Open(ctx); err != nil {
					return err
				}
				cartTotal, err := cart.Total(ctx)
				if err != nil {
					return err
				}
				co, err := cart.BeginCheckout(ctx)
				if err != nil {
					return err
				}
				coTotal, err := co.Total(ctx)
				if err != nil {
					return err
				}
				return check.InDelta("checkout total", cartTotal, coTotal, 0.01)
			},
		},
		{
			ID:       "CHK-006",
			Name:     "confirmation shows only the card's last digits",
			Feature:  FeatureCheckout,
			Priority: report.PriorityP2,
			Type:     report.TypeNegative,
			Expected: "full card number absent from the order record",
			Run: func(ctx context.Context, env *Env) error {
				if err := addProduct(ctx, env, "sb-001", 1); err != nil {
					return err
				}
				co := env.Site.Checkout()
				if err := co.Open(ctx); err != nil {
					return err
				}
				conf, err := co.Complete(ctx, checkoutInfo)
				if err != nil {
					return err
				}
				orderID, err := conf.OrderID(ctx)
				if err != nil {
					return err
				}
				o, err := env.Store.GetOrder(orderID)
				if err != nil {
					return err
				}
				c := check.NewCollector()
				c.Equal("only last four stored", "4242", o.Payment.Last4)
				c.True("pan not retained", !strings.Contains(o.Payment.Last4, "4111"))
				return c.Verify()
			},
		},
	}
}

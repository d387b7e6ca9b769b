package pages

import (
	"context"
	"fmt"

	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
)

// CheckoutInfo carries everything the three checkout steps ask for.
type CheckoutInfo struct {
	Name  string
	Email string
	Phone string

	Line1   string
	City    string
	State   string
	Zip     string
	Country string

	CardNumber string
	Expiry     string
	CVV        string
}

type CheckoutPage struct {
	page
}

func (p *CheckoutPage) Open(ctx context.Context) error {
	return p.site.d.Navigate(ctx, p.url("/checkout"))
}

// OpenStep requests a specific step directly. The storefront clamps the
// request to the furthest step already reached.
func (p *CheckoutPage) OpenStep(ctx context.Context, step string) error {
	return p.site.d.Navigate(ctx, p.url("/checkout?step="+step))
}

func (p *CheckoutPage) Step(ctx context.Context) (string, error) {
	return p.text(ctx, driver.ByTestID("checkout-step"))
}

func (p *CheckoutPage) Total(ctx context.Context) (float64, error) {
	return p.money(ctx, driver.ByTestID("checkout-total"))
}

func (p *CheckoutPage) FieldValue(ctx context.Context, name string) (string, error) {
	el, err := p.site.d.Find(ctx, driver.ByName(name))
	if err != nil {
		return "", err
	}
	return el.Attr(ctx, "value")
}

func (p *CheckoutPage) fill(ctx context.Context, fields map[string]string) error {
	for name, v := range fields {
		if v == "" {
			continue
		}
		if err := p.site.d.Type(ctx, driver.ByName(name), v); err != nil {
			return fmt.Errorf("fill %s: %w", name, err)
		}
	}
	return nil
}

func (p *CheckoutPage) FillInformation(ctx context.Context, info CheckoutInfo) error {
	return p.fill(ctx, map[string]string{
		"name":  info.Name,
		"email": info.Email,
		"phone": info.Phone,
	})
}

func (p *CheckoutPage) FillShipping(ctx context.Context, info CheckoutInfo) error {
	return p.fill(ctx, map[string]string{
		"line1":   info.Line1,
		"city":    info.City,
		"state":   info.State,
		"zip":     info.Zip,
		"country": info.Country,
	})
}

func (p *CheckoutPage) FillPayment(ctx context.Context, info CheckoutInfo) error {
	return p.fill(ctx, map[string]string{
		"cardNumber": info.CardNumber,
		"expiry":     info.Expiry,
		"cvv":        info.CVV,
	})
}

func (p *CheckoutPage) Continue(ctx context.Context) error {
	return p.site.d.Click(ctx, driver.ByTestID("continue-button"))
}

func (p *CheckoutPage) Back(ctx context.Context) error {
	return p.site.d.Click(ctx, driver.ByTestID("back-button"))
}

// PlaceOrder submits the payment step and waits for the confirmation page.
func (p *CheckoutPage) PlaceOrder(ctx context.Context) (*ConfirmationPage, error) {
	if err := p.site.d.Click(ctx, driver.ByTestID("place-order")); err != nil {
		return nil, err
	}
	conf := p.site.Confirmation()
	if err := conf.WaitVisible(ctx); err != nil {
		return nil, err
	}
	return conf, nil
}

// Complete walks the whole checkout from the information step through to the
// confirmation page.
func (p *CheckoutPage) Complete(ctx context.Context, info CheckoutInfo) (*ConfirmationPage, error) {
	if err := p.FillInformation(ctx, info); err != nil {
		return nil, err
	}
	if err := p.Continue(ctx); err != nil {
		return nil, err
	}
	if err := p.FillShipping(ctx, info); err != nil {
		return nil, err
	}
	if err := p.Continue(ctx); err != nil {
		return nil, err
	}
	if err := p.FillPayment(ctx, info); err != nil {
		return nil, err
	}
	return p.PlaceOrder(ctx)
}

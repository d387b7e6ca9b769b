package pages

import (
	"context"
	"strconv"

	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
)

type CartPage struct {
	page
}

func (p *CartPage) Open(ctx context.Context) error {
	return p.site.d.Navigate(ctx, p.url("/cart"))
}

func (p *CartPage) IsEmpty(ctx context.Context) bool {
	return p.visible(ctx, driver.ByTestID("cart-empty"))
}

func (p *CartPage) ItemCount(ctx context.Context) (int, error) {
	if p.IsEmpty(ctx) {
		return 0, nil
	}
	return p.count(ctx, driver.ByTestID("cart-item"))
}

func (p *CartPage) Quantity(ctx context.Context, productID string) (int, error) {
	el, err := p.site.d.Find(ctx, driver.ByTestID("qty-"+productID))
	if err != nil {
		return 0, err
	}
	v, err := el.Attr(ctx, "value")
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(v)
}

// UpdateQuantity types a new quantity into the line's input and applies it.
// Zero removes the line.
func (p *CartPage) UpdateQuantity(ctx context.Context, productID string, qty int) error {
	if err := p.site.d.Type(ctx, driver.ByTestID("qty-"+productID), strconv.Itoa(qty)); err != nil {
		return err
	}
	return p.site.d.Click(ctx, driver.ByTestID("update-"+productID))
}

func (p *CartPage) RemoveItem(ctx context.Context, productID string) error {
	return p.site.d.Click(ctx, driver.ByTestID("remove-"+productID))
}

func (p *CartPage) Subtotal(ctx context.Context) (float64, error) {
	return p.money(ctx, driver.ByTestID("cart-subtotal"))
}

func (p *CartPage) Tax(ctx context.Context) (float64, error) {
	return p.money(ctx, driver.ByTestID("cart-tax"))
}

func (p *CartPage) Shipping(ctx context.Context) (float64, error) {
	return p.money(ctx, driver.ByTestID("cart-shipping"))
}

func (p *CartPage) Total(ctx context.Context) (float64, error) {
	return p.money(ctx, driver.ByTestID("cart-total"))
}

func (p *CartPage) BeginCheckout(ctx context.Context) (*CheckoutPage, error) {
	if err := p.site.d.Click(ctx, driver.ByTestID("checkout-link")); err != nil {
		return nil, err
	}
	return p.site.Checkout(), nil
}

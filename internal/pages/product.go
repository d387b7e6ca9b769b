package pages

import (
	"context"
	"strconv"

	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
)

type ProductPage struct {
	page
}

func (p *ProductPage) Open(ctx context.Context, productID string) error {
	return p.site.d.Navigate(ctx, p.url("/products/"+productID))
}

func (p *ProductPage) Name(ctx context.Context) (string, error) {
	return p.text(ctx, driver.ByTestID("product-name"))
}

func (p *ProductPage) Price(ctx context.Context) (float64, error) {
	return p.money(ctx, driver.ByTestID("product-price"))
}

func (p *ProductPage) StockStatus(ctx context.Context) (string, error) {
	return p.text(ctx, driver.ByTestID("stock-status"))
}

func (p *ProductPage) FeatureCount(ctx context.Context) (int, error) {
	return p.count(ctx, driver.ByTestID("product-feature"))
}

func (p *ProductPage) OutOfStockNoticeShown(ctx context.Context) bool {
	return p.visible(ctx, driver.ByTestID("out-of-stock-notice"))
}

func (p *ProductPage) SetQuantity(ctx context.Context, qty int) error {
	return p.site.d.Type(ctx, driver.ByTestID("quantity-input"), strconv.Itoa(qty))
}

// AddToCart clicks the add button and waits for the confirmation banner. On
// an out-of-stock product the click is inert and the wait reports the
// timeout.
func (p *ProductPage) AddToCart(ctx context.Context) error {
	if err := p.site.d.Click(ctx, driver.ByTestID("add-to-cart")); err != nil {
		return err
	}
	return p.site.d.WaitFor(ctx, driver.ByTestID("add-confirmation"), p.site.wait)
}

// TryAddToCart clicks the add button without expecting a confirmation, for
// negative paths where the add must not succeed.
func (p *ProductPage) TryAddToCart(ctx context.Context) error {
	return p.site.d.Click(ctx, driver.ByTestID("add-to-cart"))
}

func (p *ProductPage) AddedConfirmationShown(ctx context.Context) bool {
	return p.visible(ctx, driver.ByTestID("add-confirmation"))
}

func (p *ProductPage) OpenCart(ctx context.Context) (*CartPage, error) {
	if err := p.site.d.Click(ctx, driver.ByRole("link", "Cart")); err != nil {
		return nil, err
	}
	return p.site.Cart(), nil
}

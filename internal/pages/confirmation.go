package pages

import (
	"context"

	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
)

type ConfirmationPage struct {
	page
}

func (p *ConfirmationPage) WaitVisible(ctx context.Context) error {
	return p.site.d.WaitFor(ctx, driver.ByTestID("order-confirmation"), p.site.wait)
}

func (p *ConfirmationPage) Message(ctx context.Context) (string, error) {
	return p.text(ctx, driver.ByTestID("order-confirmation"))
}

func (p *ConfirmationPage) OrderID(ctx context.Context) (string, error) {
	return p.text(ctx, driver.ByTestID("order-id"))
}

func (p *ConfirmationPage) Status(ctx context.Context) (string, error) {
	return p.text(ctx, driver.ByTestID("order-status"))
}

func (p *ConfirmationPage) Total(ctx context.Context) (float64, error) {
	return p.money(ctx, driver.ByTestID("order-total"))
}

func (p *ConfirmationPage) ItemCount(ctx context.Context) (int, error) {
	return p.count(ctx, driver.ByTestID("order-item"))
}

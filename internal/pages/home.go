package pages

import (
	"context"

	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
)

type HomePage struct {
	page
}

func (p *HomePage) Open(ctx context.Context) error {
	return p.site.d.Navigate(ctx, p.url("/"))
}

func (p *HomePage) HeroTitle(ctx context.Context) (string, error) {
	return p.text(ctx, driver.ByTestID("hero-title"))
}

func (p *HomePage) FeaturedCount(ctx context.Context) (int, error) {
	return p.count(ctx, driver.ByTestID("featured-product"))
}

// OpenShop follows the main navigation link to the product listing.
func (p *HomePage) OpenShop(ctx context.Context) (*ProductsPage, error) {
	if err := p.site.d.Click(ctx, driver.ByTestID("shop-link")); err != nil {
		return nil, err
	}
	return p.site.Products(), nil
}

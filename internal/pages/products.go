package pages

import (
	"context"
	"net/url"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
)

type ProductsPage struct {
	page
}

func (p *ProductsPage) Open(ctx context.Context) error {
	return p.site.d.Navigate(ctx, p.url("/products"))
}

// OpenCategory loads the listing already filtered, the way a bookmarked
// category URL would.
func (p *ProductsPage) OpenCategory(ctx context.Context, c catalog.Category) error {
	q := url.Values{"category": {string(c)}}
	return p.site.d.Navigate(ctx, p.url("/products?"+q.Encode()))
}

// FilterByCategory clicks the category filter on the listing itself.
func (p *ProductsPage) FilterByCategory(ctx context.Context, c catalog.Category) error {
	return p.site.d.Click(ctx, driver.ByTestID("filter-"+string(c)))
}

func (p *ProductsPage) ProductCount(ctx context.Context) (int, error) {
	return p.count(ctx, driver.ByTestID("product-card"))
}

func (p *ProductsPage) ProductNames(ctx context.Context) ([]string, error) {
	els, err := p.site.d.FindAll(ctx, driver.ByTestID("product-card"))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(els))
	for _, el := range els {
		s, err := el.Text(ctx)
		if err != nil {
			return nil, err
		}
		names = append(names, s)
	}
	return names, nil
}

// OpenProduct clicks through to the detail page of the product with the
// given name.
func (p *ProductsPage) OpenProduct(ctx context.Context, name string) (*ProductPage, error) {
	if err := p.site.d.Click(ctx, driver.ByRole("link", name)); err != nil {
		return nil, err
	}
	return p.site.ProductDetail(), nil
}

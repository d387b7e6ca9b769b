// Package pages holds the page objects for the storefront. Each page type
// wraps a driver.Driver and exposes the page's behavior as semantic
// operations, so test specifications read in domain terms and never touch
// selectors directly. The same page objects run against the live browser
// backend and the simulated backend.
package pages

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dannydang64/snowboard-store-sub000/internal/driver"
)

// DefaultWaitTimeout bounds how long page operations wait for an element to
// appear before failing.
const DefaultWaitTimeout = 5 * time.Second

// Site is the entry point to the page objects: one per storefront instance
// under test.
type Site struct {
	d       driver.Driver
	baseURL string
	wait    time.Duration
}

func NewSite(d driver.Driver, baseURL string) *Site {
	return &Site{
		d:       d,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		wait:    DefaultWaitTimeout,
	}
}

// WithWaitTimeout overrides the element wait used by every page object
// created from this site.
func (s *Site) WithWaitTimeout(d time.Duration) *Site {
	s.wait = d
	return s
}

func (s *Site) Driver() driver.Driver { return s.d }

func (s *Site) Home() *HomePage                 { return &HomePage{page{s}} }
func (s *Site) Products() *ProductsPage         { return &ProductsPage{page{s}} }
func (s *Site) ProductDetail() *ProductPage     { return &ProductPage{page{s}} }
func (s *Site) Cart() *CartPage                 { return &CartPage{page{s}} }
func (s *Site) Checkout() *CheckoutPage         { return &CheckoutPage{page{s}} }
func (s *Site) Confirmation() *ConfirmationPage { return &ConfirmationPage{page{s}} }

// page carries the pieces every page object shares.
type page struct {
	site *Site
}

func (p page) url(path string) string { return p.site.baseURL + path }

func (p page) text(ctx context.Context, l driver.Locator) (string, error) {
	el, err := p.site.d.Find(ctx, l)
	if err != nil {
		return "", err
	}
	return el.Text(ctx)
}

func (p page) count(ctx context.Context, l driver.Locator) (int, error) {
	els, err := p.site.d.FindAll(ctx, l)
	if err != nil {
		return 0, err
	}
	return len(els), nil
}

func (p page) visible(ctx context.Context, l driver.Locator) bool {
	_, err := p.site.d.Find(ctx, l)
	return err == nil
}

// money reads the element's text and parses it as a dollar amount.
func (p page) money(ctx context.Context, l driver.Locator) (float64, error) {
	s, err := p.text(ctx, l)
	if err != nil {
		return 0, err
	}
	return ParseMoney(s)
}

// CartCount reads the cart badge in the shared navigation, present on every
// page.
func (p page) CartCount(ctx context.Context) (int, error) {
	s, err := p.text(ctx, driver.ByTestID("cart-count"))
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("cart count %q: %w", s, err)
	}
	return n, nil
}

// ParseMoney converts a rendered "$1,234.56" style amount to a float. The
// storefront never emits thousands separators but tolerating them keeps the
// parser robust against template tweaks.
func ParseMoney(s string) (float64, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.TrimPrefix(cleaned, "$")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse money %q: %w", s, err)
	}
	return v, nil
}

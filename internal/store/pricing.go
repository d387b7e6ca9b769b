package store

import "fmt"

const (
	// TaxRate matches the storefront's fixed 8% rate.
	TaxRate = 0.08
	// ShippingFlat is charged on any non-empty cart.
	ShippingFlat = 15.00
)

type Pricing struct {
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// ComputePricing derives the full breakdown from the current items. Callers
// must never cache the result across mutations.
func ComputePricing(items []CartItem) Pricing {
	var p Pricing
	for _, it := range items {
		p.Subtotal += it.Price * float64(it.Quantity)
	}
	p.Tax = p.Subtotal * TaxRate
	if p.Subtotal > 0 {
		p.Shipping = ShippingFlat
	}
	p.Total = p.Subtotal + p.Tax + p.Shipping
	return p
}

// FormatMoney renders a price the way the storefront displays it.
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}

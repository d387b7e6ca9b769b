package store

import (
	"time"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
)

// CartItem is one line in a cart. Name, price and image are snapshotted from
// the product at add-time so later catalog changes cannot shift a cart's
// totals mid-run.
type CartItem struct {
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
}

// Cart holds an ordered list of items, at most one line per productId.
type Cart struct {
	ID        string     `json:"cartId"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (c Cart) Item(productID string) (CartItem, bool) {
	for _, it := range c.Items {
		if it.ProductID == productID {
			return it, true
		}
	}
	return CartItem{}, false
}

func (c Cart) Pricing() Pricing { return ComputePricing(c.Items) }

type Customer struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type Address struct {
	Line1   string `json:"line1"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
}

func (a Address) Empty() bool { return a == (Address{}) }

// Payment keeps only a method descriptor. Full card data is never stored.
type Payment struct {
	Type  string `json:"type"`
	Last4 string `json:"last4"`
}

type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID        string      `json:"orderId"`
	Items     []CartItem  `json:"items"`
	Customer  Customer    `json:"customer"`
	Shipping  Address     `json:"shippingAddress"`
	Billing   Address     `json:"billingAddress"`
	Payment   Payment     `json:"payment"`
	Status    OrderStatus `json:"status"`
	Pricing   Pricing     `json:"pricing"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// OrderInput is everything checkout collects before an order exists.
// Billing may be left empty, in which case it defaults to the shipping
// address.
type OrderInput struct {
	CartID   string   `json:"cartId"`
	Customer Customer `json:"customer"`
	Shipping Address  `json:"shippingAddress"`
	Billing  Address  `json:"billingAddress"`
	Payment  Payment  `json:"payment"`
}

// ProductFilter narrows GetProducts. Zero value means the full catalog.
type ProductFilter struct {
	Category catalog.Category
	ID       string
}

package store

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
)

func newTestStore() *Store {
	return New(catalog.Default())
}

func validOrderInput(cartID string) OrderInput {
	return OrderInput{
		CartID:   cartID,
		Customer: Customer{Name: "Jamie Rider", Email: "jamie@example.com", Phone: "555-0100"},
		Shipping: Address{Line1: "1 Powder Ln", City: "Truckee", State: "CA", Zip: "96161", Country: "US"},
		Payment:  Payment{Type: "card", Last4: "4242"},
	}
}

func TestGetProducts(t *testing.T) {
	s := newTestStore()

	tests := map[string]struct {
		filter    ProductFilter
		wantCount int
		wantErr   error
	}{
		"full catalog":      {filter: ProductFilter{}, wantCount: 8},
		"category filter":   {filter: ProductFilter{Category: catalog.CategorySnowboards}, wantCount: 3},
		"single by id":      {filter: ProductFilter{ID: "sb-001"}, wantCount: 1},
		"id wins over cat":  {filter: ProductFilter{ID: "bd-001", Category: catalog.CategorySnowboards}, wantCount: 1},
		"unknown id misses": {filter: ProductFilter{ID: "nope"}, wantErr: ErrNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := s.GetProducts(tc.filter)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("want %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != tc.wantCount {
				t.Fatalf("want %d products, got %d", tc.wantCount, len(got))
			}
		})
	}
}

func TestAddToCart(t *testing.T) {
	t.Run("creates cart on empty id", func(t *testing.T) {
		s := newTestStore()
		c, err := s.AddToCart("", "sb-001", 1)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if c.ID == "" {
			t.Fatal("expected generated cart id")
		}
		if len(c.Items) != 1 || c.Items[0].ProductID != "sb-001" {
			t.Fatalf("unexpected items: %+v", c.Items)
		}
		if c.Items[0].Name != "Alpine Freestyle Snowboard" || c.Items[0].Price != 499.99 {
			t.Fatalf("snapshot fields not denormalized: %+v", c.Items[0])
		}
	})

	t.Run("same product increments one line", func(t *testing.T) {
		s := newTestStore()
		c, _ := s.AddToCart("", "sb-001", 2)
		c, err := s.AddToCart(c.ID, "sb-001", 3)
		if err != nil {
			t.Fatalf("add: %v", err)
		}
		if len(c.Items) != 1 {
			t.Fatalf("want one line, got %d", len(c.Items))
		}
		if c.Items[0].Quantity != 5 {
			t.Fatalf("want quantity 5, got %d", c.Items[0].Quantity)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.AddToCart("", "ghost", 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("unknown cart", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.AddToCart("missing-cart", "sb-001", 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.AddToCart("", "sb-001", 0); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
	})

	t.Run("out of stock leaves cart unchanged", func(t *testing.T) {
		s := newTestStore()
		c, _ := s.AddToCart("", "sb-001", 1)
		if _, err := s.AddToCart(c.ID, "sb-003", 1); !errors.Is(err, ErrOutOfStock) {
			t.Fatalf("want ErrOutOfStock, got %v", err)
		}
		c, _ = s.GetCart(c.ID)
		if len(c.Items) != 1 {
			t.Fatalf("cart mutated by out-of-stock add: %+v", c.Items)
		}
	})
}

func TestUpdateCartItem(t *testing.T) {
	tests := map[string]struct {
		quantity  int
		wantItems int
		wantQty   int
	}{
		"positive updates line": {quantity: 4, wantItems: 1, wantQty: 4},
		"zero removes line":     {quantity: 0, wantItems: 0},
		"negative removes line": {quantity: -2, wantItems: 0},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			s := newTestStore()
			c, _ := s.AddToCart("", "sb-001", 2)
			c, err := s.UpdateCartItem(c.ID, "sb-001", tc.quantity)
			if err != nil {
				t.Fatalf("update: %v", err)
			}
			if len(c.Items) != tc.wantItems {
				t.Fatalf("want %d items, got %d", tc.wantItems, len(c.Items))
			}
			if tc.wantItems > 0 && c.Items[0].Quantity != tc.wantQty {
				t.Fatalf("want quantity %d, got %d", tc.wantQty, c.Items[0].Quantity)
			}
		})
	}

	t.Run("missing line", func(t *testing.T) {
		s := newTestStore()
		c, _ := s.AddToCart("", "sb-001", 1)
		if _, err := s.UpdateCartItem(c.ID, "bd-001", 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})

	t.Run("missing cart", func(t *testing.T) {
		s := newTestStore()
		if _, err := s.UpdateCartItem("nope", "sb-001", 1); !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestPricingRecomputedAfterEveryMutation(t *testing.T) {
	s := newTestStore()
	c, _ := s.AddToCart("", "sb-001", 1) // 499.99
	c, _ = s.AddToCart(c.ID, "bd-001", 1) // 249.99

	p := c.Pricing()
	if math.Abs(p.Subtotal-749.98) > 0.001 {
		t.Fatalf("subtotal: want 749.98, got %v", p.Subtotal)
	}
	if math.Abs(p.Tax-59.9984) > 0.001 {
		t.Fatalf("tax: want 59.998, got %v", p.Tax)
	}
	if p.Shipping != ShippingFlat {
		t.Fatalf("shipping: want %v, got %v", ShippingFlat, p.Shipping)
	}
	if math.Abs(p.Total-824.978) > 0.01 {
		t.Fatalf("total: want 824.978, got %v", p.Total)
	}

	c, _ = s.UpdateCartItem(c.ID, "bd-001", 0)
	p = c.Pricing()
	if math.Abs(p.Subtotal-499.99) > 0.001 {
		t.Fatalf("subtotal after removal: want 499.99, got %v", p.Subtotal)
	}

	c, _ = s.RemoveFromCart(c.ID, "sb-001")
	p = c.Pricing()
	if p.Subtotal != 0 || p.Shipping != 0 || p.Total != 0 {
		t.Fatalf("empty cart pricing not zero: %+v", p)
	}
}

func TestCreateOrder(t *testing.T) {
	t.Run("happy path clears cart", func(t *testing.T) {
		s := newTestStore()
		c, _ := s.AddToCart("", "sb-001", 1)
		o, err := s.CreateOrder(validOrderInput(c.ID))
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		if !strings.HasPrefix(o.ID, "ORD-") {
			t.Fatalf("order id missing prefix: %q", o.ID)
		}
		if o.Status != StatusProcessing {
			t.Fatalf("want status processing, got %q", o.Status)
		}
		if len(o.Items) != 1 {
			t.Fatalf("order items not snapshotted: %+v", o.Items)
		}
		c, _ = s.GetCart(c.ID)
		if len(c.Items) != 0 {
			t.Fatalf("cart not cleared after checkout: %+v", c.Items)
		}
	})

	t.Run("billing defaults to shipping", func(t *testing.T) {
		s := newTestStore()
		c, _ := s.AddToCart("", "sb-001", 1)
		in := validOrderInput(c.ID)
		o, err := s.CreateOrder(in)
		if err != nil {
			t.Fatalf("create order: %v", err)
		}
		if o.Billing != in.Shipping {
			t.Fatalf("billing not defaulted: %+v", o.Billing)
		}
	})

	t.Run("validation", func(t *testing.T) {
		tests := map[string]func(*OrderInput){
			"missing customer name": func(in *OrderInput) { in.Customer.Name = "" },
			"missing email":         func(in *OrderInput) { in.Customer.Email = "" },
			"missing shipping":      func(in *OrderInput) { in.Shipping = Address{} },
			"missing payment":       func(in *OrderInput) { in.Payment = Payment{} },
		}
		for name, mutate := range tests {
			t.Run(name, func(t *testing.T) {
				s := newTestStore()
				c, _ := s.AddToCart("", "sb-001", 1)
				in := validOrderInput(c.ID)
				mutate(&in)
				if _, err := s.CreateOrder(in); !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("want ErrInvalidArgument, got %v", err)
				}
			})
		}
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		s := newTestStore()
		c, _ := s.AddToCart("", "sb-001", 1)
		_, _ = s.RemoveFromCart(c.ID, "sb-001")
		if _, err := s.CreateOrder(validOrderInput(c.ID)); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	s := newTestStore()
	c, _ := s.AddToCart("", "sb-001", 1)
	o, err := s.CreateOrder(validOrderInput(c.ID))
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	t.Run("valid transition", func(t *testing.T) {
		got, err := s.UpdateOrderStatus(o.ID, StatusShipped)
		if err != nil {
			t.Fatalf("update status: %v", err)
		}
		if got.Status != StatusShipped {
			t.Fatalf("want shipped, got %q", got.Status)
		}
	})

	t.Run("invalid status mutates nothing", func(t *testing.T) {
		if _, err := s.UpdateOrderStatus(o.ID, OrderStatus("invalid-status")); !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("want ErrInvalidArgument, got %v", err)
		}
		got, _ := s.GetOrder(o.ID)
		if got.Status != StatusShipped {
			t.Fatalf("stored status changed on invalid update: %q", got.Status)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		if _, err := s.UpdateOrderStatus("ORD-UNKNOWN", StatusShipped); !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestResetCartsKeepsOrders(t *testing.T) {
	s := newTestStore()
	c, _ := s.AddToCart("", "sb-001", 1)
	o, _ := s.CreateOrder(validOrderInput(c.ID))

	s.ResetCarts()

	if _, err := s.GetCart(c.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("cart survived reset: %v", err)
	}
	if _, err := s.GetOrder(o.ID); err != nil {
		t.Fatalf("order lost on cart reset: %v", err)
	}
	if len(s.ListOrders()) != 1 {
		t.Fatalf("want 1 order, got %d", len(s.ListOrders()))
	}
}

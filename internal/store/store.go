package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfStock is returned when a zero-stock product is added to a
	// cart. The cart is left untouched.
	ErrOutOfStock = errors.New("product out of stock")
)

// Store simulates the storefront backend for one run: the product catalog
// plus cart and order state. It is constructed per run (or per test) and
// discarded afterwards; nothing is persisted. Access is single-writer by
// design, so there is no locking.
type Store struct {
	catalog *catalog.Catalog
	carts   map[string]*Cart
	orders  map[string]*Order
	orderID []string // creation order, for deterministic listing
	now     func() time.Time
}

func New(c *catalog.Catalog) *Store {
	return &Store{
		catalog: c,
		carts:   make(map[string]*Cart),
		orders:  make(map[string]*Order),
		now:     time.Now,
	}
}

func (s *Store) Catalog() *catalog.Catalog { return s.catalog }

// ResetCarts drops all carts and any in-flight checkout state. Orders are
// run-scoped and survive so confirmation pages stay reachable.
func (s *Store) ResetCarts() {
	s.carts = make(map[string]*Cart)
}

// GetProducts returns the catalog narrowed by the filter. An ID filter wins
// over a category filter and misses report ErrNotFound.
func (s *Store) GetProducts(f ProductFilter) ([]catalog.Product, error) {
	if f.ID != "" {
		p, err := s.catalog.Get(f.ID)
		if err != nil {
			return nil, fmt.Errorf("get products: %w", ErrNotFound)
		}
		return []catalog.Product{p}, nil
	}
	if f.Category != "" {
		return s.catalog.ByCategory(f.Category), nil
	}
	return s.catalog.All(), nil
}

func (s *Store) Product(id string) (catalog.Product, error) {
	p, err := s.catalog.Get(id)
	if err != nil {
		return catalog.Product{}, fmt.Errorf("product %q: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *Store) GetCart(cartID string) (Cart, error) {
	c, ok := s.carts[cartID]
	if !ok {
		return Cart{}, fmt.Errorf("cart %q: %w", cartID, ErrNotFound)
	}
	return snapshotCart(c), nil
}

// AddToCart adds quantity of a product to the cart, creating the cart when
// cartID is empty. Adding a product already in the cart increments its line
// instead of appending a duplicate.
func (s *Store) AddToCart(cartID, productID string, quantity int) (Cart, error) {
	if quantity <= 0 {
		return Cart{}, fmt.Errorf("quantity %d: %w", quantity, ErrInvalidArgument)
	}
	p, err := s.catalog.Get(productID)
	if err != nil {
		return Cart{}, fmt.Errorf("add to cart: product %q: %w", productID, ErrNotFound)
	}
	if !p.InStock() {
		return Cart{}, fmt.Errorf("add to cart: product %q: %w", productID, ErrOutOfStock)
	}

	var c *Cart
	if cartID == "" {
		c = &Cart{ID: uuid.NewString(), CreatedAt: s.now()}
		s.carts[c.ID] = c
	} else {
		var ok bool
		c, ok = s.carts[cartID]
		if !ok {
			return Cart{}, fmt.Errorf("cart %q: %w", cartID, ErrNotFound)
		}
	}

	for i := range c.Items {
		if c.Items[i].ProductID == productID {
			c.Items[i].Quantity += quantity
			return snapshotCart(c), nil
		}
	}
	c.Items = append(c.Items, CartItem{
		ProductID: p.ID,
		Quantity:  quantity,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
	})
	return snapshotCart(c), nil
}

// UpdateCartItem sets a line's quantity. Zero or negative removes the line.
func (s *Store) UpdateCartItem(cartID, productID string, quantity int) (Cart, error) {
	c, ok := s.carts[cartID]
	if !ok {
		return Cart{}, fmt.Errorf("cart %q: %w", cartID, ErrNotFound)
	}
	for i := range c.Items {
		if c.Items[i].ProductID != productID {
			continue
		}
		if quantity <= 0 {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
		} else {
			c.Items[i].Quantity = quantity
		}
		return snapshotCart(c), nil
	}
	return Cart{}, fmt.Errorf("item %q in cart %q: %w", productID, cartID, ErrNotFound)
}

func (s *Store) RemoveFromCart(cartID, productID string) (Cart, error) {
	return s.UpdateCartItem(cartID, productID, 0)
}

func (s *Store) ClearCart(cartID string) error {
	c, ok := s.carts[cartID]
	if !ok {
		return fmt.Errorf("cart %q: %w", cartID, ErrNotFound)
	}
	c.Items = nil
	return nil
}

// CreateOrder validates the input, snapshots the cart into a new order with
// status processing, and clears the source cart. Billing defaults to the
// shipping address when absent.
func (s *Store) CreateOrder(in OrderInput) (Order, error) {
	c, ok := s.carts[in.CartID]
	if !ok {
		return Order{}, fmt.Errorf("create order: cart %q: %w", in.CartID, ErrNotFound)
	}
	if len(c.Items) == 0 {
		return Order{}, fmt.Errorf("create order: empty cart: %w", ErrInvalidArgument)
	}
	if in.Customer.Name == "" || in.Customer.Email == "" {
		return Order{}, fmt.Errorf("create order: missing customer info: %w", ErrInvalidArgument)
	}
	if in.Shipping.Empty() {
		return Order{}, fmt.Errorf("create order: missing shipping address: %w", ErrInvalidArgument)
	}
	if in.Payment.Type == "" {
		return Order{}, fmt.Errorf("create order: missing payment method: %w", ErrInvalidArgument)
	}

	billing := in.Billing
	if billing.Empty() {
		billing = in.Shipping
	}

	now := s.now()
	o := &Order{
		ID:        newOrderID(),
		Items:     append([]CartItem(nil), c.Items...),
		Customer:  in.Customer,
		Shipping:  in.Shipping,
		Billing:   billing,
		Payment:   in.Payment,
		Status:    StatusProcessing,
		Pricing:   ComputePricing(c.Items),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.orders[o.ID] = o
	s.orderID = append(s.orderID, o.ID)
	c.Items = nil
	return *o, nil
}

func (s *Store) GetOrder(orderID string) (Order, error) {
	o, ok := s.orders[orderID]
	if !ok {
		return Order{}, fmt.Errorf("order %q: %w", orderID, ErrNotFound)
	}
	return *o, nil
}

func (s *Store) ListOrders() []Order {
	out := make([]Order, 0, len(s.orderID))
	for _, id := range s.orderID {
		out = append(out, *s.orders[id])
	}
	return out
}

// UpdateOrderStatus transitions an order to one of the four valid statuses.
// An invalid status leaves the stored order untouched.
func (s *Store) UpdateOrderStatus(orderID string, status OrderStatus) (Order, error) {
	if !status.Valid() {
		return Order{}, fmt.Errorf("status %q: %w", status, ErrInvalidArgument)
	}
	o, ok := s.orders[orderID]
	if !ok {
		return Order{}, fmt.Errorf("order %q: %w", orderID, ErrNotFound)
	}
	o.Status = status
	o.UpdatedAt = s.now()
	return *o, nil
}

func snapshotCart(c *Cart) Cart {
	out := *c
	out.Items = append([]CartItem(nil), c.Items...)
	return out
}

func newOrderID() string {
	return "ORD-" + strings.ToUpper(uuid.NewString()[:8])
}

// Package httpapi serves the demo storefront: the JSON API consumed by the
// api test suite and the rendered HTML pages driven by the live browser
// backend. Both sit on the same in-memory store.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"sync"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

type Handler struct {
	log *log.Logger

	// The store itself is single-writer; the mutex serializes the HTTP
	// server's goroutines in front of it.
	mu        sync.Mutex
	store     *store.Store
	checkouts map[string]*checkoutSession
}

func NewHandler(s *store.Store, logger *log.Logger) *Handler {
	return &Handler{
		log:       logger,
		store:     s,
		checkouts: make(map[string]*checkoutSession),
	}
}

// GetProducts handles GET /api/products?category=&id=.
// An id query returns the single product object, not an array.
func (h *Handler) GetProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	h.mu.Lock()
	defer h.mu.Unlock()

	if id := q.Get("id"); id != "" {
		p, err := h.store.Product(id)
		if err != nil {
			writeError(w, http.StatusNotFound, "Product not found")
			return
		}
		writeJSON(w, http.StatusOK, p)
		return
	}

	products, err := h.store.GetProducts(store.ProductFilter{
		Category: catalog.Category(q.Get("category")),
	})
	if err != nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

type cartResponse struct {
	CartID  string           `json:"cartId"`
	Items   []store.CartItem `json:"items"`
	Pricing store.Pricing    `json:"pricing"`
}

func toCartResponse(c store.Cart) cartResponse {
	items := c.Items
	if items == nil {
		items = []store.CartItem{}
	}
	return cartResponse{CartID: c.ID, Items: items, Pricing: c.Pricing()}
}

// GetCart handles GET /api/cart?cartId=.
func (h *Handler) GetCart(w http.ResponseWriter, r *http.Request) {
	cartID := r.URL.Query().Get("cartId")

	h.mu.Lock()
	defer h.mu.Unlock()

	c, err := h.store.GetCart(cartID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Cart not found")
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

// AddToCart handles POST /api/cart. A missing cartId creates a new cart.
func (h *Handler) AddToCart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CartID    string `json:"cartId"`
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c, err := h.store.AddToCart(body.CartID, body.ProductID, body.Quantity)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

// UpdateCartItem handles PUT /api/cart. Quantity zero removes the line.
func (h *Handler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	var body struct {
		CartID    string `json:"cartId"`
		ProductID string `json:"productId"`
		Quantity  int    `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	c, err := h.store.UpdateCartItem(body.CartID, body.ProductID, body.Quantity)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

// RemoveFromCart handles DELETE /api/cart?cartId=&productId=.
func (h *Handler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	h.mu.Lock()
	defer h.mu.Unlock()

	c, err := h.store.RemoveFromCart(q.Get("cartId"), q.Get("productId"))
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCartResponse(c))
}

// GetOrders handles GET /api/orders?orderId=. Without an orderId it lists
// every order created during the run.
func (h *Handler) GetOrders(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")

	h.mu.Lock()
	defer h.mu.Unlock()

	if orderID == "" {
		writeJSON(w, http.StatusOK, h.store.ListOrders())
		return
	}
	o, err := h.store.GetOrder(orderID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

// CreateOrder handles POST /api/orders.
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var in store.OrderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	o, err := h.store.CreateOrder(in)
	if err != nil {
		h.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, o)
}

// UpdateOrderStatus handles PUT /api/orders?orderId=.
func (h *Handler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID := r.URL.Query().Get("orderId")
	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	o, err := h.store.UpdateOrderStatus(orderID, store.OrderStatus(body.Status))
	if err != nil {
		if errors.Is(err, store.ErrInvalidArgument) {
			writeError(w, http.StatusBadRequest, "Invalid status")
			return
		}
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, o)
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrOutOfStock):
		writeError(w, http.StatusConflict, "Product out of stock")
	case errors.Is(err, store.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, catalog.ErrNotFound), errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, notFoundMessage(err))
	default:
		h.log.Printf("store error: %v", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// notFoundMessage maps a store lookup miss onto the API contract's fixed
// error strings. Check order matters: "add to cart: product ..." mentions
// both entities.
func notFoundMessage(err error) string {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "item "):
		return "Item not found in cart"
	case strings.Contains(msg, "product "):
		return "Product not found"
	case strings.Contains(msg, "cart "):
		return "Cart not found"
	case strings.Contains(msg, "order "):
		return "Order not found"
	default:
		return "Not found"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package suite

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/dannydang64/snowboard-store-sub000/internal/check"
	"github.com/dannydang64/snowboard-store-sub000/internal/report"
)

// apiCall issues a JSON request against the storefront API and decodes the
// response body into out when out is non-nil.
func apiCall(ctx context.Context, env *Env, method, path string, body, out any) (int, error) {
	var reqBody io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, env.APIBaseURL+path, reqBody)
	if err != nil {
		return 0, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return resp.StatusCode, fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}
	return resp.StatusCode, nil
}

type apiCart struct {
	CartID  string `json:"cartId"`
	Items   []struct {
		ProductID string  `json:"productId"`
		Quantity  int     `json:"quantity"`
		Price     float64 `json:"price"`
	} `json:"items"`
	Pricing struct {
		Subtotal float64 `json:"subtotal"`
		Tax      float64 `json:"tax"`
		Shipping float64 `json:"shipping"`
		Total    float64 `json:"total"`
	} `json:"pricing"`
}

// APICases exercises the storefront's JSON API over real HTTP in both
// modes.
func APICases() []Case {
	return []Case{
		{
			ID:       "API-001",
			Name:     "products endpoint lists the catalog",
			Feature:  FeatureAPI,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "200 with all 8 products",
			Run: func(ctx context.Context, env *Env) error {
				var products []map[string]any
				status, err := apiCall(ctx, env, http.MethodGet, "/api/products", nil, &products)
				if err != nil {
					return err
				}
				c := check.NewCollector()
				c.Equal("status", http.StatusOK, status)
				c.Equal("product count", 8, len(products))
				return c.Verify()
			},
		},
		{
			ID:       "API-002",
			Name:     "products endpoint filters by category",
			Feature:  FeatureAPI,
			Priority: report.PriorityP1,
			Type:     report.TypePositive,
			Expected: "category=snowboards returns 3 products",
			Run: func(ctx context.Context, env *Env) error {
				var products []map[string]any
				status, err := apiCall(ctx, env, http.MethodGet, "/api/products?category=snowboards", nil, &products)
				if err != nil {
					return err
				}
				c := check.NewCollector()
				c.Equal("status", http.StatusOK, status)
				c.Equal("snowboard count", 3, len(products))
				return c.Verify()
			},
		},
		{
			ID:       "API-003",
			Name:     "unknown product id is a 404",
			Feature:  FeatureAPI,
			Priority: report.PriorityP1,
			Type:     report.TypeNegative,
			Expected: `404 with error "Product not found"`,
			Run: func(ctx context.Context, env *Env) error {
				var body struct {
					Error string `json:"error"`
				}
				status, err := apiCall(ctx, env, http.MethodGet, "/api/products?id=sb-404", nil, &body)
				if err != nil {
					return err
				}
				c := check.NewCollector()
				c.Equal("status", http.StatusNotFound, status)
				c.Equal("error message", "Product not found", body.Error)
				return c.Verify()
			},
		},
		{
			ID:       "API-004",
			Name:     "cart add creates a cart and prices it",
			Feature:  FeatureAPI,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "cart id assigned, totals computed",
			Run: func(ctx context.Context, env *Env) error {
				var cart apiCart
				status, err := apiCall(ctx, env, http.MethodPost, "/api/cart",
					map[string]any{"productId": "sb-001", "quantity": 2}, &cart)
				if err != nil {
					return err
				}
				c := check.NewCollector()
				c.Equal("status", http.StatusOK, status)
				c.True("cart id assigned", cart.CartID != "")
				c.Equal("line count", 1, len(cart.Items))
				c.InDelta("subtotal", 999.98, cart.Pricing.Subtotal, 0.001)
				c.InDelta("total adds up",
					cart.Pricing.Subtotal+cart.Pricing.Tax+cart.Pricing.Shipping,
					cart.Pricing.Total, 0.01)
				return c.Verify()
			},
		},
		{
			ID:       "API-005",
			Name:     "adding an out-of-stock product is rejected",
			Feature:  FeatureAPI,
			Priority: report.PriorityP1,
			Type:     report.TypeNegative,
			Expected: `409 with error "Product out of stock"`,
			Run: func(ctx context.Context, env *Env) error {
				var body struct {
					Error string `json:"error"`
				}
				status, err := apiCall(ctx, env, http.MethodPost, "/api/cart",
					map[string]any{"productId": "sb-003", "quantity": 1}, &body)
				if err != nil {
					return err
				}
				c := check.NewCollector()
				c.Equal("status", http.StatusConflict, status)
				c.Equal("error message", "Product out of stock", body.Error)
				return c.Verify()
			},
		},
		{
			ID:       "API-006",
			Name:     "order lifecycle over the api",
			Feature:  FeatureAPI,
			Priority: report.PriorityP0,
			Type:     report.TypePositive,
			Expected: "order created from cart, then shipped",
			Run: func(ctx context.Context, env *Env) error {
				var cart apiCart
				if _, err := apiCall(ctx, env, http.MethodPost, "/api/cart",
					map[string]any{"productId": "bd-001", "quantity": 1}, &cart); err != nil {
					return err
				}

				var order struct {
					ID     string `json:"orderId"`
					Status string `json:"status"`
				}
				status, err := apiCall(ctx, env, http.MethodPost, "/api/orders", map[string]any{
					"cartId":   cart.CartID,
					"customer": map[string]string{"name": "Jamie Rider", "email": "jamie@example.com"},
					"shippingAddress": map[string]string{
						"line1": "1 Powder Ln", "city": "Truckee", "state": "CA",
						"zip": "96161", "country": "US",
					},
					"payment": map[string]string{"type": "card", "last4": "4242"},
				}, &order)
				if err != nil {
					return err
				}

				c := check.NewCollector()
				c.Equal("create status", http.StatusCreated, status)
				c.Equal("initial status", "processing", order.Status)

				status, err = apiCall(ctx, env, http.MethodPut, "/api/orders?orderId="+order.ID,
					map[string]string{"status": "shipped"}, &order)
				if err != nil {
					return err
				}
				c.Equal("update status", http.StatusOK, status)
				c.Equal("updated status", "shipped", order.Status)
				return c.Verify()
			},
		},
		{
			ID:       "API-007",
			Name:     "invalid order status transition is rejected",
			Feature:  FeatureAPI,
			Priority: report.PriorityP2,
			Type:     report.TypeNegative,
			Expected: `400 with error "Invalid status"`,
			Run: func(ctx context.Context, env *Env) error {
				var cart apiCart
				if _, err := apiCall(ctx, env, http.MethodPost, "/api/cart",
					map[string]any{"productId": "ac-001", "quantity": 1}, &cart); err != nil {
					return err
				}
				var order struct {
					ID string `json:"orderId"`
				}
				if _, err := apiCall(ctx, env, http.MethodPost, "/api/orders", map[string]any{
					"cartId":   cart.CartID,
					"customer": map[string]string{"name": "Jamie Rider", "email": "jamie@example.com"},
					"shippingAddress": map[string]string{
						"line1": "1 Powder Ln", "city": "Truckee", "state": "CA",
						"zip": "96161", "country": "US",
					},
					"payment": map[string]string{"type": "card", "last4": "4242"},
				}, &order); err != nil {
					return err
				}

				var body struct {
					Error string `json:"error"`
				}
				status, err := apiCall(ctx, env, http.MethodPut, "/api/orders?orderId="+order.ID,
					map[string]string{"status": "teleported"}, &body)
				if err != nil {
					return err
				}
				c := check.NewCollector()
				c.Equal("status", http.StatusBadRequest, status)
				c.Equal("error message", "Invalid status", body.Error)
				return c.Verify()
			},
		},
	}
}

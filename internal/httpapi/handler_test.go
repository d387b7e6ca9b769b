package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

func newTestRouter(t *testing.T) (http.Handler, *store.Store) {
	t.Helper()
	s := store.New(catalog.Default())
	h := NewHandler(s, log.New(io.Discard, "", 0))
	return NewRouter(h), s
}

func doJSON(t *testing.T, router http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, rd)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestProductsAPI(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("full catalog", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/products", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		products := decode[[]catalog.Product](t, rec)
		assert.Len(t, products, 8)
	})

	t.Run("category filter", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/products?category=bindings", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		products := decode[[]catalog.Product](t, rec)
		require.NotEmpty(t, products)
		for _, p := range products {
			assert.Equal(t, catalog.CategoryBindings, p.Category)
		}
	})

	t.Run("single product by id", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/products?id=sb-001", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		p := decode[catalog.Product](t, rec)
		assert.Equal(t, "Alpine Freestyle Snowboard", p.Name)
		assert.Equal(t, 499.99, p.Price)
	})

	t.Run("unknown id is 404 with contract message", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/products?id=ghost", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		body := decode[map[string]string](t, rec)
		assert.Equal(t, "Product not found", body["error"])
	})
}

func TestCartAPI(t *testing.T) {
	router, _ := newTestRouter(t)

	add := func(t *testing.T, cartID, productID string, qty int) cartResponse {
		rec := doJSON(t, router, http.MethodPost, "/api/cart", map[string]any{
			"cartId": cartID, "productId": productID, "quantity": qty,
		})
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return decode[cartResponse](t, rec)
	}

	t.Run("add creates cart and increments existing line", func(t *testing.T) {
		c := add(t, "", "sb-001", 1)
		require.NotEmpty(t, c.CartID)
		require.Len(t, c.Items, 1)

		c = add(t, c.CartID, "sb-001", 2)
		require.Len(t, c.Items, 1)
		assert.Equal(t, 3, c.Items[0].Quantity)
	})

	t.Run("unknown product is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/cart", map[string]any{
			"productId": "ghost", "quantity": 1,
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Product not found", decode[map[string]string](t, rec)["error"])
	})

	t.Run("out of stock is 409", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/api/cart", map[string]any{
			"productId": "sb-003", "quantity": 1,
		})
		require.Equal(t, http.StatusConflict, rec.Code)
		assert.Equal(t, "Product out of stock", decode[map[string]string](t, rec)["error"])
	})

	t.Run("update to zero removes line", func(t *testing.T) {
		c := add(t, "", "sb-001", 2)
		rec := doJSON(t, router, http.MethodPut, "/api/cart", map[string]any{
			"cartId": c.CartID, "productId": "sb-001", "quantity": 0,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		got := decode[cartResponse](t, rec)
		assert.Empty(t, got.Items)

		rec = doJSON(t, router, http.MethodGet, "/api/cart?cartId="+c.CartID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[cartResponse](t, rec).Items)
	})

	t.Run("update missing line is 404", func(t *testing.T) {
		c := add(t, "", "sb-001", 1)
		rec := doJSON(t, router, http.MethodPut, "/api/cart", map[string]any{
			"cartId": c.CartID, "productId": "bd-001", "quantity": 1,
		})
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Item not found in cart", decode[map[string]string](t, rec)["error"])
	})

	t.Run("missing cart is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/cart?cartId=nope", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Cart not found", decode[map[string]string](t, rec)["error"])
	})

	t.Run("delete removes line", func(t *testing.T) {
		c := add(t, "", "bd-001", 1)
		rec := doJSON(t, router, http.MethodDelete, "/api/cart?cartId="+c.CartID+"&productId=bd-001", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[cartResponse](t, rec).Items)
	})

	t.Run("pricing recomputed in response", func(t *testing.T) {
		c := add(t, "", "sb-001", 1)
		c = add(t, c.CartID, "bd-001", 1)
		assert.InDelta(t, 749.98, c.Pricing.Subtotal, 0.001)
		assert.InDelta(t, 59.998, c.Pricing.Tax, 0.01)
		assert.InDelta(t, 15.00, c.Pricing.Shipping, 0.001)
		assert.InDelta(t, 824.978, c.Pricing.Total, 0.01)
	})
}

func TestOrdersAPI(t *testing.T) {
	router, _ := newTestRouter(t)

	createCart := func(t *testing.T) string {
		rec := doJSON(t, router, http.MethodPost, "/api/cart", map[string]any{
			"productId": "sb-001", "quantity": 1,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		return decode[cartResponse](t, rec).CartID
	}

	orderBody := func(cartID string) map[string]any {
		return map[string]any{
			"cartId":          cartID,
			"customer":        map[string]string{"name": "Jamie Rider", "email": "jamie@example.com", "phone": "555-0100"},
			"shippingAddress": map[string]string{"line1": "1 Powder Ln", "city": "Truckee", "state": "CA", "zip": "96161", "country": "US"},
			"payment":         map[string]string{"type": "card", "last4": "4242"},
		}
	}

	t.Run("create order", func(t *testing.T) {
		cartID := createCart(t)
		rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody(cartID))
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		o := decode[store.Order](t, rec)
		assert.True(t, strings.HasPrefix(o.ID, "ORD-"))
		assert.Equal(t, store.StatusProcessing, o.Status)

		// Source cart is cleared by checkout.
		rec = doJSON(t, router, http.MethodGet, "/api/cart?cartId="+cartID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decode[cartResponse](t, rec).Items)
	})

	t.Run("empty cart rejected", func(t *testing.T) {
		cartID := createCart(t)
		rec := doJSON(t, router, http.MethodDelete, "/api/cart?cartId="+cartID+"&productId=sb-001", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/api/orders", orderBody(cartID))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("update status", func(t *testing.T) {
		cartID := createCart(t)
		rec := doJSON(t, router, http.MethodPost, "/api/orders", orderBody(cartID))
		require.Equal(t, http.StatusCreated, rec.Code)
		o := decode[store.Order](t, rec)

		rec = doJSON(t, router, http.MethodPut, "/api/orders?orderId="+o.ID, map[string]string{"status": "shipped"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, store.StatusShipped, decode[store.Order](t, rec).Status)

		rec = doJSON(t, router, http.MethodPut, "/api/orders?orderId="+o.ID, map[string]string{"status": "teleported"})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid status", decode[map[string]string](t, rec)["error"])

		// Stored status untouched by the invalid update.
		rec = doJSON(t, router, http.MethodGet, "/api/orders?orderId="+o.ID, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, store.StatusShipped, decode[store.Order](t, rec).Status)
	})

	t.Run("unknown order is 404", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/api/orders?orderId=ORD-NOPE", nil)
		require.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Order not found", decode[map[string]string](t, rec)["error"])
	})
}

func TestEmptyCartCheckoutRedirects(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/checkout", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/cart", rec.Header().Get("Location"))
}

func TestCheckoutFlowOverForms(t *testing.T) {
	router, _ := newTestRouter(t)

	// Add to cart through the page form to get a cart cookie.
	form := url.Values{"productId": {"sb-001"}, "quantity": {"1"}}
	req := httptest.NewRequest(http.MethodPost, "/cart/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	var cartCookieVal string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cartCookie {
			cartCookieVal = ck.Value
		}
	}
	require.NotEmpty(t, cartCookieVal)

	withCookie := func(req *http.Request) *http.Request {
		req.AddCookie(&http.Cookie{Name: cartCookie, Value: cartCookieVal})
		return req
	}

	// Jumping straight to payment is clamped back to information.
	req = withCookie(httptest.NewRequest(http.MethodGet, "/checkout?step=payment", nil))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/checkout?step=information", rec.Header().Get("Location"))

	post := func(t *testing.T, values url.Values) *httptest.ResponseRecorder {
		t.Helper()
		req := withCookie(httptest.NewRequest(http.MethodPost, "/checkout", strings.NewReader(values.Encode())))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		require.Equal(t, http.StatusSeeOther, rec.Code)
		return rec
	}

	// information -> shipping
	rec = post(t, url.Values{
		"step": {"information"}, "action": {"continue"},
		"name": {"Jamie Rider"}, "email": {"jamie@example.com"}, "phone": {"555-0100"},
	})
	assert.Equal(t, "/checkout?step=shipping", rec.Header().Get("Location"))

	// shipping -> back to information keeps the entered name
	rec = post(t, url.Values{
		"step": {"shipping"}, "action": {"back"},
		"line1": {"1 Powder Ln"},
	})
	assert.Equal(t, "/checkout?step=information", rec.Header().Get("Location"))

	req = withCookie(httptest.NewRequest(http.MethodGet, "/checkout?step=information", nil))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `value="Jamie Rider"`)

	// forward again through shipping to payment and place the order
	rec = post(t, url.Values{
		"step": {"shipping"}, "action": {"continue"},
		"line1": {"1 Powder Ln"}, "city": {"Truckee"}, "state": {"CA"}, "zip": {"96161"}, "country": {"US"},
	})
	assert.Equal(t, "/checkout?step=payment", rec.Header().Get("Location"))

	form = url.Values{
		"step": {"payment"},
		"cardNumber": {"4111 1111 1111 4242"}, "expiry": {"12/27"}, "cvv": {"123"},
	}
	req = withCookie(httptest.NewRequest(http.MethodPost, "/checkout/place", strings.NewReader(form.Encode())))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	loc := rec.Header().Get("Location")
	require.True(t, strings.HasPrefix(loc, "/orders/ORD-"), loc)
	require.True(t, strings.HasSuffix(loc, "/confirmation"), loc)

	// Confirmation page renders the order, payment kept as last4 only.
	req = withCookie(httptest.NewRequest(http.MethodGet, loc, nil))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Thank you for your order!")
	assert.NotContains(t, rec.Body.String(), "4111")
}

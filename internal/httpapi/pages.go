package httpapi

import (
	"bytes"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

//go:embed templates/*.html
var templatesFS embed.FS

var pageTmpl = template.Must(template.New("pages").Funcs(template.FuncMap{
	"money": store.FormatMoney,
}).ParseFS(templatesFS, "templates/*.html"))

const cartCookie = "cart_id"

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := pageTmpl.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Printf("render %s: %v", name, err)
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = buf.WriteTo(w)
}

func cartIDFromRequest(r *http.Request) string {
	ck, err := r.Cookie(cartCookie)
	if err != nil {
		return ""
	}
	return ck.Value
}

// cartCount is rendered into the nav badge on every page.
func (h *Handler) cartCount(r *http.Request) int {
	id := cartIDFromRequest(r)
	if id == "" {
		return 0
	}
	c, err := h.store.GetCart(id)
	if err != nil {
		return 0
	}
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	all := h.store.Catalog().All()
	featured := all
	if len(featured) > 3 {
		featured = featured[:3]
	}
	h.render(w, "home.html", map[string]any{
		"Featured":  featured,
		"CartCount": h.cartCount(r),
	})
}

func (h *Handler) ProductList(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cat := catalog.Category(r.URL.Query().Get("category"))
	products, _ := h.store.GetProducts(store.ProductFilter{Category: cat})
	h.render(w, "products.html", map[string]any{
		"Products":  products,
		"Category":  string(cat),
		"CartCount": h.cartCount(r),
	})
}

func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := chi.URLParam(r, "productID")
	p, err := h.store.Product(id)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	q := r.URL.Query()
	h.render(w, "product_detail.html", map[string]any{
		"Product":    p,
		"Added":      q.Get("added") == "1",
		"OutOfStock": q.Get("oos") == "1" || !p.InStock(),
		"CartCount":  h.cartCount(r),
	})
}

// CartAdd handles the add-to-cart form post from the product detail page.
func (h *Handler) CartAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	productID := r.PostFormValue("productId")
	qty, err := strconv.Atoi(r.PostFormValue("quantity"))
	if err != nil || qty < 1 {
		qty = 1
	}

	h.mu.Lock()
	c, addErr := h.store.AddToCart(cartIDFromRequest(r), productID, qty)
	h.mu.Unlock()

	back := "/products/" + productID
	if addErr != nil {
		if errors.Is(addErr, store.ErrOutOfStock) {
			http.Redirect(w, r, back+"?oos=1", http.StatusSeeOther)
			return
		}
		h.log.Printf("cart add: %v", addErr)
		http.Redirect(w, r, back, http.StatusSeeOther)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: cartCookie, Value: c.ID, Path: "/"})
	http.Redirect(w, r, back+"?added=1", http.StatusSeeOther)
}

func (h *Handler) CartPage(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	var c store.Cart
	if id := cartIDFromRequest(r); id != "" {
		c, _ = h.store.GetCart(id)
	}
	h.render(w, "cart.html", map[string]any{
		"Cart":      c,
		"Pricing":   c.Pricing(),
		"Empty":     len(c.Items) == 0,
		"CartCount": h.cartCount(r),
	})
}

func (h *Handler) CartUpdate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	productID := r.PostFormValue("productId")
	qty, _ := strconv.Atoi(r.PostFormValue("quantity"))

	h.mu.Lock()
	_, err := h.store.UpdateCartItem(cartIDFromRequest(r), productID, qty)
	h.mu.Unlock()
	if err != nil {
		h.log.Printf("cart update: %v", err)
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (h *Handler) CartRemove(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}
	h.mu.Lock()
	_, err := h.store.RemoveFromCart(cartIDFromRequest(r), r.PostFormValue("productId"))
	h.mu.Unlock()
	if err != nil {
		h.log.Printf("cart remove: %v", err)
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

// CheckoutPage renders the requested checkout step. An empty cart is sent
// back to the cart view, and steps beyond the furthest one reached are
// clamped.
func (h *Handler) CheckoutPage(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	cartID := cartIDFromRequest(r)
	c, err := h.store.GetCart(cartID)
	if err != nil || len(c.Items) == 0 {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	cs, ok := h.checkouts[cartID]
	if !ok {
		cs = newCheckoutSession()
		h.checkouts[cartID] = cs
	}

	requested, _ := parseStep(r.URL.Query().Get("step"))
	step := cs.clamp(requested)
	if step != requested {
		http.Redirect(w, r, "/checkout?step="+step.Name(), http.StatusSeeOther)
		return
	}

	h.render(w, "checkout.html", map[string]any{
		"Step":      step.Name(),
		"Fields":    cs.fields,
		"Pricing":   c.Pricing(),
		"CartCount": h.cartCount(r),
	})
}

// CheckoutSubmit stores the posted step's fields and moves forward or back.
// Fields are kept either way so "back" never loses entered data.
func (h *Handler) CheckoutSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	cartID := cartIDFromRequest(r)
	cs, ok := h.checkouts[cartID]
	if !ok {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	step, _ := parseStep(r.PostFormValue("step"))
	action := r.PostFormValue("action")
	for name, vals := range r.PostForm {
		if name == "step" || name == "action" || len(vals) == 0 {
			continue
		}
		cs.set(name, vals[0])
	}

	next := step
	if action == "back" {
		if step > stepInformation {
			next = step - 1
		}
	} else {
		if step < stepPayment {
			next = step + 1
		}
		cs.advanceTo(next)
	}
	http.Redirect(w, r, "/checkout?step="+next.Name(), http.StatusSeeOther)
}

// PlaceOrder finishes checkout: it builds the order from the session's
// accumulated fields, lets the store create it (which clears the cart), and
// lands on the confirmation page.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad form", http.StatusBadRequest)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	cartID := cartIDFromRequest(r)
	cs, ok := h.checkouts[cartID]
	if !ok {
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}
	for name, vals := range r.PostForm {
		if name == "step" || name == "action" || len(vals) == 0 {
			continue
		}
		cs.set(name, vals[0])
	}

	in := store.OrderInput{
		CartID: cartID,
		Customer: store.Customer{
			Name:  cs.get("name"),
			Email: cs.get("email"),
			Phone: cs.get("phone"),
		},
		Shipping: store.Address{
			Line1:   cs.get("line1"),
			City:    cs.get("city"),
			State:   cs.get("state"),
			Zip:     cs.get("zip"),
			Country: cs.get("country"),
		},
		Payment: store.Payment{
			Type:  "card",
			Last4: last4(cs.get("cardNumber")),
		},
	}

	o, err := h.store.CreateOrder(in)
	if err != nil {
		h.log.Printf("place order: %v", err)
		http.Redirect(w, r, "/checkout?step=payment", http.StatusSeeOther)
		return
	}
	delete(h.checkouts, cartID)
	http.Redirect(w, r, "/orders/"+o.ID+"/confirmation", http.StatusSeeOther)
}

func (h *Handler) OrderConfirmation(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()

	o, err := h.store.GetOrder(chi.URLParam(r, "orderID"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	h.render(w, "confirmation.html", map[string]any{
		"Order":     o,
		"CartCount": h.cartCount(r),
	})
}

func last4(cardNumber string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, cardNumber)
	if len(digits) <= 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

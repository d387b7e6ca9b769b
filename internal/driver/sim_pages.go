package driver

import (
	"context"
	"net/url"
	"strconv"
	"strings"

	"github.com/dannydang64/snowboard-store-sub000/internal/catalog"
	"github.com/dannydang64/snowboard-store-sub000/internal/store"
)

// pageNodes rebuilds the virtual page for the current URL on every lookup,
// so a node's text always reflects the store's present state and nothing is
// ever cached across mutations.
func (d *SimDriver) pageNodes() []*simNode {
	if d.current == nil {
		return nil
	}
	nodes := d.navNodes()

	path := d.current.Path
	query := d.current.Query()
	switch {
	case path == "/":
		nodes = append(nodes, d.homeNodes()...)
	case path == "/products":
		nodes = append(nodes, d.productListNodes(query)...)
	case strings.HasPrefix(path, "/products/"):
		nodes = append(nodes, d.productDetailNodes(strings.TrimPrefix(path, "/products/"), query)...)
	case path == "/cart":
		nodes = append(nodes, d.cartNodes()...)
	case path == "/checkout":
		nodes = append(nodes, d.checkoutNodes()...)
	case strings.HasPrefix(path, "/orders/") && strings.HasSuffix(path, "/confirmation"):
		orderID := strings.TrimSuffix(strings.TrimPrefix(path, "/orders/"), "/confirmation")
		nodes = append(nodes, d.confirmationNodes(orderID)...)
	}
	return nodes
}

func (d *SimDriver) navNodes() []*simNode {
	count := 0
	if c, err := d.currentCart(); err == nil {
		for _, it := range c.Items {
			count += it.Quantity
		}
	}
	return []*simNode{
		{testID: "shop-link", role: "link", text: "Shop", click: func(context.Context) error {
			d.setLocation("/products", nil)
			return nil
		}},
		{role: "link", text: "Cart", click: func(context.Context) error {
			d.setLocation("/cart", nil)
			return nil
		}},
		{testID: "cart-count", text: strconv.Itoa(count)},
	}
}

func (d *SimDriver) productNodes(p catalog.Product, cardID string) []*simNode {
	open := func(context.Context) error {
		d.setLocation("/products/"+p.ID, nil)
		return nil
	}
	return []*simNode{
		{testID: cardID, text: p.Name, attrs: map[string]string{"data-product-id": p.ID}, click: open},
		{testID: "product-name", role: "link", text: p.Name, click: open},
		{testID: "product-price", text: store.FormatMoney(p.Price)},
	}
}

func (d *SimDriver) homeNodes() []*simNode {
	nodes := []*simNode{{testID: "hero-title", text: "Ride the Mountain"}}
	all := d.store.Catalog().All()
	if len(all) > 3 {
		all = all[:3]
	}
	for _, p := range all {
		nodes = append(nodes, d.productNodes(p, "featured-product")...)
	}
	return nodes
}

func (d *SimDriver) productListNodes(query url.Values) []*simNode {
	var nodes []*simNode
	for _, cat := range []catalog.Category{
		catalog.CategorySnowboards, catalog.CategoryBindings, catalog.CategoryBoots, catalog.CategoryAccessories,
	} {
		cat := cat
		nodes = append(nodes, &simNode{
			testID: "filter-" + string(cat),
			role:   "link",
			text:   strings.ToUpper(string(cat[:1])) + string(cat[1:]),
			click: func(context.Context) error {
				d.setLocation("/products", url.Values{"category": {string(cat)}})
				return nil
			},
		})
	}

	products, _ := d.store.GetProducts(store.ProductFilter{
		Category: catalog.Category(query.Get("category")),
	})
	for _, p := range products {
		nodes = append(nodes, d.productNodes(p, "product-card")...)
		nodes = append(nodes, &simNode{testID: "product-rating", text: strconv.FormatFloat(p.Rating, 'f', -1, 64)})
	}
	return nodes
}

func (d *SimDriver) productDetailNodes(productID string, query url.Values) []*simNode {
	p, err := d.store.Product(productID)
	if err != nil {
		return nil
	}

	stock := "In Stock"
	if !p.InStock() {
		stock = "Out of Stock"
	}
	nodes := []*simNode{
		{testID: "product-name", text: p.Name},
		{testID: "product-price", text: store.FormatMoney(p.Price)},
		{testID: "product-description", text: p.Description},
		{testID: "stock-status", text: stock},
		{testID: "quantity-input", name: "quantity", value: "1"},
	}
	for _, f := range p.Features {
		nodes = append(nodes, &simNode{testID: "product-feature", text: f})
	}
	if query.Get("added") == "1" {
		nodes = append(nodes, &simNode{testID: "add-confirmation", text: "Added to cart"})
	}
	if !p.InStock() {
		nodes = append(nodes, &simNode{testID: "out-of-stock-notice", text: "This item is currently unavailable"})
	}

	nodes = append(nodes, &simNode{
		testID:   "add-to-cart",
		role:     "button",
		text:     "Add to Cart",
		disabled: !p.InStock(),
		click: func(context.Context) error {
			qty := 1
			if v, ok := d.fields["quantity"]; ok {
				if n, err := strconv.Atoi(v); err == nil && n > 0 {
					qty = n
				}
			}
			c, err := d.store.AddToCart(d.cartID, p.ID, qty)
			if err != nil {
				d.log.Printf("sim add to cart: %v", err)
				d.setLocation("/products/"+p.ID, url.Values{"oos": {"1"}})
				return nil
			}
			d.cartID = c.ID
			d.setLocation("/products/"+p.ID, url.Values{"added": {"1"}})
			return nil
		},
	})
	return nodes
}

func (d *SimDriver) cartNodes() []*simNode {
	c, err := d.currentCart()
	if err != nil || len(c.Items) == 0 {
		return []*simNode{{testID: "cart-empty", text: "Your cart is empty"}}
	}

	var nodes []*simNode
	for _, it := range c.Items {
		it := it
		nodes = append(nodes,
			&simNode{testID: "cart-item", text: it.Name, attrs: map[string]string{"data-product-id": it.ProductID}},
			&simNode{testID: "item-name", text: it.Name},
			&simNode{testID: "item-price", text: store.FormatMoney(it.Price)},
			&simNode{testID: "qty-" + it.ProductID, name: "qty-" + it.ProductID, value: strconv.Itoa(it.Quantity)},
			&simNode{testID: "update-" + it.ProductID, role: "button", text: "Update", click: func(context.Context) error {
				qty := it.Quantity
				if v, ok := d.fields["qty-"+it.ProductID]; ok {
					if n, err := strconv.Atoi(v); err == nil {
						qty = n
					}
				}
				if _, err := d.store.UpdateCartItem(d.cartID, it.ProductID, qty); err != nil {
					d.log.Printf("sim cart update: %v", err)
				}
				d.setLocation("/cart", nil)
				return nil
			}},
			&simNode{testID: "remove-" + it.ProductID, role: "button", text: "Remove", click: func(context.Context) error {
				if _, err := d.store.RemoveFromCart(d.cartID, it.ProductID); err != nil {
					d.log.Printf("sim cart remove: %v", err)
				}
				d.setLocation("/cart", nil)
				return nil
			}},
		)
	}

	pricing := c.Pricing()
	nodes = append(nodes,
		&simNode{testID: "cart-subtotal", text: store.FormatMoney(pricing.Subtotal)},
		&simNode{testID: "cart-tax", text: store.FormatMoney(pricing.Tax)},
		&simNode{testID: "cart-shipping", text: store.FormatMoney(pricing.Shipping)},
		&simNode{testID: "cart-total", text: store.FormatMoney(pricing.Total)},
		&simNode{testID: "checkout-link", role: "link", text: "Proceed to Checkout", click: func(context.Context) error {
			d.setLocation("/checkout", nil)
			return nil
		}},
	)
	return nodes
}

var simStepFields = map[int][]string{
	simStepInformation: {"name", "email", "phone"},
	simStepShipping:    {"line1", "city", "state", "zip", "country"},
	simStepPayment:     {"cardNumber", "expiry", "cvv"},
}

func (d *SimDriver) checkoutNodes() []*simNode {
	cs := d.checkout
	if cs == nil {
		return nil
	}
	c, err := d.currentCart()
	if err != nil {
		return nil
	}

	nodes := []*simNode{
		{testID: "checkout-step", text: simStepNames[cs.step]},
		{testID: "checkout-total", text: store.FormatMoney(c.Pricing().Total)},
	}
	for _, f := range simStepFields[cs.step] {
		nodes = append(nodes, &simNode{name: f, value: cs.fields[f]})
	}

	// saveTyped mirrors the live form post: whatever was entered on this
	// step travels with the submit, back or forward.
	saveTyped := func() {
		for name, v := range d.fields {
			cs.fields[name] = v
		}
	}

	if cs.step > simStepInformation {
		nodes = append(nodes, &simNode{testID: "back-button", role: "button", text: "Back", click: func(context.Context) error {
			saveTyped()
			step := cs.step - 1
			cs.reached = max(cs.reached, cs.step)
			d.setLocation("/checkout", url.Values{"step": {simStepNames[step]}})
			return nil
		}})
	}

	if cs.step < simStepPayment {
		next := cs.step + 1
		nodes = append(nodes, &simNode{testID: "continue-button", role: "button", text: "Continue", click: func(context.Context) error {
			saveTyped()
			cs.reached = max(cs.reached, next)
			d.setLocation("/checkout", url.Values{"step": {simStepNames[next]}})
			return nil
		}})
	} else {
		nodes = append(nodes, &simNode{testID: "place-order", role: "button", text: "Place Order", click: func(context.Context) error {
			saveTyped()
			in := store.OrderInput{
				CartID: d.cartID,
				Customer: store.Customer{
					Name:  cs.fields["name"],
					Email: cs.fields["email"],
					Phone: cs.fields["phone"],
				},
				Shipping: store.Address{
					Line1:   cs.fields["line1"],
					City:    cs.fields["city"],
					State:   cs.fields["state"],
					Zip:     cs.fields["zip"],
					Country: cs.fields["country"],
				},
				Payment: store.Payment{Type: "card", Last4: simLast4(cs.fields["cardNumber"])},
			}
			o, err := d.store.CreateOrder(in)
			if err != nil {
				// Like the live form, a rejected order re-renders the
				// payment step; the confirmation simply never appears.
				d.log.Printf("sim place order: %v", err)
				d.setLocation("/checkout", url.Values{"step": {simStepNames[simStepPayment]}})
				return nil
			}
			d.checkout = nil
			d.setLocation("/orders/"+o.ID+"/confirmation", nil)
			return nil
		}})
	}
	return nodes
}

func (d *SimDriver) confirmationNodes(orderID string) []*simNode {
	o, err := d.store.GetOrder(orderID)
	if err != nil {
		return nil
	}
	nodes := []*simNode{
		{testID: "order-confirmation", text: "Thank you for your order!"},
		{testID: "order-id", text: o.ID},
		{testID: "order-status", text: string(o.Status)},
		{testID: "order-total", text: store.FormatMoney(o.Pricing.Total)},
	}
	for _, it := range o.Items {
		nodes = append(nodes, &simNode{
			testID: "order-item",
			text:   it.Name,
			attrs:  map[string]string{"data-product-id": it.ProductID},
		})
	}
	return nodes
}

func simLast4(cardNumber string) string {
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

package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.Health)

	// JSON API consumed by the test framework's api suite.
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.GetProducts)
		r.Get("/cart", h.GetCart)
		r.Post("/cart", h.AddToCart)
		r.Put("/cart", h.UpdateCartItem)
		r.Delete("/cart", h.RemoveFromCart)
		r.Get("/orders", h.GetOrders)
		r.Post("/orders", h.CreateOrder)
		r.Put("/orders", h.UpdateOrderStatus)
	})

	// Rendered pages driven by the live browser backend.
	r.Get("/", h.Home)
	r.Get("/products", h.ProductList)
	r.Get("/products/{productID}", h.ProductDetail)
	r.Get("/cart", h.CartPage)
	r.Post("/cart/add", h.CartAdd)
	r.Post("/cart/update", h.CartUpdate)
	r.Post("/cart/remove", h.CartRemove)
	r.Get("/checkout", h.CheckoutPage)
	r.Post("/checkout", h.CheckoutSubmit)
	r.Post("/checkout/place", h.PlaceOrder)
	r.Get("/orders/{orderID}/confirmation", h.OrderConfirmation)

	return r
}

package router

import (
	"net/http"

	"ota-rewards/internal/handler"
	"ota-rewards/internal/middleware"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// Handlers groups the HTTP handlers mounted by New.
type Handlers struct {
	Rewards *handler.RewardHandler
	AddOns  *handler.AddOnHandler
	Cart    *handler.CartHandler
}

// New creates a new HTTP router with all routes and middleware configured.
func New(h Handlers, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Recovery -> RequestID -> RealIP -> Logging -> CORS
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logging(logger))
	r.Use(middleware.CORS)

	r.Get("/health", handler.Health)

	notFound := handler.NotFound(logger)
	r.NotFound(notFound)
	r.MethodNotAllowed(notFound)

	r.Route("/api/ota", func(r chi.Router) {
		r.Get("/user", h.Rewards.GetUser)
		r.Get("/rewards/user", h.Rewards.GetUserRewards)
		r.Get("/rewards/available", h.Rewards.GetAvailableRewards)
		r.Post("/vouchers/create", h.Rewards.CreateVoucher)

		r.Get("/addons", h.AddOns.GetAddOns)
		r.Get("/purchases/history", h.AddOns.GetPurchaseHistory)
		r.Post("/purchases/create", h.AddOns.Purchase)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.Cart.View)
			r.Delete("/", h.Cart.Clear)
			r.Post("/items", h.Cart.AddItem)
			r.Delete("/items/{addOnId}", h.Cart.RemoveItem)
			r.Post("/checkout", h.Cart.Checkout)
		})
	})

	return r
}

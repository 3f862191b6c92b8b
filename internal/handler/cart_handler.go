package handler

import (
	"net/http"

	"ota-rewards/internal/model"
	"ota-rewards/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// CartHandler handles session cart HTTP requests. The session is taken from
// the X-Session-ID header.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// View handles GET /api/ota/cart requests.
func (h *CartHandler) View(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, h.service.View(sessionID(r)))
}

// AddItem handles POST /api/ota/cart/items requests.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req model.AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	c, err := h.service.AddItem(r.Context(), sessionID(r), req.AddOnID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusOK, c)
}

// RemoveItem handles DELETE /api/ota/cart/items/{addOnId} requests.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	addOnID := chi.URLParam(r, "addOnId")
	writeOK(w, http.StatusOK, h.service.RemoveItem(sessionID(r), addOnID))
}

// Clear handles DELETE /api/ota/cart requests.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	writeOK(w, http.StatusOK, h.service.Clear(sessionID(r)))
}

// Checkout handles POST /api/ota/cart/checkout requests.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	purchase, err := h.service.Checkout(r.Context(), sessionID(r))
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusCreated, purchase)
}

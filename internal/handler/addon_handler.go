package handler

import (
	"net/http"

	"ota-rewards/internal/model"
	"ota-rewards/internal/service"

	"github.com/rs/zerolog"
)

// AddOnHandler handles add-on and purchase HTTP requests.
type AddOnHandler struct {
	service service.AddOnService
	logger  zerolog.Logger
}

// NewAddOnHandler creates a new add-on handler.
func NewAddOnHandler(service service.AddOnService, logger zerolog.Logger) *AddOnHandler {
	return &AddOnHandler{
		service: service,
		logger:  logger.With().Str("handler", "addon").Logger(),
	}
}

// GetAddOns handles GET /api/ota/addons requests.
func (h *AddOnHandler) GetAddOns(w http.ResponseWriter, r *http.Request) {
	addOns, err := h.service.GetAddOns(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusOK, addOns)
}

// GetPurchaseHistory handles GET /api/ota/purchases/history requests.
func (h *AddOnHandler) GetPurchaseHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.GetPurchaseHistory(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusOK, history)
}

// Purchase handles POST /api/ota/purchases/create requests.
func (h *AddOnHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	var req model.PurchaseRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	purchase, err := h.service.PurchaseAddOns(r.Context(), req.Items)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusCreated, purchase)
}

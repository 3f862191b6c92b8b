package handler

import (
	"net/http"

	"ota-rewards/internal/model"
	"ota-rewards/internal/service"

	"github.com/rs/zerolog"
)

// RewardHandler handles user and reward HTTP requests.
type RewardHandler struct {
	service service.RewardService
	logger  zerolog.Logger
}

// NewRewardHandler creates a new reward handler.
func NewRewardHandler(service service.RewardService, logger zerolog.Logger) *RewardHandler {
	return &RewardHandler{
		service: service,
		logger:  logger.With().Str("handler", "reward").Logger(),
	}
}

// GetUser handles GET /api/ota/user requests.
func (h *RewardHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.service.GetUser(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusOK, user)
}

// GetUserRewards handles GET /api/ota/rewards/user requests.
func (h *RewardHandler) GetUserRewards(w http.ResponseWriter, r *http.Request) {
	userRewards, err := h.service.GetUserRewards(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusOK, userRewards)
}

// GetAvailableRewards handles GET /api/ota/rewards/available requests.
func (h *RewardHandler) GetAvailableRewards(w http.ResponseWriter, r *http.Request) {
	rewards, err := h.service.GetAvailableRewards(r.Context())
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusOK, rewards)
}

// CreateVoucher handles POST /api/ota/vouchers/create requests.
func (h *RewardHandler) CreateVoucher(w http.ResponseWriter, r *http.Request) {
	var req model.CreateVoucherRequest
	if err := decodeJSON(w, r, &req); err != nil {
		WriteError(w, err, h.logger)
		return
	}

	userReward, err := h.service.CreateVoucher(r.Context(), req.RewardID)
	if err != nil {
		WriteError(w, err, h.logger)
		return
	}
	writeOK(w, http.StatusCreated, userReward)
}

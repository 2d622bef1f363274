package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// BuyerHandler is the admin approval queue for storefront registrations
type BuyerHandler struct {
	Buyers *services.BuyerService
}

func NewBuyerHandler(buyers *services.BuyerService) *BuyerHandler {
	return &BuyerHandler{Buyers: buyers}
}

// List handles GET /api/admin/buyers with optional status filter
func (h *BuyerHandler) List(w http.ResponseWriter, r *http.Request) {
	status := models.BuyerStatus(r.URL.Query().Get("status"))

	buyers, err := h.Buyers.List(r.Context(), status)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if buyers == nil {
		buyers = []models.Buyer{}
	}
	utils.JSON(w, http.StatusOK, buyers)
}

// Get handles GET /api/admin/buyers/{id}
func (h *BuyerHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid buyer ID")
		return
	}

	buyer, err := h.Buyers.Get(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, buyer)
}

// SetStatus handles PATCH /api/admin/buyers/{id}/status, moving a buyer
// through approve / reject / block
func (h *BuyerHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid buyer ID")
		return
	}

	var req struct {
		Status models.BuyerStatus `json:"status" validate:"required,oneof=pending approved rejected blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Buyers.SetStatus(r.Context(), id, req.Status); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Buyer status updated"})
}

package handlers

import (
	"encoding/json"
	"net/http"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"
)

// SettingHandler manages store-wide settings, admin only
type SettingHandler struct {
	Settings *services.SettingService
}

func NewSettingHandler(settings *services.SettingService) *SettingHandler {
	return &SettingHandler{Settings: settings}
}

// List handles GET /api/admin/settings
func (h *SettingHandler) List(w http.ResponseWriter, r *http.Request) {
	settings, err := h.Settings.All(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if settings == nil {
		settings = []models.Setting{}
	}
	utils.JSON(w, http.StatusOK, settings)
}

// Set handles PUT /api/admin/settings
func (h *SettingHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Key   string `json:"key" validate:"required"`
		Value string `json:"value" validate:"required"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Settings.Set(r.Context(), req.Key, req.Value); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Setting saved"})
}

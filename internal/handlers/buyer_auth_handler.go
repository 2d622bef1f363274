package handlers

import (
	"encoding/json"
	"net/http"

	"wholesale-backend/internal/auth"
	"wholesale-backend/internal/middleware"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"
)

// BuyerAuthHandler covers the storefront entrance: registration and the
// mobile + OTP login flow
type BuyerAuthHandler struct {
	Buyers *services.BuyerService
	OTP    *services.OTPService
	JWT    *auth.JWTManager
}

func NewBuyerAuthHandler(buyers *services.BuyerService, otp *services.OTPService, jwt *auth.JWTManager) *BuyerAuthHandler {
	return &BuyerAuthHandler{Buyers: buyers, OTP: otp, JWT: jwt}
}

// Register handles POST /api/auth/register
func (h *BuyerAuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterBuyerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	buyer, err := h.Buyers.Register(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, map[string]interface{}{
		"buyer":   buyer,
		"message": registrationMessage(buyer.Status),
	})
}

// RequestOTP handles POST /api/auth/otp/request
func (h *BuyerAuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mobile string `json:"mobile" validate:"required,len=10,numeric"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.OTP.Request(r.Context(), req.Mobile); err != nil {
		utils.Error(w, http.StatusForbidden, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, map[string]string{"message": "OTP sent"})
}

// VerifyOTP handles POST /api/auth/otp/verify and issues the buyer token
func (h *BuyerAuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Mobile     string `json:"mobile" validate:"required,len=10,numeric"`
		Code       string `json:"code" validate:"required"`
		RememberMe bool   `json:"remember_me"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	buyer, err := h.OTP.Verify(r.Context(), req.Mobile, req.Code)
	if err != nil {
		utils.Error(w, http.StatusUnauthorized, err.Error())
		return
	}

	token, err := h.JWT.GenerateBuyerToken(buyer, req.RememberMe)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"token": token,
		"buyer": buyer,
	})
}

// Profile handles GET /api/buyer/profile
func (h *BuyerAuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	buyer, err := h.Buyers.Get(r.Context(), buyerID)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, buyer)
}

func registrationMessage(status models.BuyerStatus) string {
	if status == models.BuyerStatusApproved {
		return "Registration complete, you can log in now"
	}
	return "Registration received, awaiting approval"
}

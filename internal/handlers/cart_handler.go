package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"wholesale-backend/internal/middleware"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// CartHandler is the buyer-facing cart API. Every route requires a buyer
// token; the buyer id always comes from the token, never the request.
type CartHandler struct {
	Cart *services.CartService
}

func NewCartHandler(cart *services.CartService) *CartHandler {
	return &CartHandler{Cart: cart}
}

// Get handles GET /api/cart
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	lines, total, count, err := h.Cart.Get(r.Context(), buyerID)
	if err != nil {
		writeCartError(w, err)
		return
	}

	writeCart(w, lines, total, count)
}

// Add handles POST /api/cart
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.AddToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := h.Cart.Add(r.Context(), buyerID, &req)
	if err != nil {
		writeCartError(w, err)
		return
	}

	writeCart(w, lines, models.CartTotal(lines), models.CartItemCount(lines))
}

// UpdateQuantity handles PUT /api/cart/{cartId}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	cartID := mux.Vars(r)["cartId"]

	var req models.UpdateCartQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	lines, err := h.Cart.UpdateQuantity(r.Context(), buyerID, cartID, req.Quantity)
	if err != nil {
		writeCartError(w, err)
		return
	}

	writeCart(w, lines, models.CartTotal(lines), models.CartItemCount(lines))
}

// Remove handles DELETE /api/cart/{cartId}
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}
	cartID := mux.Vars(r)["cartId"]

	lines, err := h.Cart.Remove(r.Context(), buyerID, cartID)
	if err != nil {
		writeCartError(w, err)
		return
	}

	writeCart(w, lines, models.CartTotal(lines), models.CartItemCount(lines))
}

// Clear handles DELETE /api/cart
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	if err := h.Cart.Clear(r.Context(), buyerID); err != nil {
		writeCartError(w, err)
		return
	}

	writeCart(w, []models.CartLine{}, 0, 0)
}

func writeCart(w http.ResponseWriter, lines []models.CartLine, total float64, count int) {
	if lines == nil {
		lines = []models.CartLine{}
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"items":      lines,
		"total":      total,
		"item_count": count,
	})
}

func writeCartError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrCartUnavailable):
		utils.Error(w, http.StatusServiceUnavailable, "Cart storage is unavailable")
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Cart line not found")
	default:
		utils.Error(w, http.StatusBadRequest, err.Error())
	}
}

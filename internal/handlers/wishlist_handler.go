package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"wholesale-backend/internal/middleware"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// WishlistHandler is the buyer's saved-products list
type WishlistHandler struct {
	Wishlist *services.WishlistService
}

func NewWishlistHandler(wishlist *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{Wishlist: wishlist}
}

// List handles GET /api/wishlist
func (h *WishlistHandler) List(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	products, err := h.Wishlist.List(r.Context(), buyerID)
	if err != nil {
		writeWishlistError(w, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	utils.JSON(w, http.StatusOK, products)
}

// Add handles POST /api/wishlist/{productId}
func (h *WishlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	productID, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.Wishlist.Add(r.Context(), buyerID, productID); err != nil {
		writeWishlistError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Added to wishlist"})
}

// Remove handles DELETE /api/wishlist/{productId}
func (h *WishlistHandler) Remove(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	productID, err := strconv.Atoi(mux.Vars(r)["productId"])
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.Wishlist.Remove(r.Context(), buyerID, productID); err != nil {
		writeWishlistError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}

func writeWishlistError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repositories.ErrCartUnavailable):
		utils.Error(w, http.StatusServiceUnavailable, "Wishlist storage is unavailable")
	case errors.Is(err, models.ErrNotFound):
		utils.Error(w, http.StatusNotFound, "Product not found")
	default:
		utils.Error(w, http.StatusBadRequest, err.Error())
	}
}

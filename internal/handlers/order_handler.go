package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"wholesale-backend/internal/middleware"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// OrderHandler covers checkout and the buyer's order history on the
// storefront side, and the full order desk on the admin side
type OrderHandler struct {
	Orders   *services.OrderService
	Buyers   *services.BuyerService
	Receipts *services.ReceiptService
}

func NewOrderHandler(orders *services.OrderService, buyers *services.BuyerService, receipts *services.ReceiptService) *OrderHandler {
	return &OrderHandler{Orders: orders, Buyers: buyers, Receipts: receipts}
}

// Checkout handles POST /api/orders/checkout
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	buyer, err := h.Buyers.Get(r.Context(), buyerID)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	order, err := h.Orders.Checkout(r.Context(), buyer, &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	utils.JSON(w, http.StatusCreated, order)
}

// MyOrders handles GET /api/orders/my
func (h *OrderHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	orders, err := h.Orders.ListForBuyer(r.Context(), buyerID)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	utils.JSON(w, http.StatusOK, orders)
}

// MyOrder handles GET /api/orders/my/{id}; a buyer can only read their own
// orders
func (h *OrderHandler) MyOrder(w http.ResponseWriter, r *http.Request) {
	buyerID, ok := middleware.GetBuyerIDFromContext(r.Context())
	if !ok {
		utils.Error(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if order.BuyerID != buyerID {
		utils.Error(w, http.StatusNotFound, "record not found")
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// List handles GET /api/admin/orders with optional status filter and paging
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	orders, err := h.Orders.List(r.Context(), models.OrderStatus(q.Get("status")), limit, offset)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	utils.JSON(w, http.StatusOK, orders)
}

// Get handles GET /api/admin/orders/{id}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	order, err := h.Orders.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// UpdateStatus handles PATCH /api/admin/orders/{id}/status
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.UpdateStatus(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// PartialDispatch handles PATCH /api/admin/orders/{id}/dispatch
func (h *OrderHandler) PartialDispatch(w http.ResponseWriter, r *http.Request) {
	var req models.PartialDispatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.UpdatePartialDispatch(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// RecordPayment handles POST /api/admin/orders/{id}/payments
func (h *OrderHandler) RecordPayment(w http.ResponseWriter, r *http.Request) {
	var req models.RecordPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	order, err := h.Orders.RecordPayment(r.Context(), mux.Vars(r)["id"], &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, order)
}

// Stats handles GET /api/admin/orders/stats
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	counts, err := h.Orders.Stats(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, counts)
}

// Receipt handles GET /api/admin/orders/{id}/receipt, a PDF download
func (h *OrderHandler) Receipt(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	order, err := h.Orders.Get(r.Context(), id)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	pdf, err := h.Receipts.OrderReceipt(r.Context(), order)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=receipt-%s.pdf", id))
	w.Write(pdf)
}

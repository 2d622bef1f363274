package handlers

import (
	"encoding/json"
	"net/http"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/services"
	"wholesale-backend/pkg/utils"

	"github.com/gorilla/mux"
)

// LedgerHandler exposes the payment journal to the back office
type LedgerHandler struct {
	Ledger   *services.LedgerService
	Receipts *services.ReceiptService
}

func NewLedgerHandler(ledger *services.LedgerService, receipts *services.ReceiptService) *LedgerHandler {
	return &LedgerHandler{Ledger: ledger, Receipts: receipts}
}

// List handles GET /api/admin/ledger, the full journal in order
func (h *LedgerHandler) List(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Ledger.List(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	utils.JSON(w, http.StatusOK, entries)
}

// Summary handles GET /api/admin/ledger/summary
func (h *LedgerHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.Ledger.Summary(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, summary)
}

// Statement handles GET /api/admin/ledger/statement, a PDF download
func (h *LedgerHandler) Statement(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Ledger.List(r.Context())
	if err != nil {
		utils.ServiceError(w, err)
		return
	}

	pdf, err := h.Receipts.LedgerStatement(r.Context(), entries)
	if err != nil {
		utils.Error(w, http.StatusInternalServerError, "Failed to generate statement")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=ledger-statement.pdf")
	w.Write(pdf)
}

// ByOrder handles GET /api/admin/ledger/order/{orderId}
func (h *LedgerHandler) ByOrder(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Ledger.EntriesForOrder(r.Context(), mux.Vars(r)["orderId"])
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.LedgerEntry{}
	}
	utils.JSON(w, http.StatusOK, entries)
}

// Create handles POST /api/admin/ledger
func (h *LedgerHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLedgerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.Ledger.Append(r.Context(), &req)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.JSON(w, http.StatusCreated, entry)
}

// Update handles PUT /api/admin/ledger/{txnId}
func (h *LedgerHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req models.CreateLedgerEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	entry, err := h.Ledger.Update(r.Context(), mux.Vars(r)["txnId"], &req)
	if err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, entry)
}

// Delete handles DELETE /api/admin/ledger/{txnId}
func (h *LedgerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Ledger.Delete(r.Context(), mux.Vars(r)["txnId"]); err != nil {
		utils.ServiceError(w, err)
		return
	}
	utils.JSON(w, http.StatusOK, map[string]string{"message": "Ledger entry deleted"})
}

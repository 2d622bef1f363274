package services

import (
	"bytes"
	"context"
	"fmt"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/timeutil"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReceiptService renders order receipts as PDF for download and sharing
type ReceiptService struct {
	Settings *SettingService
}

func NewReceiptService(settings *SettingService) *ReceiptService {
	return &ReceiptService{Settings: settings}
}

// OrderReceipt renders one order with its items, timeline and ledger-derived
// payment state into an A4 PDF.
func (s *ReceiptService) OrderReceipt(ctx context.Context, order *models.Order) ([]byte, error) {
	storeName := "Wholesale Store"
	if s.Settings != nil {
		if setting, err := s.Settings.Repo.Get(ctx, models.SettingStoreName); err == nil && setting.Value != "" {
			storeName = setting.Value
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Order Receipt", storeName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.FormatIST(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	// Order info box
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Order Information", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, fmt.Sprintf("Order: %s", order.ID), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Date: %s", order.Date), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Buyer: %s", order.BuyerName), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, fmt.Sprintf("Mobile: %s", order.BuyerMobile), "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, fmt.Sprintf("Status: %s", order.Status), "LRB", 1, "L", false, 0, "")
	pdf.Ln(5)

	// Items table
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Items", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(60, 7, "Product", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Color", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Qty", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Dispatched", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Rate", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	for _, item := range order.Items {
		name := item.Name
		if len(name) > 28 {
			name = name[:25] + "..."
		}
		pdf.CellFormat(60, 6, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 6, item.Color, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%d", item.Dispatched), "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("Rs. %.2f", item.Price), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("Rs. %.2f", item.Price*float64(item.Qty)), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(5)

	// Payment summary
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Payment Summary", "1", 1, "L", true, 0, "")

	advance := 0.0
	pending := order.Total
	if order.Payment != nil {
		advance = order.Payment.AdvanceReceived
		pending = order.Payment.BalancePending
	}

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(63, 8, fmt.Sprintf("Order Total: Rs. %.2f", order.Total), "1", 0, "C", false, 0, "")
	pdf.CellFormat(63, 8, fmt.Sprintf("Received: Rs. %.2f", advance), "1", 0, "C", false, 0, "")
	pdf.CellFormat(64, 8, fmt.Sprintf("Pending: Rs. %.2f", pending), "1", 1, "C", false, 0, "")

	if pending <= 0 {
		pdf.SetFillColor(200, 255, 200)
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(190, 10, "FULLY PAID", "1", 1, "C", true, 0, "")
	}

	// Timeline
	if len(order.Timeline) > 0 {
		pdf.Ln(5)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetFillColor(240, 240, 240)
		pdf.CellFormat(190, 8, "Order Timeline", "1", 1, "L", true, 0, "")

		pdf.SetFont("Arial", "", 10)
		for _, t := range order.Timeline {
			line := fmt.Sprintf("%s %s - %s", t.Date, t.Time, t.Status)
			if t.Note != "" {
				line += " (" + t.Note + ")"
			}
			pdf.CellFormat(190, 6, line, "1", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// LedgerStatement renders the full journal with its rollup into an A4 PDF
// for the back office.
func (s *ReceiptService) LedgerStatement(ctx context.Context, entries []models.LedgerEntry) ([]byte, error) {
	storeName := "Wholesale Store"
	if s.Settings != nil {
		if setting, err := s.Settings.Repo.Get(ctx, models.SettingStoreName); err == nil && setting.Value != "" {
			storeName = setting.Value
		}
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, fmt.Sprintf("%s - Ledger Statement", storeName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(190, 6, fmt.Sprintf("Generated: %s", timeutil.FormatIST(timeutil.Now(), timeutil.DisplayLayout)), "", 1, "C", false, 0, "")
	pdf.Ln(5)

	summary := models.Summarize(entries)
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(47, 8, fmt.Sprintf("Billed: Rs. %.2f", summary.TotalBilled), "1", 0, "C", false, 0, "")
	pdf.CellFormat(47, 8, fmt.Sprintf("Paid: Rs. %.2f", summary.TotalPaid), "1", 0, "C", false, 0, "")
	pdf.CellFormat(48, 8, fmt.Sprintf("Adjustments: Rs. %.2f", summary.Adjustments), "1", 0, "C", false, 0, "")
	pdf.CellFormat(48, 8, fmt.Sprintf("Pending: Rs. %.2f", summary.PendingBalance), "1", 1, "C", false, 0, "")
	pdf.Ln(5)

	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(35, 7, "Txn", "1", 0, "C", true, 0, "")
	pdf.CellFormat(22, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Type", "1", 0, "C", true, 0, "")
	pdf.CellFormat(58, 7, "Order / Description", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Amount", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Balance", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, e := range entries {
		ref := e.OrderID
		if ref == "" {
			ref = e.Description
		}
		if len(ref) > 34 {
			ref = ref[:31] + "..."
		}
		pdf.CellFormat(35, 6, e.TxnID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(22, 6, e.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(25, 6, string(e.Type), "1", 0, "C", false, 0, "")
		pdf.CellFormat(58, 6, ref, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("Rs. %.2f", e.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("Rs. %.2f", e.Balance), "1", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render statement: %w", err)
	}
	return buf.Bytes(), nil
}

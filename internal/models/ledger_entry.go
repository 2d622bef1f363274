package models

import (
	"math"
	"time"
)

// LedgerType represents the type of ledger entry
type LedgerType string

const (
	LedgerTypeBill       LedgerType = "bill"       // Amount billed for an order
	LedgerTypePayment    LedgerType = "payment"    // Money received against an order
	LedgerTypeAdjustment LedgerType = "adjustment" // Signed correction (discount, write-off)
)

// ValidLedgerType reports whether t is a known entry type
func ValidLedgerType(t LedgerType) bool {
	return t == LedgerTypeBill || t == LedgerTypePayment || t == LedgerTypeAdjustment
}

// LedgerEntry is one row of the payment journal. Balance is the running
// total after this entry is applied; it is a derived, order-dependent fold
// over the sequence, not an independent value.
type LedgerEntry struct {
	ID          int        `json:"-"`
	TxnID       string     `json:"id"` // e.g. TXN-1706172845000
	Date        string     `json:"date"`
	Type        LedgerType `json:"type"`
	OrderID     string     `json:"order_id"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"` // magnitude for bill/payment, signed for adjustment
	Balance     float64    `json:"balance"`
	Method      string     `json:"payment_method,omitempty"`
	Notes       string     `json:"notes,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Delta returns the signed effect of the entry on the running balance:
// bills add their magnitude, payments subtract theirs, adjustments apply
// their amount as given.
func (e *LedgerEntry) Delta() float64 {
	switch e.Type {
	case LedgerTypeBill:
		return math.Abs(e.Amount)
	case LedgerTypePayment:
		return -math.Abs(e.Amount)
	default:
		return e.Amount
	}
}

// RecomputeBalances refolds the stored balances of entries[from:] in place.
// The starting balance is taken from entries[from-1], or zero when from is
// the head of the list. Entry order and types are preserved; only balances
// are overwritten.
func RecomputeBalances(entries []LedgerEntry, from int) {
	if from < 0 {
		from = 0
	}
	balance := 0.0
	if from > 0 && from <= len(entries) {
		balance = entries[from-1].Balance
	}
	for i := from; i < len(entries); i++ {
		balance += entries[i].Delta()
		entries[i].Balance = balance
	}
}

// LedgerSummary is the storefront-facing rollup of the journal
type LedgerSummary struct {
	TotalBilled    float64 `json:"total_billed"`
	TotalPaid      float64 `json:"total_paid"`
	Adjustments    float64 `json:"adjustments"`
	PendingBalance float64 `json:"pending_balance"`
}

// Summarize computes billed/paid/adjustment totals; pending balance is
// clamped at zero for display, matching the storefront ledger page.
func Summarize(entries []LedgerEntry) LedgerSummary {
	var s LedgerSummary
	for _, e := range entries {
		switch e.Type {
		case LedgerTypeBill:
			s.TotalBilled += math.Abs(e.Amount)
		case LedgerTypePayment:
			s.TotalPaid += math.Abs(e.Amount)
		case LedgerTypeAdjustment:
			s.Adjustments += e.Amount
		}
	}
	s.PendingBalance = s.TotalBilled - s.TotalPaid + s.Adjustments
	if s.PendingBalance < 0 {
		s.PendingBalance = 0
	}
	return s
}

// CreateLedgerEntryRequest is used when appending or editing an entry
type CreateLedgerEntryRequest struct {
	Date        string     `json:"date"`
	Type        LedgerType `json:"type" validate:"required,oneof=bill payment adjustment"`
	OrderID     string     `json:"order_id" validate:"required"`
	Description string     `json:"description"`
	Amount      float64    `json:"amount"`
	Method      string     `json:"payment_method"`
	Notes       string     `json:"notes"`
}

// ValidAmount reports whether a parsed amount is a finite number. Entries
// carrying NaN or infinities are rejected before any mutation.
func ValidAmount(amount float64) bool {
	return !math.IsNaN(amount) && !math.IsInf(amount, 0)
}

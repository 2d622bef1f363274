package models

import (
	"fmt"
	"time"

	"wholesale-backend/internal/timeutil"
)

// OrderStatus is the fulfilment state of an order
type OrderStatus string

const (
	OrderStatusReceived            OrderStatus = "received"
	OrderStatusPacked              OrderStatus = "packed"
	OrderStatusPartiallyDispatched OrderStatus = "partially-dispatched"
	OrderStatusDispatched          OrderStatus = "dispatched"
	OrderStatusDelivered           OrderStatus = "delivered"
)

// ValidOrderStatus reports whether s is one of the five known states
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusReceived, OrderStatusPacked, OrderStatusPartiallyDispatched,
		OrderStatusDispatched, OrderStatusDelivered:
		return true
	}
	return false
}

// PaymentStatus is derived from the ledger entries of an order
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusAdvance PaymentStatus = "advance_received"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// OrderItem is a product snapshot at checkout. Dispatched and Pending always
// sum to Qty.
type OrderItem struct {
	Name       string  `json:"name"`
	Code       string  `json:"code,omitempty"`
	Color      string  `json:"color,omitempty"`
	Qty        int     `json:"qty"`
	Price      float64 `json:"price"`
	Dispatched int     `json:"dispatched"`
	Pending    int     `json:"pending"`
}

// TimelineEntry is one row of the order's audit trail. One is appended on
// every status transition; none are ever removed.
type TimelineEntry struct {
	Status OrderStatus `json:"status"`
	Date   string      `json:"date"`
	Time   string      `json:"time"`
	Note   string      `json:"note,omitempty"`
}

// Order is a placed wholesale order. Total is fixed at creation and not
// recomputed. Payment state is not stored here; it is derived from the
// ledger (see PaymentSummary).
type Order struct {
	ID          string          `json:"id"` // e.g. ORD-2026-483920
	Date        string          `json:"date"`
	Status      OrderStatus     `json:"status"`
	Items       []OrderItem     `json:"items"`
	Total       float64         `json:"total"`
	Notes       string          `json:"notes,omitempty"`
	BuyerID     int             `json:"buyer_id"`
	BuyerName   string          `json:"buyer_name"`
	BuyerMobile string          `json:"buyer_mobile"`
	Timeline    []TimelineEntry `json:"timeline"`
	CreatedAt   time.Time       `json:"created_at"`

	// Derived from the ledger on read; zero-valued until attached
	Payment *PaymentSummary `json:"payment,omitempty"`
}

// PaymentSummary is the ledger-derived payment state of an order
type PaymentSummary struct {
	AdvanceReceived float64         `json:"advance_received"`
	BalancePending  float64         `json:"balance_pending"`
	Status          PaymentStatus   `json:"status"`
	Payments        []PaymentRecord `json:"payments"`
}

// PaymentRecord is one payment against the order, as recorded in the ledger
type PaymentRecord struct {
	Amount float64 `json:"amount"`
	Method string  `json:"method"`
	Date   string  `json:"date"`
}

// ApplyStatus sets the target status unconditionally and appends a timeline
// entry stamped in IST. Transitions are operator-driven: any of the five
// states may be set from any other, and the timeline is the audit trail.
func (o *Order) ApplyStatus(status OrderStatus, note string, now time.Time) {
	o.Status = status
	o.Timeline = append(o.Timeline, TimelineEntry{
		Status: status,
		Date:   timeutil.FormatIST(now, timeutil.DateLayout),
		Time:   timeutil.FormatIST(now, timeutil.ClockLayout),
		Note:   note,
	})
}

// ApplyPartialDispatch records the dispatched count for one line item and
// recomputes the order status from dispatch completeness: any pending
// quantity leaves the order partially-dispatched, none leaves it dispatched.
// The recompute never moves the order back to received or packed.
func (o *Order) ApplyPartialDispatch(itemIndex, dispatchedQty int) error {
	if itemIndex < 0 || itemIndex >= len(o.Items) {
		return fmt.Errorf("item index %d out of range", itemIndex)
	}
	item := &o.Items[itemIndex]
	if dispatchedQty < 0 || dispatchedQty > item.Qty {
		return fmt.Errorf("dispatched quantity %d out of range 0..%d", dispatchedQty, item.Qty)
	}
	item.Dispatched = dispatchedQty
	item.Pending = item.Qty - dispatchedQty

	o.Status = OrderStatusDispatched
	for _, it := range o.Items {
		if it.Pending > 0 {
			o.Status = OrderStatusPartiallyDispatched
			break
		}
	}
	return nil
}

// DerivePaymentSummary computes an order's payment state from its ledger
// entries. The ledger is the single source of truth: advance received is the
// sum of payment entries for the order, balance pending is clamped at zero.
func DerivePaymentSummary(total float64, entries []LedgerEntry) PaymentSummary {
	s := PaymentSummary{Status: PaymentStatusPending, Payments: []PaymentRecord{}}
	for _, e := range entries {
		if e.Type != LedgerTypePayment {
			continue
		}
		amount := e.Amount
		if amount < 0 {
			amount = -amount
		}
		s.AdvanceReceived += amount
		s.Payments = append(s.Payments, PaymentRecord{
			Amount: amount,
			Method: e.Method,
			Date:   e.Date,
		})
	}
	s.BalancePending = total - s.AdvanceReceived
	if s.BalancePending <= 0 {
		s.BalancePending = 0
		s.Status = PaymentStatusPaid
	} else if s.AdvanceReceived > 0 {
		s.Status = PaymentStatusAdvance
	}
	return s
}

// CheckoutRequest places an order from the buyer's server-side cart
type CheckoutRequest struct {
	Notes string `json:"notes"`
}

// UpdateOrderStatusRequest moves an order to a new fulfilment state
type UpdateOrderStatusRequest struct {
	Status OrderStatus `json:"status" validate:"required,oneof=received packed partially-dispatched dispatched delivered"`
	Note   string      `json:"note"`
}

// PartialDispatchRequest records the dispatched count for one line item
type PartialDispatchRequest struct {
	ItemIndex     int `json:"item_index" validate:"min=0"`
	DispatchedQty int `json:"dispatched_qty" validate:"min=0"`
}

// RecordPaymentRequest appends a payment against an order
type RecordPaymentRequest struct {
	Amount float64 `json:"amount" validate:"gt=0"`
	Method string  `json:"method" validate:"required"`
	Date   string  `json:"date"`
	Notes  string  `json:"notes"`
}

// NewOrderID builds the human-readable order id used across the system,
// e.g. ORD-2026-483920 (year plus the last six digits of the unix clock).
func NewOrderID(now time.Time) string {
	ms := now.UnixMilli()
	return fmt.Sprintf("ORD-%d-%06d", now.Year(), ms%1000000)
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOrder() *Order {
	return &Order{
		ID:    "ORD-2026-000123",
		Total: 5000,
		Items: []OrderItem{
			{Name: "Cotton Saree", Qty: 20, Price: 150, Dispatched: 0, Pending: 20},
			{Name: "Silk Dupatta", Qty: 10, Price: 200, Dispatched: 0, Pending: 10},
		},
		Status: OrderStatusReceived,
	}
}

func TestApplyStatusAppendsTimeline(t *testing.T) {
	order := testOrder()
	now := time.Date(2026, 1, 25, 10, 30, 0, 0, time.UTC)

	order.ApplyStatus(OrderStatusPacked, "Packed by warehouse", now)
	order.ApplyStatus(OrderStatusDispatched, "", now.Add(time.Hour))

	assert.Equal(t, OrderStatusDispatched, order.Status)
	require.Len(t, order.Timeline, 2)
	assert.Equal(t, OrderStatusPacked, order.Timeline[0].Status)
	assert.Equal(t, "Packed by warehouse", order.Timeline[0].Note)
	assert.Equal(t, OrderStatusDispatched, order.Timeline[1].Status)
	assert.NotEmpty(t, order.Timeline[0].Date)
	assert.NotEmpty(t, order.Timeline[0].Time)
}

func TestApplyStatusAnyTransition(t *testing.T) {
	// Operator-driven transitions are unrestricted, including backwards
	order := testOrder()
	now := time.Now()

	order.ApplyStatus(OrderStatusDelivered, "", now)
	order.ApplyStatus(OrderStatusReceived, "reopened", now)

	assert.Equal(t, OrderStatusReceived, order.Status)
	assert.Len(t, order.Timeline, 2)
}

func TestApplyPartialDispatch(t *testing.T) {
	order := testOrder()

	err := order.ApplyPartialDispatch(0, 15)
	require.NoError(t, err)

	assert.Equal(t, 15, order.Items[0].Dispatched)
	assert.Equal(t, 5, order.Items[0].Pending)
	assert.Equal(t, OrderStatusPartiallyDispatched, order.Status)
}

func TestApplyPartialDispatchCompletes(t *testing.T) {
	order := testOrder()

	require.NoError(t, order.ApplyPartialDispatch(0, 20))
	assert.Equal(t, OrderStatusPartiallyDispatched, order.Status)

	require.NoError(t, order.ApplyPartialDispatch(1, 10))
	assert.Equal(t, OrderStatusDispatched, order.Status)

	// Reducing a line reopens the partial state
	require.NoError(t, order.ApplyPartialDispatch(1, 4))
	assert.Equal(t, OrderStatusPartiallyDispatched, order.Status)
}

func TestApplyPartialDispatchInvariant(t *testing.T) {
	order := testOrder()

	for qty := 0; qty <= 20; qty++ {
		require.NoError(t, order.ApplyPartialDispatch(0, qty))
		assert.Equal(t, order.Items[0].Qty, order.Items[0].Dispatched+order.Items[0].Pending)
	}
}

func TestApplyPartialDispatchRejectsOutOfRange(t *testing.T) {
	order := testOrder()

	assert.Error(t, order.ApplyPartialDispatch(-1, 5))
	assert.Error(t, order.ApplyPartialDispatch(2, 5))
	assert.Error(t, order.ApplyPartialDispatch(0, -1))
	assert.Error(t, order.ApplyPartialDispatch(0, 21))

	// Failed calls leave the order untouched
	assert.Equal(t, OrderStatusReceived, order.Status)
	assert.Zero(t, order.Items[0].Dispatched)
}

func TestDerivePaymentSummary(t *testing.T) {
	entries := []LedgerEntry{
		{Type: LedgerTypeBill, OrderID: "ORD-1", Amount: 5000},
		{Type: LedgerTypePayment, OrderID: "ORD-1", Amount: 2000, Method: "UPI", Date: "2026-01-25"},
		{Type: LedgerTypePayment, OrderID: "ORD-1", Amount: 1000, Method: "Cash", Date: "2026-01-27"},
	}

	s := DerivePaymentSummary(5000, entries)

	assert.InDelta(t, 3000.0, s.AdvanceReceived, 0.001)
	assert.InDelta(t, 2000.0, s.BalancePending, 0.001)
	assert.Equal(t, PaymentStatusAdvance, s.Status)
	require.Len(t, s.Payments, 2)
	assert.Equal(t, "UPI", s.Payments[0].Method)
}

func TestDerivePaymentSummaryStates(t *testing.T) {
	assert.Equal(t, PaymentStatusPending, DerivePaymentSummary(5000, nil).Status)

	paid := DerivePaymentSummary(5000, []LedgerEntry{
		{Type: LedgerTypePayment, Amount: 5000},
	})
	assert.Equal(t, PaymentStatusPaid, paid.Status)
	assert.Zero(t, paid.BalancePending)

	// Overpayment clamps pending at zero
	over := DerivePaymentSummary(5000, []LedgerEntry{
		{Type: LedgerTypePayment, Amount: 6000},
	})
	assert.Equal(t, PaymentStatusPaid, over.Status)
	assert.Zero(t, over.BalancePending)
}

func TestDerivePaymentSummaryIgnoresNonPayments(t *testing.T) {
	s := DerivePaymentSummary(1000, []LedgerEntry{
		{Type: LedgerTypeBill, Amount: 1000},
		{Type: LedgerTypeAdjustment, Amount: -200},
	})

	assert.Zero(t, s.AdvanceReceived)
	assert.InDelta(t, 1000.0, s.BalancePending, 0.001)
	assert.Equal(t, PaymentStatusPending, s.Status)
}

func TestNewOrderID(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	id := NewOrderID(now)

	assert.Regexp(t, `^ORD-2026-\d{6}$`, id)
}

func TestValidOrderStatus(t *testing.T) {
	for _, s := range []OrderStatus{
		OrderStatusReceived, OrderStatusPacked, OrderStatusPartiallyDispatched,
		OrderStatusDispatched, OrderStatusDelivered,
	} {
		assert.True(t, ValidOrderStatus(s))
	}
	assert.False(t, ValidOrderStatus("cancelled"))
	assert.False(t, ValidOrderStatus(""))
}

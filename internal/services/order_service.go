package services

import (
	"context"
	"fmt"

	"wholesale-backend/internal/cache"
	"wholesale-backend/internal/events"
	"wholesale-backend/internal/feed"
	"wholesale-backend/internal/metrics"
	"wholesale-backend/internal/models"
	"wholesale-backend/internal/repositories"
	"wholesale-backend/internal/timeutil"
)

// OrderService drives the order lifecycle from checkout to delivery. The
// order row never stores payment state; everything payment-related is
// derived from the ledger on read.
type OrderService struct {
	OrderRepo *repositories.OrderRepository
	Ledger    *LedgerService
	Cart      *CartService
	Publisher *events.Publisher
	Feed      *feed.Hub
}

func NewOrderService(
	orderRepo *repositories.OrderRepository,
	ledger *LedgerService,
	cart *CartService,
	publisher *events.Publisher,
	hub *feed.Hub,
) *OrderService {
	return &OrderService{
		OrderRepo: orderRepo,
		Ledger:    ledger,
		Cart:      cart,
		Publisher: publisher,
		Feed:      hub,
	}
}

// Checkout turns the buyer's cart into an order. The cart snapshot becomes
// the order items with nothing dispatched yet, a bill entry lands in the
// ledger for the order total, and the cart is cleared.
func (s *OrderService) Checkout(ctx context.Context, buyer *models.Buyer, req *models.CheckoutRequest) (*models.Order, error) {
	lines, err := s.Cart.CartRepo.Get(ctx, buyer.ID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("cart is empty")
	}

	now := timeutil.Now()
	order := &models.Order{
		ID:          models.NewOrderID(now),
		Date:        timeutil.FormatIST(now, timeutil.DateLayout),
		Total:       models.CartTotal(lines),
		Notes:       req.Notes,
		BuyerID:     buyer.ID,
		BuyerName:   buyer.BuyerName,
		BuyerMobile: buyer.Mobile,
		CreatedAt:   now,
	}
	for _, l := range lines {
		order.Items = append(order.Items, models.OrderItem{
			Name:       l.Name,
			Code:       l.Code,
			Color:      l.Color,
			Qty:        l.Quantity,
			Price:      l.Price,
			Dispatched: 0,
			Pending:    l.Quantity,
		})
	}
	order.ApplyStatus(models.OrderStatusReceived, "Order placed", now)

	if err := s.OrderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	// The bill entry anchors the order in the ledger; payment status is
	// derived against it from here on
	_, err = s.Ledger.Append(ctx, &models.CreateLedgerEntryRequest{
		Type:        models.LedgerTypeBill,
		OrderID:     order.ID,
		Description: fmt.Sprintf("Bill for order %s (%s)", order.ID, buyer.ShopName),
		Amount:      order.Total,
	})
	if err != nil {
		logger.Error().Err(err).Str("order_id", order.ID).Msg("failed to append bill entry")
	}

	if err := s.Cart.Clear(ctx, buyer.ID); err != nil {
		logger.Warn().Err(err).Int("buyer_id", buyer.ID).Msg("failed to clear cart after checkout")
	}

	metrics.OrdersPlacedTotal.Inc()
	cache.InvalidateOrderCaches(ctx)
	s.Publisher.PublishOrderPlaced(ctx, order)
	if s.Feed != nil {
		s.Feed.Notify("order", fmt.Sprintf("New order %s from %s", order.ID, buyer.ShopName), order)
	}

	logger.Info().Str("order_id", order.ID).Int("buyer_id", buyer.ID).
		Float64("total", order.Total).Int("items", len(order.Items)).Msg("order placed")

	s.attachPayment(ctx, order)
	return order, nil
}

// Get returns one order with its ledger-derived payment state attached
func (s *OrderService) Get(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.OrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.attachPayment(ctx, order)
	return order, nil
}

// List returns orders newest first, optionally filtered by status
func (s *OrderService) List(ctx context.Context, status models.OrderStatus, limit, offset int) ([]models.Order, error) {
	if status != "" && !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("unknown order status %q", status)
	}
	orders, err := s.OrderRepo.GetAll(ctx, status, limit, offset)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		s.attachPayment(ctx, &orders[i])
	}
	return orders, nil
}

// ListForBuyer returns a buyer's own orders
func (s *OrderService) ListForBuyer(ctx context.Context, buyerID int) ([]models.Order, error) {
	orders, err := s.OrderRepo.GetByBuyer(ctx, buyerID)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		s.attachPayment(ctx, &orders[i])
	}
	return orders, nil
}

// UpdateStatus moves an order to a new state and appends a timeline entry.
// Transitions are operator-driven and unrestricted across the five states.
func (s *OrderService) UpdateStatus(ctx context.Context, id string, req *models.UpdateOrderStatusRequest) (*models.Order, error) {
	if !models.ValidOrderStatus(req.Status) {
		return nil, fmt.Errorf("unknown order status %q", req.Status)
	}

	order, err := s.OrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	order.ApplyStatus(req.Status, req.Note, timeutil.Now())
	if err := s.OrderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	cache.InvalidateOrderCaches(ctx)
	s.Publisher.PublishOrderStatus(ctx, order)
	if s.Feed != nil {
		s.Feed.Notify("order", fmt.Sprintf("Order %s moved to %s", order.ID, order.Status), nil)
	}

	logger.Info().Str("order_id", id).Str("status", string(req.Status)).Msg("order status updated")
	s.attachPayment(ctx, order)
	return order, nil
}

// UpdatePartialDispatch records the dispatched quantity for one line item
// and lets the order status follow dispatch completeness.
func (s *OrderService) UpdatePartialDispatch(ctx context.Context, id string, req *models.PartialDispatchRequest) (*models.Order, error) {
	order, err := s.OrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	prevStatus := order.Status
	if err := order.ApplyPartialDispatch(req.ItemIndex, req.DispatchedQty); err != nil {
		return nil, err
	}
	if order.Status != prevStatus {
		order.ApplyStatus(order.Status, "Dispatch quantities updated", timeutil.Now())
	}

	if err := s.OrderRepo.Update(ctx, order); err != nil {
		return nil, err
	}

	cache.InvalidateOrderCaches(ctx)
	s.Publisher.PublishOrderStatus(ctx, order)

	logger.Info().Str("order_id", id).Int("item", req.ItemIndex).
		Int("dispatched", req.DispatchedQty).Str("status", string(order.Status)).Msg("partial dispatch updated")
	s.attachPayment(ctx, order)
	return order, nil
}

// RecordPayment appends a payment entry to the ledger for this order and
// returns the order with its recomputed payment state.
func (s *OrderService) RecordPayment(ctx context.Context, id string, req *models.RecordPaymentRequest) (*models.Order, error) {
	order, err := s.OrderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	_, err = s.Ledger.Append(ctx, &models.CreateLedgerEntryRequest{
		Date:        req.Date,
		Type:        models.LedgerTypePayment,
		OrderID:     order.ID,
		Description: fmt.Sprintf("Payment against order %s", order.ID),
		Amount:      req.Amount,
		Method:      req.Method,
		Notes:       req.Notes,
	})
	if err != nil {
		return nil, err
	}

	s.attachPayment(ctx, order)
	return order, nil
}

// Stats returns order counts by status for the admin dashboard
func (s *OrderService) Stats(ctx context.Context) (map[models.OrderStatus]int, error) {
	return s.OrderRepo.CountByStatus(ctx)
}

// attachPayment derives the payment summary from the order's ledger slice.
// A read failure leaves Payment nil rather than failing the whole request.
func (s *OrderService) attachPayment(ctx context.Context, order *models.Order) {
	entries, err := s.Ledger.EntriesForOrder(ctx, order.ID)
	if err != nil {
		logger.Warn().Err(err).Str("order_id", order.ID).Msg("failed to derive payment summary")
		return
	}
	summary := models.DerivePaymentSummary(order.Total, entries)
	order.Payment = &summary
}

// Package events publishes order and payment lifecycle events to Kafka so
// downstream consumers (notifications, analytics) can react without being
// in the request path.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"wholesale-backend/internal/models"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "events").Logger()

const (
	EventOrderPlaced     = "order-placed"
	EventOrderStatus     = "order-status-changed"
	EventPaymentRecorded = "payment-recorded"
)

// NewWriter builds the shared Kafka writer. An empty broker list returns
// nil, which disables publishing; events are then logged and dropped.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	if len(brokers) == 0 {
		return nil
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
}

// Publisher wraps the Kafka writer. A nil writer disables publishing; every
// method degrades to a log line so checkout never fails on broker trouble.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(writer *kafka.Writer) *Publisher {
	return &Publisher{writer: writer}
}

// Close flushes and closes the underlying writer
func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

type orderEvent struct {
	Event   string        `json:"event"`
	OrderID string        `json:"order_id"`
	Status  string        `json:"status,omitempty"`
	BuyerID int           `json:"buyer_id,omitempty"`
	Total   float64       `json:"total,omitempty"`
	At      time.Time     `json:"at"`
	Order   *models.Order `json:"order,omitempty"`
}

type paymentEvent struct {
	Event   string    `json:"event"`
	TxnID   string    `json:"txn_id"`
	OrderID string    `json:"order_id"`
	Amount  float64   `json:"amount"`
	Method  string    `json:"method,omitempty"`
	At      time.Time `json:"at"`
}

// PublishOrderPlaced emits the checkout event with the full order snapshot
func (p *Publisher) PublishOrderPlaced(ctx context.Context, order *models.Order) {
	p.publish(ctx, fmt.Sprintf("order-%s", order.ID), orderEvent{
		Event:   EventOrderPlaced,
		OrderID: order.ID,
		Status:  string(order.Status),
		BuyerID: order.BuyerID,
		Total:   order.Total,
		At:      time.Now(),
		Order:   order,
	})
}

// PublishOrderStatus emits a status transition event
func (p *Publisher) PublishOrderStatus(ctx context.Context, order *models.Order) {
	p.publish(ctx, fmt.Sprintf("order-%s", order.ID), orderEvent{
		Event:   EventOrderStatus,
		OrderID: order.ID,
		Status:  string(order.Status),
		BuyerID: order.BuyerID,
		At:      time.Now(),
	})
}

// PublishPaymentRecorded emits a ledger payment event
func (p *Publisher) PublishPaymentRecorded(ctx context.Context, entry *models.LedgerEntry) {
	p.publish(ctx, fmt.Sprintf("txn-%s", entry.TxnID), paymentEvent{
		Event:   EventPaymentRecorded,
		TxnID:   entry.TxnID,
		OrderID: entry.OrderID,
		Amount:  entry.Amount,
		Method:  entry.Method,
		At:      time.Now(),
	})
}

func (p *Publisher) publish(ctx context.Context, key string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to encode event")
		return
	}

	if p == nil || p.writer == nil {
		logger.Debug().Str("key", key).Msg("event publishing disabled, dropping")
		return
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		logger.Error().Err(err).Str("key", key).Msg("failed to publish event")
	}
}

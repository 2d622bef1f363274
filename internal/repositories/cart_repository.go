package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wholesale-backend/internal/cache"
	"wholesale-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// ErrCartUnavailable is returned when Redis is down. The storefront keeps a
// client-side copy of the cart and retries, so this is soft-fail.
var ErrCartUnavailable = errors.New("cart storage unavailable")

// cartTTL keeps abandoned carts for a month before Redis drops them
const cartTTL = 30 * 24 * time.Hour

// CartRepository stores buyer carts as JSON blobs in Redis, one key per
// buyer. The cart is session state, not business history, so Redis rather
// than Postgres holds it.
type CartRepository struct {
	client *redis.Client
}

func NewCartRepository(client *redis.Client) *CartRepository {
	return &CartRepository{client: client}
}

// Get returns the buyer's cart lines, empty when no cart exists
func (r *CartRepository) Get(ctx context.Context, buyerID int) ([]models.CartLine, error) {
	if r.client == nil {
		return nil, ErrCartUnavailable
	}

	data, err := r.client.Get(ctx, r.key(buyerID)).Bytes()
	if err == redis.Nil {
		return []models.CartLine{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var lines []models.CartLine
	if err := json.Unmarshal(data, &lines); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return lines, nil
}

// Save replaces the buyer's cart
func (r *CartRepository) Save(ctx context.Context, buyerID int, lines []models.CartLine) error {
	if r.client == nil {
		return ErrCartUnavailable
	}

	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.client.Set(ctx, r.key(buyerID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear drops the buyer's cart, used after checkout
func (r *CartRepository) Clear(ctx context.Context, buyerID int) error {
	if r.client == nil {
		return ErrCartUnavailable
	}
	return r.client.Del(ctx, r.key(buyerID)).Err()
}

func (r *CartRepository) key(buyerID int) string {
	return fmt.Sprintf(cache.CartKeyFmt, buyerID)
}

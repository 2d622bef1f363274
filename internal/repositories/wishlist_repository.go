package repositories

import (
	"context"
	"fmt"
	"strconv"

	"wholesale-backend/internal/cache"

	"github.com/redis/go-redis/v9"
)

// WishlistRepository stores saved product ids as a Redis set per buyer
type WishlistRepository struct {
	client *redis.Client
}

func NewWishlistRepository(client *redis.Client) *WishlistRepository {
	return &WishlistRepository{client: client}
}

// Get returns the saved product ids
func (r *WishlistRepository) Get(ctx context.Context, buyerID int) ([]int, error) {
	if r.client == nil {
		return nil, ErrCartUnavailable
	}

	members, err := r.client.SMembers(ctx, r.key(buyerID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load wishlist: %w", err)
	}

	ids := make([]int, 0, len(members))
	for _, m := range members {
		id, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Add saves a product
func (r *WishlistRepository) Add(ctx context.Context, buyerID, productID int) error {
	if r.client == nil {
		return ErrCartUnavailable
	}
	return r.client.SAdd(ctx, r.key(buyerID), productID).Err()
}

// Remove unsaves a product
func (r *WishlistRepository) Remove(ctx context.Context, buyerID, productID int) error {
	if r.client == nil {
		return ErrCartUnavailable
	}
	return r.client.SRem(ctx, r.key(buyerID), productID).Err()
}

func (r *WishlistRepository) key(buyerID int) string {
	return fmt.Sprintf(cache.WishlistKeyFmt, buyerID)
}

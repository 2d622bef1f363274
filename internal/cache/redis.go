package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cart and wishlist key formats, keyed by buyer id
const (
	CartKeyFmt     = "cart:%d"
	WishlistKeyFmt = "wishlist:%d"
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection leaves the
// client nil; callers degrade to uncached reads and carts fall back to
// the client-side copy.
func Init() error {
	host := os.Getenv("REDIS_SERVICE_HOST")
	if host == "" {
		host = "redis"
	}
	port := os.Getenv("REDIS_SERVICE_PORT")
	if port == "" {
		port = "6379"
	}

	client = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when the cache is down
func GetClient() *redis.Client {
	return client
}

// hashCredentials creates a hash of email+password for cache key
func hashCredentials(email, password string) string {
	h := sha256.New()
	h.Write([]byte(email + ":" + password))
	return "auth:" + hex.EncodeToString(h.Sum(nil))[:32]
}

// GetCachedAuth checks if staff credentials are cached and valid
func GetCachedAuth(ctx context.Context, email, password string) (int, bool) {
	if client == nil {
		return 0, false
	}
	key := hashCredentials(email, password)
	userID, err := client.Get(ctx, key).Int()
	if err != nil {
		return 0, false
	}
	return userID, true
}

// CacheAuth caches valid credentials for 15 minutes
func CacheAuth(ctx context.Context, email, password string, userID int) {
	if client == nil {
		return
	}
	client.Set(ctx, hashCredentials(email, password), userID, 15*time.Minute)
}

// InvalidateAuth removes cached auth (on password change or deactivation)
func InvalidateAuth(ctx context.Context, email, password string) {
	if client == nil {
		return
	}
	client.Del(ctx, hashCredentials(email, password))
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// ============================================
// Entity-Based Cache Invalidators
// ============================================

// InvalidateProductCaches clears catalog listings and product detail caches.
// Called when: CreateProduct, UpdateProduct, DeleteProduct
func InvalidateProductCaches(ctx context.Context) {
	InvalidatePattern(ctx, "products:*")
	InvalidateKeys(ctx, "catalog:home")
}

// InvalidateCatalogCaches clears collections, fabric categories and banners.
// Called when any of those admin screens writes
func InvalidateCatalogCaches(ctx context.Context) {
	InvalidatePattern(ctx, "collections:*")
	InvalidatePattern(ctx, "fabrics:*")
	InvalidatePattern(ctx, "banners:*")
	InvalidateKeys(ctx, "catalog:home")
}

// InvalidateOrderCaches clears order listing caches.
// Called when: Checkout, UpdateStatus, UpdatePartialDispatch
func InvalidateOrderCaches(ctx context.Context) {
	InvalidatePattern(ctx, "orders:*")
}

// InvalidateLedgerCaches clears ledger listing and summary caches. Order
// caches go with them since payment state is derived from the ledger.
// Called when: Append, Update, Delete on the journal
func InvalidateLedgerCaches(ctx context.Context) {
	InvalidatePattern(ctx, "ledger:*")
	InvalidateOrderCaches(ctx)
}

// InvalidateBuyerCaches clears buyer listing caches.
// Called when: Register, Approve, Reject, Block
func InvalidateBuyerCaches(ctx context.Context) {
	InvalidatePattern(ctx, "buyers:*")
}

// InvalidateSettingCaches clears setting caches.
// Called when: UpdateSetting
func InvalidateSettingCaches(ctx context.Context) {
	InvalidatePattern(ctx, "settings:*")
}

// ClearBuyerCart drops the server-side cart for a buyer after checkout
func ClearBuyerCart(ctx context.Context, buyerID int) {
	InvalidateKeys(ctx, fmt.Sprintf(CartKeyFmt, buyerID))
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}

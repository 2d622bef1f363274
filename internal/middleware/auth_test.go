package middleware

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBearerToken(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/cart", nil)
	r.Header.Set("Authorization", "Bearer abc.def.ghi")

	token, ok := bearerToken(r)
	assert.True(t, ok)
	assert.Equal(t, "abc.def.ghi", token)
}

func TestBearerTokenMissingOrMalformed(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/cart", nil)
	_, ok := bearerToken(r)
	assert.False(t, ok)

	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	_, ok = bearerToken(r)
	assert.False(t, ok)

	r.Header.Set("Authorization", "Bearer")
	_, ok = bearerToken(r)
	assert.False(t, ok)
}

func TestContextGetters(t *testing.T) {
	ctx := context.WithValue(context.Background(), UserIDKey, 5)
	ctx = context.WithValue(ctx, RoleKey, "accountant")
	ctx = context.WithValue(ctx, BuyerIDKey, 12)

	userID, ok := GetUserIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, 5, userID)

	role, ok := GetRoleFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "accountant", role)

	buyerID, ok := GetBuyerIDFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, 12, buyerID)

	_, ok = GetUserIDFromContext(context.Background())
	assert.False(t, ok)
}

package auth

import (
	"testing"

	"wholesale-backend/internal/config"
	"wholesale-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpirationHours = 1
	cfg.JWT.Issuer = "wholesale-backend"
	return NewJWTManager(cfg)
}

func TestStaffTokenRoundTrip(t *testing.T) {
	m := testManager()
	user := &models.User{ID: 7, Email: "admin@example.com", Role: "admin", IsActive: true}

	token, err := m.GenerateToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, 7, claims.UserID)
	assert.Equal(t, "admin@example.com", claims.Email)
	assert.Equal(t, "admin", claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	m := testManager()
	token, err := m.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Role: "admin"})
	require.NoError(t, err)

	other := testManager()
	other.cfg.JWT.Secret = "different-secret"
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	m := testManager()
	_, err := m.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestTempTokenRoundTrip(t *testing.T) {
	m := testManager()
	user := &models.User{ID: 3, Email: "acct@example.com"}

	token, err := m.GenerateTempToken(user)
	require.NoError(t, err)

	claims, err := m.ValidateTempToken(token)
	require.NoError(t, err)
	assert.Equal(t, 3, claims.UserID)
	assert.Equal(t, "2fa_pending", claims.Type)
}

func TestTempTokenIsNotASessionToken(t *testing.T) {
	// A session token must not be accepted where a temp token is expected
	// and vice versa
	m := testManager()
	user := &models.User{ID: 3, Email: "acct@example.com"}

	session, err := m.GenerateToken(user)
	require.NoError(t, err)
	_, err = m.ValidateTempToken(session)
	assert.Error(t, err)
}

func TestBuyerTokenRoundTrip(t *testing.T) {
	m := testManager()
	buyer := &models.Buyer{ID: 42, Mobile: "9876543210", ShopName: "Sharma Textiles"}

	token, err := m.GenerateBuyerToken(buyer, false)
	require.NoError(t, err)

	claims, err := m.ValidateBuyerToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.BuyerID)
	assert.Equal(t, "9876543210", claims.Mobile)
	assert.True(t, claims.IsBuyer)
}

func TestStaffTokenFailsBuyerGate(t *testing.T) {
	m := testManager()
	staff, err := m.GenerateToken(&models.User{ID: 1, Email: "admin@example.com", Role: "admin"})
	require.NoError(t, err)

	_, err = m.ValidateBuyerToken(staff)
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
}

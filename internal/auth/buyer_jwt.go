package auth

import (
	"errors"
	"time"

	"wholesale-backend/internal/models"
	"wholesale-backend/internal/timeutil"

	"github.com/golang-jwt/jwt/v5"
)

// BuyerClaims represents JWT claims for storefront buyer sessions
type BuyerClaims struct {
	BuyerID  int    `json:"buyer_id"`
	Mobile   string `json:"mobile"`
	ShopName string `json:"shop_name"`
	IsBuyer  bool   `json:"is_buyer"`
	jwt.RegisteredClaims
}

// GenerateBuyerToken creates a new JWT token for an approved buyer
func (j *JWTManager) GenerateBuyerToken(buyer *models.Buyer, rememberMe bool) (string, error) {
	now := timeutil.Now()
	var expirationTime time.Time

	if rememberMe {
		expirationTime = now.Add(30 * 24 * time.Hour)
	} else {
		expirationTime = now.Add(24 * time.Hour)
	}

	claims := &BuyerClaims{
		BuyerID:  buyer.ID,
		Mobile:   buyer.Mobile,
		ShopName: buyer.ShopName,
		IsBuyer:  true,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    j.cfg.JWT.Issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(j.cfg.JWT.Secret))
}

// ValidateBuyerToken verifies a buyer JWT token and returns the claims
func (j *JWTManager) ValidateBuyerToken(tokenString string) (*BuyerClaims, error) {
	claims := &BuyerClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(j.cfg.JWT.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	// Staff tokens must not pass the buyer gate
	if !claims.IsBuyer {
		return nil, errors.New("not a buyer token")
	}

	return claims, nil
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/foodrescue/foodrescue-api/internal/core/domain"
)

// SessionClaims is the claim set carried by every issued token.
type SessionClaims struct {
	Role   domain.Role `json:"role"`
	UserID int         `json:"id"`
	jwt.RegisteredClaims
}

// TokenIssuer signs HS256 session tokens with a fixed expiry window.
type TokenIssuer struct {
	secret   string
	tokenTTL time.Duration
}

func NewTokenIssuer(secret string, tokenTTL time.Duration) *TokenIssuer {
	if tokenTTL <= 0 {
		tokenTTL = 30 * time.Minute
	}
	return &TokenIssuer{secret: secret, tokenTTL: tokenTTL}
}

// Issue returns a signed token with claims {sub=email, role, id, exp}.
func (t *TokenIssuer) Issue(user *domain.User) (string, error) {
	claims := SessionClaims{
		Role:   user.Role,
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Email,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(t.tokenTTL)),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString([]byte(t.secret))
}

package auth

import (
	"fmt"
	"time"

	"github.com/myutami16/camp-store/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is the signed payload carried by a panel session token.
type Claims struct {
	AdminID  uint        `json:"id"`
	Username string      `json:"username"`
	Role     models.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec issues and parses signed session tokens. Stateless.
type TokenCodec struct {
	Secret   string
	Lifetime time.Duration
}

// NewTokenCodec constructs a codec; ttlHours <= 0 falls back to 24h.
func NewTokenCodec(secret string, ttlHours int) *TokenCodec {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &TokenCodec{
		Secret:   secret,
		Lifetime: time.Duration(ttlHours) * time.Hour,
	}
}

// Issue signs a token carrying the admin's id, username and role.
func (tc *TokenCodec) Issue(admin *models.Admin) (string, error) {
	now := time.Now()
	claims := &Claims{
		AdminID:  admin.ID,
		Username: admin.Username,
		Role:     admin.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tc.Lifetime)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(tc.Secret))
}

// Parse validates signature and expiry and returns the claims.
// Malformed or expired tokens are a normal input: the error is a value for the
// caller to map to 401, never a panic.
func (tc *TokenCodec) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(tc.Secret), nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

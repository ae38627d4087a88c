package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in the access token. IsStaff mirrors the identity
// provider's staff flag so handlers can gate staff-only routes without
// a database round trip.
type Claims struct {
	UserID  string `json:"uid"`
	IsStaff bool   `json:"staff"`
	jwt.RegisteredClaims
}

var (
	jwtSecret []byte
	tokenTTL  time.Duration
)

var ErrTokenInvalid = errors.New("token is invalid")

// Init must be called once at startup before tokens are issued or parsed.
func Init(secret string, ttlMinutes int) {
	jwtSecret = []byte(secret)
	tokenTTL = time.Duration(ttlMinutes) * time.Minute
}

// GenerateToken issues a signed access token for the user.
func GenerateToken(userID string, isStaff bool) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:  userID,
		IsStaff: isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtSecret)
}

// ParseToken validates the signature and expiry and returns the claims.
func ParseToken(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

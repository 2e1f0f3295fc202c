package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid token")

// RoleClaim mirrors one role grant inside a token. FranchiseID is present
// only for franchise-scoped roles.
type RoleClaim struct {
	Role        string `json:"role"`
	FranchiseID *uint  `json:"franchise_id,omitempty"`
}

// Claims are the custom JWT claims for a bearer session. Tokens carry no
// expiry; they stay valid until explicitly revoked.
type Claims struct {
	UserID uint        `json:"user_id"`
	Name   string      `json:"name"`
	Email  string      `json:"email"`
	Roles  []RoleClaim `json:"roles"`
	jwt.RegisteredClaims
}

// GenerateToken signs an HS256 bearer token for the given user identity.
func GenerateToken(userID uint, name, email string, roles []RoleClaim, secret string) (string, error) {
	claims := Claims{
		UserID: userID,
		Name:   name,
		Email:  email,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateToken parses and verifies a bearer token, returning its claims.
// Any structural or signature problem yields ErrInvalidToken.
func ValidateToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

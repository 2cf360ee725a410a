package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/HappyLadySauce/errors"
	"github.com/wanoverlay/manager/internal/pkg/code"
)

// Claims carries the identity embedded in a login token.
type Claims struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken signs a new token for the given identity, valid for expiration.
func GenerateToken(userID, username, role, secret string, expiration time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.WithCode(code.ErrEncrypt, "failed to sign token: %s", err.Error())
	}
	return signed, nil
}

// ParseToken verifies and decodes a token, returning its claims.
func ParseToken(tokenString, secret string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, errors.WithCode(code.ErrTokenInvalid, "%s", err.Error())
	}
	if !token.Valid {
		return nil, errors.WithCode(code.ErrTokenInvalid, "token is invalid")
	}
	return claims, nil
}

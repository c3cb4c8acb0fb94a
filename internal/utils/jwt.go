package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"token_type"`
	jwt.StandardClaims
}

// GenerateToken 生成指定類型的 JWT token
func GenerateToken(secret []byte, userID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	nowTime := time.Now()
	expireTime := nowTime.Add(ttl)

	claims := Claims{
		UserID:    userID,
		TokenType: tokenType,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: expireTime.Unix(),
			IssuedAt:  nowTime.Unix(),
		},
	}

	tokenClaims := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tokenClaims.SignedString(secret)
}

// ParseToken 解析和驗證 JWT token
func ParseToken(secret []byte, token string) (*Claims, error) {
	tokenClaims, err := jwt.ParseWithClaims(token, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	})

	if tokenClaims != nil {
		if claims, ok := tokenClaims.Claims.(*Claims); ok && tokenClaims.Valid {
			return claims, nil
		}
	}

	if err == nil {
		err = errors.New("invalid token")
	}
	return nil, err
}

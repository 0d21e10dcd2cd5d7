// Package jwtmw は企業トークンの発行と、企業・ユーザー認証用のGinミドルウェアを提供します。
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// generator はHS256で署名された企業トークンを発行します。
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator は指定された署名鍵と有効期間でgeneratorを生成します。
func NewGenerator(secret string, expiration time.Duration) *generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken は企業IDをsubに持つ署名済みトークンを生成します。
func (g *generator) GenerateToken(companyID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   companyID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

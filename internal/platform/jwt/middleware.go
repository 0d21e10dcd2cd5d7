package jwtmw

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"jobboard_backend/internal/platform/apperror"
)

// コンテキストキー。
const (
	ContextCompanyID = "companyID"
	ContextUserID    = "userID"
)

// HeaderCompanyToken は企業トークンを運ぶリクエストヘッダーです。
const HeaderCompanyToken = "token"

var (
	errNotAuthorized = apperror.New(apperror.KindUnauthorized, "Not authorized, Login Again")
	errMissingBearer = apperror.New(apperror.KindUnauthorized, "missing bearer token")
	errInvalidToken  = apperror.New(apperror.KindUnauthorized, "invalid token")
)

// CompanyAuthRequired は token ヘッダーの企業トークンを検証し、
// 企業IDをコンテキストに設定するミドルウェアを返します。
func CompanyAuthRequired(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			apperror.Abort(c, apperror.Internal(errors.New("jwt secret is not configured")))
			return
		}

		tokenStr := c.GetHeader(HeaderCompanyToken)
		if tokenStr == "" {
			apperror.Abort(c, errNotAuthorized)
			return
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			// HMAC以外の署名アルゴリズムは拒否
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			apperror.Abort(c, errNotAuthorized)
			return
		}

		c.Set(ContextCompanyID, claims.Subject)
		c.Next()
	}
}

// UserAuthRequired はIDプロバイダーが発行したRS256のBearerトークンを公開鍵で検証し、
// subをユーザーIDとしてコンテキストに設定するミドルウェアを返します。
func UserAuthRequired(key *rsa.PublicKey) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == nil {
			apperror.Abort(c, apperror.Internal(errors.New("identity provider key is not configured")))
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			apperror.Abort(c, errMissingBearer)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
		if err != nil || !token.Valid || claims.Subject == "" {
			apperror.Abort(c, errInvalidToken)
			return
		}

		c.Set(ContextUserID, claims.Subject)
		c.Next()
	}
}

// ParseRSAPublicKey はPEM形式の公開鍵を読み込みます。
// 環境変数に改行を \n でエスケープして設定した値も受け付けます。
func ParseRSAPublicKey(pemKey string) (*rsa.PublicKey, error) {
	pemKey = strings.ReplaceAll(pemKey, `\n`, "\n")
	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(pemKey))
	if err != nil {
		return nil, fmt.Errorf("parse rsa public key: %w", err)
	}
	return key, nil
}

// CompanyID はCompanyAuthRequiredが設定した企業IDを返します。
func CompanyID(c *gin.Context) string {
	return c.GetString(ContextCompanyID)
}

// UserID はUserAuthRequiredが設定したユーザーIDを返します。
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}

package jwtmw

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMain はテスト実行前にGinをテストモードに設定します。
func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func runMiddleware(h gin.HandlerFunc, header, value string) (*httptest.ResponseRecorder, *gin.Context) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if value != "" {
		c.Request.Header.Set(header, value)
	}
	h(c)
	return w, c
}

func signHS256(t *testing.T, secret, sub string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	s, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func signRS256(t *testing.T, key *rsa.PrivateKey, sub string, ttl time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	s, err := token.SignedString(key)
	require.NoError(t, err)
	return s
}

// TestCompanyAuthRequired は token ヘッダーの検証結果に応じてリクエストが通過または中断されることを検証します。
func TestCompanyAuthRequired(t *testing.T) {
	const secret = "company-secret"

	tests := []struct {
		name           string
		token          string
		expectedStatus int
		expectedID     string
	}{
		{"valid token", signHS256(t, secret, "company-1", time.Hour), http.StatusOK, "company-1"},
		{"missing token", "", http.StatusUnauthorized, ""},
		{"malformed token", "not.a.token", http.StatusUnauthorized, ""},
		{"wrong secret", signHS256(t, "other", "company-1", time.Hour), http.StatusUnauthorized, ""},
		{"expired token", signHS256(t, secret, "company-1", -time.Hour), http.StatusUnauthorized, ""},
		{"empty subject", signHS256(t, secret, "", time.Hour), http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runMiddleware(CompanyAuthRequired(secret), HeaderCompanyToken, tt.token)

			if tt.expectedStatus == http.StatusOK {
				assert.False(t, c.IsAborted(), w.Body.String())
				assert.Equal(t, tt.expectedID, CompanyID(c))
				return
			}
			assert.True(t, c.IsAborted())
			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), `"success":false`)
		})
	}
}

// TestCompanyAuthRequired_MissingSecret は署名鍵が未設定の場合に500が返されることを検証します。
func TestCompanyAuthRequired_MissingSecret(t *testing.T) {
	w, c := runMiddleware(CompanyAuthRequired(""), HeaderCompanyToken, "anything")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestUserAuthRequired はRS256のBearerトークンが公開鍵で検証されることを検証します。
func TestUserAuthRequired(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	otherKey, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	hsToken := signHS256(t, "secret", "user_1", time.Hour)

	tests := []struct {
		name       string
		authHeader string
		wantPass   bool
	}{
		{"valid token", "Bearer " + signRS256(t, key, "user_2abc", time.Hour), true},
		{"no header", "", false},
		{"basic auth", "Basic dXNlcjpwYXNz", false},
		{"bearer lowercase", "bearer " + signRS256(t, key, "user_2abc", time.Hour), false},
		{"signed by other key", "Bearer " + signRS256(t, otherKey, "user_2abc", time.Hour), false},
		{"expired", "Bearer " + signRS256(t, key, "user_2abc", -time.Minute), false},
		{"hmac token rejected", "Bearer " + hsToken, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, c := runMiddleware(UserAuthRequired(&key.PublicKey), "Authorization", tt.authHeader)

			if tt.wantPass {
				assert.False(t, c.IsAborted(), w.Body.String())
				assert.Equal(t, "user_2abc", UserID(c))
				return
			}
			assert.True(t, c.IsAborted())
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

// TestUserAuthRequired_NilKey は公開鍵が未設定の場合に500が返されることを検証します。
func TestUserAuthRequired_NilKey(t *testing.T) {
	w, c := runMiddleware(UserAuthRequired(nil), "Authorization", "Bearer x")

	assert.True(t, c.IsAborted())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// TestParseRSAPublicKey はPEM文字列（エスケープされた改行を含む）から公開鍵を読み込めることを検証します。
func TestParseRSAPublicKey(t *testing.T) {
	t.Parallel()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemStr := string(pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}))

	parsed, err := ParseRSAPublicKey(pemStr)
	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(parsed))

	escaped := strings.ReplaceAll(pemStr, "\n", `\n`)
	parsed, err = ParseRSAPublicKey(escaped)
	require.NoError(t, err)
	assert.True(t, key.PublicKey.Equal(parsed))

	_, err = ParseRSAPublicKey("not a key")
	assert.Error(t, err)
}

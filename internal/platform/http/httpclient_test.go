package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewHTTPClient は共通ヘッダーが付与され、呼び出し元の指定が優先されることを検証します。
func TestNewHTTPClient(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
	}))
	defer srv.Close()

	c := NewHTTPClient(time.Second)
	assert.Equal(t, time.Second, c.Timeout)

	t.Run("defaults", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		res, err := c.Do(req)
		require.NoError(t, err)
		_ = res.Body.Close()

		assert.Equal(t, UserAgent, got.Get("User-Agent"))
		assert.NotEmpty(t, got.Get(HeaderRequestID))
		assert.Empty(t, req.Header.Get(HeaderRequestID))
	})

	t.Run("caller headers win", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
		require.NoError(t, err)
		req.Header.Set(HeaderRequestID, "trace-1")
		res, err := c.Do(req)
		require.NoError(t, err)
		_ = res.Body.Close()

		assert.Equal(t, "trace-1", got.Get(HeaderRequestID))
	})
}

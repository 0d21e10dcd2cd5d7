// Package http はAPIクライアント用のHTTPクライアントを提供します。
package http

import (
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// HeaderRequestID はサーバーのアクセスログと突き合わせるためのリクエストIDヘッダーです。
const HeaderRequestID = "X-Request-ID"

// UserAgent はクライアントが送信するUser-Agentです。
const UserAgent = "jobboard-client/1"

// NewHTTPClient はjobboard API呼び出し用のHTTPクライアントを作成します。
// http.DefaultClientにはタイムアウトがないため、常にこのクライアントを使用すること。
// 送信する全リクエストにUser-AgentとリクエストIDを付与します。
func NewHTTPClient(timeout time.Duration) *http.Client {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        20,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}
	return &http.Client{Timeout: timeout, Transport: &headerTransport{next: t}}
}

// headerTransport は共通ヘッダーを付与してnextに委譲します。
type headerTransport struct {
	next http.RoundTripper
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTripperは元のリクエストを変更してはならない
	r := req.Clone(req.Context())
	if r.Header.Get("User-Agent") == "" {
		r.Header.Set("User-Agent", UserAgent)
	}
	if r.Header.Get(HeaderRequestID) == "" {
		r.Header.Set(HeaderRequestID, uuid.NewString())
	}
	return t.next.RoundTrip(r)
}

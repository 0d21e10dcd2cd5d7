// Package ratelimiter はクライアント単位のリクエスト頻度制限を提供します。
package ratelimiter

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// idleTTL を過ぎて使われていないキーは掃除されます。
const idleTTL = 10 * time.Minute

type entry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// KeyedLimiter はキー（クライアントIPなど）ごとにトークンバケットを持つレートリミッターです。
type KeyedLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	entries  map[string]*entry
	now      func() time.Time
	lastSwap time.Time
}

// NewKeyedLimiter は毎秒rps件、最大burst件まで許可するKeyedLimiterを生成します。
func NewKeyedLimiter(rps float64, burst int) *KeyedLimiter {
	if burst < 1 {
		burst = 1
	}
	return &KeyedLimiter{
		limit:   rate.Limit(rps),
		burst:   burst,
		entries: make(map[string]*entry),
		now:     time.Now,
	}
}

// Allow はkeyのリクエストを1件消費できればtrueを返します。
func (l *KeyedLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.sweep(now)

	e, ok := l.entries[key]
	if !ok {
		e = &entry{limiter: rate.NewLimiter(l.limit, l.burst)}
		l.entries[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// sweep は一定間隔でアイドル状態のキーを削除します。呼び出し元がロックを保持していること。
func (l *KeyedLimiter) sweep(now time.Time) {
	if now.Sub(l.lastSwap) < idleTTL {
		return
	}
	for k, e := range l.entries {
		if now.Sub(e.lastSeen) >= idleTTL {
			delete(l.entries, k)
		}
	}
	l.lastSwap = now
}

// Len は保持しているキーの数を返します。
func (l *KeyedLimiter) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// KeyFunc はリクエストから制限単位のキーを取り出します。空文字を返した場合はクライアントIPを使います。
type KeyFunc func(c *gin.Context) string

// Middleware はクライアントIPごとに頻度を制限し、超過時に429を返すGinミドルウェアです。
// ClientIP は信頼済みプロキシ経由の場合のみ X-Forwarded-For を参照するため、
// エンジン側で SetTrustedProxies を設定しておくこと。
func Middleware(l *KeyedLimiter) gin.HandlerFunc {
	return KeyedMiddleware(l, nil)
}

// KeyedMiddleware はkeyFuncが返すキーごとに頻度を制限するGinミドルウェアです。
func KeyedMiddleware(l *KeyedLimiter, keyFunc KeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := ""
		if keyFunc != nil {
			key = keyFunc(c)
		}
		if key == "" {
			key = "ip:" + c.ClientIP()
		}
		if !l.Allow(key) {
			slog.Warn("rate limit exceeded", "key", key, "remote_addr", c.ClientIP(), "path", c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"message": "Too many requests",
			})
			return
		}
		c.Next()
	}
}

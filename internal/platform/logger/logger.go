// Package logger はプロセス全体のslogロガーとHTTPリクエストログのミドルウェアを提供します。
package logger

import (
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// HeaderRequestID はすべてのレスポンスに付与されるリクエストIDヘッダーです。
const HeaderRequestID = "X-Request-ID"

// contextRequestID はリクエストIDを保持するginコンテキストのキーです。
const contextRequestID = "requestID"

// Init はデフォルトのslogロガーを設定します。
// development ではDebugレベルのテキスト形式、それ以外ではJSON形式で出力します。
func Init(env string) *slog.Logger {
	return InitWriter(env, os.Stdout)
}

// InitWriter は出力先を指定できるInitです。
func InitWriter(env string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// RequestID は各リクエストにIDを割り当てます。呼び出し元が指定したIDがあればそれを使います。
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(contextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// Logging はリクエストごとに1行ログを出力します。レベルはステータスコードで決まります。
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []any{
			slog.String("request_id", c.GetString(contextRequestID)),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("duration", time.Since(start)),
			slog.String("client_ip", c.ClientIP()),
		}

		switch {
		case status >= 500:
			slog.Error("http request", fields...)
		case status >= 400:
			slog.Warn("http request", fields...)
		default:
			slog.Info("http request", fields...)
		}
	}
}

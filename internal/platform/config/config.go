// Package config は環境変数からサーバー設定を読み込みます。
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// STORE_DRIVER に指定できるストアドライバー。
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMongo    = "mongo"
)

// Config はサーバー設定です。
type Config struct {
	Env  string
	Port string

	// StoreDriver はレコードストア（postgres / sqlite / mongo）を選択します。
	StoreDriver string
	SQLitePath  string

	// JWTSecret は企業トークンの署名鍵です。
	JWTSecret     string
	JWTExpiration time.Duration

	// ClerkWebhookSecret はIDプロバイダーのWebhook検証用シークレット（whsec_ 形式）です。
	ClerkWebhookSecret string
	// ClerkJWTKey はユーザーのBearerトークンを検証するPEM形式の公開鍵です。
	ClerkJWTKey string

	CORSOrigins []string
	// TrustedProxies は X-Forwarded-For を信頼するプロキシのアドレス（CIDR可）です。未設定なら接続元アドレスのみを使います。
	TrustedProxies []string

	// RateLimitRPS / RateLimitBurst はWebhookと応募APIのクライアント単位の上限です。
	RateLimitRPS   float64
	RateLimitBurst int

	// JobsCacheTTL は求人一覧キャッシュの有効期間です。
	JobsCacheTTL time.Duration

	// NATSURL が設定されている場合、ドメインイベントを発行します。
	NATSURL string
}

// Load は環境変数から設定を読み込み、未設定の項目にはデフォルト値を適用します。
func Load() Config {
	return Config{
		Env:                getEnv("APP_ENV", "development"),
		Port:               getEnv("PORT", "5000"),
		StoreDriver:        strings.ToLower(getEnv("STORE_DRIVER", DriverPostgres)),
		SQLitePath:         getEnv("SQLITE_PATH", "./jobboard.db"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		JWTExpiration:      getEnvDuration("JWT_EXPIRATION", 24*time.Hour),
		ClerkWebhookSecret: os.Getenv("CLERK_WEBHOOK_SECRET"),
		ClerkJWTKey:        os.Getenv("CLERK_JWT_KEY"),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		TrustedProxies:     splitList(os.Getenv("TRUSTED_PROXIES")),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 10),
		JobsCacheTTL:       getEnvDuration("JOBS_CACHE_TTL", 5*time.Minute),
		NATSURL:            os.Getenv("NATS_URL"),
	}
}

// Validate は起動に必須の設定が欠けていればエラーを返します。
func (c Config) Validate() error {
	var errs []error
	if c.ClerkWebhookSecret == "" {
		errs = append(errs, errors.New("CLERK_WEBHOOK_SECRET is not set"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is not set"))
	}
	switch c.StoreDriver {
	case DriverPostgres, DriverSQLite, DriverMongo:
	default:
		errs = append(errs, fmt.Errorf("unsupported STORE_DRIVER %q", c.StoreDriver))
	}
	return errors.Join(errs...)
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

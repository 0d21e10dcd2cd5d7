package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestLoad_Defaults は環境変数が未設定の場合にデフォルト値が適用されることを検証します。
func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"APP_ENV", "PORT", "STORE_DRIVER", "JWT_EXPIRATION", "CORS_ORIGINS",
		"TRUSTED_PROXIES", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "JOBS_CACHE_TTL", "NATS_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.Nil(t, cfg.TrustedProxies)
	assert.Equal(t, 5.0, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
	assert.Equal(t, 5*time.Minute, cfg.JobsCacheTTL)
	assert.Empty(t, cfg.NATSURL)
}

// TestLoad_FromEnv は環境変数の値が設定に反映されることを検証します。
func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("STORE_DRIVER", "Mongo")
	t.Setenv("JWT_EXPIRATION", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.0/8")
	t.Setenv("RATE_LIMIT_RPS", "0.5")
	t.Setenv("RATE_LIMIT_BURST", "not-a-number")

	cfg := Load()

	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpiration)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, []string{"10.0.0.0/8"}, cfg.TrustedProxies)
	assert.Equal(t, 0.5, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst, "invalid numbers fall back to the default")
}

// TestConfig_Validate は必須設定の欠落とサポート外のドライバーが検出されることを検証します。
func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	valid := Config{ClerkWebhookSecret: "whsec_x", JWTSecret: "s", StoreDriver: DriverSQLite}
	assert.NoError(t, valid.Validate())

	missingSecret := valid
	missingSecret.ClerkWebhookSecret = ""
	assert.ErrorContains(t, missingSecret.Validate(), "CLERK_WEBHOOK_SECRET")

	badDriver := valid
	badDriver.StoreDriver = "cassandra"
	assert.ErrorContains(t, badDriver.Validate(), "cassandra")

	empty := Config{}
	err := empty.Validate()
	assert.ErrorContains(t, err, "JWT_SECRET")
	assert.ErrorContains(t, err, "CLERK_WEBHOOK_SECRET")
}

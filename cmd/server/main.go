package main

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"jobboard_backend/internal/app/di"
	"jobboard_backend/internal/app/router"
	"jobboard_backend/internal/feature/identity/adapters/webhook"
	"jobboard_backend/internal/platform/config"
	platformhandler "jobboard_backend/internal/platform/http/handler"
	jwtmw "jobboard_backend/internal/platform/jwt"
	"jobboard_backend/internal/platform/logger"
	infraredis "jobboard_backend/internal/platform/redis"
	"jobboard_backend/internal/platform/storage"
	"jobboard_backend/internal/shared/ratelimiter"
)

// shutdownTimeout は処理中のリクエストの完了を待つ最大時間です。
const shutdownTimeout = 10 * time.Second

func main() {
	// .envを読み込む
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg := config.Load()
	logger.Init(cfg.Env)

	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// run は依存を組み立ててサーバーを起動し、シグナル受信まで待ちます。
// 終了時は defer で登録したクローズ処理がすべて実行されます。
func run(cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// db
	store, err := di.OpenStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer store.Close()

	checks := map[string]platformhandler.Check{"store": store.Ping}

	// Redis
	var rdb *redisv9.Client
	if rcfg := infraredis.LoadConfigFromEnv(); rcfg.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, rcfg); err != nil {
			slog.Warn("Redis unavailable. Running without cache.")
		} else {
			rdb = tmp
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	// イベント発行
	publisher, closePublisher := di.NewPublisher(cfg.NATSURL)
	defer closePublisher()

	// ファイル保存先
	uploader, uploadDir, err := di.NewUploader(storage.LoadConfigFromEnv())
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}

	verifier, err := webhook.NewSvixVerifier(cfg.ClerkWebhookSecret)
	if err != nil {
		return fmt.Errorf("invalid CLERK_WEBHOOK_SECRET: %w", err)
	}

	var userKey *rsa.PublicKey
	if cfg.ClerkJWTKey != "" {
		if userKey, err = jwtmw.ParseRSAPublicKey(cfg.ClerkJWTKey); err != nil {
			return fmt.Errorf("invalid CLERK_JWT_KEY: %w", err)
		}
	} else {
		slog.Warn("CLERK_JWT_KEY is not set. User endpoints will reject all requests.")
	}

	handlers := di.NewHandlers(di.Deps{
		Repositories: store.Repositories,
		Jobs:         di.NewJobRepository(rdb, cfg.JobsCacheTTL, store.Repositories.Jobs),
		Uploader:     uploader,
		Publisher:    publisher,
		Tokens:       jwtmw.NewGenerator(cfg.JWTSecret, cfg.JWTExpiration),
		Verifier:     verifier,
		Checks:       checks,
	})

	// ルータ生成
	engine := router.NewRouter(handlers, router.Options{
		CORSOrigins:    cfg.CORSOrigins,
		TrustedProxies: cfg.TrustedProxies,
		CompanySecret:  cfg.JWTSecret,
		UserKey:        userKey,
		Limiter:        ratelimiter.NewKeyedLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		UploadDir:      uploadDir,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server started", "port", cfg.Port, "driver", cfg.StoreDriver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
	}
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// migrate はレコードストアのスキーマとインデックスを作成します。
// サーバーも起動時に同じ処理を行いますが、デプロイ前に単独で実行できます。
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"jobboard_backend/internal/app/di"
	"jobboard_backend/internal/platform/config"
	"jobboard_backend/internal/platform/logger"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info(".env not found; using system environment variables")
	}

	cfg := config.Load()
	logger.Init(cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := di.OpenStore(ctx, cfg)
	if err != nil {
		slog.Error("migrate failed", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer store.Close()

	slog.Info("migrate ok", "driver", cfg.StoreDriver)
}

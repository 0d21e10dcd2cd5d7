package di

import (
	"context"
	"io"
	"log/slog"

	"jobboard_backend/internal/platform/events"
	"jobboard_backend/internal/platform/storage"
)

// Uploader はアップロードファイルを保存して公開URLを返します。
type Uploader interface {
	Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}

// Publisher はドメインイベントを発行します。
type Publisher interface {
	Publish(ctx context.Context, subject string, payload any) error
}

// NewUploader はストレージ設定に応じたUploaderを生成します。
// ローカル保存の場合は静的配信するディレクトリも返します（S3の場合は空文字）。
func NewUploader(cfg storage.Config) (Uploader, string, error) {
	if cfg.Type == storage.TypeS3 {
		u, err := storage.NewS3Uploader(cfg)
		if err != nil {
			return nil, "", err
		}
		return u, "", nil
	}
	u, err := storage.NewLocalUploader(cfg)
	if err != nil {
		return nil, "", err
	}
	return u, u.BasePath(), nil
}

// NewPublisher はNATSが設定されていればNATSPublisherを、そうでなければNopPublisherを返します。
// 返されるclose関数は常に呼び出し可能です。
func NewPublisher(natsURL string) (Publisher, func()) {
	if natsURL == "" {
		return events.NopPublisher{}, func() {}
	}
	nc, err := events.Connect(natsURL)
	if err != nil {
		slog.Warn("NATS unavailable, domain events disabled", "error", err)
		return events.NopPublisher{}, func() {}
	}
	return events.NewNATSPublisher(nc), func() {
		if err := nc.Drain(); err != nil {
			slog.Warn("failed to drain NATS connection", "error", err)
		}
	}
}

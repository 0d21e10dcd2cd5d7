package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader はローカルファイルシステムにファイルを保存します。開発・テスト用です。
type LocalUploader struct {
	basePath string
	baseURL  string
}

// NewLocalUploader はLocalUploaderを生成し、保存先ディレクトリを作成します。
func NewLocalUploader(cfg Config) (*LocalUploader, error) {
	if cfg.BasePath == "" {
		cfg.BasePath = "./uploads"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "/uploads"
	}
	if err := os.MkdirAll(cfg.BasePath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &LocalUploader{basePath: cfg.BasePath, baseURL: cfg.BaseURL}, nil
}

// BasePath は保存先ディレクトリを返します。
func (u *LocalUploader) BasePath() string {
	return u.basePath
}

// Upload はrの内容をkeyのパスに書き込み、公開URLを返します。
func (u *LocalUploader) Upload(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dst := filepath.Join(u.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}

	_, err = io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		// 書きかけのファイルは残さない
		_ = os.Remove(dst)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return joinURL(u.baseURL, key), nil
}

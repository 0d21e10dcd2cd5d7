// Package storage はレジュメや企業ロゴなどのアップロードファイルを保存し、公開URLを返します。
package storage

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
)

// ストレージ種別。
const (
	TypeLocal = "local"
	TypeS3    = "s3"
)

// Config はストレージ設定です。
type Config struct {
	Type string

	// BasePath はローカル保存先のディレクトリです。
	BasePath string
	// BaseURL は保存したファイルの公開URLのプレフィックスです。
	BaseURL string

	Bucket    string
	Region    string
	Endpoint  string
	AccessKey string
	SecretKey string
}

// LoadConfigFromEnv は環境変数からストレージ設定を読み込みます。
func LoadConfigFromEnv() Config {
	cfg := Config{
		Type:      os.Getenv("STORAGE_TYPE"),
		BasePath:  os.Getenv("STORAGE_BASE_PATH"),
		BaseURL:   os.Getenv("STORAGE_BASE_URL"),
		Bucket:    os.Getenv("STORAGE_BUCKET"),
		Region:    os.Getenv("STORAGE_REGION"),
		Endpoint:  os.Getenv("STORAGE_ENDPOINT"),
		AccessKey: os.Getenv("STORAGE_ACCESS_KEY"),
		SecretKey: os.Getenv("STORAGE_SECRET_KEY"),
	}
	if cfg.Type == "" {
		cfg.Type = TypeLocal
	}
	return cfg
}

// ObjectKey はフォルダとファイル名から衝突しないオブジェクトキーを生成します。
// 例: resumes/3f2b...-cv.pdf
func ObjectKey(folder, filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	if base == "." || base == "/" {
		base = "file"
	}
	base = strings.ReplaceAll(base, " ", "_")
	return fmt.Sprintf("%s/%s-%s", strings.Trim(folder, "/"), uuid.NewString(), base)
}

func joinURL(base, key string) string {
	return strings.TrimRight(base, "/") + "/" + key
}

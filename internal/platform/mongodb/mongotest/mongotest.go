// Package mongotest はMongoDBアダプターのテスト用にデータベースを用意します。
package mongotest

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"jobboard_backend/internal/platform/mongodb"
)

// Database はMONGODB_TEST_URIのサーバー上にテスト専用のデータベースを作成し、
// インデックスを適用して返します。環境変数が未設定の場合はテストをスキップします。
// データベースはテスト終了時に削除されます。
func Database(t *testing.T) *mongo.Database {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI is not set")
	}

	ctx := context.Background()
	name := "jobboard_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	client, err := mongodb.Connect(ctx, mongodb.Config{URI: uri, Database: name, Timeout: 5 * time.Second})
	require.NoError(t, err, "failed to connect to test mongodb")

	db := client.Database(name)
	require.NoError(t, mongodb.EnsureIndexes(ctx, db), "failed to create indexes")

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})
	return db
}

package mongodb_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobboard_backend/internal/platform/mongodb"
	"jobboard_backend/internal/platform/mongodb/mongotest"
)

// TestLoadConfigFromEnv は環境変数とデフォルト値から接続設定が読み込まれることを検証します。
func TestLoadConfigFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		database string
		expected mongodb.Config
	}{
		{
			name:     "defaults",
			expected: mongodb.Config{URI: "mongodb://localhost:27017", Database: "job-portal", Timeout: 10 * time.Second},
		},
		{
			name:     "from env",
			uri:      "mongodb://mongo:27017",
			database: "jobs",
			expected: mongodb.Config{URI: "mongodb://mongo:27017", Database: "jobs", Timeout: 10 * time.Second},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("MONGODB_URI", tt.uri)
			t.Setenv("MONGODB_DATABASE", tt.database)

			assert.Equal(t, tt.expected, mongodb.LoadConfigFromEnv())
		})
	}
}

// TestEnsureIndexes_Idempotent はMONGODB_TEST_URIが設定されている場合のみ、インデックス作成が再実行可能であることを検証します。
func TestEnsureIndexes_Idempotent(t *testing.T) {
	db := mongotest.Database(t)

	require.NoError(t, mongodb.EnsureIndexes(context.Background(), db))
}
